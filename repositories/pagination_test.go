package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(-3))
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 1, NormalizePage(1))
	assert.Equal(t, 7, NormalizePage(7))
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultPageLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultPageLimit, NormalizeLimit(-1))
	assert.Equal(t, 1, NormalizeLimit(1))
	assert.Equal(t, 25, NormalizeLimit(25))
	assert.Equal(t, MaxPageLimit, NormalizeLimit(50))
	assert.Equal(t, MaxPageLimit, NormalizeLimit(51))
	assert.Equal(t, MaxPageLimit, NormalizeLimit(10000))
}
