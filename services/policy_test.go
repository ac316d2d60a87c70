package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkpress/inkpress/models"
)

func TestCanModify(t *testing.T) {
	comment := &models.Comment{ID: 1, BlogID: 1, UserID: 7}

	tests := []struct {
		name  string
		actor *Actor
		want  bool
	}{
		{"nil actor", nil, false},
		{"author", &Actor{ID: 7, Role: models.RoleUser}, true},
		{"other user", &Actor{ID: 8, Role: models.RoleUser}, false},
		{"admin", &Actor{ID: 9, Role: models.RoleAdmin}, true},
		{"author who is admin", &Actor{ID: 7, Role: models.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModify(tt.actor, comment))
		})
	}
}
