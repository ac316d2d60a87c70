package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "no tags here", "no tags here"},
		{"tags stripped and trimmed", "<b>hi</b>  ", "hi"},
		{"lone tag becomes empty", "<script>", ""},
		{"unclosed tag at end of input", "hello <img src=x", "hello"},
		{"closing tag", "a</div>b", "ab"},
		{"entities are not decoded", "&lt;b&gt;", "&lt;b&gt;"},
		// The blunt pattern eats a bare "<" through to end of input; kept
		// for parity with what stored data was filtered with.
		{"bare angle bracket eats to end", "1 < 2", "1"},
		{"whitespace only", "   \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeComment(tt.input))
		})
	}
}
