package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{name: "empty", query: "", expected: ""},
		{name: "plain", query: "widget", expected: "widget"},
		{name: "percent", query: "100%", expected: `100\%`},
		{name: "underscore", query: "a_b", expected: `a\_b`},
		{name: "backslash", query: `c:\tmp`, expected: `c:\\tmp`},
		{name: "mixed", query: `%_\`, expected: `\%\_\\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLike(tt.query))
		})
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%wid%", ContainsPattern("wid"))
	assert.Equal(t, `%50\%%`, ContainsPattern("50%"))
	assert.Equal(t, "%%", ContainsPattern(""))
}
