package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleaner_StripDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		removed  int
	}{
		{
			name:     "class comment keeps the line break",
			input:    "class A\n{//Can't regenerate constructor, type contains multiple public constructors.\n    public A(){}\n}",
			expected: "class A\n{\n    public A(){}\n}",
			removed:  1,
		},
		{
			name:     "constructor comment removes its line",
			input:    "class A\n{\n//Can't regenerate constructor, _a,_b have the same type (can't generate unique parameter).\r\n    public A(int x)\r\n    {\r\n    }\r\n}",
			expected: "class A\n{\n    public A(int x)\r\n    {\r\n    }\r\n}",
			removed:  1,
		},
		{
			name:     "several comments",
			input:    "class A\n{//Can't regenerate constructor, x.\n}\nclass B\n{//Can't regenerate constructor, y.\n}",
			expected: "class A\n{\n}\nclass B\n{\n}",
			removed:  2,
		},
		{
			name:     "other comments are kept",
			input:    "class A\n{\n    // Can't touch this\n}",
			expected: "class A\n{\n    // Can't touch this\n}",
		},
	}

	cleaner := NewCleaner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, removed := cleaner.StripDiagnostics(tt.input)
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, tt.removed, removed)
		})
	}
}
