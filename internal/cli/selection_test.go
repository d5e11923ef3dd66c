package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input    string
		expected Selection
	}{
		{
			input:    "Service.cs:3:5",
			expected: Selection{Path: "Service.cs", Start: Position{3, 5}, End: Position{3, 5}},
		},
		{
			input:    "src/Service.cs:3:5-4:1",
			expected: Selection{Path: "src/Service.cs", Start: Position{3, 5}, End: Position{4, 1}},
		},
		{
			input:    `C:\code\Service.cs:10:2`,
			expected: Selection{Path: `C:\code\Service.cs`, Start: Position{10, 2}, End: Position{10, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sel, err := ParseSelection(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sel)
		})
	}
}

func TestParseSelectionErrors(t *testing.T) {
	for _, input := range []string{"Service.cs", "Service.cs:3", "Service.cs:0:1", "Service.cs:4:1-3:1", ":1:1x"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSelection(input)
			assert.True(t, errors.HasCode(err, errors.ValidationErrorCode), "got %v", err)
		})
	}
}

func TestSelectionSpan(t *testing.T) {
	text := "class A\n{\n    public A() { }\n}"

	sel := Selection{Path: "A.cs", Start: Position{3, 12}, End: Position{3, 15}}
	span, err := sel.Span(text)
	require.NoError(t, err)
	assert.Equal(t, models.Span{Start: 21, End: 24}, span)
	assert.Equal(t, "A()", text[span.Start:span.End])

	_, err = Selection{Path: "A.cs", Start: Position{9, 1}, End: Position{9, 1}}.Span(text)
	assert.True(t, errors.HasCode(err, errors.ValidationErrorCode))
}
