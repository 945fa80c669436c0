package tool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTool(t *testing.T) {
	calc := NewCalculateTool()

	tests := []struct {
		expression string
		want       string
	}{
		{"2+2", "4"},
		{"2 * (3 + 4)", "14"},
		{"10 / 4", "2.5"},
		{"2^10", "1024"},
		{"-3 + 5", "2"},
		{"10 % 3", "1"},
		{"1.5 * 2", "3"},
	}
	for _, tt := range tests {
		result, err := calc.Call(context.Background(), map[string]any{"expression": tt.expression})
		require.NoError(t, err, "expression %q", tt.expression)
		assert.Equal(t, tt.want, result, "expression %q", tt.expression)
	}
}

func TestCalculateToolErrors(t *testing.T) {
	calc := NewCalculateTool()

	for _, expression := range []string{"1/0", "2 +", "(1+2", "abc", "1 @ 2", ""} {
		_, err := calc.Call(context.Background(), map[string]any{"expression": expression})
		assert.Error(t, err, "expression %q", expression)
	}
}

func TestCalculateToolRejectsMissingArgument(t *testing.T) {
	calc := NewCalculateTool()

	_, err := calc.Call(context.Background(), map[string]any{})

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestCurrentDateTool(t *testing.T) {
	date := NewCurrentDateTool()

	result, err := date.Call(context.Background(), map[string]any{})
	require.NoError(t, err)

	parsed, err := time.Parse("2006-01-02", result.(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, 48*time.Hour)
}
