package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		{"error level", SeverityError, "error"},
		{"warning level", SeverityWarning, "warning"},
		{"info level", SeverityInfo, "info"},
		{"unknown negative", Severity(-1), "unknown"},
		{"unknown large value", Severity(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.severity.String())
		})
	}
}

func TestSeveritySymbol(t *testing.T) {
	assert.Equal(t, "✗", SeverityError.Symbol())
	assert.Equal(t, "⚠", SeverityWarning.Symbol())
	assert.Equal(t, "ℹ", SeverityInfo.Symbol())
	assert.Equal(t, "?", Severity(42).Symbol())
}

func TestSeverityAtLeast(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityInfo.AtLeast(SeverityWarning))
	assert.False(t, Severity(7).AtLeast(SeverityInfo))
}

func TestParse(t *testing.T) {
	for name, want := range map[string]Severity{
		"error":   SeverityError,
		"WARNING": SeverityWarning,
		"warn":    SeverityWarning,
		" info ":  SeverityInfo,
	} {
		got, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := Parse("fatal")
	assert.Error(t, err)
}
