package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "smallest value possible",
			input:    0.0,
			expected: WeakValue,
		},
		{
			name:     "just before fair",
			input:    0.399,
			expected: WeakValue,
		},
		{
			name:     "exactly fair",
			input:    0.4,
			expected: FairValue,
		},
		{
			name:     "just before strong",
			input:    0.599,
			expected: FairValue,
		},
		{
			name:     "exactly strong",
			input:    0.6,
			expected: StrongValue,
		},
		{
			name:     "just before elite",
			input:    0.799,
			expected: StrongValue,
		},
		{
			name:     "exactly elite",
			input:    0.8,
			expected: EliteValue,
		},
		{
			name:     "above one",
			input:    1.7,
			expected: EliteValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		label string
	}{
		{"weak", 0.1, WeakValue},
		{"fair", 0.5, FairValue},
		{"strong", 0.7, StrongValue},
		{"elite", 0.95, EliteValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, GetColorLabel(tt.score), tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "lineup.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetDBFilePaths(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	cachePath := GetCacheDBFilePath()
	historyPath := GetHistoryDBFilePath()

	assert.Contains(t, cachePath, ".lineup_cache.db")
	assert.Contains(t, historyPath, ".lineup_history.db")
	assert.True(t, strings.HasPrefix(cachePath, homeDir), "path %s should start with home dir %s", cachePath, homeDir)
	assert.NotEqual(t, cachePath, historyPath)
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Bruno Fernandes", 20, "Bruno Fernandes"},
		{"exact fit", "Amad", 4, "Amad"},
		{"truncated", "Bryan Mbeumo", 8, "Bryan..."},
		{"multibyte runes", "Højlund Rasmus", 6, "Høj..."},
		{"width too small", "Cunha", 3, "Cunha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
