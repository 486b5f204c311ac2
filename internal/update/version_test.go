package update

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		v1   string
		v2   string
		want int
	}{
		{"equal", "2.0", "2.0", 0},
		{"patch newer", "2.1", "2.0", 1},
		{"patch older", "2.0", "2.1", -1},
		{"major wins over minor", "3.0", "2.9", 1},
		{"longer equal prefix is newer", "2.0.1", "2.0", 1},
		{"shorter equal prefix is older", "2.0", "2.0.1", -1},
		{"numeric not lexicographic", "2.10", "2.9", 1},
		{"whitespace tolerated", " 2.1 ", "2.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareVersions(tt.v1, tt.v2)
			require.NoError(t, err)
			if tt.want == 0 {
				assert.Zero(t, got)
			} else if tt.want < 0 {
				assert.Negative(t, got)
			} else {
				assert.Positive(t, got)
			}
		})
	}
}

func TestCompareVersions_Invalid(t *testing.T) {
	_, err := CompareVersions("2.x", "2.0")
	assert.Error(t, err)

	_, err = CompareVersions("2.0", "")
	assert.Error(t, err)
}
