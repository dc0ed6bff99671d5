package train_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurograph-ml/neurograph/internal/train"
)

// TestNewDataset tests flat-slice reshaping.
func TestNewDataset(t *testing.T) {
	d, err := train.NewDataset([]float64{1, 2, 3, 4, 5, 6}, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, d.Rows())
	assert.Equal(t, 2, d.Width())
	assert.Equal(t, []float64{1, 2}, d.Row(0))
	assert.Equal(t, []float64{3, 4}, d.Row(1))
	assert.Equal(t, []float64{5, 6}, d.Row(2))
}

// TestDataset_RowRing tests that the iteration index wraps modulo the
// row count.
func TestDataset_RowRing(t *testing.T) {
	d, err := train.NewDataset([]float64{1, 2, 3, 4, 5, 6}, 2)
	require.NoError(t, err)

	// Iteration 5 over 3 rows wraps to row 2.
	assert.Equal(t, []float64{5, 6}, d.Row(5))
	assert.Equal(t, []float64{1, 2}, d.Row(3))
}

// TestNewDataset_Invalid tests shape validation.
func TestNewDataset_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		vals  []float64
		width int
	}{
		{"not a multiple of width", []float64{1, 2, 3}, 2},
		{"empty values", nil, 2},
		{"zero width", []float64{1, 2}, 0},
		{"negative width", []float64{1, 2}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := train.NewDataset(tt.vals, tt.width)
			assert.Error(t, err)
		})
	}
}
