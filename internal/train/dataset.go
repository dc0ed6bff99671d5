// Package train implements the training-loop collaborators around the
// graph core: training-row datasets, loss functions, and the per-epoch
// driver that chains forward evaluation, the backward pass, and the
// weight update.
package train

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dataset holds per-iteration rows of training values.
//
// It is built from a flat slice: vals[0:width] is the first row, one
// value per node in wiring order, vals[width:2*width] the second, and
// so on.
type Dataset struct {
	rows  *mat.Dense
	width int
}

// NewDataset reshapes a flat value slice into rows of the given width.
// The slice length must be a non-zero multiple of width.
func NewDataset(vals []float64, width int) (*Dataset, error) {
	if width <= 0 {
		return nil, fmt.Errorf("dataset width must be positive, got %d", width)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("dataset has no values")
	}
	if len(vals)%width != 0 {
		return nil, fmt.Errorf("dataset length %d is not a multiple of width %d", len(vals), width)
	}
	return &Dataset{
		rows:  mat.NewDense(len(vals)/width, width, vals),
		width: width,
	}, nil
}

// Rows returns the number of training rows.
func (d *Dataset) Rows() int {
	r, _ := d.rows.Dims()
	return r
}

// Width returns the number of values per row.
func (d *Dataset) Width() int { return d.width }

// Row returns the values for one training iteration. The index is a
// ring: it wraps modulo the number of rows, so iteration 5 over a
// 3-row dataset yields row 2.
func (d *Dataset) Row(iter int) []float64 {
	return mat.Row(nil, iter%d.Rows(), d.rows)
}
