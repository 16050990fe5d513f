package vision

import (
	"fmt"

	"gocv.io/x/gocv"
)

// BaselineState tags whether a Differencer has captured its reference mask.
type BaselineState int

const (
	// BaselineUnset means no mask has been seen yet.
	BaselineUnset BaselineState = iota
	// BaselineCaptured means the first mask is stored and frozen.
	BaselineCaptured
)

func (s BaselineState) String() string {
	if s == BaselineCaptured {
		return "captured"
	}
	return "unset"
}

// Differencer suppresses static background by subtracting the first mask it
// is given from every later one. The baseline is never refreshed.
type Differencer struct {
	state    BaselineState
	baseline gocv.Mat
}

// NewDifferencer returns a differencer with no baseline.
func NewDifferencer() *Differencer {
	return &Differencer{state: BaselineUnset}
}

// State reports whether the baseline has been captured.
func (d *Differencer) State() BaselineState {
	return d.state
}

// Diff writes |mask - baseline| into dst. The first call stores mask as the
// baseline and writes an all-zero mask of the same size.
func (d *Differencer) Diff(mask gocv.Mat, dst *gocv.Mat) error {
	if d.state == BaselineUnset {
		d.baseline = mask.Clone()
		d.state = BaselineCaptured

		zero := gocv.Zeros(mask.Rows(), mask.Cols(), mask.Type())
		defer zero.Close()
		zero.CopyTo(dst)
		return nil
	}

	if mask.Rows() != d.baseline.Rows() || mask.Cols() != d.baseline.Cols() || mask.Type() != d.baseline.Type() {
		return fmt.Errorf("%w: got %dx%d, baseline %dx%d",
			ErrSizeMismatch, mask.Cols(), mask.Rows(), d.baseline.Cols(), d.baseline.Rows())
	}

	gocv.AbsDiff(mask, d.baseline, dst)
	return nil
}

// Close releases the stored baseline.
func (d *Differencer) Close() error {
	if d.state == BaselineCaptured {
		d.baseline.Close()
	}
	return nil
}
