package vision

import (
	"fmt"

	"gocv.io/x/gocv"
)

// HSV holds one OpenCV 8-bit HSV triple: H in [0,179], S and V in [0,255].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// HueBand is an inclusive HSV range. A pixel is foreground when all three
// channels fall inside [Lower, Upper].
type HueBand struct {
	Lower HSV `json:"lower"`
	Upper HSV `json:"upper"`
}

// DefaultRedBand returns the band calibrated for a red marker:
// upper hue range, high saturation and value floors.
func DefaultRedBand() HueBand {
	return HueBand{
		Lower: HSV{H: 161, S: 155, V: 84},
		Upper: HSV{H: 179, S: 255, V: 255},
	}
}

// Validate checks the band against OpenCV's 8-bit HSV ranges.
func (b HueBand) Validate() error {
	check := func(name string, lo, hi, max float64) error {
		if lo < 0 || hi > max || lo > hi {
			return fmt.Errorf("%w: %s range [%.0f,%.0f] outside [0,%.0f]", ErrInvalidBand, name, lo, hi, max)
		}
		return nil
	}
	if err := check("hue", b.Lower.H, b.Upper.H, 179); err != nil {
		return err
	}
	if err := check("saturation", b.Lower.S, b.Upper.S, 255); err != nil {
		return err
	}
	return check("value", b.Lower.V, b.Upper.V, 255)
}

// Segment writes a single-channel mask of frame into dst: 255 where the
// pixel's HSV value lies inside band, 0 elsewhere. frame must be 8-bit BGR.
func Segment(frame gocv.Mat, band HueBand, dst *gocv.Mat) {
	hsv := gocv.NewMat()
	defer hsv.Close()

	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)
	lower := gocv.NewScalar(band.Lower.H, band.Lower.S, band.Lower.V, 0)
	upper := gocv.NewScalar(band.Upper.H, band.Upper.S, band.Upper.V, 0)
	gocv.InRangeWithScalar(hsv, lower, upper, dst)
}
