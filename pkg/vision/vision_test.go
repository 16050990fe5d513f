package vision

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// newFrame returns a BGR frame filled with c.
func newFrame(w, h int, c color.RGBA) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0), h, w, gocv.MatTypeCV8UC3)
}

// newMask returns an all-zero single channel mask.
func newMask(w, h int) gocv.Mat {
	return gocv.Zeros(h, w, gocv.MatTypeCV8U)
}

// fill sets every pixel of r (Max exclusive) to v.
func fill(m *gocv.Mat, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetUCharAt(y, x, v)
		}
	}
}

// inBand is BGR (85,0,255): HSV (170,255,255) in OpenCV units.
var inBand = color.RGBA{R: 255, G: 0, B: 85, A: 255}

func TestSegment_NoMatch(t *testing.T) {
	tests := []struct {
		name  string
		color color.RGBA
	}{
		{"black", color.RGBA{}},
		{"blue", color.RGBA{B: 255, A: 255}},
		{"pure red below band", color.RGBA{R: 255, A: 255}},
		{"gray", color.RGBA{R: 128, G: 128, B: 128, A: 255}},
		{"white", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := newFrame(64, 48, tc.color)
			defer frame.Close()
			mask := gocv.NewMat()
			defer mask.Close()

			Segment(frame, DefaultRedBand(), &mask)

			if mask.Rows() != 48 || mask.Cols() != 64 {
				t.Fatalf("mask size: got %dx%d, want 64x48", mask.Cols(), mask.Rows())
			}
			if n := gocv.CountNonZero(mask); n != 0 {
				t.Errorf("CountNonZero: got %d, want 0", n)
			}
		})
	}
}

func TestSegment_MarksBandPixels(t *testing.T) {
	frame := newFrame(64, 48, color.RGBA{B: 255, A: 255})
	defer frame.Close()
	gocv.Rectangle(&frame, image.Rect(10, 10, 20, 20), inBand, -1)

	mask := gocv.NewMat()
	defer mask.Close()
	Segment(frame, DefaultRedBand(), &mask)

	if v := mask.GetUCharAt(15, 15); v != 255 {
		t.Errorf("inside patch: got %d, want 255", v)
	}
	if v := mask.GetUCharAt(0, 0); v != 0 {
		t.Errorf("background: got %d, want 0", v)
	}
	if mask.Channels() != 1 {
		t.Errorf("channels: got %d, want 1", mask.Channels())
	}
}

func TestHueBand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		band    HueBand
		wantErr bool
	}{
		{"default", DefaultRedBand(), false},
		{"hue above 179", HueBand{Lower: HSV{H: 170}, Upper: HSV{H: 200, S: 255, V: 255}}, true},
		{"inverted saturation", HueBand{Lower: HSV{S: 200}, Upper: HSV{H: 10, S: 100, V: 255}}, true},
		{"negative value", HueBand{Lower: HSV{V: -1}, Upper: HSV{H: 10, S: 255, V: 255}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.band.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate: got %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBand) {
				t.Errorf("Validate: got %v, want ErrInvalidBand", err)
			}
		})
	}
}

func TestDifferencer_FirstCallIsZero(t *testing.T) {
	d := NewDifferencer()
	defer d.Close()

	if d.State() != BaselineUnset {
		t.Fatalf("initial state: got %v, want unset", d.State())
	}

	mask := newMask(50, 40)
	defer mask.Close()
	fill(&mask, image.Rect(0, 0, 50, 40), 255)

	out := gocv.NewMat()
	defer out.Close()
	if err := d.Diff(mask, &out); err != nil {
		t.Fatalf("Diff: %v", err)
	}

	if d.State() != BaselineCaptured {
		t.Errorf("state after first diff: got %v, want captured", d.State())
	}
	if out.Rows() != 40 || out.Cols() != 50 {
		t.Fatalf("out size: got %dx%d, want 50x40", out.Cols(), out.Rows())
	}
	if n := gocv.CountNonZero(out); n != 0 {
		t.Errorf("first diff: got %d non-zero pixels, want 0", n)
	}
}

func TestDifferencer_LaterCallsSubtractFirstMask(t *testing.T) {
	d := NewDifferencer()
	defer d.Close()

	first := newMask(40, 30)
	defer first.Close()
	fill(&first, image.Rect(0, 0, 10, 10), 255)

	second := newMask(40, 30)
	defer second.Close()
	fill(&second, image.Rect(5, 5, 20, 20), 255)

	third := newMask(40, 30)
	defer third.Close()
	fill(&third, image.Rect(30, 20, 40, 30), 255)

	out := gocv.NewMat()
	defer out.Close()
	if err := d.Diff(first, &out); err != nil {
		t.Fatalf("Diff(first): %v", err)
	}

	for _, tc := range []struct {
		name string
		mask gocv.Mat
	}{
		{"second", second},
		{"third", third},
	} {
		if err := d.Diff(tc.mask, &out); err != nil {
			t.Fatalf("Diff(%s): %v", tc.name, err)
		}
		for y := 0; y < 30; y++ {
			for x := 0; x < 40; x++ {
				a := int(tc.mask.GetUCharAt(y, x))
				b := int(first.GetUCharAt(y, x))
				want := a - b
				if want < 0 {
					want = -want
				}
				if got := int(out.GetUCharAt(y, x)); got != want {
					t.Fatalf("%s at (%d,%d): got %d, want %d", tc.name, x, y, got, want)
				}
			}
		}
	}
}

func TestDifferencer_SizeMismatch(t *testing.T) {
	d := NewDifferencer()
	defer d.Close()

	a := newMask(40, 30)
	defer a.Close()
	b := newMask(20, 30)
	defer b.Close()

	out := gocv.NewMat()
	defer out.Close()
	if err := d.Diff(a, &out); err != nil {
		t.Fatalf("Diff(a): %v", err)
	}
	if err := d.Diff(b, &out); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Diff(b): got %v, want ErrSizeMismatch", err)
	}
}

func TestLocator_SingleRectangle(t *testing.T) {
	tests := []struct {
		name      string
		rect      image.Rectangle
		wantFound bool
		wantPoint image.Point
	}{
		{
			name:      "20x20 block is detected at its center",
			rect:      image.Rect(100, 100, 120, 120),
			wantFound: true,
			wantPoint: image.Pt(110, 110),
		},
		{
			name:      "odd size rounds toward zero",
			rect:      image.Rect(30, 40, 55, 61),
			wantFound: true,
			wantPoint: image.Pt(30+25/2, 40+21/2),
		},
		{
			name:      "10x10 block is below the noise floor",
			rect:      image.Rect(50, 50, 60, 60),
			wantFound: false,
			wantPoint: image.Point{},
		},
	}

	l := NewLocator(DefaultLocatorConfig())
	defer l.Close()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mask := newMask(200, 200)
			defer mask.Close()
			fill(&mask, tc.rect, 255)

			det := l.Locate(mask)
			if det.Found != tc.wantFound {
				t.Fatalf("Found: got %v, want %v", det.Found, tc.wantFound)
			}
			if det.Point != tc.wantPoint {
				t.Errorf("Point: got %v, want %v", det.Point, tc.wantPoint)
			}
		})
	}
}

func TestLocator_ThresholdIsStrict(t *testing.T) {
	l := NewLocator(DefaultLocatorConfig())
	defer l.Close()

	tests := []struct {
		value     uint8
		wantFound bool
	}{
		{30, false},
		{31, true},
	}

	for _, tc := range tests {
		mask := newMask(100, 100)
		fill(&mask, image.Rect(10, 10, 40, 40), tc.value)
		det := l.Locate(mask)
		mask.Close()

		if det.Found != tc.wantFound {
			t.Errorf("value %d: got Found=%v, want %v", tc.value, det.Found, tc.wantFound)
		}
	}
}

func TestLocator_TwoBlobsLastInTraversalOrderWins(t *testing.T) {
	l := NewLocator(DefaultLocatorConfig())
	defer l.Close()

	mask := newMask(200, 200)
	defer mask.Close()
	big := image.Rect(10, 10, 80, 80)
	small := image.Rect(120, 150, 145, 175)
	fill(&mask, big, 255)
	fill(&mask, small, 255)

	// OpenCV's border following scans rows top to bottom but hands back
	// external contours newest first, so the lower blob comes first and the
	// upper, larger one is last.
	blobs := l.Blobs(mask)
	if len(blobs) != 2 {
		t.Fatalf("Blobs: got %d, want 2", len(blobs))
	}
	if blobs[0].Rect != small {
		t.Errorf("Blobs[0]: got %v, want %v", blobs[0].Rect, small)
	}
	if blobs[1].Rect != big {
		t.Errorf("Blobs[1]: got %v, want %v", blobs[1].Rect, big)
	}

	det := l.Locate(mask)
	if !det.Found {
		t.Fatal("Locate: expected a detection")
	}
	if want := image.Pt(45, 45); det.Point != want {
		t.Errorf("Locate: got %v, want %v (center of the last blob)", det.Point, want)
	}
}

func TestLocator_LastQualifyingBlobWinsOverLarger(t *testing.T) {
	l := NewLocator(DefaultLocatorConfig())
	defer l.Close()

	// Large blob below, small qualifying blob above: traversal puts the
	// upper one last, so it wins despite being smaller.
	mask := newMask(200, 200)
	defer mask.Close()
	fill(&mask, image.Rect(20, 10, 40, 30), 255)
	fill(&mask, image.Rect(60, 100, 160, 190), 255)

	det := l.Locate(mask)
	if want := image.Pt(30, 20); !det.Found || det.Point != want {
		t.Errorf("Locate: got %+v, want %v", det, want)
	}
}

func TestSelectLast(t *testing.T) {
	big := Blob{Rect: image.Rect(0, 0, 100, 100), Area: 9801}
	mid := Blob{Rect: image.Rect(200, 200, 220, 220), Area: 361}
	tiny := Blob{Rect: image.Rect(300, 300, 305, 305), Area: 16}

	tests := []struct {
		name      string
		blobs     []Blob
		wantFound bool
		want      image.Point
	}{
		{"empty", nil, false, image.Point{}},
		{"only noise", []Blob{tiny}, false, image.Point{}},
		{"last qualifying beats larger earlier", []Blob{big, mid}, true, mid.Center()},
		{"trailing noise is skipped", []Blob{mid, big, tiny}, true, big.Center()},
		{"exact floor qualifies", []Blob{{Rect: image.Rect(0, 0, 10, 30), Area: 300}}, true, image.Pt(5, 15)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			det := SelectLast(tc.blobs, 300)
			if det.Found != tc.wantFound {
				t.Fatalf("Found: got %v, want %v", det.Found, tc.wantFound)
			}
			if det.Point != tc.want {
				t.Errorf("Point: got %v, want %v", det.Point, tc.want)
			}
		})
	}
}
