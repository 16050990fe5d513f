package vision

import "errors"

// ErrSizeMismatch is returned when a mask does not match the stored baseline.
var ErrSizeMismatch = errors.New("vision: mask size mismatch")

// ErrInvalidBand is returned by HueBand.Validate for unusable bounds.
var ErrInvalidBand = errors.New("vision: invalid hue band")
