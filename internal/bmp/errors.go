package bmp

import "errors"

var (
	ErrBadSignature      = errors.New("not a bitmap: bad signature")
	ErrTruncated         = errors.New("unexpected end of bitmap data")
	ErrInvalidHeader     = errors.New("invalid bitmap header")
	ErrInvalidDimensions = errors.New("width and height must be greater than 0")
	ErrOutOfRange        = errors.New("pixel coordinates out of range")
)

// FormatError reports which step of decoding a bitmap failed.
// Err is one of the sentinel errors above, possibly wrapped with detail.
type FormatError struct {
	Op  string
	Err error
}

func (e *FormatError) Error() string {
	return "bmp: " + e.Op + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
