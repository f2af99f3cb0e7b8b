package bmp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// RowBytes returns the length of one serialized pixel row, padded to a
// multiple of 4 bytes.
func RowBytes(width int) int {
	return ((width*bytesPerPixel + 3) / 4) * 4
}

// Padding returns the number of filler bytes at the end of each serialized row.
func Padding(width int) int {
	return RowBytes(width) - width*bytesPerPixel
}

// ImageDataSize returns the size of the serialized pixel array.
func ImageDataSize(width, height int) int {
	return RowBytes(width) * height
}

// BuildHeaders computes the signature and both headers for p.
func BuildHeaders(p *PixelBuffer) (uint16, FileHeader, InfoHeader) {
	sizeImage := uint32(ImageDataSize(p.width, p.height))
	fh := FileHeader{
		Size:    HeaderLen + sizeImage,
		OffBits: HeaderLen,
	}
	ih := InfoHeader{
		Size:      infoHeaderLen,
		Width:     int32(p.width),
		Height:    int32(p.height),
		Planes:    1,
		BitCount:  bitsPerPixel,
		SizeImage: sizeImage,
	}
	return Signature, fh, ih
}

// Serialize writes p to w as a 24-bit bitmap.
// Rows are stored bottom-up (last row first), each padded to 4 bytes.
func Serialize(w io.Writer, p *PixelBuffer) error {
	if p.width <= 0 || p.height <= 0 {
		return &FormatError{Op: "serialize", Err: ErrInvalidDimensions}
	}

	sig, fh, ih := BuildHeaders(p)
	hdr := make([]byte, 0, HeaderLen)
	hdr = binary.LittleEndian.AppendUint16(hdr, sig)
	hdr = fh.appendBinary(hdr)
	hdr = ih.appendBinary(hdr)
	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("bmp: writing headers: %w", err)
	}

	// The padding tail of row stays zero.
	row := make([]byte, RowBytes(p.width))
	n := p.width * bytesPerPixel
	for y := p.height - 1; y >= 0; y-- {
		copy(row, p.samples[y*n:(y+1)*n])
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("bmp: writing row %d: %w", y, err)
		}
	}
	return nil
}

// Deserialize reads a 24-bit bitmap from r.
//
// On error no headers and no buffer are returned. At most
// HeaderLen+SizeImage bytes are consumed from r.
func Deserialize(r io.Reader) (FileHeader, InfoHeader, *PixelBuffer, error) {
	var fh FileHeader
	var ih InfoHeader
	var b [HeaderLen]byte

	if _, err := io.ReadFull(r, b[:signatureLen]); err != nil {
		return FileHeader{}, InfoHeader{}, nil, readError("signature", err)
	}
	if binary.LittleEndian.Uint16(b[:signatureLen]) != Signature {
		return FileHeader{}, InfoHeader{}, nil, &FormatError{Op: "signature", Err: ErrBadSignature}
	}

	if _, err := io.ReadFull(r, b[signatureLen:]); err != nil {
		return FileHeader{}, InfoHeader{}, nil, readError("headers", err)
	}
	fh.decode(b[signatureLen : signatureLen+fileHeaderLen])
	ih.decode(b[signatureLen+fileHeaderLen:])

	if err := Validate(fh, ih); err != nil {
		return FileHeader{}, InfoHeader{}, nil, &FormatError{Op: "validate", Err: err}
	}

	// Read through a limit so that the allocation follows the data
	// actually present rather than the size claimed by the header.
	data, err := io.ReadAll(io.LimitReader(r, int64(ih.SizeImage)))
	if err != nil {
		return FileHeader{}, InfoHeader{}, nil, readError("pixel data", err)
	}
	if len(data) < int(ih.SizeImage) {
		return FileHeader{}, InfoHeader{}, nil, &FormatError{
			Op:  "pixel data",
			Err: fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, len(data), ih.SizeImage),
		}
	}

	width, height := int(ih.Width), int(ih.Height)
	p := &PixelBuffer{}
	p.Resize(width, height)
	stride := RowBytes(width)
	n := width * bytesPerPixel
	for y := 0; y < height; y++ {
		src := data[(height-1-y)*stride:]
		copy(p.samples[y*n:(y+1)*n], src[:n])
	}
	return fh, ih, p, nil
}

func readError(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &FormatError{Op: op, Err: ErrTruncated}
	}
	return fmt.Errorf("bmp: reading %s: %w", op, err)
}

// Validate checks that the headers describe a 24-bit uncompressed bitmap
// whose sizes agree with each other. The returned error wraps
// ErrInvalidHeader and names the first check that failed.
func Validate(fh FileHeader, ih InfoHeader) error {
	if ih.Size != infoHeaderLen {
		return fmt.Errorf("%w: info header size %d, want %d", ErrInvalidHeader, ih.Size, infoHeaderLen)
	}
	if ih.Compression != 0 {
		return fmt.Errorf("%w: compression %d not supported", ErrInvalidHeader, ih.Compression)
	}
	if ih.BitCount != bitsPerPixel {
		return fmt.Errorf("%w: %d bits per pixel not supported", ErrInvalidHeader, ih.BitCount)
	}
	if ih.Width <= 0 || ih.Height <= 0 {
		return fmt.Errorf("%w: non-positive dimensions %dx%d", ErrInvalidHeader, ih.Width, ih.Height)
	}
	if int64(ih.SizeImage) != int64(fh.Size)-int64(fh.OffBits) {
		return fmt.Errorf("%w: image size %d does not match file size %d minus offset %d",
			ErrInvalidHeader, ih.SizeImage, fh.Size, fh.OffBits)
	}
	// int64 so that widths near the int32 limit cannot overflow.
	rowBytes := (int64(ih.Width)*bytesPerPixel + 3) / 4 * 4
	if want := rowBytes * int64(ih.Height); int64(ih.SizeImage) != want {
		return fmt.Errorf("%w: image size %d, want %d for %dx%d",
			ErrInvalidHeader, ih.SizeImage, want, ih.Width, ih.Height)
	}
	return nil
}

// IsValid reports whether Validate accepts the headers.
func IsValid(fh FileHeader, ih InfoHeader) bool {
	return Validate(fh, ih) == nil
}
