// bmp package implements a 24-bit uncompressed bitmap codec
package bmp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/anas-shakeel/go-bmp24/internal/utils"
)

// BitmapImage is a decoded bitmap file together with its headers.
type BitmapImage struct {
	Filename string
	BFHeader FileHeader
	BIHeader InfoHeader
	Stride   int
	Padding  int
	Pixels   *PixelBuffer
}

// Creates and returns a bitmap image (24 bit uncompressed)
func CreateBitmap(width, height int) (*BitmapImage, error) {
	pixels, err := NewPixelBuffer(width, height)
	if err != nil {
		return nil, err
	}
	return NewBitmap(pixels), nil
}

// NewBitmap wraps an existing buffer, computing its headers.
func NewBitmap(pixels *PixelBuffer) *BitmapImage {
	_, bfh, bih := BuildHeaders(pixels)
	return &BitmapImage{
		BFHeader: bfh,
		BIHeader: bih,
		Stride:   RowBytes(pixels.Width()),
		Padding:  Padding(pixels.Width()),
		Pixels:   pixels,
	}
}

// Reads a Bitmap file
func ReadBitmap(filename string) (*BitmapImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	bfh, bih, pixels, err := Deserialize(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	b := NewBitmap(pixels)
	b.Filename = filename
	b.BFHeader = bfh
	b.BIHeader = bih
	return b, nil
}

// Saves the bitmap image onto local disk
func (b *BitmapImage) Save(filename string) error {
	newBitmap, err := os.Create(filename)
	if err != nil {
		return err
	}

	// Create a buffer (to reduce syscalls)
	w := bufio.NewWriter(newBitmap)
	if err := Serialize(w, b.Pixels); err != nil {
		newBitmap.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		newBitmap.Close()
		return err
	}
	return newBitmap.Close()
}

// Print the bitmap as coloured blocks. Use for small images only
func (b *BitmapImage) PrintBitmap(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for y, h := 0, b.Pixels.Height(); y < h; y++ {
		for x, w := 0, b.Pixels.Width(); x < w; x++ {
			p, err := b.Pixels.PixelAt(x, y)
			if err != nil {
				return err
			}
			bw.WriteString(utils.ColoredBlock("  ", p.R, p.G, p.B))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Print the Metadata of the bitmap (in human-readable format)
func (b *BitmapImage) PrintMetadata(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Filename: \t%v\n", b.Filename); err != nil {
		return err
	}
	if err := b.BFHeader.Dump(w); err != nil {
		return err
	}
	if err := b.BIHeader.Dump(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "PixelCount: \t%v pixels\nStride: \t%v bytes\nPadding: \t%v bytes\n",
		b.Pixels.Width()*b.Pixels.Height(), b.Stride, b.Padding)
	return err
}
