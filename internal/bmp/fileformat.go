// BMP-specific structs and types
package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Signature is the magic number at offset 0: ASCII "BM" read as a little-endian uint16.
	Signature uint16 = 0x4d42

	signatureLen  = 2
	fileHeaderLen = 12
	infoHeaderLen = 40

	// HeaderLen is the number of bytes preceding the pixel array.
	HeaderLen = signatureLen + fileHeaderLen + infoHeaderLen

	bitsPerPixel  = 24
	bytesPerPixel = bitsPerPixel / 8
)

// The BitmapFileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// The two signature bytes are not part of it; they are written and checked
// on their own, before the file header.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Size      uint32 // The size, in bytes, of the bitmap file.
	Reserved1 uint16 // Reserved; must be zero.
	Reserved2 uint16 // Reserved; must be zero.
	OffBits   uint32 // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The BitmapInfoHeader structure contains information about the
// dimensions and color format of DIB [device-independent bitmap].
type InfoHeader struct {
	Size            uint32 // The number of bytes required by the structure.
	Width           int32  // The width of the bitmap, in pixels.
	Height          int32  // The height of the bitmap, in pixels
	Planes          uint16 // The number of planes for the target device.
	BitCount        uint16 // The number of bits-per-pixel.
	Compression     uint32 // The type of compression
	SizeImage       uint32 // The size of the image (in bytes).
	XPixelsPerM     int32  // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32  // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32 // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32 // Number of color indexes required for displaying the bitmap.
}

// appendBinary appends the 12 on-disk bytes of the file header to b.
func (h FileHeader) appendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, h.Size)
	b = binary.LittleEndian.AppendUint16(b, h.Reserved1)
	b = binary.LittleEndian.AppendUint16(b, h.Reserved2)
	b = binary.LittleEndian.AppendUint32(b, h.OffBits)
	return b
}

func (h *FileHeader) decode(b []byte) {
	_ = b[fileHeaderLen-1]
	h.Size = binary.LittleEndian.Uint32(b[0:])
	h.Reserved1 = binary.LittleEndian.Uint16(b[4:])
	h.Reserved2 = binary.LittleEndian.Uint16(b[6:])
	h.OffBits = binary.LittleEndian.Uint32(b[8:])
}

// appendBinary appends the 40 on-disk bytes of the info header to b.
func (h InfoHeader) appendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, h.Size)
	b = binary.LittleEndian.AppendUint32(b, uint32(h.Width))
	b = binary.LittleEndian.AppendUint32(b, uint32(h.Height))
	b = binary.LittleEndian.AppendUint16(b, h.Planes)
	b = binary.LittleEndian.AppendUint16(b, h.BitCount)
	b = binary.LittleEndian.AppendUint32(b, h.Compression)
	b = binary.LittleEndian.AppendUint32(b, h.SizeImage)
	b = binary.LittleEndian.AppendUint32(b, uint32(h.XPixelsPerM))
	b = binary.LittleEndian.AppendUint32(b, uint32(h.YPixelsPerM))
	b = binary.LittleEndian.AppendUint32(b, h.ColorsUsed)
	b = binary.LittleEndian.AppendUint32(b, h.ColorsImportant)
	return b
}

func (h *InfoHeader) decode(b []byte) {
	_ = b[infoHeaderLen-1]
	h.Size = binary.LittleEndian.Uint32(b[0:])
	h.Width = int32(binary.LittleEndian.Uint32(b[4:]))
	h.Height = int32(binary.LittleEndian.Uint32(b[8:]))
	h.Planes = binary.LittleEndian.Uint16(b[12:])
	h.BitCount = binary.LittleEndian.Uint16(b[14:])
	h.Compression = binary.LittleEndian.Uint32(b[16:])
	h.SizeImage = binary.LittleEndian.Uint32(b[20:])
	h.XPixelsPerM = int32(binary.LittleEndian.Uint32(b[24:]))
	h.YPixelsPerM = int32(binary.LittleEndian.Uint32(b[28:]))
	h.ColorsUsed = binary.LittleEndian.Uint32(b[32:])
	h.ColorsImportant = binary.LittleEndian.Uint32(b[36:])
}

// Dump writes the file header fields to w in human-readable form.
func (h FileHeader) Dump(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"Filesize: \t%v bytes\nReserved1: \t%v\nReserved2: \t%v\nPixelOffset: \t%v bytes\n",
		h.Size, h.Reserved1, h.Reserved2, h.OffBits)
	return err
}

// Dump writes the info header fields to w in human-readable form.
func (h InfoHeader) Dump(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"HeaderSize: \t%v bytes\nWidth: \t\t%v px\nHeight: \t%v px\nPlanes: \t%v\n"+
			"BitCount: \t%vbits\nCompression: \t%v\nImageSize: \t%v bytes\n"+
			"XPixelsPerM: \t%v\nYPixelsPerM: \t%v\nColorsUsed: \t%v\nColorsImp: \t%v\n",
		h.Size, h.Width, h.Height, h.Planes,
		h.BitCount, h.Compression, h.SizeImage,
		h.XPixelsPerM, h.YPixelsPerM, h.ColorsUsed, h.ColorsImportant)
	return err
}
