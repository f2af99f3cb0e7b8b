// Go-BMP24 reads, writes and renders 24-bit uncompressed bitmaps.
//
// Usage:
//
//	bmp24 render -job job.yml -o out.bmp [-preview]
//	bmp24 info file.bmp
//	bmp24 preview [-force] file.bmp
//	bmp24 convert in.png out.bmp
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/term"

	"github.com/anas-shakeel/go-bmp24/internal/bmp"
	"github.com/anas-shakeel/go-bmp24/internal/canvas"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  %[1]s render -job job.yml -o out.bmp [-preview]
  %[1]s info file.bmp
  %[1]s preview [-force] file.bmp
  %[1]s convert in.(png|gif|jpeg|bmp) out.bmp
`, os.Args[0])
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("bmp24: ")

	if len(os.Args) < 2 {
		usage()
	}
	args := os.Args[2:]

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(args)
	case "info":
		err = runInfo(args)
	case "preview":
		err = runPreview(args)
	case "convert":
		err = runConvert(args)
	default:
		usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	jobFile := fs.String("job", "job.yml", "YAML job description")
	output := fs.String("o", "out.bmp", "output bitmap")
	preview := fs.Bool("preview", false, "print the result to the terminal")
	fs.Parse(args)

	job, err := canvas.LoadFile(*jobFile)
	if err != nil {
		return err
	}
	pixels, err := job.Render()
	if err != nil {
		return err
	}

	bitmap := bmp.NewBitmap(pixels)
	bitmap.Filename = *output
	if err := bitmap.Save(*output); err != nil {
		return err
	}
	log.Printf("wrote %s (%dx%d, %d bytes)", *output, pixels.Width(), pixels.Height(), bitmap.BFHeader.Size)

	if *preview {
		return printPreview(bitmap, false)
	}
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		usage()
	}

	bitmap, err := bmp.ReadBitmap(fs.Arg(0))
	if err != nil {
		return err
	}
	return bitmap.PrintMetadata(os.Stdout)
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	force := fs.Bool("force", false, "print escape codes even if stdout is not a terminal")
	fs.Parse(args)
	if fs.NArg() != 1 {
		usage()
	}

	bitmap, err := bmp.ReadBitmap(fs.Arg(0))
	if err != nil {
		return err
	}
	return printPreview(bitmap, *force)
}

func printPreview(bitmap *bmp.BitmapImage, force bool) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		if !force {
			return fmt.Errorf("stdout is not a terminal (use -force)")
		}
		return bitmap.PrintBitmap(os.Stdout)
	}
	// Two columns per pixel.
	if cols, _, err := term.GetSize(fd); err == nil && bitmap.Pixels.Width()*2 > cols {
		log.Printf("warning: image is %d px wide, terminal has %d columns", bitmap.Pixels.Width(), cols)
	}
	return bitmap.PrintBitmap(os.Stdout)
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		usage()
	}
	in, out := fs.Arg(0), fs.Arg(1)

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	pixels, err := bmp.FromImage(img)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	bitmap := bmp.NewBitmap(pixels)
	bitmap.Filename = out
	if err := bitmap.Save(out); err != nil {
		return err
	}
	log.Printf("converted %s (%s) to %s", in, format, out)
	return nil
}
