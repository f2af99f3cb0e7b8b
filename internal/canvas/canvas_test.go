package canvas

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/anas-shakeel/go-bmp24/internal/bmp"
)

func pixel(t *testing.T, p *bmp.PixelBuffer, x, y int) bmp.Pixel {
	t.Helper()
	px, err := p.PixelAt(x, y)
	if err != nil {
		t.Fatal(err)
	}
	return px
}

func TestLoadAndRender(t *testing.T) {
	const doc = `
width: 4
height: 3
fill: [10, 20, 30]
patterns:
  - {when: "x == y", color: [0, 0, 255]}
plots:
  - {x: 3, y: 0, color: [255, 0, 0]}
  - {x: 4, y: 0, color: [1, 1, 1]}
blends:
  - {x: 3, y: 0, delta: [10, 10, 10]}
  - {x: 0, y: 2, delta: [250, 0, 0]}
  - {x: -1, y: 0, delta: [1, 1, 1]}
`
	job, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	p, err := job.Render()
	if err != nil {
		t.Fatal(err)
	}
	if p.Width() != 4 || p.Height() != 3 {
		t.Fatalf("rendered %dx%d, want 4x3", p.Width(), p.Height())
	}

	cases := []struct {
		x, y int
		want bmp.Pixel
	}{
		{0, 0, bmp.Pixel{R: 0, G: 0, B: 255}},
		{1, 1, bmp.Pixel{R: 0, G: 0, B: 255}},
		{2, 2, bmp.Pixel{R: 0, G: 0, B: 255}},
		{1, 0, bmp.Pixel{R: 10, G: 20, B: 30}},
		{3, 0, bmp.Pixel{R: 255, G: 10, B: 10}},
		{0, 2, bmp.Pixel{R: 255, G: 20, B: 30}},
	}
	for _, c := range cases {
		if d := cmp.Diff(c.want, pixel(t, p, c.x, c.y)); d != "" {
			t.Errorf("pixel (%d, %d) mismatch (-want +got):\n%s", c.x, c.y, d)
		}
	}
}

func TestRenderDefaultsToBlack(t *testing.T) {
	job := &Job{Width: 2, Height: 2}
	p, err := job.Render()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(make([]byte, 12), p.Samples()); d != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", d)
	}
}

func TestPatternFunctions(t *testing.T) {
	job := &Job{
		Width:  5,
		Height: 5,
		Patterns: []Pattern{
			{When: "abs(x - 4) + y", Color: Color{1, 2, 3}},
			{When: "dist(x, y, 2, 2) <= 1", Color: Color{255, 255, 255}},
		},
	}
	p, err := job.Render()
	if err != nil {
		t.Fatal(err)
	}

	white := bmp.Pixel{R: 255, G: 255, B: 255}
	for _, xy := range [][2]int{{2, 2}, {1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		if got := pixel(t, p, xy[0], xy[1]); got != white {
			t.Errorf("(%d, %d) = %+v, want white", xy[0], xy[1], got)
		}
	}
	// abs(x - 4) + y is zero only at (4, 0)
	if got := pixel(t, p, 4, 0); got != (bmp.Pixel{}) {
		t.Errorf("(4, 0) = %+v, want black", got)
	}
	if got := pixel(t, p, 3, 0); got != (bmp.Pixel{R: 1, G: 2, B: 3}) {
		t.Errorf("(3, 0) = %+v, want 1,2,3", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"zero width", "width: 0\nheight: 3\n"},
		{"negative height", "width: 2\nheight: -1\n"},
		{"short fill", "width: 1\nheight: 1\nfill: [1, 2]\n"},
		{"bright fill", "width: 1\nheight: 1\nfill: [1, 2, 256]\n"},
		{"negative plot", "width: 1\nheight: 1\nplots:\n  - {x: 0, y: 0, color: [-1, 0, 0]}\n"},
		{"blend", "width: 1\nheight: 1\nblends:\n  - {x: 0, y: 0, delta: [0, 0]}\n"},
		{"empty pattern", "width: 1\nheight: 1\npatterns:\n  - {when: '', color: [0, 0, 0]}\n"},
		{"bad pattern", "width: 1\nheight: 1\npatterns:\n  - {when: '(x + 1', color: [0, 0, 0]}\n"},
		{"unknown field", "width: 1\nheight: 1\ncolour: [0, 0, 0]\n"},
		{"not yaml", "width: [\n"},
	}
	for _, c := range cases {
		if _, err := Load(strings.NewReader(c.doc)); err == nil {
			t.Errorf("%s: Load succeeded", c.name)
		}
	}

	_, err := Load(strings.NewReader("width: 0\nheight: 0\n"))
	if !errors.Is(err, bmp.ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yml")
	if err := os.WriteFile(path, []byte("width: 3\nheight: 2\nfill: [1, 2, 3]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	job, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := &Job{Width: 3, Height: 2, Fill: Color{1, 2, 3}}
	if d := cmp.Diff(want, job); d != "" {
		t.Errorf("job mismatch (-want +got):\n%s", d)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, want os.ErrNotExist", err)
	}
}
