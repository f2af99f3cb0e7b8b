// Package canvas renders YAML job descriptions into pixel buffers.
//
// A job names the image size, an optional background fill, and lists of
// patterns, plots and blends that are applied in that order:
//
//	width: 64
//	height: 32
//	fill: [10, 20, 30]
//	patterns:
//	  - {when: "(x + y) % 8 < 4", color: [0, 0, 255]}
//	plots:
//	  - {x: 1, y: 2, color: [255, 0, 0]}
//	blends:
//	  - {x: 1, y: 2, delta: [10, 10, 10]}
//
// Colours are [r, g, b] triples in 0..255.
package canvas

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/anas-shakeel/go-bmp24/internal/bmp"
)

// Color is an [r, g, b] triple.
type Color []int

func (c Color) validate() error {
	if len(c) != 3 {
		return fmt.Errorf("colour %v must have 3 components", []int(c))
	}
	for _, v := range c {
		if v < 0 || v > 255 {
			return fmt.Errorf("colour %v: component %d out of range 0..255", []int(c), v)
		}
	}
	return nil
}

func (c Color) rgb() (r, g, b uint8) {
	return uint8(c[0]), uint8(c[1]), uint8(c[2])
}

// Plot sets a single pixel.
type Plot struct {
	X     int   `yaml:"x"`
	Y     int   `yaml:"y"`
	Color Color `yaml:"color"`
}

// Blend adds Delta to a single pixel, saturating at 255.
type Blend struct {
	X     int   `yaml:"x"`
	Y     int   `yaml:"y"`
	Delta Color `yaml:"delta"`
}

// Pattern sets every pixel for which the When expression is true.
// The expression sees the parameters x, y, width and height.
type Pattern struct {
	When  string `yaml:"when"`
	Color Color  `yaml:"color"`
}

// Job describes an image to render.
type Job struct {
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	Fill     Color     `yaml:"fill,omitempty"`
	Patterns []Pattern `yaml:"patterns,omitempty"`
	Plots    []Plot    `yaml:"plots,omitempty"`
	Blends   []Blend   `yaml:"blends,omitempty"`
}

// Load parses a job from r and validates it.
func Load(r io.Reader) (*Job, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read job: %w", err)
	}
	var job Job
	if err := yaml.UnmarshalStrict(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// LoadFile reads a job from the named YAML file.
func LoadFile(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	job, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Validate checks dimensions, colours and pattern expressions.
func (j *Job) Validate() error {
	var errs []error
	if j.Width <= 0 || j.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w (got %dx%d)", bmp.ErrInvalidDimensions, j.Width, j.Height))
	}
	if j.Fill != nil {
		if err := j.Fill.validate(); err != nil {
			errs = append(errs, fmt.Errorf("fill: %w", err))
		}
	}
	for i, p := range j.Patterns {
		if err := p.Color.validate(); err != nil {
			errs = append(errs, fmt.Errorf("pattern %d: %w", i, err))
		}
		if _, err := compile(p.When); err != nil {
			errs = append(errs, fmt.Errorf("pattern %d: %w", i, err))
		}
	}
	for i, p := range j.Plots {
		if err := p.Color.validate(); err != nil {
			errs = append(errs, fmt.Errorf("plot %d: %w", i, err))
		}
	}
	for i, b := range j.Blends {
		if err := b.Delta.validate(); err != nil {
			errs = append(errs, fmt.Errorf("blend %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Render draws the job into a new buffer.
func (j *Job) Render() (*bmp.PixelBuffer, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	p, err := bmp.NewPixelBuffer(j.Width, j.Height)
	if err != nil {
		return nil, err
	}

	// Resize leaves the samples unspecified.
	fill := j.Fill
	if fill == nil {
		fill = Color{0, 0, 0}
	}
	p.Fill(fill.rgb())

	for i, pat := range j.Patterns {
		if err := j.applyPattern(p, pat); err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
	}
	for _, pl := range j.Plots {
		r, g, b := pl.Color.rgb()
		p.SetPixel(pl.X, pl.Y, r, g, b)
	}
	for _, bl := range j.Blends {
		dr, dg, db := bl.Delta.rgb()
		p.AddPixelColor(bl.X, bl.Y, dr, dg, db)
	}
	return p, nil
}

func (j *Job) applyPattern(p *bmp.PixelBuffer, pat Pattern) error {
	expr, err := compile(pat.When)
	if err != nil {
		return err
	}
	r, g, b := pat.Color.rgb()
	params := map[string]interface{}{
		"width":  float64(j.Width),
		"height": float64(j.Height),
	}
	for y := 0; y < j.Height; y++ {
		for x := 0; x < j.Width; x++ {
			params["x"] = float64(x)
			params["y"] = float64(y)
			res, err := expr.Evaluate(params)
			if err != nil {
				return fmt.Errorf("evaluating %q at (%d, %d): %w", pat.When, x, y, err)
			}
			if truthy(res) {
				p.SetPixel(x, y, r, g, b)
			}
		}
	}
	return nil
}

func truthy(v interface{}) bool {
	switch v := v.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return false
	}
}
