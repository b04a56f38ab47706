// Package fonts resolves the measurable font used for layout and drawing.
//
// A *Face is the font metrics context of one render: it is created by the
// caller, passed explicitly to the layout and raster packages and never shared
// through package state. Faces backed by OpenType data are not safe for
// concurrent use.
package fonts

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/olekukonko/errors"
	"github.com/olekukonko/ll"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	DefaultSize = 12.0
	DefaultDPI  = 72.0
)

// Options selects the size of the face and, for font collections, the member
// to use.
type Options struct {
	Size  float64 // points, DefaultSize if zero
	DPI   float64 // DefaultDPI if zero
	Index int     // member of a .ttc collection
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	return o
}

// ResourceError reports a font asset that is missing or malformed.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("font: %v", e.Err)
	}
	return fmt.Sprintf("font %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Face is a font face with integer pixel metrics.
type Face struct {
	face    font.Face
	metrics font.Metrics
}

// New wraps an already constructed face.
func New(face font.Face) *Face {
	return &Face{face: face, metrics: face.Metrics()}
}

// Measure returns the advance width of s in whole pixels, rounded up.
func (f *Face) Measure(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

// LineHeight returns the recommended distance between two baselines.
func (f *Face) LineHeight() int { return f.metrics.Height.Ceil() }

// Ascent returns the distance from the top of a line to its baseline.
func (f *Face) Ascent() int { return f.metrics.Ascent.Ceil() }

// FontFace returns the underlying face for drawing.
func (f *Face) FontFace() font.Face { return f.face }

// Parse builds a face from TrueType/OpenType data. TrueType collections are
// detected by their "ttcf" tag; opts.Index picks the member.
func Parse(data []byte, opts Options) (*Face, error) {
	opts = opts.withDefaults()

	var (
		f   *opentype.Font
		err error
	)
	if bytes.HasPrefix(data, []byte("ttcf")) {
		var c *opentype.Collection
		c, err = opentype.ParseCollection(data)
		if err != nil {
			return nil, &ResourceError{Err: err}
		}
		if opts.Index < 0 || opts.Index >= c.NumFonts() {
			return nil, &ResourceError{Err: errors.Newf("collection index %d out of range (%d fonts)", opts.Index, c.NumFonts())}
		}
		f, err = c.Font(opts.Index)
	} else {
		f, err = opentype.Parse(data)
	}
	if err != nil {
		return nil, &ResourceError{Err: err}
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     opts.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &ResourceError{Err: err}
	}
	return New(face), nil
}

// LoadFile parses the font file at path.
func LoadFile(path string, opts Options) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return parseNamed(path, data, opts)
}

// LoadFS is LoadFile for embedded or otherwise virtual filesystems.
func LoadFS(fsys fs.FS, path string, opts Options) (*Face, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	data, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}
	return parseNamed(path, data, opts)
}

func parseNamed(path string, data []byte, opts Options) (*Face, error) {
	face, err := Parse(data, opts)
	if err != nil {
		if re, ok := err.(*ResourceError); ok {
			re.Path = path
		}
		return nil, err
	}
	return face, nil
}

// Default returns Go Regular at the requested size, or basicfont's 7x13
// bitmap face should that ever fail to parse.
func Default(opts Options) *Face {
	face, err := Parse(goregular.TTF, opts)
	if err != nil {
		return New(basicfont.Face7x13)
	}
	return face
}

// Resolve loads the font at path and falls back to Default on any failure.
// The failure is logged, never returned. An empty path selects Default
// directly.
func Resolve(path string, opts Options, logger *ll.Logger) *Face {
	if path == "" {
		return Default(opts)
	}
	face, err := LoadFile(path, opts)
	if err == nil {
		return face
	}
	if logger != nil {
		logger.Errorf("loading font: %v", err)
		logger.Warnf("using default font instead of %s", path)
	}
	return Default(opts)
}
