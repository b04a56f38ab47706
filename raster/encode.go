package raster

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is a lossless bitmap encoding.
type Format int

const (
	PNG Format = iota
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return "png"
	}
}

// FormatFromPath picks the format from the file extension, PNG if unknown.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	default:
		return PNG
	}
}

// Encode writes img to w.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return errors.Newf("encode %s", f).Wrap(err)
	}
	return nil
}

// WriteFile encodes img into the file at path, replacing it. On failure the
// file may be left partially written.
func WriteFile(path string, img image.Image, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Newf("create %s", path).Wrap(err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Newf("close %s", path).Wrap(cerr)
		}
	}()
	return Encode(file, img, f)
}
