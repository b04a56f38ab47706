package fonts

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/olekukonko/ll"
	"github.com/olekukonko/ll/lh"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

func TestBasicFaceMetrics(t *testing.T) {
	f := New(basicfont.Face7x13)
	if got := f.Measure("abc"); got != 21 {
		t.Errorf("Measure = %d, want 21", got)
	}
	if got := f.LineHeight(); got != 13 {
		t.Errorf("LineHeight = %d, want 13", got)
	}
	if got := f.Ascent(); got != 11 {
		t.Errorf("Ascent = %d, want 11", got)
	}
	if f.FontFace() != basicfont.Face7x13 {
		t.Error("FontFace does not return the wrapped face")
	}
}

func TestParseSizes(t *testing.T) {
	small, err := Parse(goregular.TTF, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	large, err := Parse(goregular.TTF, Options{Size: 24})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if small.LineHeight() <= 0 || small.Ascent() <= 0 {
		t.Fatalf("bad metrics: height %d ascent %d", small.LineHeight(), small.Ascent())
	}
	if large.LineHeight() <= small.LineHeight() {
		t.Errorf("24pt line height %d not above 12pt %d", large.LineHeight(), small.LineHeight())
	}
	if large.Measure("Hello") <= small.Measure("Hello") {
		t.Error("24pt text should be wider than 12pt")
	}
	if small.Measure("") != 0 {
		t.Error("empty string should have zero width")
	}
}

func TestParseMalformed(t *testing.T) {
	for name, data := range map[string][]byte{
		"garbage":    []byte("definitely not a font"),
		"empty":      nil,
		"collection": []byte("ttcf\x00\x01\x00\x00"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data, Options{})
			var re *ResourceError
			if !errors.As(err, &re) {
				t.Fatalf("got %v, want *ResourceError", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "go.ttf")
	if err := os.WriteFile(good, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(good, Options{}); err != nil {
		t.Errorf("LoadFile: %v", err)
	}

	missing := filepath.Join(dir, "msyh.ttc")
	_, err := LoadFile(missing, Options{})
	var re *ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("got %v, want *ResourceError", err)
	}
	if re.Path != missing {
		t.Errorf("Path = %q, want %q", re.Path, missing)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause not preserved: %v", err)
	}

	bad := filepath.Join(dir, "bad.ttf")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFile(bad, Options{})
	if !errors.As(err, &re) || re.Path != bad {
		t.Errorf("malformed file: got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"fonts/go.ttf": {Data: goregular.TTF}}
	if _, err := LoadFS(fsys, "fonts/go.ttf", Options{}); err != nil {
		t.Errorf("LoadFS: %v", err)
	}
	_, err := LoadFS(fsys, "fonts/missing.ttf", Options{})
	var re *ResourceError
	if !errors.As(err, &re) {
		t.Errorf("got %v, want *ResourceError", err)
	}
}

func TestResolveFallsBack(t *testing.T) {
	var buf bytes.Buffer
	logger := ll.New("test").Handler(lh.NewTextHandler(&buf))

	want := Default(Options{})
	got := Resolve(filepath.Join(t.TempDir(), "missing.ttc"), Options{}, logger)
	if got == nil {
		t.Fatal("Resolve returned nil")
	}
	if got.LineHeight() != want.LineHeight() || got.Measure("Dept") != want.Measure("Dept") {
		t.Errorf("fallback metrics differ from default face")
	}

	if Resolve("", Options{}, nil) == nil {
		t.Error("Resolve with empty path returned nil")
	}
}
