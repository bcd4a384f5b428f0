package pattern

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/san-kum/lifesim/internal/grid"
)

// Decode reads a grid in format f.
func Decode(r io.Reader, f Format) (*grid.Grid, error) {
	switch {
	case f == FormatASCII:
		return decodeASCII(r)
	case f.IsRaster():
		return decodeRaster(r, f)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// Encode writes g in format f.
func Encode(w io.Writer, g *grid.Grid, f Format) error {
	switch {
	case f == FormatASCII:
		return encodeASCII(w, g)
	case f.IsRaster():
		return encodeRaster(w, g, f)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// Load opens path and decodes it. FormatUnknown falls back to the file
// extension.
func Load(path string, f Format) (*grid.Grid, error) {
	if f == FormatUnknown {
		f = FormatFromPath(path)
	}
	if f == FormatUnknown {
		return nil, fmt.Errorf("%w: cannot infer format of %s", ErrUnsupportedFormat, path)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open pattern: %w", err)
	}
	defer file.Close()

	g, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return g, nil
}

// Save encodes g to path and returns the path written. The canonical suffix
// of f is appended when path does not already carry one of its extensions.
func Save(path string, g *grid.Grid, f Format) (string, error) {
	if f == FormatUnknown {
		f = FormatFromPath(path)
	}
	if f == FormatUnknown {
		return "", fmt.Errorf("%w: cannot infer format of %s", ErrUnsupportedFormat, path)
	}
	if !hasSuffix(path, f) {
		path += f.Suffix()
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create pattern: %w", err)
	}
	if err := Encode(file, g, f); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
