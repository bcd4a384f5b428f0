// Package pattern converts grids to and from their on-disk encodings.
//
// Two families of formats are supported:
//
//   - ASCII patterns: '#' comment lines, '.' for dead cells, any other
//     character for alive cells.
//   - Raster images (PNG, PGM, BMP, TIFF): 8-bit grayscale, pixels brighter
//     than 128 are alive.
//
// # Example
//
//	g, err := pattern.Load("glider.txt", pattern.FormatASCII)
//	path, err := pattern.Save("out", g, pattern.FormatPNG) // writes out.png
//
// Decoding never panics on bad input; failures wrap [ErrFileNotFound],
// [ErrUnsupportedFormat] or [ErrMalformedContent].
package pattern
