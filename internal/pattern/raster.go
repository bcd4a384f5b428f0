package pattern

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/san-kum/lifesim/internal/grid"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func decodeRaster(r io.Reader, f Format) (*grid.Grid, error) {
	var (
		img image.Image
		err error
	)
	switch f {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatPGM:
		img, err = decodePGM(r)
	default:
		return nil, fmt.Errorf("%w: %s is not a raster format", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformedContent, f, err)
	}
	return threshold(img)
}

// threshold converts an image to a grid, keeping pixels whose luma exceeds
// grid.Threshold.
func threshold(img image.Image) (*grid.Grid, error) {
	b := img.Bounds()
	g, err := grid.New(b.Dy(), b.Dx())
	if err != nil {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrMalformedContent, b.Dx(), b.Dy())
	}
	cells := g.Cells()

	if gray, ok := img.(*image.Gray); ok {
		for i := 0; i < b.Dy(); i++ {
			row := gray.Pix[i*gray.Stride : i*gray.Stride+b.Dx()]
			for j, v := range row {
				if v > grid.Threshold {
					cells[i*b.Dx()+j] = grid.Alive
				}
			}
		}
		return g, nil
	}

	for i := 0; i < b.Dy(); i++ {
		for j := 0; j < b.Dx(); j++ {
			y := color.GrayModel.Convert(img.At(b.Min.X+j, b.Min.Y+i)).(color.Gray).Y
			if y > grid.Threshold {
				cells[i*b.Dx()+j] = grid.Alive
			}
		}
	}
	return g, nil
}

// toImage wraps the grid cells as a grayscale image without conversion.
func toImage(g *grid.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Cols(), g.Rows()))
	copy(img.Pix, g.Cells())
	return img
}

func encodeRaster(w io.Writer, g *grid.Grid, f Format) error {
	img := toImage(g)
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatPGM:
		return encodePGM(w, img)
	}
	return fmt.Errorf("%w: %s is not a raster format", ErrUnsupportedFormat, f)
}
