package export

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/san-kum/lifesim/internal/grid"
)

// palette is a 16-step grayscale ramp, enough for heatmap trails.
var palette = func() color.Palette {
	p := make(color.Palette, 16)
	for k := range p {
		v := uint8(k * 17)
		p[k] = color.Gray{Y: v}
	}
	return p
}()

// Animation collects frames for an animated GIF.
type Animation struct {
	scale  int
	delay  int
	frames []*image.Paletted
}

// NewAnimation creates an animation with scale pixels per cell and delay in
// hundredths of a second between frames.
func NewAnimation(scale, delay int) *Animation {
	if scale <= 0 {
		scale = 1
	}
	if delay <= 0 {
		delay = 10
	}
	return &Animation{scale: scale, delay: delay}
}

// OnGeneration adds g as a frame, so an Animation can observe a driver loop.
func (a *Animation) OnGeneration(gen int, g *grid.Grid) { a.Add(g) }

func (a *Animation) Add(g *grid.Grid) {
	img := image.NewPaletted(image.Rect(0, 0, g.Cols()*a.scale, g.Rows()*a.scale), palette)
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			idx := g.At(i, j) / 17
			if idx == 0 {
				continue
			}
			for dy := 0; dy < a.scale; dy++ {
				off := img.PixOffset(j*a.scale, i*a.scale+dy)
				for dx := 0; dx < a.scale; dx++ {
					img.Pix[off+dx] = idx
				}
			}
		}
	}
	a.frames = append(a.frames, img)
}

func (a *Animation) Len() int { return len(a.frames) }

func (a *Animation) Encode(w io.Writer) error {
	if len(a.frames) == 0 {
		return errors.New("export: animation has no frames")
	}
	delays := make([]int, len(a.frames))
	for k := range delays {
		delays[k] = a.delay
	}
	return gif.EncodeAll(w, &gif.GIF{Image: a.frames, Delay: delays})
}
