package pattern_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/pattern"
)

func randomGrid(rows, cols int, seed uint64) *grid.Grid {
	g, err := grid.New(rows, cols)
	Expect(err).NotTo(HaveOccurred())
	rng := rand.New(rand.NewPCG(seed, 0))
	for k := range g.Cells() {
		if rng.IntN(3) == 0 {
			g.Cells()[k] = grid.Alive
		}
	}
	return g
}

var _ = Describe("Format", func() {
	DescribeTable("inferring from path",
		func(path string, want pattern.Format) {
			Expect(pattern.FormatFromPath(path)).To(Equal(want))
		},
		Entry("txt", "glider.txt", pattern.FormatASCII),
		Entry("cells", "gun.cells", pattern.FormatASCII),
		Entry("png", "board.PNG", pattern.FormatPNG),
		Entry("pgm", "images/16x16.pgm", pattern.FormatPGM),
		Entry("bmp", "a.bmp", pattern.FormatBMP),
		Entry("tif", "a.tif", pattern.FormatTIFF),
		Entry("no extension", "board", pattern.FormatUnknown),
		Entry("other", "notes.doc", pattern.FormatUnknown),
	)

	It("parses names and extensions", func() {
		Expect(pattern.ParseFormat("ascii")).To(Equal(pattern.FormatASCII))
		Expect(pattern.ParseFormat("txt")).To(Equal(pattern.FormatASCII))
		Expect(pattern.ParseFormat(".tiff")).To(Equal(pattern.FormatTIFF))
		Expect(pattern.ParseFormat("gif")).To(Equal(pattern.FormatUnknown))
		Expect(pattern.FormatPNG.String()).To(Equal("png"))
		Expect(pattern.FormatPNG.IsRaster()).To(BeTrue())
		Expect(pattern.FormatASCII.IsRaster()).To(BeFalse())
	})
})

var _ = Describe("ASCII patterns", func() {
	It("skips comment lines and pads to the longest row", func() {
		src := "#N Glider\n#C a comment\n.X.\n..X\nXXX....\n"
		g, err := pattern.Decode(strings.NewReader(src), pattern.FormatASCII)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Rows()).To(Equal(3))
		Expect(g.Cols()).To(Equal(7))

		alive := [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
		Expect(g.Population()).To(Equal(len(alive)))
		for _, p := range alive {
			Expect(g.IsAlive(p[0], p[1])).To(BeTrue(), "cell %v", p)
		}
	})

	It("treats any non-dot character as alive", func() {
		g, err := pattern.Decode(strings.NewReader("O*a.\n"), pattern.FormatASCII)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Matrix()).To(Equal([][]uint8{{255, 255, 255, 0}}))
	})

	It("does not count comment lines between rows", func() {
		g, err := pattern.Decode(strings.NewReader("X.\n# mid\n.X"), pattern.FormatASCII)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Rows()).To(Equal(2))
		Expect(g.IsAlive(1, 1)).To(BeTrue())
	})

	It("handles CRLF line endings", func() {
		g, err := pattern.Decode(strings.NewReader("X.\r\n.X\r\n"), pattern.FormatASCII)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Cols()).To(Equal(2))
		Expect(g.Population()).To(Equal(2))
	})

	DescribeTable("rejecting empty patterns",
		func(src string) {
			_, err := pattern.Decode(strings.NewReader(src), pattern.FormatASCII)
			Expect(err).To(MatchError(pattern.ErrMalformedContent))
		},
		Entry("empty file", ""),
		Entry("only comments", "# one\n# two\n"),
		Entry("only blank lines", "\n\n"),
	)

	It("round-trips through encode", func() {
		g := randomGrid(9, 13, 7)
		var buf bytes.Buffer
		Expect(pattern.Encode(&buf, g, pattern.FormatASCII)).To(Succeed())
		Expect(buf.String()).To(HavePrefix("#"))

		back, err := pattern.Decode(&buf, pattern.FormatASCII)
		Expect(err).NotTo(HaveOccurred())
		Expect(back.Equal(g)).To(BeTrue())
	})
})

var _ = Describe("Raster patterns", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "lifesim-pattern")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
	})

	DescribeTable("save then load is lossless",
		func(f pattern.Format) {
			g := randomGrid(17, 23, 42)
			path, err := pattern.Save(filepath.Join(dir, "board"), g, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(HaveSuffix(f.Suffix()))

			back, err := pattern.Load(path, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Rows()).To(Equal(17))
			Expect(back.Cols()).To(Equal(23))
			Expect(back.Equal(g)).To(BeTrue())
		},
		Entry("png", pattern.FormatPNG),
		Entry("pgm", pattern.FormatPGM),
		Entry("bmp", pattern.FormatBMP),
		Entry("tiff", pattern.FormatTIFF),
		Entry("ascii", pattern.FormatASCII),
	)

	It("keeps an existing suffix", func() {
		g := randomGrid(4, 4, 1)
		path, err := pattern.Save(filepath.Join(dir, "keep.png"), g, pattern.FormatPNG)
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Base(path)).To(Equal("keep.png"))
	})

	It("thresholds gray and colour pixels above 128", func() {
		img := image.NewRGBA(image.Rect(0, 0, 3, 2))
		img.Set(0, 0, color.Gray{Y: 128})
		img.Set(1, 0, color.Gray{Y: 129})
		img.Set(2, 0, color.White)
		img.Set(0, 1, color.RGBA{R: 255, A: 255})
		img.Set(1, 1, color.RGBA{R: 255, G: 255, A: 255})
		img.Set(2, 1, color.Black)

		var buf bytes.Buffer
		Expect(png.Encode(&buf, img)).To(Succeed())
		g, err := pattern.Decode(&buf, pattern.FormatPNG)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Rows()).To(Equal(2))
		Expect(g.Cols()).To(Equal(3))
		Expect(g.Matrix()).To(Equal([][]uint8{{0, 255, 255}, {0, 255, 0}}))
	})

	It("reads pgm headers with comments and wide samples", func() {
		var buf bytes.Buffer
		buf.WriteString("P5\n# made by hand\n2 1\n65535\n")
		buf.Write([]byte{0xff, 0xff, 0x10, 0x00})
		g, err := pattern.Decode(&buf, pattern.FormatPGM)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Matrix()).To(Equal([][]uint8{{255, 0}}))
	})

	DescribeTable("rejects oversized pgm headers",
		func(header string) {
			var g *grid.Grid
			var err error
			Expect(func() {
				g, err = pattern.Decode(strings.NewReader(header), pattern.FormatPGM)
			}).NotTo(Panic())
			Expect(g).To(BeNil())
			Expect(err).To(MatchError(pattern.ErrMalformedContent))
		},
		Entry("beyond int32 on each side", "P5\n4294967296 4294967296\n255\n"),
		Entry("product overflows int", "P5\n3037000500 3037000500\n255\n"),
		Entry("large but representable", "P5\n100000 100000\n255\n"),
		Entry("one huge side", "P5\n1 536870913\n255\n"),
	)

	It("rejects truncated images", func() {
		_, err := pattern.Decode(strings.NewReader("P5\n4 4\n255\nab"), pattern.FormatPGM)
		Expect(err).To(MatchError(pattern.ErrMalformedContent))

		_, err = pattern.Decode(strings.NewReader("not a png"), pattern.FormatPNG)
		Expect(err).To(MatchError(pattern.ErrMalformedContent))
	})
})

var _ = Describe("Load failures", func() {
	It("reports missing files", func() {
		_, err := pattern.Load(filepath.Join(os.TempDir(), "lifesim-does-not-exist.txt"), pattern.FormatASCII)
		Expect(err).To(MatchError(pattern.ErrFileNotFound))
	})

	It("reports unknown formats", func() {
		_, err := pattern.Load("board.gif", pattern.FormatUnknown)
		Expect(err).To(MatchError(pattern.ErrUnsupportedFormat))

		_, err = pattern.Decode(strings.NewReader("X"), pattern.Format(99))
		Expect(err).To(MatchError(pattern.ErrUnsupportedFormat))

		g := randomGrid(2, 2, 3)
		Expect(pattern.Encode(&bytes.Buffer{}, g, pattern.FormatUnknown)).To(MatchError(pattern.ErrUnsupportedFormat))
	})
})
