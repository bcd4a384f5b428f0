package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
)

const pgmMagic = "P5"

// maxPGMCells bounds the pixel count accepted from a pgm header.
const maxPGMCells = 1 << 28

// decodePGM reads a binary (P5) portable graymap, scaling samples to 8 bits.
func decodePGM(r io.Reader) (*image.Gray, error) {
	br := bufio.NewReader(r)

	magic, err := pgmToken(br)
	if err != nil {
		return nil, err
	}
	if magic != pgmMagic {
		return nil, fmt.Errorf("not a binary pgm (magic %q)", magic)
	}

	var header [3]int
	for k := range header {
		tok, err := pgmToken(br)
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("bad pgm header field %q", tok)
		}
		header[k] = v
	}
	width, height, maxVal := header[0], header[1], header[2]
	if maxVal > 65535 {
		return nil, fmt.Errorf("pgm maxval %d out of range", maxVal)
	}
	if width > maxPGMCells/height {
		return nil, fmt.Errorf("pgm size %dx%d exceeds %d cells", width, height, maxPGMCells)
	}

	sampleSize := 1
	if maxVal > 255 {
		sampleSize = 2
	}
	raw := make([]byte, width*height*sampleSize)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, fmt.Errorf("read pgm pixels: %w", err)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for k := range img.Pix {
		var v int
		if sampleSize == 1 {
			v = int(raw[k])
		} else {
			v = int(raw[2*k])<<8 | int(raw[2*k+1])
		}
		if maxVal != 255 {
			v = v * 255 / maxVal
		}
		if v > 255 {
			v = 255
		}
		img.Pix[k] = uint8(v)
	}
	return img, nil
}

// pgmToken returns the next header token, skipping whitespace and '#'
// comments. It consumes exactly one whitespace byte after the token.
func pgmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(tok) > 0 {
				return string(tok), nil
			}
			return "", fmt.Errorf("read pgm header: %w", err)
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("read pgm comment: %w", err)
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func encodePGM(w io.Writer, img *image.Gray) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", pgmMagic, b.Dx(), b.Dy())
	for i := 0; i < b.Dy(); i++ {
		if _, err := bw.Write(img.Pix[i*img.Stride : i*img.Stride+b.Dx()]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
