package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/san-kum/lifesim/internal/grid"
)

const (
	commentPrefix = '#'
	deadChar      = '.'
	aliveChar     = 'O'
)

// decodeASCII reads a '#'-commented text pattern. Rows are the non-comment
// lines, the width is the longest of them and shorter rows are padded dead.
func decodeASCII(r io.Reader) (*grid.Grid, error) {
	br := bufio.NewReader(r)
	var body [][]rune
	cols := 0

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read pattern: %w", err)
		}
		if line == "" && err != nil {
			break
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if first, _ := utf8.DecodeRuneInString(line); first == commentPrefix {
			if err != nil {
				break
			}
			continue
		}
		runes := []rune(line)
		if len(runes) > cols {
			cols = len(runes)
		}
		body = append(body, runes)
		if err != nil {
			break
		}
	}

	if len(body) == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: pattern has %d rows and %d columns", ErrMalformedContent, len(body), cols)
	}

	g, err := grid.New(len(body), cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}
	cells := g.Cells()
	for i, row := range body {
		for k, c := range row {
			if c != deadChar {
				cells[i*cols+k] = grid.Alive
			}
		}
	}
	return g, nil
}

func encodeASCII(w io.Writer, g *grid.Grid) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%c lifesim pattern %dx%d\n", commentPrefix, g.Rows(), g.Cols())

	line := make([]byte, g.Cols()+1)
	line[g.Cols()] = '\n'
	cells := g.Cells()
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			if cells[i*g.Cols()+j] == grid.Alive {
				line[j] = aliveChar
			} else {
				line[j] = deadChar
			}
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
