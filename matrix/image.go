package matrix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BeatGlow/reaction/pixel"
)

// ErrImage is returned for malformed image literals.
var ErrImage = errors.New("matrix: malformed image")

// ParseImage parses an image literal: one line per row, comma separated
// brightness values 0-255. Any non-zero value is lit.
//
//	000,255,000
//	255,000,255
func ParseImage(s string) (*pixel.MonoImage, error) {
	var rows [][]uint8
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row []uint8
		for _, field := range strings.Split(line, ",") {
			v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrImage, len(rows), err)
			}
			row = append(row, uint8(v))
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrImage, len(rows), len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrImage)
	}

	i := pixel.NewMonoImage(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, v := range row {
			i.Set(x, y, pixel.Brightness(v))
		}
	}
	return i, nil
}

// MustParseImage is like [ParseImage] but panics on error.
func MustParseImage(s string) *pixel.MonoImage {
	i, err := ParseImage(s)
	if err != nil {
		panic(err)
	}
	return i
}

// Faces shown with the mean reaction time.
var (
	Happy = MustParseImage(`
		000,255,000,255,000
		000,000,000,000,000
		255,000,000,000,255
		000,255,255,255,000
		000,000,000,000,000`)

	Sad = MustParseImage(`
		000,255,000,255,000
		000,000,000,000,000
		000,000,000,000,000
		000,255,255,255,000
		255,000,000,000,255`)
)
