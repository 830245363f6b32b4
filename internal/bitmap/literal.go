package bitmap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLiteral is returned for malformed image literals.
var ErrInvalidLiteral = errors.New("invalid image literal")

const (
	literalOpen  = "img`"
	literalClose = "`"
	hexDigits    = "0123456789abcdef"
)

// FormatLiteral renders f as an image literal: one row per line, pixels
// separated by spaces, '.' for transparent and a hex digit otherwise.
func FormatLiteral(f *Frame) string {
	var sb strings.Builder
	sb.Grow(len(literalOpen) + f.height*(2*f.width+1) + 2)
	sb.WriteString(literalOpen)
	sb.WriteByte('\n')
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			c := f.pixels[y*f.width+x]
			if c == Transparent {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(hexDigits[c])
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(literalClose)
	return sb.String()
}

// ParseLiteral reads an image literal. The img`...` wrapper is optional and
// whitespace between pixels is ignored.
func ParseLiteral(s string) (*Frame, error) {
	body := strings.TrimSpace(s)
	if strings.HasPrefix(body, literalOpen) {
		body = strings.TrimPrefix(body, literalOpen)
		if !strings.HasSuffix(body, literalClose) {
			return nil, fmt.Errorf("missing closing backtick: %w", ErrInvalidLiteral)
		}
		body = strings.TrimSuffix(body, literalClose)
	}

	var pixels []uint8
	width, height := -1, 0
	for lineNo, line := range strings.Split(body, "\n") {
		row, err := parseLiteralRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		if len(row) == 0 {
			continue
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("line %d has %d pixels, expected %d: %w", lineNo+1, len(row), width, ErrInvalidLiteral)
		}
		pixels = append(pixels, row...)
		height++
	}
	if height == 0 {
		return nil, fmt.Errorf("no pixel rows: %w", ErrInvalidLiteral)
	}
	return FromPixels(width, height, pixels)
}

func parseLiteralRow(line string) ([]uint8, error) {
	var row []uint8
	for _, r := range line {
		switch {
		case r == ' ' || r == '\t' || r == '\r':
			continue
		case r == '.':
			row = append(row, Transparent)
		case r >= '0' && r <= '9':
			row = append(row, uint8(r-'0'))
		case r >= 'a' && r <= 'f':
			row = append(row, uint8(r-'a'+10))
		case r >= 'A' && r <= 'F':
			row = append(row, uint8(r-'A'+10))
		default:
			return nil, fmt.Errorf("unexpected %q: %w", r, ErrInvalidLiteral)
		}
	}
	return row, nil
}
