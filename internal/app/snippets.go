package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/pixide/internal/bitmap"
)

// renderImageLiteral previews an img code block as text: a size line and
// one row of cells per pixel row, '█' for painted pixels.
func renderImageLiteral(code string) (string, error) {
	f, err := bitmap.ParseLiteral(code)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s image, %d painted\n", f.Dimensions(), f.Painted())
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			if f.At(x, y) == bitmap.Transparent {
				sb.WriteRune('·')
			} else {
				sb.WriteRune('█')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
