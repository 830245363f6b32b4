package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/pixide/internal/bitmap"
)

// ErrInvalidDocument is returned by Decode for malformed files.
var ErrInvalidDocument = errors.New("invalid document file")

const fileHeader = "# pixide document v1"

// Encode writes s as a header followed by one image literal per frame.
func Encode(s *Snapshot) []byte {
	var buf bytes.Buffer
	buf.WriteString(fileHeader + "\n")
	fmt.Fprintf(&buf, "locked: %t\n", s.aspectRatioLocked)
	fmt.Fprintf(&buf, "current: %d\n", s.currentFrame)
	fmt.Fprintf(&buf, "frames: %d\n", len(s.frames))
	for _, f := range s.frames {
		buf.WriteString(bitmap.FormatLiteral(f))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Decode parses data produced by Encode.
func Decode(data []byte) (*Snapshot, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != fileHeader {
		return nil, fmt.Errorf("missing header: %w", ErrInvalidDocument)
	}

	var (
		locked   bool
		current  int
		declared = -1
		frames   []*bitmap.Frame
		literal  []string
		inFrame  bool
	)
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case inFrame:
			literal = append(literal, line)
			if line == "`" {
				f, err := bitmap.ParseLiteral(strings.Join(literal, "\n"))
				if err != nil {
					return nil, fmt.Errorf("frame %d ending on line %d: %w", len(frames), lineNo, err)
				}
				frames = append(frames, f)
				literal, inFrame = nil, false
			}
		case line == "":
			continue
		case strings.HasPrefix(line, "img`"):
			literal, inFrame = []string{line}, true
		default:
			key, value, ok := strings.Cut(line, ":")
			if !ok || len(frames) > 0 {
				return nil, fmt.Errorf("line %d: unexpected %q: %w", lineNo, line, ErrInvalidDocument)
			}
			var err error
			switch strings.TrimSpace(key) {
			case "locked":
				locked, err = strconv.ParseBool(strings.TrimSpace(value))
			case "current":
				current, err = strconv.Atoi(strings.TrimSpace(value))
			case "frames":
				declared, err = strconv.Atoi(strings.TrimSpace(value))
			default:
				err = fmt.Errorf("unknown key %q", key)
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %v: %w", lineNo, err, ErrInvalidDocument)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if inFrame {
		return nil, fmt.Errorf("unterminated frame literal: %w", ErrInvalidDocument)
	}
	if declared >= 0 && declared != len(frames) {
		return nil, fmt.Errorf("header declares %d frames, found %d: %w", declared, len(frames), ErrInvalidDocument)
	}
	return New(frames, current, locked)
}
