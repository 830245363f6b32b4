package document

import (
	"errors"
	"testing"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/pmezard/go-difflib/difflib"
)

func assertText(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	t.Fatalf("text mismatch:\n%s", diff)
}

func TestEncode(t *testing.T) {
	a, _ := bitmap.FromPixels(2, 1, []uint8{0, 1})
	b, _ := bitmap.FromPixels(2, 1, []uint8{12, 0})
	s, err := New([]*bitmap.Frame{a, b}, 1, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := "# pixide document v1\n" +
		"locked: true\n" +
		"current: 1\n" +
		"frames: 2\n" +
		"img`\n. 1\n`\n" +
		"img`\nc .\n`\n"
	assertText(t, string(Encode(s)), want)
}

func TestDecodeRoundTrip(t *testing.T) {
	a, _ := bitmap.FromPixels(3, 2, []uint8{1, 2, 3, 4, 5, 6})
	b, _ := bitmap.FromPixels(3, 2, []uint8{0, 0, 0, 7, 8, 9})
	s, _ := New([]*bitmap.Frame{a, b}, 0, false)

	back, err := Decode(Encode(s))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.FrameCount() != 2 || back.CurrentFrameIndex() != 0 || back.AspectRatioLocked() {
		t.Fatalf("header fields not restored")
	}
	for i := 0; i < 2; i++ {
		if !back.Frame(i).Equal(s.Frame(i)) {
			t.Fatalf("frame %d differs after round trip", i)
		}
	}
	assertText(t, string(Encode(back)), string(Encode(s)))
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"no header":      "locked: true\n",
		"frame count":    "# pixide document v1\nframes: 2\nimg`\n.\n`\n",
		"unknown key":    "# pixide document v1\ncolour: red\n",
		"unterminated":   "# pixide document v1\nimg`\n. .\n",
		"header in body": "# pixide document v1\nimg`\n.\n`\nlocked: true\n",
	}
	for name, in := range cases {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("%s: expected ErrInvalidDocument, got %v", name, err)
		}
	}
}
