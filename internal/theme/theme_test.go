package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestGetStyleFallbacks(t *testing.T) {
	th := &Dark
	if th.GetStyle("keyword.control") != th.Styles["keyword"] {
		t.Fatalf("dotted name did not fall back to its base")
	}
	if th.GetStyle("NoSuchStyle") != th.Styles["Default"] {
		t.Fatalf("unknown name did not fall back to Default")
	}
}

func TestPixelColor(t *testing.T) {
	if Dark.PixelColor(0) != tcell.ColorReset {
		t.Fatalf("transparent index should map to reset")
	}
	if Dark.PixelColor(15) != tcell.NewRGBColor(0, 0, 0) {
		t.Fatalf("index 15 = %v, want black", Dark.PixelColor(15))
	}
	if Dark.PixelColor(99) != tcell.ColorReset {
		t.Fatalf("out-of-range index should map to reset")
	}
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(`
is_dark = true
palette = ["#010203", "red"]

[styles.Default]
fg = "#ffffff"

[styles.StatusBar]
bg = "#000000"
bold = true
`, "mine")
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if th.Name != "mine" || !th.IsDark {
		t.Fatalf("name/dark = %q/%v", th.Name, th.IsDark)
	}
	if th.Palette[1] != tcell.NewHexColor(0x010203) || th.Palette[2] != tcell.ColorRed {
		t.Fatalf("palette overrides not applied: %v %v", th.Palette[1], th.Palette[2])
	}
	if th.Palette[3] != Dark.Palette[3] {
		t.Fatalf("unlisted palette entries should keep defaults")
	}
	fg, bg, attrs := th.GetStyle("StatusBar").Decompose()
	if fg != tcell.NewHexColor(0xffffff) || bg != tcell.NewHexColor(0) || attrs&tcell.AttrBold == 0 {
		t.Fatalf("StatusBar did not inherit Default: fg=%v bg=%v attrs=%v", fg, bg, attrs)
	}
}

func TestParseThemeRejectsBadPalette(t *testing.T) {
	if _, err := ParseTheme(`palette = ["#12"]`, "x"); err == nil {
		t.Fatalf("expected invalid hex error")
	}
}

func TestManagerLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "solar.toml"), []byte("name = \"Solar\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("name = \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir)
	names := m.ListThemes()
	if len(names) != 3 || names[0] != "Dark" || names[1] != "Light" || names[2] != "Solar" {
		t.Fatalf("themes = %v", names)
	}
	if err := m.SetTheme("solar"); err != nil || m.Current().Name != "Solar" {
		t.Fatalf("SetTheme: %v, current %s", err, m.Current().Name)
	}
	if err := m.SetTheme("missing"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
