package snippet

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bethropolis/pixide/internal/event"
)

const doc = "# Sprites\n\nSome text.\n\n```typescript\nconst hero = img`\n. 1\n`\n```\n\n```img\n. 2\n2 .\n```\n\n```bad\nboom\n```\n\n```\nplain\n```\n"

func TestCodeBlocks(t *testing.T) {
	blocks := NewExpander(nil, nil).CodeBlocks([]byte(doc))
	if len(blocks) != 4 {
		t.Fatalf("found %d blocks, want 4", len(blocks))
	}
	if blocks[0].Language != "typescript" || !strings.HasPrefix(blocks[0].Code, "const hero") {
		t.Fatalf("first block = %+v", blocks[0])
	}
	if blocks[1].Language != "img" || blocks[1].Code != ". 2\n2 .\n" {
		t.Fatalf("second block = %+v", blocks[1])
	}
	if blocks[3].Language != "" || blocks[3].Code != "plain\n" {
		t.Fatalf("last block = %+v", blocks[3])
	}
}

func TestExpandRendersThroughCache(t *testing.T) {
	cache := NewCache()
	e := NewExpander(cache, nil)
	calls := 0
	e.Register("IMG", RendererFunc(func(code string) (string, error) {
		calls++
		return "[" + code + "]", nil
	}))
	e.Register("bad", RendererFunc(func(string) (string, error) {
		return "", errors.New("cannot render")
	}))

	for i := 0; i < 2; i++ {
		blocks, err := e.Expand(context.Background(), []byte(doc))
		if err != nil {
			t.Fatalf("Expand: %v", err)
		}
		if blocks[1].Rendered != "[. 2\n2 .\n]" {
			t.Fatalf("rendered = %q", blocks[1].Rendered)
		}
		if blocks[2].Err == nil || blocks[2].Rendered != "boom\n" {
			t.Fatalf("failed render should fall back to raw code: %+v", blocks[2])
		}
	}
	if calls != 1 {
		t.Fatalf("renderer called %d times, want 1", calls)
	}
	if cache.Len() != 1 {
		t.Fatalf("cache holds %d entries, want 1", cache.Len())
	}
}

func TestCacheClearedOnDocumentReset(t *testing.T) {
	cache := NewCache()
	cache.Put("img", "x", "y")
	mgr := event.NewManager()
	cache.Attach(mgr)

	mgr.Dispatch(event.TypeDocumentCommitted, event.DocumentCommittedData{})
	if cache.Len() != 1 {
		t.Fatalf("commit cleared the cache")
	}
	mgr.Dispatch(event.TypeDocumentReset, event.DocumentResetData{})
	if cache.Len() != 0 {
		t.Fatalf("reset did not clear the cache")
	}
}

func TestExpandHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewExpander(nil, nil).Expand(ctx, []byte(doc)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHighlightTypeScript(t *testing.T) {
	h, err := NewHighlighter()
	if err != nil {
		t.Fatalf("NewHighlighter: %v", err)
	}
	code := "const n: number = 42; // answer\n"
	spans, err := h.Highlight(context.Background(), []byte(code))
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	found := map[string]string{}
	for _, s := range spans {
		found[code[s.Start:s.End]] = s.Style
	}
	for text, style := range map[string]string{
		"const":     "keyword",
		"number":    "type",
		"42":        "number",
		"// answer": "comment",
	} {
		if found[text] != style {
			t.Fatalf("%q styled %q, want %q (spans %v)", text, found[text], style, spans)
		}
	}
}

func TestLines(t *testing.T) {
	code := "let a\nb"
	lines := Lines(code, []Span{{Start: 0, End: 3, Style: "keyword"}})
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if lines[0][0] != (Run{Text: "let", Style: "keyword"}) || lines[0][1] != (Run{Text: " a"}) {
		t.Fatalf("first line = %v", lines[0])
	}
	if lines[1][0] != (Run{Text: "b"}) {
		t.Fatalf("second line = %v", lines[1])
	}
}
