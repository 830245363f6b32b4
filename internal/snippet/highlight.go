package snippet

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/bethropolis/pixide/internal/logger"
)

//go:embed queries/typescript.scm
var typescriptQuery []byte

// Span styles the bytes [Start, End) of a snippet.
type Span struct {
	Start, End int
	Style      string
}

// Run is a piece of one line with a single style ("" for plain text).
type Run struct {
	Text  string
	Style string
}

// Highlighter parses TypeScript snippets with tree-sitter.
type Highlighter struct {
	mu     sync.Mutex // sitter.Parser is not safe for concurrent use
	parser *sitter.Parser
	lang   *sitter.Language
	query  *sitter.Query
}

// NewHighlighter compiles the highlight query.
func NewHighlighter() (*Highlighter, error) {
	lang := typescript.GetLanguage()
	query, err := sitter.NewQuery(typescriptQuery, lang)
	if err != nil {
		return nil, fmt.Errorf("highlight query: %w", err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Highlighter{parser: parser, lang: lang, query: query}, nil
}

// Highlight returns styled spans for code in source order.
func (h *Highlighter) Highlight(ctx context.Context, code []byte) ([]Span, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tree, err := h.parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(h.query, tree.RootNode())

	var spans []Span
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			start, end := int(capture.Node.StartByte()), int(capture.Node.EndByte())
			if end <= start {
				continue
			}
			spans = append(spans, Span{
				Start: start,
				End:   end,
				Style: captureNameToStyleName(h.query.CaptureNameForId(capture.Index)),
			})
		}
	}
	logger.DebugTagf("snippet", "Highlight: %d spans in %d bytes", len(spans), len(code))
	return spans, nil
}

// captureNameToStyleName maps "keyword.control" style capture names to the
// theme's base style name.
func captureNameToStyleName(captureName string) string {
	captureName = strings.TrimPrefix(captureName, "@")
	if dotIndex := strings.Index(captureName, "."); dotIndex != -1 {
		return captureName[:dotIndex]
	}
	return captureName
}

// Lines splits code into lines of styled runs. Later spans override
// earlier ones where they overlap.
func Lines(code string, spans []Span) [][]Run {
	styles := make([]string, len(code))
	for _, s := range spans {
		end := min(s.End, len(code))
		for i := max(s.Start, 0); i < end; i++ {
			styles[i] = s.Style
		}
	}

	var lines [][]Run
	var line []Run
	runStart := 0
	flush := func(end int) {
		if end > runStart {
			line = append(line, Run{Text: code[runStart:end], Style: styles[runStart]})
		}
		runStart = end
	}
	for i := 0; i < len(code); i++ {
		switch {
		case code[i] == '\n':
			flush(i)
			lines = append(lines, line)
			line = nil
			runStart = i + 1
		case styles[i] != styles[runStart]:
			flush(i)
		}
	}
	flush(len(code))
	if line != nil || len(code) == 0 || code[len(code)-1] != '\n' {
		lines = append(lines, line)
	}
	return lines
}
