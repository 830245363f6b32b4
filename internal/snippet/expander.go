// Package snippet extracts fenced code blocks from markdown, highlights
// TypeScript blocks and renders blocks of registered languages through a
// cache.
package snippet

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/bethropolis/pixide/internal/logger"
)

// Renderer turns the source of a code block into display text.
type Renderer interface {
	Render(code string) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(code string) (string, error)

func (f RendererFunc) Render(code string) (string, error) { return f(code) }

// Block is one fenced code block of a markdown document.
type Block struct {
	Language string
	Code     string

	// Rendered holds renderer output, or Code when no renderer applies or
	// rendering failed (Err is set then).
	Rendered string
	Err      error

	// Lines holds highlighted runs for TypeScript blocks.
	Lines [][]Run
}

// Expander processes markdown documents.
type Expander struct {
	md          goldmark.Markdown
	cache       *Cache
	highlighter *Highlighter

	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewExpander creates an expander. highlighter may be nil, in which case
// TypeScript blocks are returned unstyled.
func NewExpander(cache *Cache, highlighter *Highlighter) *Expander {
	if cache == nil {
		cache = NewCache()
	}
	return &Expander{
		md:          goldmark.New(),
		cache:       cache,
		highlighter: highlighter,
		renderers:   make(map[string]Renderer),
	}
}

// Register sets the renderer for a fence language (case-insensitive).
func (e *Expander) Register(lang string, r Renderer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderers[strings.ToLower(lang)] = r
}

func (e *Expander) renderer(lang string) (Renderer, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r, ok := e.renderers[lang]
	return r, ok
}

// CodeBlocks returns the fenced code blocks of source in document order.
func (e *Expander) CodeBlocks(source []byte) []Block {
	doc := e.md.Parser().Parse(text.NewReader(source))

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		blocks = append(blocks, Block{
			Language: strings.ToLower(string(fcb.Language(source))),
			Code:     buf.String(),
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// Expand extracts and processes every code block of source.
func (e *Expander) Expand(ctx context.Context, source []byte) ([]Block, error) {
	blocks := e.CodeBlocks(source)
	for i := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := &blocks[i]
		b.Rendered = b.Code

		switch b.Language {
		case "typescript", "ts":
			if e.highlighter == nil {
				continue
			}
			spans, err := e.highlighter.Highlight(ctx, []byte(b.Code))
			if err != nil {
				b.Err = err
				continue
			}
			b.Lines = Lines(b.Code, spans)
		default:
			r, ok := e.renderer(b.Language)
			if !ok {
				continue
			}
			out, err := e.cache.GetOrRender(b.Language, b.Code, r)
			if err != nil {
				logger.Debugf("Snippet: %s block failed to render: %v", b.Language, err)
				b.Err = err
				continue
			}
			b.Rendered = out
		}
	}
	return blocks, nil
}
