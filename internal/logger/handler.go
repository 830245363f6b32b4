package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag"

// filteringHandler drops records by originating package, file or tag before
// handing them to the wrapped handler.
type filteringHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil || h.allow(r) {
		return h.base.Handle(ctx, r)
	}
	return nil
}

func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
}

func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.cfg)
}

// allow reports whether r passes the package, file and tag filters.
func (h *filteringHandler) allow(r slog.Record) bool {
	pkg, file := recordSource(r)

	if pkg != "" && !passes(strings.ToLower(pkg), h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet) {
		trace("package %q filtered: %s", pkg, r.Message)
		return false
	}
	if file != "" && !passes(strings.ToLower(file), h.cfg.enabledFilesSet, h.cfg.disabledFilesSet) {
		trace("file %q filtered: %s", file, r.Message)
		return false
	}

	tag, tagged := recordTag(r)
	if !tagged {
		// An allow-list of tags excludes untagged records.
		if h.cfg.enabledTagsSet != nil {
			trace("untagged record filtered: %s", r.Message)
			return false
		}
		return true
	}
	if !passes(tag, h.cfg.enabledTagsSet, h.cfg.disabledTagsSet) {
		trace("tag %q filtered: %s", tag, r.Message)
		return false
	}
	return true
}

func passes(key string, enabled, disabled map[string]struct{}) bool {
	if _, found := disabled[key]; found {
		return false
	}
	if enabled != nil {
		_, found := enabled[key]
		return found
	}
	return true
}

func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
	if frame.File == "" {
		return "", ""
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File)
}

func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}

func trace(format string, args ...interface{}) {
	if debugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] "+format+"\n", args...)
	}
}
