// plugins/framestats/framestats.go
package framestats

import (
	"fmt"

	"github.com/bethropolis/pixide/internal/plugin"
)

// Ensure FrameStats implements plugin.Plugin
var _ plugin.Plugin = (*FrameStats)(nil)

// FrameStats reports frame, size, paint and history figures via :stats.
type FrameStats struct {
	api plugin.EditorAPI
}

// New creates a new instance of the FrameStats plugin.
func New() *FrameStats {
	return &FrameStats{}
}

// Name returns the unique name of the plugin.
func (p *FrameStats) Name() string {
	return "framestats"
}

// Initialize registers the :stats command.
func (p *FrameStats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *FrameStats) Shutdown() error {
	return nil
}

// Summary formats the statistics line for the current document.
func (p *FrameStats) Summary() (string, error) {
	if p.api == nil {
		return "", fmt.Errorf("framestats plugin not initialized with API")
	}
	doc := p.api.GetDocument()
	if doc == nil {
		return "", fmt.Errorf("no document")
	}

	painted := 0
	for _, f := range doc.Frames() {
		painted += f.Painted()
	}
	current := doc.CurrentFrame().Painted()
	past, future := p.api.HistoryDepth()

	return fmt.Sprintf("Frames: %d, Size: %s, Painted: %d (frame %d: %d), History: %d/%d",
		doc.FrameCount(), doc.Dimensions(), painted,
		doc.CurrentFrameIndex()+1, current, past, future), nil
}

func (p *FrameStats) executeStats(args []string) error {
	msg, err := p.Summary()
	if err != nil {
		return err
	}
	p.api.SetStatusMessage("%s", msg)
	return nil
}
