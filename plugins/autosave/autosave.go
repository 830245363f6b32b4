package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/pixide/internal/config"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/plugin"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const defaultEnabled = false

// AutoSave plugin periodically saves a modified document that has a path.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex // protects the config fields below
	enabled  bool
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: config.DefaultAutosaveInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads [plugins.autosave] and starts the saver loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}

	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if d, ok := parseInterval(intervalVal); ok {
			p.interval = d
		} else {
			logger.Warnf("%s: Invalid 'interval' config (%v), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	isEnabled := p.enabled
	interval := p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)

	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// parseInterval accepts a duration string ("30s") or whole seconds.
func parseInterval(v interface{}) (time.Duration, bool) {
	var d time.Duration
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, false
		}
		d = parsed
	case int64:
		d = time.Duration(val) * time.Second
	case int:
		d = time.Duration(val) * time.Second
	default:
		return 0, false
	}
	return d, d > 0
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-p.stopChan:
			return
		}
	}
}

// saveIfModified saves the document when it is modified and has a path.
func (p *AutoSave) saveIfModified() bool {
	p.mutex.RLock()
	enabled := p.enabled
	p.mutex.RUnlock()
	if !enabled || p.api == nil || !p.api.IsDocumentModified() {
		return false
	}

	filePath := p.api.GetDocumentFilePath()
	if filePath == "" {
		logger.Debugf("%s: Document is modified but has no name, skipping auto-save.", p.Name())
		return false
	}

	if err := p.api.SaveDocument(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
		return false
	}
	logger.Infof("%s: Auto-saved '%s'", p.Name(), filePath)
	return true
}
