package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/pixide/internal/core"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/plugin"
	"github.com/bethropolis/pixide/internal/types"
)

var ErrUsage = errors.New("usage")

// RegisterAppCommands registers the built-in commands.
func RegisterAppCommands(api plugin.EditorAPI, app AppAPI) {
	RegisterDocumentCommands(api, app)
	RegisterThemeCommands(api, app)
	RegisterSnippetCommands(api, app)
}

func register(api plugin.EditorAPI, name string, fn plugin.CommandFunc) {
	if err := api.RegisterCommand(name, fn); err != nil {
		logger.Warnf("Failed to register ':%s' command: %v", name, err)
	}
}

// RegisterDocumentCommands registers :w, :wq, :q, :q!, :e, :new and :resize.
func RegisterDocumentCommands(api plugin.EditorAPI, app AppAPI) {
	save := func(args []string) error {
		path, err := app.SaveDocumentAs(strings.Join(args, " "))
		if err != nil {
			return err
		}
		app.SetStatusMessage("Saved %s", path)
		return nil
	}
	register(api, "w", save)
	register(api, "wq", func(args []string) error {
		if err := save(args); err != nil {
			return err
		}
		return app.RequestQuit(false)
	})
	register(api, "q", func([]string) error { return app.RequestQuit(false) })
	register(api, "q!", func([]string) error { return app.RequestQuit(true) })

	register(api, "e", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: e FILE", ErrUsage)
		}
		path := strings.Join(args, " ")
		if err := app.OpenDocument(path); err != nil {
			return err
		}
		app.SetStatusMessage("Opened %s", path)
		return nil
	})

	register(api, "new", func(args []string) error {
		size, err := parseSize(args)
		if err != nil {
			return fmt.Errorf("%w: new WIDTH HEIGHT", err)
		}
		if err := app.NewDocument(size); err != nil {
			return err
		}
		app.SetStatusMessage("New %s image", size.Clamp())
		return nil
	})

	register(api, "resize", func(args []string) error {
		size, err := parseSize(args)
		if err != nil {
			return fmt.Errorf("%w: resize WIDTH HEIGHT", err)
		}
		changed, err := app.ResizeDocument(size)
		if err != nil {
			return err
		}
		if changed {
			app.SetStatusMessage("Resized to %s", size.Clamp())
		}
		return nil
	})
}

// parseSize reads WIDTH HEIGHT with the same rules as the bottom-bar inputs.
func parseSize(args []string) (types.Dimensions, error) {
	if len(args) != 2 {
		return types.Dimensions{}, ErrUsage
	}
	w, okW := core.ParseDimensionText(args[0])
	h, okH := core.ParseDimensionText(args[1])
	if !okW || !okH {
		return types.Dimensions{}, ErrUsage
	}
	return types.Dimensions{Width: w, Height: h}, nil
}

// RegisterThemeCommands registers only theme-related commands
func RegisterThemeCommands(api plugin.EditorAPI, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			themeAPI.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			themeList := strings.Join(themeAPI.ListThemes(), ", ")
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, themeList)
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	}

	themeListCmdFunc := func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	register(api, "theme", themeCmdFunc)
	register(api, "themes", themeListCmdFunc)
}

// RegisterSnippetCommands registers :snippets, which expands the code
// blocks of a markdown file and summarises the result.
func RegisterSnippetCommands(api plugin.EditorAPI, app AppAPI) {
	register(api, "snippets", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: snippets FILE", ErrUsage)
		}
		blocks, err := app.ExpandSnippets(strings.Join(args, " "))
		if err != nil {
			return err
		}
		highlighted, failed := 0, 0
		for _, b := range blocks {
			if b.Lines != nil {
				highlighted++
			}
			if b.Err != nil {
				failed++
			}
		}
		app.SetStatusMessage("Snippets: %d blocks, %d highlighted, %d failed", len(blocks), highlighted, failed)
		return nil
	})
}
