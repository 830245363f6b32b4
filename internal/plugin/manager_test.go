package plugin_test

import (
	"errors"
	"testing"

	"github.com/bethropolis/pixide/internal/plugin"
	"github.com/bethropolis/pixide/internal/plugin/plugintest"
)

type recorder struct {
	name    string
	initErr error
	log     *[]string
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Initialize(plugin.EditorAPI) error {
	*r.log = append(*r.log, "init "+r.name)
	return r.initErr
}

func (r *recorder) Shutdown() error {
	*r.log = append(*r.log, "stop "+r.name)
	return nil
}

func TestManagerLifecycleOrder(t *testing.T) {
	var log []string
	m := plugin.NewManager()
	for _, p := range []*recorder{
		{name: "a", log: &log},
		{name: "b", log: &log, initErr: errors.New("boom")},
		{name: "c", log: &log},
	} {
		if err := m.Register(p); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	if err := m.Register(&recorder{name: "a", log: &log}); err == nil {
		t.Fatalf("duplicate registration accepted")
	}
	if err := m.Register(&recorder{log: &log}); err == nil {
		t.Fatalf("unnamed plugin accepted")
	}

	m.InitializePlugins(&plugintest.API{})
	m.ShutdownPlugins()

	want := []string{"init a", "init b", "init c", "stop c", "stop b", "stop a"}
	if len(log) != len(want) {
		t.Fatalf("log = %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if _, ok := m.GetPlugin("b"); !ok {
		t.Fatalf("GetPlugin(b) missing")
	}
}
