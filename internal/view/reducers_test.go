package view

import (
	"testing"

	"github.com/bethropolis/pixide/internal/types"
)

func TestPendingTextsAreIndependentUntilCleared(t *testing.T) {
	s := State{}
	s = SetPendingWidth(s, "2")
	if s.PendingWidthText == nil || *s.PendingWidthText != "2" {
		t.Fatalf("expected pending width 2")
	}
	if s.PendingHeightText != nil {
		t.Fatalf("width edit must leave height untouched")
	}
	s = SetPendingHeight(s, "")
	if !s.HasPending() || *s.PendingHeightText != "" {
		t.Fatalf("expected empty pending height to be kept")
	}
	s = ClearPending(s)
	if s.HasPending() {
		t.Fatalf("expected both pending texts cleared")
	}
}

func TestReducersDoNotAliasPreviousState(t *testing.T) {
	before := SetPendingDimensions(State{}, "10", "20")
	after := SetPendingWidth(before, "11")
	if *before.PendingWidthText != "10" {
		t.Fatalf("reducer changed the previous state")
	}
	if *after.PendingWidthText != "11" || *after.PendingHeightText != "20" {
		t.Fatalf("unexpected pending texts after edit")
	}
}

func TestDisplayText(t *testing.T) {
	dims := types.Dimensions{Width: 16, Height: 8}
	w, h := State{}.DisplayText(dims)
	if w != "16" || h != "8" {
		t.Fatalf("expected committed values, got %q %q", w, h)
	}
	w, h = SetPendingWidth(State{}, "abc").DisplayText(dims)
	if w != "abc" || h != "8" {
		t.Fatalf("expected pending width with committed height, got %q %q", w, h)
	}
}

func TestZoomOnionCursor(t *testing.T) {
	s := State{}
	s = ChangeZoom(s, 1)
	s = ChangeZoom(s, -3)
	if s.ZoomLevel != -2 {
		t.Fatalf("expected unbounded zoom -2, got %d", s.ZoomLevel)
	}
	s = ToggleOnionSkin(s)
	if !s.OnionSkinEnabled {
		t.Fatalf("expected onion skin on")
	}
	s = SetCursor(s, types.Point{X: 3, Y: 4})
	if s.CursorLocation == nil || s.CursorLocation.String() != "3, 4" {
		t.Fatalf("unexpected cursor %v", s.CursorLocation)
	}
	s = Reset(s)
	if s.CursorLocation != nil || s.OnionSkinEnabled || s.ZoomLevel != -2 {
		t.Fatalf("Reset should clear everything except zoom: %+v", s)
	}
}
