package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_AllBindingsDefined(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"NextField", km.NextField},
		{"PrevField", km.PrevField},
		{"Run", km.Run},
		{"Compare", km.Compare},
		{"NextEngine", km.NextEngine},
		{"PrevEngine", km.PrevEngine},
		{"Cancel", km.Cancel},
		{"Clear", km.Clear},
		{"Help", km.Help},
		{"Quit", km.Quit},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			if !b.binding.Enabled() {
				t.Errorf("expected %s binding to be enabled", b.name)
			}
			if len(b.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have at least one key", b.name)
			}
			if b.binding.Help().Desc == "" {
				t.Errorf("expected %s binding to have a help text", b.name)
			}
		})
	}
}

// Bindings must leave digits free for the operand fields.
func TestDefaultKeyMap_NoDigitKeys(t *testing.T) {
	km := DefaultKeyMap()
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				if len(k) == 1 {
					t.Errorf("binding %q uses the printable key %q", b.Help().Desc, k)
				}
			}
		}
	}
}

func TestDefaultKeyMap_QuitKeys(t *testing.T) {
	if !slices.Contains(DefaultKeyMap().Quit.Keys(), "ctrl+c") {
		t.Error("expected Quit binding to include 'ctrl+c'")
	}
}

func TestKeyMap_ShortHelpSubsetOfFullHelp(t *testing.T) {
	km := DefaultKeyMap()
	var all []string
	for _, group := range km.FullHelp() {
		for _, b := range group {
			all = append(all, b.Help().Key)
		}
	}
	for _, b := range km.ShortHelp() {
		if !slices.Contains(all, b.Help().Key) {
			t.Errorf("short help key %q missing from full help", b.Help().Key)
		}
	}
}
