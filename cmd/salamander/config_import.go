package main

import (
	"fmt"
	"os"

	"github.com/altap-salamander/core/pkg/config"
	"github.com/altap-salamander/core/pkg/encoding"
)

// configOverlay is the subset of Config's typed surface that -C <file> can
// import. Open Salamander's own -C loads a previously exported
// configuration file and applies it in place of whatever the registry
// currently holds; our store has no separate import format, so the
// overlay file uses the same TOML shape pkg/config already uses for its
// opaque plugin blobs (see Config.SavePluginBlob), just with field names
// for the values this loader knows how to apply. Fields left absent in
// the file are left untouched in the registry.
type configOverlay struct {
	LeftPanelPath  *string `toml:"left_panel_path,omitempty"`
	RightPanelPath *string `toml:"right_panel_path,omitempty"`
	SingleInstance *bool   `toml:"single_instance,omitempty"`
}

// loadConfigOverlay reads and decodes the TOML file named by path.
func loadConfigOverlay(path string) (configOverlay, error) {
	var overlay configOverlay
	data, err := os.ReadFile(path)
	if err != nil {
		return overlay, fmt.Errorf("unable to read configuration file: %w", err)
	}
	if err := encoding.UnmarshalTOML(data, &overlay); err != nil {
		return overlay, fmt.Errorf("unable to parse configuration file: %w", err)
	}
	return overlay, nil
}

// applyConfigOverlay writes every field overlay sets into cfg, imported
// into the persistent store exactly as if the user had set them through
// normal use. This is a deliberate scope limit: only the values
// RestorePanelPath/SingleInstance consult are importable here, not the
// plugin blobs or icon-overlay list, which -C's original format has no
// analog for in this core engine.
func applyConfigOverlay(cfg *config.Config, overlay configOverlay) error {
	if overlay.LeftPanelPath != nil {
		if err := cfg.SetPanelPath(config.Left, *overlay.LeftPanelPath); err != nil {
			return err
		}
	}
	if overlay.RightPanelPath != nil {
		if err := cfg.SetPanelPath(config.Right, *overlay.RightPanelPath); err != nil {
			return err
		}
	}
	if overlay.SingleInstance != nil {
		if err := cfg.SetSingleInstance(*overlay.SingleInstance); err != nil {
			return err
		}
	}
	return nil
}
