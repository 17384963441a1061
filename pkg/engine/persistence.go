package engine

import (
	"github.com/altap-salamander/core/pkg/config"
	"github.com/altap-salamander/core/pkg/panel"
)

// RestorePanelPath navigates p to its last-visited path recorded in cfg for
// side, if any was recorded. A failure to navigate there (the path no
// longer exists, a removable drive is absent) is not fatal: ChangePath's
// own fallbacks apply (a shorter prefix, the last path, the rescue path,
// the first fixed drive), and if all of them fail the panel keeps whatever
// path it had.
func RestorePanelPath(e *panel.Engine, cfg *config.Config, side config.Side, p *panel.Panel) panel.ChangePathResult {
	saved, ok := cfg.PanelPath(side)
	if !ok {
		return panel.ChangePathResult{}
	}
	return e.ChangePath(p, saved, panel.ChangePathOptions{})
}

// SavePanelPath persists p's current path under side so the next launch can
// restore it via RestorePanelPath. For a panel with no current path it
// writes nothing and the stored value is left unchanged.
func SavePanelPath(cfg *config.Config, side config.Side, p *panel.Panel) error {
	current, ok := p.CurrentPath()
	if !ok {
		return nil
	}
	return cfg.SetPanelPath(side, current.Format())
}
