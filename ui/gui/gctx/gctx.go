package gctx

import (
	"clickchess/src"
	"clickchess/src/logx"
	"clickchess/ui/gui/gbase"
	"clickchess/ui/gui/gbase/gconf"
	"clickchess/ui/gui/gdraw"
)

// ---- GUI Context ----

type GUIGameContext struct {
	Session *src.Session
	Canvas  *gdraw.Canvas
	Config  *gconf.Config
	Theme   gbase.Palette
	Logx    logx.Logger
}

func NewGUIGameContext(s *src.Session, cv *gdraw.Canvas, c *gconf.Config, l logx.Logger) *GUIGameContext {
	return &GUIGameContext{
		Session: s,
		Canvas:  cv,
		Config:  c,
		Theme:   gbase.PaletteFromString(c.Theme),
		Logx:    l,
	}
}
