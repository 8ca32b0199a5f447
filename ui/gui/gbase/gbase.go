package gbase

import (
	"image/color"
)

// --- UI constants ---

const (
	WindowSize  int = 560 // default square window
	MinViewport int = 64
	Title           = "clickchess"
)

// ---- Styles (palettes) ----

type Palette struct {
	Light   color.RGBA  // light squares
	Dark    color.RGBA  // dark squares
	Capture color.NRGBA // ring on capturable pieces
	Quiet   color.NRGBA // dot on empty destinations
	Accent  color.RGBA  // selected square outline
	Label   color.RGBA  // coordinates
}

func (p Palette) String() string {
	switch p {
	case LightPalette:
		return "light"
	case DarkPalette:
		return "dark"
	default:
	}
	return ""
}

func PaletteFromString(p string) Palette {
	switch p {
	case "light":
		return LightPalette
	case "dark":
		return DarkPalette
	default:
	}
	return LightPalette
}

var LightPalette = Palette{
	Light:   color.RGBA{225, 220, 190, 0xff},
	Dark:    color.RGBA{155, 105, 50, 0xff},
	Capture: color.NRGBA{255, 0, 0, 170},
	Quiet:   color.NRGBA{160, 160, 160, 115},
	Accent:  color.RGBA{0x22, 0x88, 0xcc, 0xff},
	Label:   color.RGBA{0x22, 0x22, 0x22, 0xff},
}

var DarkPalette = Palette{
	Light:   color.RGBA{0x8c, 0x8c, 0x8c, 0xff},
	Dark:    color.RGBA{0x3a, 0x3a, 0x3a, 0xff},
	Capture: color.NRGBA{0xe0, 0x40, 0x40, 170},
	Quiet:   color.NRGBA{0xdd, 0xdd, 0xdd, 115},
	Accent:  color.RGBA{0x2a, 0xa1, 0xd1, 0xff},
	Label:   color.RGBA{0xee, 0xee, 0xee, 0xff},
}
