package common

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

const (
	ArenaWidth  = 960
	ArenaHeight = 540
	TPS         = 60
)

// ArenaBounds spans [0,w]x[0,h]; B is the top edge because y grows downward.
func ArenaBounds(w, h float64) cp.BB {
	return cp.BB{L: 0, B: 0, R: w, T: h}
}

var (
	ColorFriendlyShot = color.RGBA{R: 0xf0, G: 0xf0, B: 0x90, A: 0xff}
	ColorHostileShot  = color.RGBA{R: 0xff, G: 0x50, B: 0x40, A: 0xff}
	ColorPing         = color.RGBA{R: 0x60, G: 0xc0, B: 0xff, A: 0xff}
)
