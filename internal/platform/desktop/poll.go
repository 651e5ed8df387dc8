package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var flyKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}

// pollButtons samples keyboard and mouse for the current update.
// w and h are the logical canvas size returned by Layout.
func pollButtons(w, h int) Buttons {
	var b Buttons
	for _, k := range flyKeys {
		if inpututil.IsKeyJustPressed(k) {
			b.KeyDown = true
		}
		if inpututil.IsKeyJustReleased(k) {
			b.KeyUp = true
		}
	}

	b.PointerDown = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	b.PointerUp = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	x, y := ebiten.CursorPosition()
	b.PointerInside = x >= 0 && y >= 0 && x < w && y < h

	b.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return b
}
