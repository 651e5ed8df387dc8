package desktop

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/skyhop/internal/config"
	"github.com/vovakirdan/skyhop/internal/game"
)

// Overlay texts.
const (
	titleText     = "Skyhop"
	startText     = "Click or hold SPACE to fly"
	hintText      = "The longer you hold, the higher you'll go!"
	gameOverText  = "Game Over!"
	playAgainText = "Click or press SPACE to play again"
)

var (
	skyTop     = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	skyBottom  = color.RGBA{0xe0, 0xf6, 0xff, 0xff}
	cloudColor = color.RGBA{204, 204, 204, 204} // white at 80%

	pipeBody    = color.RGBA{0x2e, 0x8b, 0x57, 0xff}
	pipeOutline = color.RGBA{0x1a, 0x5c, 0x34, 0xff}
	pipeCap     = color.RGBA{0x3c, 0xb3, 0x71, 0xff}

	birdBody    = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	birdOutline = color.RGBA{0xda, 0xa5, 0x20, 0xff}

	soil  = color.RGBA{0x8b, 0x45, 0x13, 0xff}
	grass = color.RGBA{0x22, 0x8b, 0x22, 0xff}

	shade = color.RGBA{0, 0, 0, 128}
)

var face = text.NewGoXFace(basicfont.Face7x13)

const (
	skyBands   = 50
	capHeight  = 20
	capOverlap = 5
)

// scene draws snapshots at canvas resolution.
type scene struct {
	geo config.Geometry
}

func (s scene) draw(screen *ebiten.Image, snap game.Snapshot, ov game.Overlay, frame uint64) {
	s.drawSky(screen, frame)
	for _, o := range snap.Obstacles {
		s.drawObstacle(screen, o)
	}
	s.drawEntity(screen, snap.EntityY)
	s.drawGround(screen)

	switch ov.Phase {
	case game.PhaseIdle:
		s.drawPanel(screen, []panelLine{
			{titleText, 4},
			{startText, 2},
			{hintText, 2},
		})
	case game.PhaseRunning:
		drawOutlinedText(screen, fmt.Sprintf("Score: %d", ov.Score), 10, 10, 2, text.AlignStart)
	case game.PhaseOver:
		s.drawPanel(screen, []panelLine{
			{gameOverText, 4},
			{fmt.Sprintf("Score: %d", ov.Score), 2},
			{fmt.Sprintf("High Score: %d", ov.HighScore), 2},
			{playAgainText, 2},
		})
	}
}

func (s scene) drawSky(screen *ebiten.Image, frame uint64) {
	w, h := float32(s.geo.Width), float32(s.geo.Height)
	band := h / skyBands
	for i := 0; i < skyBands; i++ {
		t := float64(i) / float64(skyBands-1)
		vector.DrawFilledRect(screen, 0, float32(i)*band, w, band+1, lerpColor(skyTop, skyBottom, t), false)
	}

	// Clouds drift at 20 units per second regardless of the game phase.
	secs := float64(frame) / float64(ebiten.TPS())
	span := s.geo.Width + 200
	for i := 0; i < 3; i++ {
		x := float32(math.Mod(secs*20+float64(i)*200, span) - 100)
		y := float32(50 + i*40)
		vector.DrawFilledCircle(screen, x, y, 30, cloudColor, true)
		vector.DrawFilledCircle(screen, x+25, y-10, 25, cloudColor, true)
		vector.DrawFilledCircle(screen, x+25, y+10, 25, cloudColor, true)
		vector.DrawFilledCircle(screen, x+50, y, 30, cloudColor, true)
	}
}

func (s scene) drawObstacle(screen *ebiten.Image, o game.Obstacle) {
	x := float32(o.X)
	w := float32(s.geo.PipeWidth)
	top := float32(o.GapTop)
	bottom := float32(o.GapTop + s.geo.GapHeight)
	h := float32(s.geo.Height)

	vector.DrawFilledRect(screen, x, 0, w, top, pipeBody, false)
	vector.StrokeRect(screen, x, 0, w, top, 2, pipeOutline, false)
	vector.DrawFilledRect(screen, x-capOverlap, top-capHeight, w+2*capOverlap, capHeight, pipeCap, false)

	vector.DrawFilledRect(screen, x, bottom, w, h-bottom, pipeBody, false)
	vector.StrokeRect(screen, x, bottom, w, h-bottom, 2, pipeOutline, false)
	vector.DrawFilledRect(screen, x-capOverlap, bottom, w+2*capOverlap, capHeight, pipeCap, false)
}

func (s scene) drawEntity(screen *ebiten.Image, y float64) {
	cx := float32(s.geo.EntityX)
	cy := float32(y)
	r := float32(s.geo.EntityRadius)

	vector.DrawFilledCircle(screen, cx, cy, r, birdBody, true)
	vector.StrokeCircle(screen, cx, cy, r, 2, birdOutline, true)
	vector.DrawFilledCircle(screen, cx+8, cy-5, 3, color.Black, true)
	vector.DrawFilledCircle(screen, cx-5, cy+5, 6, birdOutline, true)
}

func (s scene) drawGround(screen *ebiten.Image) {
	w, h := float32(s.geo.Width), float32(s.geo.Height)
	vector.DrawFilledRect(screen, 0, h-20, w, 20, soil, false)
	vector.DrawFilledRect(screen, 0, h-23, w, 3, grass, false)
}

type panelLine struct {
	text  string
	scale float64
}

// drawPanel shades the canvas and centers the lines vertically.
func (s scene) drawPanel(screen *ebiten.Image, lines []panelLine) {
	vector.DrawFilledRect(screen, 0, 0, float32(s.geo.Width), float32(s.geo.Height), shade, false)

	lineHeight := face.Metrics().HAscent + face.Metrics().HDescent
	const gap = 16.0
	total := 0.0
	for _, l := range lines {
		total += lineHeight*l.scale + gap
	}

	y := (s.geo.Height - total) / 2
	for _, l := range lines {
		drawOutlinedText(screen, l.text, s.geo.Width/2, y, l.scale, text.AlignCenter)
		y += lineHeight*l.scale + gap
	}
}

// drawOutlinedText draws white text with a black outline, like the canvas
// strokeText+fillText pair.
func drawOutlinedText(screen *ebiten.Image, str string, x, y, scale float64, align text.Align) {
	for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		op := &text.DrawOptions{}
		op.PrimaryAlign = align
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+d[0]*scale, y+d[1]*scale)
		op.ColorScale.ScaleWithColor(color.Black)
		text.Draw(screen, str, face, op)
	}

	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, str, face, op)
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xff}
}
