// Package barcode renders tracker ids as Code128 symbols and exports them as
// PNG images or single-page PDF documents.
package barcode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/boombuler/barcode/code128"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrNoSymbol is returned when there is nothing to render or export.
var ErrNoSymbol = errors.New("no barcode symbol")

const (
	defaultModuleWidth = 2
	defaultBarHeight   = 100
	quietZoneModules   = 10
	textGap            = 6
	textMargin         = 8
)

// Renderer turns a tracker id into a visual symbol.
type Renderer interface {
	Render(trackerID string) (*Symbol, error)
}

// Symbol is a rendered barcode with its human-readable value.
type Symbol struct {
	TrackerID string
	modules   []bool
	img       *image.RGBA
}

// Image returns the rasterized symbol.
func (s *Symbol) Image() image.Image { return s.img }

// Modules returns the bar pattern, true for a dark module.
func (s *Symbol) Modules() []bool {
	out := make([]bool, len(s.modules))
	copy(out, s.modules)
	return out
}

// Blocks draws the bars with half-block glyphs, two modules per cell, so the
// symbol fits in a terminal.
func (s *Symbol) Blocks() string {
	var b strings.Builder
	for i := 0; i < len(s.modules); i += 2 {
		left := s.modules[i]
		right := i+1 < len(s.modules) && s.modules[i+1]
		switch {
		case left && right:
			b.WriteRune('█')
		case left:
			b.WriteRune('▌')
		case right:
			b.WriteRune('▐')
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// Code128Renderer draws Code128 bars with the value printed beneath.
type Code128Renderer struct {
	ModuleWidth int
	BarHeight   int
}

// NewCode128Renderer returns a renderer with the default geometry.
func NewCode128Renderer() *Code128Renderer {
	return &Code128Renderer{ModuleWidth: defaultModuleWidth, BarHeight: defaultBarHeight}
}

// Render encodes trackerID. An empty id yields ErrNoSymbol.
func (r *Code128Renderer) Render(trackerID string) (*Symbol, error) {
	if strings.TrimSpace(trackerID) == "" {
		return nil, ErrNoSymbol
	}

	bc, err := code128.Encode(trackerID)
	if err != nil {
		return nil, fmt.Errorf("encode code128 %q: %w", trackerID, err)
	}

	width := bc.Bounds().Dx()
	modules := make([]bool, width)
	for x := 0; x < width; x++ {
		modules[x] = dark(bc.At(bc.Bounds().Min.X+x, bc.Bounds().Min.Y))
	}

	return &Symbol{
		TrackerID: trackerID,
		modules:   modules,
		img:       r.raster(trackerID, modules),
	}, nil
}

func (r *Code128Renderer) raster(text string, modules []bool) *image.RGBA {
	moduleWidth := r.ModuleWidth
	if moduleWidth <= 0 {
		moduleWidth = defaultModuleWidth
	}
	barHeight := r.BarHeight
	if barHeight <= 0 {
		barHeight = defaultBarHeight
	}

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	textHeight := face.Metrics().Height.Ceil()

	barsWidth := (len(modules) + 2*quietZoneModules) * moduleWidth
	width := max(barsWidth, textWidth+2*textMargin)
	height := textMargin + barHeight + textGap + textHeight + textMargin

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	left := (width - len(modules)*moduleWidth) / 2
	for i, on := range modules {
		if !on {
			continue
		}
		x0 := left + i*moduleWidth
		bar := image.Rect(x0, textMargin, x0+moduleWidth, textMargin+barHeight)
		draw.Draw(img, bar, image.Black, image.Point{}, draw.Src)
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot: fixed.P(
			(width-textWidth)/2,
			textMargin+barHeight+textGap+face.Metrics().Ascent.Ceil(),
		),
	}
	d.DrawString(text)

	return img
}

func dark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return (r+g+b)/3 < 0x8000
}
