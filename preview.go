package piecegraph

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
)

// ColourScheme defines how a preview is coloured.
type ColourScheme struct {
	Background  color.Color
	Links       color.Color
	Pieces      color.Color
	Seed        color.Color
	Caps        color.Color
	Forced      color.Color
	OpenSockets color.Color

	// Scale in pixels per world unit
	Scale float64

	// Margin around the layout in pixels
	Margin float64
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background:  colornames.White,
		Links:       colornames.Dimgray,
		Pieces:      colornames.Steelblue,
		Seed:        colornames.Gold,
		Caps:        colornames.Darkgray,
		Forced:      colornames.Crimson,
		OpenSockets: colornames.Fuchsia,
		Scale:       20,
		Margin:      20,
	}
}

// Preview draws the layout top down (north up) for eyeballing.
// Links are lines between piece centres, pieces are circles & any socket
// left open is a dot.
func (p *Piecegraph) Preview(scheme *ColourScheme) image.Image {
	if scheme == nil {
		scheme = DefaultScheme()
	}

	min, max := bounds(p.Pieces)
	w := int((max.X-min.X)*scheme.Scale + 2*scheme.Margin)
	h := int((max.Y-min.Y)*scheme.Scale + 2*scheme.Margin)

	// image y runs down, world y (north) runs up
	px := func(x float64) float64 { return (x-min.X)*scheme.Scale + scheme.Margin }
	py := func(y float64) float64 { return float64(h) - ((y-min.Y)*scheme.Scale + scheme.Margin) }

	ctx := gg.NewContext(maxint(w, 1), maxint(h, 1))
	ctx.SetColor(scheme.Background)
	ctx.Clear()

	ctx.SetColor(scheme.Links)
	ctx.SetLineWidth(maxf(scheme.Scale/10, 1))
	for _, l := range p.Links() {
		a := p.Pieces[l[0].Piece].Position
		b := p.Pieces[l[1].Piece].Position
		ctx.DrawLine(px(a.X), py(a.Y), px(b.X), py(b.Y))
		ctx.Stroke()
	}

	r := maxf(scheme.Scale/4, 2)
	for _, piece := range p.Pieces {
		switch {
		case piece.Forced:
			ctx.SetColor(scheme.Forced)
		case piece.Cap:
			ctx.SetColor(scheme.Caps)
		case piece.Handle == 0:
			ctx.SetColor(scheme.Seed)
		default:
			ctx.SetColor(scheme.Pieces)
		}
		ctx.DrawCircle(px(piece.Position.X), py(piece.Position.Y), r)
		ctx.Fill()

		ctx.SetColor(scheme.OpenSockets)
		for _, i := range piece.OpenSockets() {
			s := piece.Sockets[i]
			ctx.DrawCircle(px(s.Position.X), py(s.Position.Y), r/2)
			ctx.Fill()
		}
	}

	return ctx.Image()
}

// SavePreview writes Preview() out as a PNG.
func (p *Piecegraph) SavePreview(fpath string, scheme *ColourScheme) error {
	ctx := gg.NewContextForImage(p.Preview(scheme))
	return ctx.SavePNG(fpath)
}
