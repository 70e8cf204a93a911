// Package storyboard rasterises presentation frames and exports them as
// image sequences or movies.
package storyboard

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/flexdash-demo/internal/renderer"
	"github.com/ivlev/flexdash-demo/internal/system"
)

var (
	colorBackground = rgb(0xF8, 0xFA, 0xFC)
	colorWindow     = rgb(0xFF, 0xFF, 0xFF)
	colorChrome     = rgb(0xE2, 0xE8, 0xF0)
	colorText       = rgb(0x0F, 0x17, 0x2A)
	colorMuted      = rgb(0x64, 0x74, 0x8B)
	colorPrimary    = rgb(0x3B, 0x82, 0xF6)
)

// stateColors marks elements by state
var stateColors = map[string]color.RGBA{
	renderer.StateVisible:   rgb(0x94, 0xA3, 0xB8),
	renderer.StatePending:   rgb(0xCB, 0xD5, 0xE1),
	renderer.StateActive:    colorPrimary,
	renderer.StateChecking:  rgb(0xF5, 0x9E, 0x0B),
	renderer.StateCompleted: rgb(0x22, 0xC5, 0x5E),
	renderer.StatePass:      rgb(0x22, 0xC5, 0x5E),
	renderer.StateFixed:     rgb(0x22, 0xC5, 0x5E),
	renderer.StateFail:      rgb(0xEF, 0x44, 0x44),
	renderer.StateHighlight: colorPrimary,
	renderer.StateUpdating:  rgb(0x63, 0x66, 0xF1),
	renderer.StateDimmed:    rgb(0xE2, 0xE8, 0xF0),
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// StateColor returns the marker colour of an element state.
func StateColor(state string) color.RGBA {
	if c, ok := stateColors[state]; ok {
		return c
	}
	return colorMuted
}

const (
	margin     = 40
	lineHeight = 24
	marker     = 10
	qrSize     = 200
)

// Rasterizer draws frames as fixed-size RGBA images. It is safe for
// concurrent use.
type Rasterizer struct {
	Width, Height int

	qrMu sync.Mutex
	qrs  map[string]image.Image
}

// NewRasterizer creates a rasterizer for the given output size.
func NewRasterizer(width, height int) *Rasterizer {
	return &Rasterizer{Width: width, Height: height, qrs: make(map[string]image.Image)}
}

// canvas tracks the transition applied to everything drawn on it
type canvas struct {
	img     *image.RGBA
	opacity float64
	offsetY int
	scale   float64
	cx, cy  int
}

// Draw rasterises a frame. The image comes from the shared pool; hand it
// back with system.PutImage once done.
func (r *Rasterizer) Draw(f renderer.Frame) (*image.RGBA, error) {
	img := system.GetImage(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	c := &canvas{
		img:     img,
		opacity: f.Transition.Opacity,
		offsetY: int(f.Transition.OffsetY),
		scale:   f.Transition.Scale,
		cx:      r.Width / 2,
		cy:      r.Height / 2,
	}
	if f.Transition.Kind == "" {
		c.opacity, c.scale = 1, 1
	}

	right, bottom := r.Width-margin, r.Height-margin
	c.rect(margin, margin, right, bottom, colorWindow)
	c.rect(margin, margin, right, margin+32, colorChrome)
	if f.URL != "" {
		c.text(margin+16, margin+21, f.URL, colorMuted)
	}

	y := margin + 70
	if f.Headline != "" {
		c.text(margin+24, y, f.Headline, colorText)
		y += lineHeight * 2
	}

	for _, e := range f.Elements {
		if e.State == renderer.StateHidden {
			continue
		}
		c.rect(margin+24, y-marker, margin+24+marker, y, StateColor(e.State))
		line := e.Label
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		c.text(margin+24+marker+10, y, line, colorText)
		y += lineHeight
	}

	if len(f.Options) > 0 {
		oy := bottom - 110
		x := margin + 24
		for _, o := range f.Options {
			col := colorMuted
			if o.Selected {
				col = colorPrimary
			}
			label := fmt.Sprintf("[ %s ] %s", o.Label, o.Description)
			c.text(x, oy, label, col)
			x += font.MeasureString(basicfont.Face7x13, label).Ceil() + 40
		}
	}

	if f.Progress > 0 && f.Progress < 1 {
		py := bottom - 80
		width := right - margin - 48
		c.rect(margin+24, py, margin+24+width, py+6, colorChrome)
		c.rect(margin+24, py, margin+24+int(float64(width)*f.Progress), py+6, colorPrimary)
	}

	if f.Prompt.Text != "" {
		prompt := "> " + f.Prompt.Typed
		if f.Prompt.Cursor {
			prompt += "|"
		}
		c.text(margin+24, bottom-40, prompt, colorText)
	}

	if f.Link != "" {
		qr, err := r.qr(f.Link)
		if err != nil {
			system.PutImage(img)
			return nil, err
		}
		c.image(right-qrSize-24, margin+60, qr)
		c.text(right-qrSize-24, margin+60+qrSize+18, f.Link, colorMuted)
	}

	status := fmt.Sprintf("%s | %s | %s | %dms", f.SceneID, f.Phase, f.ActionID, f.SceneTimeMS)
	draw.Draw(img, image.Rect(0, r.Height-margin+8, r.Width, r.Height), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	plain := &canvas{img: img, opacity: 1, scale: 1}
	plain.text(margin, r.Height-margin+24, status, colorMuted)
	return img, nil
}

// qr returns the cached QR code image for link
func (r *Rasterizer) qr(link string) (image.Image, error) {
	r.qrMu.Lock()
	defer r.qrMu.Unlock()
	if img, ok := r.qrs[link]; ok {
		return img, nil
	}
	img, err := QRCode(link, qrSize)
	if err != nil {
		return nil, err
	}
	r.qrs[link] = img
	return img, nil
}

// QRCode encodes link as a square QR image.
func QRCode(link string, size int) (image.Image, error) {
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}
	return q.Image(size), nil
}

// QRText renders link as a terminal QR code.
func QRText(link string) (string, error) {
	q, err := qrcode.New(link, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}

func (c *canvas) point(x, y int) (int, int) {
	if c.scale > 0 && c.scale != 1 {
		x = c.cx + int(float64(x-c.cx)*c.scale)
		y = c.cy + int(float64(y-c.cy)*c.scale)
	}
	return x, y + c.offsetY
}

// fade mixes col towards the background by the transition opacity
func (c *canvas) fade(col color.RGBA) color.RGBA {
	if c.opacity >= 1 {
		return col
	}
	mix := func(fg, bg uint8) uint8 {
		return uint8(float64(bg) + (float64(fg)-float64(bg))*c.opacity)
	}
	return color.RGBA{
		R: mix(col.R, colorBackground.R),
		G: mix(col.G, colorBackground.G),
		B: mix(col.B, colorBackground.B),
		A: 0xFF,
	}
}

func (c *canvas) rect(x0, y0, x1, y1 int, col color.RGBA) {
	x0, y0 = c.point(x0, y0)
	x1, y1 = c.point(x1, y1)
	draw.Draw(c.img, image.Rect(x0, y0, x1, y1), image.NewUniform(c.fade(col)), image.Point{}, draw.Src)
}

func (c *canvas) text(x, y int, s string, col color.RGBA) {
	x, y = c.point(x, y)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.fade(col)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(ascii(s))
}

func (c *canvas) image(x, y int, src image.Image) {
	x, y = c.point(x, y)
	b := src.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(c.img, dst, src, b.Min, draw.Src)
	if c.opacity < 1 {
		veil := color.NRGBA{R: colorBackground.R, G: colorBackground.G, B: colorBackground.B, A: uint8(255 * (1 - c.opacity))}
		draw.Draw(c.img, dst, image.NewUniform(veil), image.Point{}, draw.Over)
	}
}

// ascii swaps glyphs the bitmap font lacks
func ascii(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '•':
			return '*'
		case r == '…':
			return '.'
		case r > 0x7e:
			return '?'
		}
		return r
	}, s)
}
