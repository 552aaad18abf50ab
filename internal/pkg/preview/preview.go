// Package preview renders image payloads as terminal half-block art.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/datauri"
)

type Renderer interface {
	Render(p entity.Payload, width, height int) (string, error)
}

type halfBlockRenderer struct{}

func NewRenderer() Renderer {
	return &halfBlockRenderer{}
}

// Render draws the payload into at most width columns and height rows. Each
// row packs two pixel rows using the upper half block.
func (r *halfBlockRenderer) Render(p entity.Payload, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid preview size %dx%d", width, height)
	}

	img, err := r.decode(p)
	if err != nil {
		return "", err
	}

	thumb := Fit(img, width, height*2)
	return r.draw(thumb), nil
}

func (r *halfBlockRenderer) decode(p entity.Payload) (image.Image, error) {
	_, data, err := datauri.Decode(p)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	return img, nil
}

// Fit scales img down to fit within the bounds, keeping the aspect ratio.
func Fit(img image.Image, maxWidth, maxHeight int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return imaging.Clone(img)
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}

func (r *halfBlockRenderer) draw(img *image.NRGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.NRGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.NRGBAAt(x, y+1)
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bottom)))
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
