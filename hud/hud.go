// Package hud draws a small text overlay with frame statistics on top of a
// finished frame.
//
// Glyphs are rasterized with golang.org/x/image/font/opentype from the
// embedded Go Regular font. Right-aligned labels are measured with the
// HarfBuzz shaper from go-text/typesetting so kerning is accounted for.
package hud

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/message"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/orrery"
)

// DefaultSize is the font size in pixels.
const DefaultSize = 13

// Info is what the overlay shows.
type Info struct {
	Frame    uint64
	FPS      float64
	Distance float32
	Stats    orrery.FrameStats
	// Title is drawn right-aligned in the top-right corner.
	Title string
}

// Overlay renders Info onto images.
//
// An Overlay is not safe for concurrent use.
type Overlay struct {
	size    float64
	face    font.Face
	shaper  shaping.HarfbuzzShaper
	gtFace  *gtfont.Face
	printer *message.Printer
	color   color.Color
	shadow  color.Color
}

// New creates an overlay with the given font size in pixels.
func New(size float64) (*Overlay, error) {
	if size <= 0 {
		size = DefaultSize
	}
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("hud: parsing font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("hud: creating face: %w", err)
	}
	gt, err := gtfont.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("hud: parsing font for shaping: %w", err)
	}
	return &Overlay{
		size:    size,
		face:    face,
		gtFace:  gt,
		printer: message.NewPrinter(xlanguage.English),
		color:   color.RGBA{220, 220, 200, 255},
		shadow:  color.RGBA{0, 0, 0, 255},
	}, nil
}

// Close releases the font face.
func (o *Overlay) Close() error {
	return o.face.Close()
}

// LineHeight returns the distance between baselines in pixels.
func (o *Overlay) LineHeight() int {
	return o.face.Metrics().Height.Ceil()
}

// Lines formats the left-hand statistics block.
func (o *Overlay) Lines(info Info) []string {
	s := info.Stats
	return []string{
		o.printer.Sprintf("frame %d", info.Frame),
		o.printer.Sprintf("%.1f fps  %v", info.FPS, s.Duration.Round(100*time.Microsecond)),
		o.printer.Sprintf("triangles %d  rejected %d", s.Triangles, s.Rejected),
		o.printer.Sprintf("fragments %d  written %d", s.Fragments, s.Written),
		o.printer.Sprintf("bloom %d  stars %d", s.Bright, s.Stars),
		o.printer.Sprintf("distance %.2f", info.Distance),
	}
}

// Measure returns the shaped advance width of text in pixels.
func (o *Overlay) Measure(text string) float64 {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	out := o.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      o.gtFace,
		Size:      fixed.Int26_6(o.size * 64),
		Script:    language.LookupScript(runes[0]),
		Language:  language.NewLanguage("en"),
	})
	return float64(out.Advance) / 64
}

// Draw renders info onto dst.
func (o *Overlay) Draw(dst draw.Image, info Info) {
	lh := o.LineHeight()
	pad := lh / 2
	y := pad + o.face.Metrics().Ascent.Ceil()
	for _, line := range o.Lines(info) {
		o.text(dst, line, pad, y)
		y += lh
	}
	if info.Title != "" {
		x := dst.Bounds().Dx() - pad - int(o.Measure(info.Title)+0.5)
		o.text(dst, info.Title, x, pad+o.face.Metrics().Ascent.Ceil())
	}
}

// text draws s with a one-pixel drop shadow, baseline at (x, y).
func (o *Overlay) text(dst draw.Image, s string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(o.shadow),
		Face: o.face,
		Dot:  fixed.P(x+1, y+1),
	}
	d.DrawString(s)
	d.Src = image.NewUniform(o.color)
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}
