package badge

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/yungbote/deliverysla-backend/internal/pkg/logger"
)

const (
	width  = 360
	height = 96
)

var palette = map[string]color.NRGBA{
	"GREEN":  {R: 0x2E, G: 0x9E, B: 0x5B, A: 0xFF},
	"YELLOW": {R: 0xF2, G: 0xB7, B: 0x05, A: 0xFF},
	"RED":    {R: 0xD6, G: 0x37, B: 0x2F, A: 0xFF},
}

var unknown = color.NRGBA{R: 0x8A, G: 0x8F, B: 0x98, A: 0xFF}

// Renderer draws the SLA badge embedded in SLA notification mails.
type Renderer interface {
	Render(slaColor string, days int) ([]byte, error)
}

type renderer struct {
	log  *logger.Logger
	mu   sync.Mutex
	face font.Face
}

// New loads fontPath as the badge face. An empty path falls back to the
// built-in bitmap face.
func New(log *logger.Logger, fontPath string) (Renderer, error) {
	serviceLog := log.With("service", "BadgeRenderer")
	var face font.Face = basicfont.Face7x13
	if p := strings.TrimSpace(fontPath); p != "" {
		f, err := loadFontFace(p, 30)
		if err != nil {
			return nil, fmt.Errorf("could not load badge font: %w", err)
		}
		face = f
		serviceLog.Info("Loaded badge font", "font", p)
	}
	return &renderer{log: serviceLog, face: face}, nil
}

func (r *renderer) Render(slaColor string, days int) ([]byte, error) {
	key := strings.ToUpper(strings.TrimSpace(slaColor))
	bg, ok := palette[key]
	if !ok {
		bg = unknown
		if key == "" {
			key = "UNSET"
		}
	}

	dc := gg.NewContext(width, height)
	dc.DrawRoundedRectangle(0, 0, width, height, 18)
	dc.SetColor(bg)
	dc.Fill()

	label := fmt.Sprintf("%s  |  %s", key, dayLabel(days))

	// font.Face implementations are not safe for concurrent use.
	r.mu.Lock()
	dc.SetFontFace(r.face)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(label, width/2, height/2, 0.5, 0.35)
	r.mu.Unlock()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func dayLabel(days int) string {
	if days == 1 {
		return "1 business day"
	}
	return fmt.Sprintf("%d business days", days)
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
