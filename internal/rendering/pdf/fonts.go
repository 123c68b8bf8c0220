package pdf

import (
	"embed"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/resume-builder/internal/rendering/paginate"
)

//go:embed fonts/*.ttf
var fallbackFonts embed.FS

// fallbackFamily covers text that the cp1252 core encoding cannot carry
const fallbackFamily = "DejaVu"

var fallbackFiles = map[string]string{
	"":   "fonts/DejaVuSansCondensed.ttf",
	"B":  "fonts/DejaVuSansCondensed-Bold.ttf",
	"I":  "fonts/DejaVuSansCondensed-Oblique.ttf",
	"BI": "fonts/DejaVuSansCondensed-BoldOblique.ttf",
}

// faces selects the font for each run of text. Runs that encode to cp1252 use
// the core Times face; anything else is set in the embedded UTF-8 face.
type faces struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	loaded map[string]bool
}

func newFaces(p *fpdf.Fpdf) *faces {
	return &faces{pdf: p, tr: p.UnicodeTranslatorFromDescriptor(""), loaded: map[string]bool{}}
}

// set makes the face for text current and returns the string to hand to fpdf
func (f *faces) set(text string, font paginate.Font) string {
	style := styleString(font.Style)
	encoded := f.tr(text)
	if encodable(text, encoded) {
		f.pdf.SetFont(fontFamily, style, font.Size)
		return encoded
	}

	if !f.loaded[style] {
		data, err := fallbackFonts.ReadFile(fallbackFiles[style])
		if err != nil {
			f.pdf.SetError(fmt.Errorf("failed to load fallback font: %w", err))
			return encoded
		}
		f.pdf.AddUTF8FontFromBytes(fallbackFamily, style, data)
		f.loaded[style] = true
	}
	f.pdf.SetFont(fallbackFamily, style, font.Size)
	return text
}

// encodable reports whether the cp1252 translation kept every rune of text.
// The translator writes one byte per rune and '.' for runes it cannot map.
func encodable(text, encoded string) bool {
	i := 0
	for _, r := range text {
		if i >= len(encoded) {
			return false
		}
		if encoded[i] == '.' && r != '.' {
			return false
		}
		i++
	}
	return true
}
