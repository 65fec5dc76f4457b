// Package fonts loads TrueType faces for text objects.
//
// Faces come from the Go font family bundled with golang.org/x/image and are
// parsed with freetype. Parsed fonts and sized faces are cached per library.
package fonts

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

const dpi = 72

// DefaultFamily is used when a text object does not name a font
const DefaultFamily = "go"

var (
	ErrUnknownFont = errors.New("unknown font")
	ErrInvalidSize = errors.New("invalid font size")
)

// Style selects a variant within a family
type Style struct {
	Bold   bool
	Italic bool
}

// Family holds the TTF data of one typeface's variants.
// Missing variants fall back to Regular.
type Family struct {
	Regular    []byte
	Bold       []byte
	Italic     []byte
	BoldItalic []byte
}

func (f Family) variant(s Style) ([]byte, string) {
	switch {
	case s.Bold && s.Italic && f.BoldItalic != nil:
		return f.BoldItalic, "bolditalic"
	case s.Bold && f.Bold != nil:
		return f.Bold, "bold"
	case s.Italic && f.Italic != nil:
		return f.Italic, "italic"
	}
	return f.Regular, "regular"
}

type faceKey struct {
	family  string
	variant string
	size    float64
}

// Library resolves font names to faces
type Library struct {
	mu       sync.Mutex
	families map[string]Family
	parsed   map[string]*truetype.Font
	faces    map[faceKey]font.Face
	goxFaces map[faceKey]*text.GoXFace
}

// NewLibrary creates a library with the Go font families registered
// as "go", "gomedium", "gomono" and "gosmallcaps".
func NewLibrary() *Library {
	l := &Library{
		families: make(map[string]Family),
		parsed:   make(map[string]*truetype.Font),
		faces:    make(map[faceKey]font.Face),
		goxFaces: make(map[faceKey]*text.GoXFace),
	}
	l.Register("go", Family{
		Regular:    goregular.TTF,
		Bold:       gobold.TTF,
		Italic:     goitalic.TTF,
		BoldItalic: gobolditalic.TTF,
	})
	l.Register("gomedium", Family{
		Regular: gomedium.TTF,
		Bold:    gobold.TTF,
		Italic:  gomediumitalic.TTF,
	})
	l.Register("gomono", Family{
		Regular:    gomono.TTF,
		Bold:       gomonobold.TTF,
		Italic:     gomonoitalic.TTF,
		BoldItalic: gomonobolditalic.TTF,
	})
	l.Register("gosmallcaps", Family{
		Regular: gosmallcaps.TTF,
		Italic:  gosmallcapsitalic.TTF,
	})
	return l
}

var defaultLibrary = NewLibrary()

// Default returns the process-wide library
func Default() *Library {
	return defaultLibrary
}

// Register adds or replaces a family
func (l *Library) Register(name string, fam Family) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.families[name] = fam
	for k := range l.faces {
		if k.family == name {
			delete(l.faces, k)
			delete(l.goxFaces, k)
		}
	}
	for k := range l.parsed {
		if strings.HasPrefix(k, name+"/") {
			delete(l.parsed, k)
		}
	}
}

// Has reports whether name is registered
func (l *Library) Has(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.families[name]
	return ok
}

// Families returns the registered family names, sorted
func (l *Library) Families() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.families))
	for name := range l.families {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// XFace returns a golang.org/x/image face for the family, size and style
func (l *Library) XFace(name string, size float64, style Style) (font.Face, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.xFaceLocked(name, size, style)
}

func (l *Library) xFaceLocked(name string, size float64, style Style) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, size)
	}
	fam, ok := l.families[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}

	data, variant := fam.variant(style)
	key := faceKey{family: name, variant: variant, size: size}
	if face, ok := l.faces[key]; ok {
		return face, nil
	}

	parsedKey := name + "/" + variant
	tt, ok := l.parsed[parsedKey]
	if !ok {
		var err error
		tt, err = truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", parsedKey, err)
		}
		l.parsed[parsedKey] = tt
	}

	face := truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	l.faces[key] = face
	return face, nil
}

// Face returns an ebiten text face for the family, size and style
func (l *Library) Face(name string, size float64, style Style) (text.Face, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	xf, err := l.xFaceLocked(name, size, style)
	if err != nil {
		return nil, err
	}
	_, variant := l.families[name].variant(style)
	key := faceKey{family: name, variant: variant, size: size}
	if gf, ok := l.goxFaces[key]; ok {
		return gf, nil
	}
	gf := text.NewGoXFace(xf)
	l.goxFaces[key] = gf
	return gf, nil
}

// Measure returns the pixel width and height of s set in face
func Measure(face font.Face, s string) (width, height int) {
	bounds, _ := font.BoundString(face, s)
	return (bounds.Max.X - bounds.Min.X).Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}
