package values

import (
	"fmt"
	"io"
	"math"
)

// ColorSpace tags which of RGB/CMYK/Luma a Color was constructed in. The
// method dispatcher's darken/lighten/negate operate
// componentwise in this space.
type ColorSpace int

const (
	SpaceRGB ColorSpace = iota
	SpaceCMYK
	SpaceLuma
)

// Color holds an RGB, CMYK, or Luma color value. Components are stored
// as 0..1 floats regardless of space; RGB additionally carries alpha.
type Color struct {
	Space      ColorSpace
	Components [4]float64 // RGB: r,g,b,a. CMYK: c,m,y,k. Luma: l,_,_,_.
}

func NewRGB(r, g, b, a float64) Color {
	return Color{Space: SpaceRGB, Components: [4]float64{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}}
}

func NewCMYK(c, m, y, k float64) Color {
	return Color{Space: SpaceCMYK, Components: [4]float64{clamp01(c), clamp01(m), clamp01(y), clamp01(k)}}
}

func NewLuma(l float64) Color {
	return Color{Space: SpaceLuma, Components: [4]float64{clamp01(l), 0, 0, 0}}
}

func clamp01(f float64) float64 { return math.Max(0, math.Min(1, f)) }

func (Color) Kind() Kind { return KColor }
func (c Color) ToString(w io.Writer) {
	switch c.Space {
	case SpaceRGB:
		fmt.Fprintf(w, "rgb(%d, %d, %d, %d%%)", to255(c.Components[0]), to255(c.Components[1]), to255(c.Components[2]), int(c.Components[3]*100))
	case SpaceCMYK:
		fmt.Fprintf(w, "cmyk(%d%%, %d%%, %d%%, %d%%)", int(c.Components[0]*100), int(c.Components[1]*100), int(c.Components[2]*100), int(c.Components[3]*100))
	case SpaceLuma:
		fmt.Fprintf(w, "luma(%d%%)", int(c.Components[0]*100))
	}
}
func (c Color) String() string { return toString(c) }

func to255(f float64) int { return int(math.Round(f * 255)) }

// Darken returns a Color darkened by the given ratio (0..1), componentwise
// in the receiver's own space.
func (c Color) Darken(ratio float64) Color {
	return c.scale(1 - ratio)
}

// Lighten returns a Color lightened by the given ratio (0..1).
func (c Color) Lighten(ratio float64) Color {
	nc := c
	n := componentCount(c.Space)
	for i := 0; i < n; i++ {
		nc.Components[i] = clamp01(c.Components[i] + (1-c.Components[i])*ratio)
	}
	return nc
}

func (c Color) scale(factor float64) Color {
	nc := c
	n := componentCount(c.Space)
	for i := 0; i < n; i++ {
		nc.Components[i] = clamp01(c.Components[i] * factor)
	}
	return nc
}

// Negate inverts each component in the receiver's own space.
func (c Color) Negate() Color {
	nc := c
	n := componentCount(c.Space)
	for i := 0; i < n; i++ {
		nc.Components[i] = clamp01(1 - c.Components[i])
	}
	return nc
}

func componentCount(s ColorSpace) int {
	switch s {
	case SpaceRGB:
		return 3 // alpha is left untouched by darken/lighten/negate
	case SpaceCMYK:
		return 4
	case SpaceLuma:
		return 1
	}
	return 0
}

// Alignment holds an optional horizontal and optional vertical component.
// A nil component means unset, relevant to the componentwise first-wins
// merge the `+` operator defines for two Alignments.
type Alignment struct {
	Horiz *string
	Vert  *string
}

func NewAlignment(horiz, vert *string) Alignment {
	return Alignment{Horiz: horiz, Vert: vert}
}

func (Alignment) Kind() Kind { return KAlignment }
func (a Alignment) ToString(w io.Writer) {
	wrote := false
	if a.Horiz != nil {
		io.WriteString(w, *a.Horiz)
		wrote = true
	}
	if a.Vert != nil {
		if wrote {
			io.WriteString(w, ` + `)
		}
		io.WriteString(w, *a.Vert)
	}
}
func (a Alignment) String() string { return toString(a) }

// Add implements the Alignment+Alignment special case of the `+`
// operator: componentwise first-wins merge.
func (a Alignment) Add(b Alignment) Alignment {
	r := a
	if r.Horiz == nil {
		r.Horiz = b.Horiz
	}
	if r.Vert == nil {
		r.Vert = b.Vert
	}
	return r
}
