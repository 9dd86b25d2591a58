// Package valueyaml serializes the evaluator's value universe to YAML for
// debug output and golden-file test comparisons, the readable-diff
// counterpart to valueproto's wire format. Grounded on the teacher's own
// yaml package (yaml/unmarshal.go), which wraps gopkg.in/yaml.v2's
// MapSlice to preserve key order on the way in; this package uses the
// same MapSlice type on the way out, for the same reason — a Dict's
// insertion order is observable and a plain map would scramble it.
package valueyaml

import (
	ym "gopkg.in/yaml.v2"

	"github.com/the-dr-lazy/typst-core/values"
)

// Marshal renders v as YAML text.
func Marshal(v values.Value) ([]byte, error) {
	return ym.Marshal(ToYAML(v))
}

// ToYAML converts v into a plain Go value gopkg.in/yaml.v2 can marshal:
// scalars map onto their native Go type, Array becomes a slice, and every
// ordered mapping (Dict, a Node's field set, Arguments.named) becomes a
// yaml.MapSlice so key order survives the round trip.
func ToYAML(v values.Value) interface{} {
	switch tv := v.(type) {
	case values.NoneValue:
		return nil
	case values.AutoValue:
		return `auto`
	case values.Boolean:
		return tv.Bool()
	case values.Integer:
		return tv.Int()
	case values.Float:
		return tv.Float()
	case values.Ratio:
		return tagged(`ratio`, tv.Float())
	case values.String:
		return tv.Go()
	case values.Label:
		return tagged(`label`, string(tv))
	case values.Regex:
		return tagged(`regex`, tv.Pattern)
	case values.Array:
		return arrayToYAML(tv)
	case values.Dict:
		return dictToYAML(tv)
	case values.Content:
		return contentToYAML(tv)
	case values.Color:
		return colorToYAML(tv)
	case values.Alignment:
		return alignmentToYAML(tv)
	case values.Length:
		return tagged(`length`, tv.String())
	case values.Angle:
		return tagged(`angle`, tv.String())
	case values.Fraction:
		return tagged(`fraction`, tv.String())
	case values.Symbol:
		return tagged(`symbol`, tv.Text)
	case values.Counter:
		return tagged(`counter`, tv.Key)
	case values.Selector:
		return tagged(`selector`, tv.String())
	case values.Function:
		return tagged(`function`, tv.Name)
	case values.Module:
		return tagged(`module`, tv.Ident)
	case values.TermItem:
		return ym.MapSlice{
			{Key: `term`, Value: ToYAML(tv.Term)},
			{Key: `descr`, Value: ToYAML(tv.Descr)},
		}
	case values.Arguments:
		return argumentsToYAML(tv)
	}
	return nil
}

func tagged(kind string, value interface{}) ym.MapSlice {
	return ym.MapSlice{{Key: `__kind`, Value: kind}, {Key: `value`, Value: value}}
}

func arrayToYAML(a values.Array) []interface{} {
	els := a.Elements()
	out := make([]interface{}, len(els))
	for i, e := range els {
		out[i] = ToYAML(e)
	}
	return out
}

func dictToYAML(d values.Dict) ym.MapSlice {
	entries := d.Entries()
	out := make(ym.MapSlice, len(entries))
	for i, e := range entries {
		out[i] = ym.MapItem{Key: e.Key, Value: ToYAML(e.Value)}
	}
	return out
}

func contentToYAML(c values.Content) []interface{} {
	out := make([]interface{}, len(c.Seq.Nodes))
	for i, n := range c.Seq.Nodes {
		out[i] = nodeToYAML(n)
	}
	return out
}

func nodeToYAML(n values.Node) interface{} {
	if n.NKind == values.NodeTxt {
		return ym.MapSlice{{Key: `txt`, Value: n.Text}}
	}
	entry := ym.MapSlice{
		{Key: `elt`, Value: n.Name},
		{Key: `fields`, Value: dictToYAML(n.Fields)},
	}
	if n.Label != nil {
		entry = append(entry, ym.MapItem{Key: `label`, Value: *n.Label})
	}
	return entry
}

func colorToYAML(c values.Color) ym.MapSlice {
	comps := make([]float64, 4)
	copy(comps, c.Components[:])
	return ym.MapSlice{
		{Key: `space`, Value: colorSpaceName(c.Space)},
		{Key: `components`, Value: comps},
	}
}

func colorSpaceName(s values.ColorSpace) string {
	switch s {
	case values.SpaceRGB:
		return `rgb`
	case values.SpaceCMYK:
		return `cmyk`
	case values.SpaceLuma:
		return `luma`
	}
	return `rgb`
}

func alignmentToYAML(a values.Alignment) ym.MapSlice {
	out := ym.MapSlice{}
	if a.Horiz != nil {
		out = append(out, ym.MapItem{Key: `horiz`, Value: *a.Horiz})
	}
	if a.Vert != nil {
		out = append(out, ym.MapItem{Key: `vert`, Value: *a.Vert})
	}
	return out
}

func argumentsToYAML(a values.Arguments) ym.MapSlice {
	pos := make([]interface{}, len(a.Positional))
	for i, p := range a.Positional {
		pos[i] = ToYAML(p)
	}
	return ym.MapSlice{
		{Key: `positional`, Value: pos},
		{Key: `named`, Value: dictToYAML(a.Named)},
	}
}
