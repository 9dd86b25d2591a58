// Package valueproto converts the evaluator's value universe and content
// trees into datapb.Data, a self-describing wire value any downstream
// renderer can consume without linking against this module's Go types.
// Rendering itself stays out of scope; this is only the handoff format.
package valueproto

import (
	"github.com/lyraproj/data-protobuf/datapb"

	"github.com/the-dr-lazy/typst-core/values"
)

// ToData converts a Value to its wire representation. Kinds datapb.Data has
// no native slot for (Auto, Content, Symbol, Color, Length, Angle, Fraction,
// Selector, Counter, Function, Module, TermItem, Alignment, Label, Regex,
// Arguments) are encoded
// as a tagged hash `{"__kind": <kind name>, ...fields}` so a renderer can
// still distinguish them; everything else maps onto datapb's native kinds.
func ToData(v values.Value) *datapb.Data {
	switch tv := v.(type) {
	case values.NoneValue:
		return undef()
	case values.AutoValue:
		return tagged(`auto`, nil)
	case values.Boolean:
		return &datapb.Data{Kind: &datapb.Data_BooleanValue{BooleanValue: tv.Bool()}}
	case values.Integer:
		return &datapb.Data{Kind: &datapb.Data_IntegerValue{IntegerValue: tv.Int()}}
	case values.Float:
		return &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: tv.Float()}}
	case values.Ratio:
		return &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: tv.Float()}}
	case values.String:
		return &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: tv.Go()}}
	case values.Label:
		return tagged(`label`, []*datapb.DataEntry{entry(`text`, str(string(tv)))})
	case values.Regex:
		return tagged(`regex`, []*datapb.DataEntry{entry(`pattern`, str(tv.Pattern))})
	case values.Array:
		els := tv.Elements()
		vs := make([]*datapb.Data, len(els))
		for i, e := range els {
			vs[i] = ToData(e)
		}
		return &datapb.Data{Kind: &datapb.Data_ArrayValue{ArrayValue: &datapb.DataArray{Values: vs}}}
	case values.Dict:
		ents := tv.Entries()
		out := make([]*datapb.DataEntry, len(ents))
		for i, e := range ents {
			out[i] = entry(e.Key, ToData(e.Value))
		}
		return &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: out}}}
	case values.Content:
		return contentToData(tv)
	case values.Color:
		return colorToData(tv)
	case values.Alignment:
		fields := []*datapb.DataEntry{}
		if tv.Horiz != nil {
			fields = append(fields, entry(`horiz`, str(*tv.Horiz)))
		}
		if tv.Vert != nil {
			fields = append(fields, entry(`vert`, str(*tv.Vert)))
		}
		return tagged(`alignment`, fields)
	case values.Length:
		return tagged(`length`, []*datapb.DataEntry{
			entry(`points`, &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: tv.Points}}),
			entry(`unit`, str(tv.Unit)),
		})
	case values.Angle:
		return tagged(`angle`, []*datapb.DataEntry{entry(`radians`, &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: tv.Radians}})})
	case values.Fraction:
		return tagged(`fraction`, []*datapb.DataEntry{entry(`value`, &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: float64(tv)}})})
	case values.Symbol:
		return tagged(`symbol`, []*datapb.DataEntry{entry(`text`, str(tv.Text))})
	case values.Counter:
		return tagged(`counter`, []*datapb.DataEntry{entry(`key`, str(tv.Key))})
	case values.Selector:
		return tagged(`selector`, []*datapb.DataEntry{entry(`repr`, str(tv.String()))})
	case values.Function:
		return tagged(`function`, []*datapb.DataEntry{entry(`name`, str(tv.Name))})
	case values.Module:
		return tagged(`module`, []*datapb.DataEntry{entry(`ident`, str(tv.Ident))})
	case values.TermItem:
		return tagged(`term-item`, []*datapb.DataEntry{
			entry(`term`, ToData(tv.Term)),
			entry(`descr`, ToData(tv.Descr)),
		})
	case values.Arguments:
		pos := make([]*datapb.Data, len(tv.Positional))
		for i, p := range tv.Positional {
			pos[i] = ToData(p)
		}
		named := make([]*datapb.DataEntry, 0, tv.Named.Len())
		tv.Named.EachPair(func(k string, v values.Value) {
			named = append(named, entry(k, ToData(v)))
		})
		return tagged(`arguments`, []*datapb.DataEntry{
			entry(`positional`, &datapb.Data{Kind: &datapb.Data_ArrayValue{ArrayValue: &datapb.DataArray{Values: pos}}}),
			entry(`named`, &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: named}}}),
		})
	}
	return undef()
}

func contentToData(c values.Content) *datapb.Data {
	nodes := make([]*datapb.Data, len(c.Seq.Nodes))
	for i, n := range c.Seq.Nodes {
		nodes[i] = nodeToData(n)
	}
	return tagged(`content`, []*datapb.DataEntry{
		entry(`nodes`, &datapb.Data{Kind: &datapb.Data_ArrayValue{ArrayValue: &datapb.DataArray{Values: nodes}}}),
	})
}

func nodeToData(n values.Node) *datapb.Data {
	if n.NKind == values.NodeTxt {
		return tagged(`txt`, []*datapb.DataEntry{entry(`text`, str(n.Text))})
	}
	fields := make([]*datapb.DataEntry, 0, n.Fields.Len())
	n.Fields.EachPair(func(k string, v values.Value) {
		fields = append(fields, entry(k, ToData(v)))
	})
	entries := []*datapb.DataEntry{
		entry(`name`, str(n.Name)),
		entry(`fields`, &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: fields}}}),
	}
	if n.Label != nil {
		entries = append(entries, entry(`label`, str(*n.Label)))
	}
	return tagged(`elt`, entries)
}

func colorToData(c values.Color) *datapb.Data {
	n := 4
	comps := make([]*datapb.Data, n)
	for i, v := range c.Components {
		comps[i] = &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: v}}
	}
	return tagged(`color`, []*datapb.DataEntry{
		entry(`space`, str(colorSpaceName(c.Space))),
		entry(`components`, &datapb.Data{Kind: &datapb.Data_ArrayValue{ArrayValue: &datapb.DataArray{Values: comps}}}),
	})
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

func tagged(kind string, fields []*datapb.DataEntry) *datapb.Data {
	entries := append([]*datapb.DataEntry{entry(`__kind`, str(kind))}, fields...)
	return &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: entries}}}
}

func entry(key string, v *datapb.Data) *datapb.DataEntry {
	return &datapb.DataEntry{Key: str(key), Value: v}
}

func str(s string) *datapb.Data {
	return &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: s}}
}

func undef() *datapb.Data {
	return &datapb.Data{Kind: &datapb.Data_UndefValue{}}
}
