package valueyaml

import (
	"strings"
	"testing"

	ym "gopkg.in/yaml.v2"

	"github.com/the-dr-lazy/typst-core/values"
)

func TestMarshalScalar(t *testing.T) {
	out, err := Marshal(values.WrapInteger(42))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(out)) != `42` {
		t.Errorf(`Marshal(42) = %q`, out)
	}
}

func TestDictPreservesInsertionOrder(t *testing.T) {
	d := values.NewDict(2)
	d.Set(`b`, values.WrapInteger(2))
	d.Set(`a`, values.WrapInteger(1))
	out, err := Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	bIdx := strings.Index(string(out), `b:`)
	aIdx := strings.Index(string(out), `a:`)
	if bIdx < 0 || aIdx < 0 || bIdx > aIdx {
		t.Errorf(`expected "b" before "a" in insertion-ordered output, got %q`, out)
	}
}

func TestContentRoundTripsThroughMapSlice(t *testing.T) {
	fields := values.NewDict(1)
	fields.Set(`body`, values.WrapString(`hi`))
	seq := values.NewContentSeq([]values.Node{
		values.NewTxt(`plain `),
		values.NewElt(`emph`, nil, fields),
	})
	y := ToYAML(values.WrapContent(seq))
	nodes, ok := y.([]interface{})
	if !ok || len(nodes) != 2 {
		t.Fatalf(`ToYAML(content) = %#v`, y)
	}
	elt, ok := nodes[1].(ym.MapSlice)
	if !ok || elt[0].Key != `elt` || elt[0].Value != `emph` {
		t.Errorf(`second node = %#v, want elt=emph`, nodes[1])
	}
}
