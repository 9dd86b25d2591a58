package values

import (
	"io"

	"github.com/the-dr-lazy/typst-core/hash"
)

// Array is an ordered, immutable-length slice of Values. Mutating methods
// exposed through the method dispatcher always build and return a new
// Array; the lvalue protocol is what writes the new Array back into its
// container.
type Array struct {
	elems []Value
}

func WrapArray(elems []Value) Array {
	return Array{elems: elems}
}

var EmptyArray = WrapArray(nil)

func (Array) Kind() Kind { return KArray }
func (a Array) ToString(w io.Writer) {
	io.WriteString(w, `(`)
	for i, e := range a.elems {
		if i > 0 {
			io.WriteString(w, `, `)
		}
		e.ToString(w)
	}
	if len(a.elems) == 1 {
		io.WriteString(w, `,`)
	}
	io.WriteString(w, `)`)
}
func (a Array) String() string { return toString(a) }

func (a Array) Len() int          { return len(a.elems) }
func (a Array) At(i int) Value    { return a.elems[i] }
func (a Array) Elements() []Value { return a.elems }

// Slice returns a shallow copy of the backing slice, safe for the caller to
// append to or mutate without affecting a.
func (a Array) Slice() []Value {
	s := make([]Value, len(a.elems))
	copy(s, a.elems)
	return s
}

// Append returns a new Array with v appended.
func (a Array) Append(v Value) Array {
	s := a.Slice()
	s = append(s, v)
	return WrapArray(s)
}

// Concat implements `array++`.
func (a Array) Concat(b Array) Array {
	s := make([]Value, 0, len(a.elems)+len(b.elems))
	s = append(s, a.elems...)
	s = append(s, b.elems...)
	return WrapArray(s)
}

// DictEntry is one key/value pair of a Dict, in insertion order.
type DictEntry struct {
	Key   string
	Value Value
}

// Dict is an ordered mapping from identifier to Value, backed by
// hash.OrderedMap.
type Dict struct {
	m *hash.OrderedMap
}

func NewDict(capacity int) Dict {
	return Dict{m: hash.New(capacity)}
}

func WrapDict(entries []DictEntry) Dict {
	d := NewDict(len(entries))
	for _, e := range entries {
		d.Set(e.Key, e.Value)
	}
	return d
}

var EmptyDict = NewDict(0)

func (Dict) Kind() Kind { return KDict }
func (d Dict) ToString(w io.Writer) {
	io.WriteString(w, `(`)
	first := true
	d.m.EachPair(func(k string, v interface{}) {
		if !first {
			io.WriteString(w, `, `)
		}
		first = false
		io.WriteString(w, k)
		io.WriteString(w, `: `)
		v.(Value).ToString(w)
	})
	if first {
		io.WriteString(w, `:`)
	}
	io.WriteString(w, `)`)
}
func (d Dict) String() string { return toString(d) }

func (d Dict) Len() int { return d.m.Len() }

func (d Dict) Get(key string) (Value, bool) {
	v, ok := d.m.Get3(key)
	if !ok {
		return None, false
	}
	return v.(Value), true
}

// Set inserts or updates key, preserving its original position on update.
func (d Dict) Set(key string, v Value) {
	d.m.Put(key, v)
}

func (d Dict) Remove(key string) (Value, bool) {
	old := d.m.Delete(key)
	if old == nil {
		return None, false
	}
	return old.(Value), true
}

func (d Dict) Keys() []string {
	return d.m.Keys()
}

func (d Dict) Entries() []DictEntry {
	ks := d.m.Keys()
	es := make([]DictEntry, len(ks))
	i := 0
	d.m.EachPair(func(k string, v interface{}) {
		es[i] = DictEntry{Key: k, Value: v.(Value)}
		i++
	})
	return es
}

func (d Dict) EachPair(f func(key string, v Value)) {
	d.m.EachPair(func(k string, v interface{}) {
		f(k, v.(Value))
	})
}

// Copy returns a shallow clone whose entries can be mutated independently.
func (d Dict) Copy() Dict {
	return Dict{m: d.m.Copy()}
}

// Merge returns d with other's entries layered on top: an existing key
// keeps its position but takes other's value when present in both.
func (d Dict) Merge(other Dict) Dict {
	merged := d.Copy()
	other.EachPair(func(k string, v Value) {
		merged.Set(k, v)
	})
	return merged
}
