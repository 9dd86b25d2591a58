package values

import "io"

// NodeKind tags whether a content Node is a text leaf or an element.
type NodeKind int

const (
	NodeTxt NodeKind = iota
	NodeElt
)

// Node is one member of a content sequence: either a text leaf or an
// element with a name, optional label, and field Dict.
type Node struct {
	NKind  NodeKind
	Text   string
	Name   string
	Label  *string
	Fields Dict
}

func NewTxt(text string) Node { return Node{NKind: NodeTxt, Text: text} }

func NewElt(name string, label *string, fields Dict) Node {
	return Node{NKind: NodeElt, Name: name, Label: label, Fields: fields}
}

func (n Node) IsEmptyTxt() bool { return n.NKind == NodeTxt && n.Text == `` }

// ContentSeq is an ordered sequence of content nodes.
type ContentSeq struct {
	Nodes []Node
}

func NewContentSeq(nodes []Node) ContentSeq { return ContentSeq{Nodes: nodes} }

var EmptyContent = NewContentSeq(nil)

// Concat implements `Content + Content = concat`.
func (c ContentSeq) Concat(other ContentSeq) ContentSeq {
	ns := make([]Node, 0, len(c.Nodes)+len(other.Nodes))
	ns = append(ns, c.Nodes...)
	ns = append(ns, other.Nodes...)
	return NewContentSeq(ns)
}

func (Content) Kind() Kind { return KContent }

// Content is the Value-universe wrapper around a ContentSeq.
type Content struct {
	Seq ContentSeq
}

func WrapContent(seq ContentSeq) Content { return Content{Seq: seq} }

func (c Content) ToString(w io.Writer) {
	for _, n := range c.Seq.Nodes {
		if n.NKind == NodeTxt {
			io.WriteString(w, n.Text)
		} else {
			io.WriteString(w, `[`+n.Name+`]`)
		}
	}
}
func (c Content) String() string { return toString(c) }
