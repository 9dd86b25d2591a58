// Package style implements the evaluator's two style-related mutable
// tables: the per-element-name argument overlay contributed by `set`, and
// the ordered list of show rules contributed by `show`. Selector matching
// itself is an external collaborator (the matcher is injected, not
// implemented here); this package only stores rules and splices the
// transformer's output back into the sequence.
package style

import "github.com/the-dr-lazy/typst-core/values"

// Styles maps an element name to the Arguments `set` has accumulated for
// it. Concatenation when a new `set` arrives is left-biased: existing
// values stay unless the new call overrides them.
type Styles struct {
	byName map[string]values.Arguments
}

func NewStyles() *Styles {
	return &Styles{byName: make(map[string]values.Arguments, 8)}
}

// Get returns the current default Arguments for name, or empty Arguments
// if `set` was never called for it.
func (s *Styles) Get(name string) values.Arguments {
	if a, ok := s.byName[name]; ok {
		return a
	}
	return values.EmptyArguments
}

// Set merges args into the existing defaults for name: the existing
// defaults come first, args win on conflicting named keys (set's
// "existing first, new wins" rule).
func (s *Styles) Set(name string, args values.Arguments) {
	s.byName[name] = s.Get(name).Concat(args)
}

// Snapshot returns a shallow copy of the current table, taken on block
// entry so it can be restored on exit.
func (s *Styles) Snapshot() map[string]values.Arguments {
	cp := make(map[string]values.Arguments, len(s.byName))
	for k, v := range s.byName {
		cp[k] = v
	}
	return cp
}

// Restore replaces the table's contents with a previously captured
// Snapshot.
func (s *Styles) Restore(snap map[string]values.Arguments) {
	s.byName = snap
}

// Transformer rewrites a single matched content node into a replacement
// sequence. Registered by `show`.
type Transformer func(node values.Node) (values.ContentSeq, error)

// Rule pairs a selector with its transformer.
type Rule struct {
	Selector values.Selector
	Apply    Transformer
}

// Matcher decides whether a node is selected, an external collaborator
// (spec's show-rule matcher application pass) supplied by the caller.
type Matcher func(sel values.Selector, node values.Node) bool

// Rules is the ordered show-rule list, most recently pushed first.
type Rules struct {
	list []Rule
}

func NewRules() *Rules { return &Rules{} }

// Push installs a new rule at the head of the list.
func (r *Rules) Push(rule Rule) {
	r.list = append([]Rule{rule}, r.list...)
}

// Snapshot captures the current rule list for later restoration.
func (r *Rules) Snapshot() []Rule {
	cp := make([]Rule, len(r.list))
	copy(cp, r.list)
	return cp
}

func (r *Rules) Restore(snap []Rule) {
	r.list = snap
}

// Apply rewrites seq: for each node, every rule whose selector matches
// (newest to oldest) transforms it into a replacement sequence that is
// spliced in place.
func (r *Rules) Apply(seq values.ContentSeq, match Matcher) (values.ContentSeq, error) {
	out := make([]values.Node, 0, len(seq.Nodes))
	for _, n := range seq.Nodes {
		rewritten, err := r.applyToNode(n, match)
		if err != nil {
			return values.ContentSeq{}, err
		}
		out = append(out, rewritten...)
	}
	return values.NewContentSeq(out), nil
}

func (r *Rules) applyToNode(n values.Node, match Matcher) ([]values.Node, error) {
	current := []values.Node{n}
	for _, rule := range r.list {
		var next []values.Node
		for _, c := range current {
			if match(rule.Selector, c) {
				seq, err := rule.Apply(c)
				if err != nil {
					return nil, err
				}
				next = append(next, seq.Nodes...)
			} else {
				next = append(next, c)
			}
		}
		current = next
	}
	return current, nil
}

// SetBodyHook lets a caller observe or override the pass-through behavior
// a `show` rule with a plain (non-function) body under an active `set`
// exhibits. The default nil hook preserves the original pass-through: the
// pre-computed content is used as-is, ignoring any `set` in effect for its
// element.
type SetBodyHook func(body values.Value, content values.ContentSeq) values.ContentSeq

// ResolveSetBody implements the documented pass-through stub: by default it
// returns content unchanged; installing hook lets a caller layer in
// different behavior without touching this package.
func ResolveSetBody(body values.Value, content values.ContentSeq, hook SetBodyHook) values.ContentSeq {
	if hook != nil {
		return hook(body, content)
	}
	return content
}
