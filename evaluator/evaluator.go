// Package evaluator implements the tree-walking interpreter tying together
// every leaf package (values, env, syntax, content, style, method, loader,
// threadlocal) into the primary entry point, evaluateTypst: a markup/expr
// AST in, a content sequence out. Grounded on the teacher's own
// evaluator/eval.go driver: a single mutable State threaded through a
// big per-kind switch, one panic-to-recover boundary at the top, and
// argument/type complaints raised as panics from deep call sites and
// converted back into positioned issue.Reported values here.
package evaluator

import (
	"fmt"

	"github.com/lyraproj/issue/issue"

	"github.com/the-dr-lazy/typst-core/env"
	"github.com/the-dr-lazy/typst-core/errors"
	"github.com/the-dr-lazy/typst-core/loader"
	"github.com/the-dr-lazy/typst-core/style"
	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

// State is the evaluator's full mutable state (spec.md §3.5): the
// environment stack, the style/show-rule tables, the counters map, the
// math-mode flag, and the current flow directive, plus the injected I/O
// and collaborator callbacks a run needs.
type State struct {
	Env      *env.Stack
	Styles   *style.Styles
	Rules    *style.Rules
	Counters map[string]values.Value
	Math     bool
	Flow     Flow

	LoadBytes   func(resolvedPath string) (string, error)
	CurrentTime func() int64
	SourceName  string

	Match       style.Matcher
	SetBodyHook style.SetBodyHook
	ParseMarkup func(source string) ([]syntax.Markup, error)

	PackageRoot            string
	ListInstalledVersions  func(namespace, name string) ([]string, error)

	Logger Logger
	Stdlib values.Dict

	pos       syntax.Position
	loopDepth int
}

// New constructs the root evaluator state: a fresh environment stack with
// stdlib installed in the global frame, an "eval" built-in wired in via
// threadlocal sandboxing (§4.9), and every collaborator callback the
// caller supplies. match is the only truly required collaborator besides
// loadBytes/parseMarkup — without it show rules can be registered but
// never applied.
func New(
	loadBytes func(resolvedPath string) (string, error),
	currentTime func() int64,
	sourceName string,
	parseMarkup func(source string) ([]syntax.Markup, error),
	match style.Matcher,
	stdlib values.Dict,
) *State {
	s := &State{
		Env:         env.New(),
		Styles:      style.NewStyles(),
		Rules:       style.NewRules(),
		Counters:    make(map[string]values.Value, 8),
		Flow:        flowNormal,
		LoadBytes:   loadBytes,
		CurrentTime: currentTime,
		SourceName:  sourceName,
		Match:       match,
		ParseMarkup: parseMarkup,
		Logger:      NewStdLogger(),
		Stdlib:      stdlib,
	}
	s.installStdlib()
	return s
}

// installStdlib copies every stdlib entry into the global frame and binds
// the sandboxed `eval` built-in (§4.9), the one function this package
// contributes to the standard library's external contract rather than
// receiving from it.
func (s *State) installStdlib() {
	s.Stdlib.EachPair(func(name string, v values.Value) {
		s.Env.Bind(name, v)
	})
	s.Env.Bind(`eval`, values.NewFunction(nil, nil, s.evalBuiltin, `eval`))
}

// newChild builds an isolated evaluator state sharing this state's static
// configuration (stdlib, parser, matcher, logger, package root) but with
// its own fresh environment, styles, rules, and counters — the shape
// spec.md §4.8's loadModule and §4.9's eval sandbox both need. loadBytes
// is passed explicitly rather than inherited: module evaluation keeps the
// loader's resolved loadBytes, eval's sandbox passes nil.
func (s *State) newChild(loadBytes func(resolvedPath string) (string, error), sourceName string) *State {
	child := New(loadBytes, s.CurrentTime, sourceName, s.ParseMarkup, s.Match, s.Stdlib)
	child.SetBodyHook = s.SetBodyHook
	child.PackageRoot = s.PackageRoot
	child.ListInstalledVersions = s.ListInstalledVersions
	child.Logger = s.Logger
	return child
}

// Evaluate runs ms to completion and returns the resulting content
// sequence, the primary entry point spec.md §6 names as evaluateTypst.
// Every panic raised anywhere under this call — an issue.Reported, an
// errors.ArgumentsError, an errors.IllegalArgumentType, or any other
// error/value — is caught here and turned into a single positioned
// result, the teacher's own Evaluate recover shape (impl/eval.go).
func (s *State) Evaluate(ms []syntax.Markup) (result values.ContentSeq, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = values.ContentSeq{}
			err = s.toReportedError(r)
		}
	}()
	result, err = s.evaluateMarkup(ms)
	return
}

// toReportedError normalizes a recovered panic value into a positioned
// error. issue.Reported values pass through as-is (they already carry a
// position, attached at the point they were raised); the method
// package's ArgumentsError/IllegalArgumentType are wrapped with the
// evaluator's current position, matching errors.go's documented
// panic-at-the-call-site, recover-and-position-at-the-boundary split.
func (s *State) toReportedError(r interface{}) error {
	switch v := r.(type) {
	case issue.Reported:
		return v
	case *errors.ArgumentsError:
		return errors.New(errors.EvalArgumentsError, errors.Loc(s.pos), issue.H{`name`: v.Name, `message`: v.Message})
	case *errors.IllegalArgumentType:
		return errors.New(errors.EvalIllegalArgumentType, errors.Loc(s.pos), issue.H{
			`name`: v.Name, `index`: v.Index, `expected`: v.Expected, `actual`: v.Actual,
		})
	case error:
		return errors.Fail(errors.Loc(s.pos), v.Error())
	default:
		return errors.Fail(errors.Loc(s.pos), fmt.Sprint(v))
	}
}

func (s *State) here() issue.Location { return errors.Loc(s.pos) }

func (s *State) fail(code issue.Code, args issue.H) {
	panic(errors.New(code, s.here(), args))
}

func (s *State) failAt(pos syntax.Position, code issue.Code, args issue.H) {
	panic(errors.New(code, errors.Loc(pos), args))
}

func (s *State) typeMismatch(detail string) {
	s.fail(errors.EvalTypeMismatch, issue.H{`detail`: detail})
}

func (s *State) domainError(detail string) {
	s.fail(errors.EvalDomainError, issue.H{`detail`: detail})
}

// loadModule resolves and evaluates pathLiteral via the loader package,
// supplying this state's own loadBytes/parseMarkup and a module-evaluator
// callback that constructs a fresh isolated child state.
func (s *State) loadModule(pathLiteral string) values.Module {
	if sandboxed() {
		s.fail(errors.EvalSandboxViolation, issue.H{`detail`: `module loading is unavailable inside eval`})
	}
	m, err := loader.LoadModule(loader.Deps{
		LoadBytes:   s.LoadBytes,
		ParseMarkup: s.ParseMarkup,
		EvaluateModule: func(ms []syntax.Markup, loadBytes func(string) (string, error)) (values.Dict, error) {
			child := s.newChild(loadBytes, s.SourceName)
			if _, err := child.evaluateMarkup(ms); err != nil {
				return values.Dict{}, err
			}
			return values.WrapDict(innermostEntries(child.Env)), nil
		},
		PackageRoot:           s.PackageRoot,
		ListInstalledVersions: s.ListInstalledVersions,
	}, s.SourceName, pathLiteral)
	if err != nil {
		panic(err)
	}
	return m
}

func innermostEntries(e *env.Stack) []values.DictEntry {
	frame := e.Innermost()
	entries := make([]values.DictEntry, 0, len(frame))
	for k, v := range frame {
		entries = append(entries, values.DictEntry{Key: k, Value: v})
	}
	return entries
}
