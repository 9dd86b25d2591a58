// Package method implements the fixed method catalogue for every value
// kind: Get(deps, value, field) returns the method as a callable
// Function, or reports it isn't one so the caller falls through to plain
// field access (relevant for Dict and Content). Mutating methods never
// touch their receiver's storage directly — they build a new value and
// hand it to Deps.UpdateVal, which lowers back into the lvalue protocol
// the evaluator owns, so `a.push(x)` works on any assignable expression,
// not just a bare name.
package method

import (
	"sort"
	"strings"

	"github.com/the-dr-lazy/typst-core/errors"
	"github.com/the-dr-lazy/typst-core/values"
)

// Deps are the callbacks the evaluator supplies so this package never
// needs to import evaluator state directly.
type Deps struct {
	// UpdateVal writes a mutating method's new receiver value back through
	// the lvalue protocol. Unused by non-mutating methods.
	UpdateVal func(values.Value)
	// CounterGet/CounterSet read and write the evaluator's counters map,
	// keyed by Counter.Key. A Counter value is a handle, not a container:
	// its state lives in evaluator-global storage, not behind UpdateVal.
	CounterGet func(key string) values.Value
	CounterSet func(key string, v values.Value)
	// CallFunction invokes a Function value with Arguments, used by methods
	// that accept a predicate/mapper/updater callback (find, map, fold,
	// Counter.update(fn), ...).
	CallFunction func(fn values.Function, args values.Arguments) values.Value
}

// Get returns the method named field on recv, or !ok if recv's kind has
// no such method (the caller should then try plain field access).
func Get(d Deps, recv values.Value, field string) (values.Function, bool) {
	switch rv := recv.(type) {
	case values.String:
		return stringMethod(d, rv, field)
	case values.Array:
		return arrayMethod(d, rv, field)
	case values.Dict:
		return dictMethod(d, rv, field)
	case values.Content:
		return contentMethod(d, rv, field)
	case values.Counter:
		return counterMethod(d, rv, field)
	case values.Color:
		return colorMethod(d, rv, field)
	case values.Function:
		return functionMethod(d, rv, field)
	case values.Selector:
		return selectorMethod(d, rv, field)
	case values.Arguments:
		return argumentsMethod(d, rv, field)
	}
	return values.Function{}, false
}

func method(name string, call values.Callable) values.Function {
	return values.NewFunction(nil, nil, call, name)
}

func argErr(name, msg string) {
	panic(errors.NewArgumentsError(name, msg))
}

func typeErr(name string, index int, expected, actual values.Kind) {
	panic(errors.NewIllegalArgumentType(name, index, expected.String(), actual.String()))
}

func arg(name string, args values.Arguments, i int) values.Value {
	if i >= len(args.Positional) {
		argErr(name, `missing required argument`)
	}
	return args.Positional[i]
}

func optArg(args values.Arguments, i int, def values.Value) values.Value {
	if i >= len(args.Positional) {
		return def
	}
	return args.Positional[i]
}

func wrapIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	return i
}

// --- String -----------------------------------------------------------

func stringMethod(d Deps, s values.String, field string) (values.Function, bool) {
	str := s.Go()
	runes := []rune(str)
	switch field {
	case `len`:
		return method(field, func(values.Arguments) values.Value {
			return values.WrapInteger(int64(len(runes)))
		}), true
	case `first`:
		return method(field, func(values.Arguments) values.Value {
			if len(runes) == 0 {
				argErr(field, `string is empty`)
			}
			return values.WrapString(string(runes[0]))
		}), true
	case `last`:
		return method(field, func(values.Arguments) values.Value {
			if len(runes) == 0 {
				argErr(field, `string is empty`)
			}
			return values.WrapString(string(runes[len(runes)-1]))
		}), true
	case `at`:
		return method(field, func(args values.Arguments) values.Value {
			idx, ok := arg(field, args, 0).(values.Integer)
			if !ok {
				typeErr(field, 0, values.KInteger, arg(field, args, 0).Kind())
			}
			i := wrapIndex(int(idx.Int()), len(runes))
			if i < 0 || i >= len(runes) {
				argErr(field, `index out of range`)
			}
			return values.WrapString(string(runes[i]))
		}), true
	case `slice`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapString(string(sliceRunes(runes, args)))
		}), true
	case `clusters`, `codepoints`:
		// Grapheme clustering is not implemented; both fall back to
		// per-codepoint chunking.
		return method(field, func(values.Arguments) values.Value {
			elems := make([]values.Value, len(runes))
			for i, r := range runes {
				elems[i] = values.WrapString(string(r))
			}
			return values.WrapArray(elems)
		}), true
	case `contains`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapBoolean(stringMatches(str, arg(field, args, 0)))
		}), true
	case `starts-with`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapBoolean(stringStartsWith(str, arg(field, args, 0)))
		}), true
	case `ends-with`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapBoolean(stringEndsWith(str, arg(field, args, 0)))
		}), true
	case `find`:
		return method(field, func(args values.Arguments) values.Value {
			m := findMatch(str, arg(field, args, 0))
			if m == nil {
				return values.None
			}
			return values.WrapString(m[0])
		}), true
	case `position`:
		return method(field, func(args values.Arguments) values.Value {
			idx := findIndex(str, arg(field, args, 0))
			if idx < 0 {
				return values.None
			}
			return values.WrapInteger(int64(idx))
		}), true
	case `match`:
		return method(field, func(args values.Arguments) values.Value {
			m := findMatch(str, arg(field, args, 0))
			if m == nil {
				return values.None
			}
			return matchDict(m)
		}), true
	case `matches`:
		return method(field, func(args values.Arguments) values.Value {
			ms := findAllMatches(str, arg(field, args, 0))
			elems := make([]values.Value, len(ms))
			for i, m := range ms {
				elems[i] = matchDict(m)
			}
			return values.WrapArray(elems)
		}), true
	case `replace`:
		return method(field, stringReplace(d, str, field)), true
	case `trim`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapString(stringTrim(str, args))
		}), true
	case `split`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapArray(stringSplit(str, optArg(args, 0, values.None)))
		}), true
	}
	return values.Function{}, false
}

func sliceRunes(runes []rune, args values.Arguments) []rune {
	length := len(runes)
	start := 0
	if len(args.Positional) > 0 {
		if iv, ok := args.Positional[0].(values.Integer); ok {
			start = wrapIndex(int(iv.Int()), length)
		}
	}
	end := length
	if len(args.Positional) > 1 {
		switch ev := args.Positional[1].(type) {
		case values.Integer:
			end = wrapIndex(int(ev.Int()), length)
		case values.NoneValue:
			end = length
		}
	}
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if end < start {
		return nil
	}
	return runes[start:end]
}

func asRegex(v values.Value) (*regexCompat, bool) {
	switch rv := v.(type) {
	case values.Regex:
		return &regexCompat{re: rv.Re}, true
	case values.String:
		return &regexCompat{literal: rv.Go()}, true
	}
	return nil, false
}

// regexCompat unifies a compiled Regex and a plain literal String behind
// one matcher, since every string search method accepts either.
type regexCompat struct {
	re      interface {
		FindStringIndex(string) []int
		FindAllStringIndex(string, int) [][]int
		MatchString(string) bool
	}
	literal string
}

func (rc *regexCompat) find(s string) []int {
	if rc.re != nil {
		return rc.re.FindStringIndex(s)
	}
	i := strings.Index(s, rc.literal)
	if i < 0 {
		return nil
	}
	return []int{i, i + len(rc.literal)}
}

func (rc *regexCompat) findAll(s string) [][]int {
	if rc.re != nil {
		return rc.re.FindAllStringIndex(s, -1)
	}
	var out [][]int
	start := 0
	for {
		i := strings.Index(s[start:], rc.literal)
		if i < 0 {
			break
		}
		lo, hi := start+i, start+i+len(rc.literal)
		out = append(out, []int{lo, hi})
		if len(rc.literal) == 0 {
			start = hi + 1
		} else {
			start = hi
		}
		if start > len(s) {
			break
		}
	}
	return out
}

func (rc *regexCompat) matches(s string) bool {
	if rc.re != nil {
		return rc.re.MatchString(s)
	}
	return strings.Contains(s, rc.literal)
}

func stringMatches(s string, needle values.Value) bool {
	rc, ok := asRegex(needle)
	if !ok {
		argErr(`contains`, `expected a string or regex`)
	}
	return rc.matches(s)
}

func stringStartsWith(s string, needle values.Value) bool {
	if sv, ok := needle.(values.String); ok {
		return strings.HasPrefix(s, sv.Go())
	}
	rc, ok := asRegex(needle)
	if !ok {
		argErr(`starts-with`, `expected a string or regex`)
	}
	m := rc.find(s)
	return m != nil && m[0] == 0
}

func stringEndsWith(s string, needle values.Value) bool {
	if sv, ok := needle.(values.String); ok {
		return strings.HasSuffix(s, sv.Go())
	}
	rc, ok := asRegex(needle)
	if !ok {
		argErr(`ends-with`, `expected a string or regex`)
	}
	ms := rc.findAll(s)
	if len(ms) == 0 {
		return false
	}
	last := ms[len(ms)-1]
	return last[1] == len(s)
}

func findMatch(s string, needle values.Value) []string {
	rc, ok := asRegex(needle)
	if !ok {
		argErr(`find`, `expected a string or regex`)
	}
	loc := rc.find(s)
	if loc == nil {
		return nil
	}
	return []string{s[loc[0]:loc[1]]}
}

func findIndex(s string, needle values.Value) int {
	rc, ok := asRegex(needle)
	if !ok {
		argErr(`position`, `expected a string or regex`)
	}
	loc := rc.find(s)
	if loc == nil {
		return -1
	}
	return loc[0]
}

func findAllMatches(s string, needle values.Value) [][]string {
	rc, ok := asRegex(needle)
	if !ok {
		argErr(`matches`, `expected a string or regex`)
	}
	locs := rc.findAll(s)
	out := make([][]string, len(locs))
	for i, loc := range locs {
		out[i] = []string{s[loc[0]:loc[1]]}
	}
	return out
}

func matchDict(m []string) values.Dict {
	d := values.NewDict(1)
	d.Set(`text`, values.WrapString(m[0]))
	return d
}

func stringReplace(d Deps, s, name string) values.Callable {
	return func(args values.Arguments) values.Value {
		rc, ok := asRegex(arg(name, args, 0))
		if !ok {
			argErr(name, `expected a string or regex pattern`)
		}
		count := -1
		if cv, present := args.Named.Get(`count`); present {
			if iv, ok := cv.(values.Integer); ok {
				count = int(iv.Int())
			}
		}
		replacement := args.Positional[1]
		locs := rc.findAll(s)
		var b strings.Builder
		last := 0
		done := 0
		for _, loc := range locs {
			if count >= 0 && done >= count {
				break
			}
			b.WriteString(s[last:loc[0]])
			switch rv := replacement.(type) {
			case values.String:
				b.WriteString(rv.Go())
			case values.Function:
				result := d.CallFunction(rv, values.NewArguments([]values.Value{values.WrapString(s[loc[0]:loc[1]])}, values.EmptyDict))
				sv, ok := result.(values.String)
				if !ok {
					argErr(name, `replacement function must return a string`)
				}
				b.WriteString(sv.Go())
			default:
				argErr(name, `replacement must be a string or function`)
			}
			last = loc[1]
			done++
		}
		b.WriteString(s[last:])
		return values.WrapString(b.String())
	}
}

func stringTrim(s string, args values.Arguments) string {
	at := `both`
	if av, ok := args.Named.Get(`at`); ok {
		if sv, ok := av.(values.String); ok {
			at = sv.Go()
		}
	}
	repeat := true
	if rv, ok := args.Named.Get(`repeat`); ok {
		if bv, ok := rv.(values.Boolean); ok {
			repeat = bool(bv)
		}
	}
	cut := func(str string, pred func(rune) bool, leading bool) string {
		if !repeat {
			rs := []rune(str)
			if leading {
				if len(rs) > 0 && pred(rs[0]) {
					return string(rs[1:])
				}
				return str
			}
			if len(rs) > 0 && pred(rs[len(rs)-1]) {
				return string(rs[:len(rs)-1])
			}
			return str
		}
		if leading {
			return strings.TrimLeftFunc(str, pred)
		}
		return strings.TrimRightFunc(str, pred)
	}
	pred := func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
	if len(args.Positional) > 0 {
		if sv, ok := args.Positional[0].(values.String); ok {
			target := sv.Go()
			pred = func(r rune) bool { return strings.ContainsRune(target, r) }
		}
	}
	switch at {
	case `start`:
		return cut(s, pred, true)
	case `end`:
		return cut(s, pred, false)
	default:
		return cut(cut(s, pred, true), pred, false)
	}
}

func stringSplit(s string, sep values.Value) []values.Value {
	var parts []string
	switch sv := sep.(type) {
	case values.NoneValue:
		for _, r := range s {
			parts = append(parts, string(r))
		}
	case values.String:
		if sv.Go() == `` {
			parts = append(parts, ``)
			for _, r := range s {
				parts = append(parts, string(r))
			}
			parts = append(parts, ``)
		} else {
			parts = strings.Split(s, sv.Go())
		}
	case values.Regex:
		parts = sv.Re.Split(s, -1)
	default:
		argErr(`split`, `expected a string, regex, or none`)
	}
	elems := make([]values.Value, len(parts))
	for i, p := range parts {
		elems[i] = values.WrapString(p)
	}
	return elems
}

// --- Array --------------------------------------------------------------

func arrayMethod(d Deps, a values.Array, field string) (values.Function, bool) {
	elems := a.Elements()
	switch field {
	case `len`:
		return method(field, func(values.Arguments) values.Value {
			return values.WrapInteger(int64(len(elems)))
		}), true
	case `first`:
		return method(field, func(values.Arguments) values.Value {
			if len(elems) == 0 {
				argErr(field, `array is empty`)
			}
			return elems[0]
		}), true
	case `last`:
		return method(field, func(values.Arguments) values.Value {
			if len(elems) == 0 {
				argErr(field, `array is empty`)
			}
			return elems[len(elems)-1]
		}), true
	case `at`:
		return method(field, func(args values.Arguments) values.Value {
			iv, ok := arg(field, args, 0).(values.Integer)
			if !ok {
				typeErr(field, 0, values.KInteger, arg(field, args, 0).Kind())
			}
			i := wrapIndex(int(iv.Int()), len(elems))
			if i < 0 || i >= len(elems) {
				if len(args.Positional) > 1 {
					return args.Positional[1]
				}
				argErr(field, `index out of range`)
			}
			return elems[i]
		}), true
	case `push`:
		return method(field, func(args values.Arguments) values.Value {
			d.UpdateVal(a.Append(arg(field, args, 0)))
			return values.None
		}), true
	case `pop`:
		return method(field, func(values.Arguments) values.Value {
			if len(elems) == 0 {
				argErr(field, `array is empty`)
			}
			last := elems[len(elems)-1]
			d.UpdateVal(values.WrapArray(elems[:len(elems)-1]))
			return last
		}), true
	case `slice`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapArray(sliceArray(elems, args))
		}), true
	case `split`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapArray(splitArray(elems, arg(field, args, 0)))
		}), true
	case `insert`:
		return method(field, func(args values.Arguments) values.Value {
			iv, ok := arg(field, args, 0).(values.Integer)
			if !ok {
				typeErr(field, 0, values.KInteger, arg(field, args, 0).Kind())
			}
			i := wrapIndex(int(iv.Int()), len(elems))
			if i < 0 || i > len(elems) {
				argErr(field, `index out of range`)
			}
			next := make([]values.Value, 0, len(elems)+1)
			next = append(next, elems[:i]...)
			next = append(next, arg(field, args, 1))
			next = append(next, elems[i:]...)
			d.UpdateVal(values.WrapArray(next))
			return values.None
		}), true
	case `remove`:
		return method(field, func(args values.Arguments) values.Value {
			iv, ok := arg(field, args, 0).(values.Integer)
			if !ok {
				typeErr(field, 0, values.KInteger, arg(field, args, 0).Kind())
			}
			i := wrapIndex(int(iv.Int()), len(elems))
			if i < 0 || i >= len(elems) {
				argErr(field, `index out of range`)
			}
			removed := elems[i]
			next := make([]values.Value, 0, len(elems)-1)
			next = append(next, elems[:i]...)
			next = append(next, elems[i+1:]...)
			d.UpdateVal(values.WrapArray(next))
			return removed
		}), true
	case `contains`:
		return method(field, func(args values.Arguments) values.Value {
			needle := arg(field, args, 0)
			for _, e := range elems {
				if values.Equal(e, needle) {
					return values.True
				}
			}
			return values.False
		}), true
	case `find`:
		return method(field, func(args values.Arguments) values.Value {
			fn := asFunction(field, arg(field, args, 0))
			for _, e := range elems {
				if isTruthyCall(d, fn, e) {
					return e
				}
			}
			return values.None
		}), true
	case `position`:
		return method(field, func(args values.Arguments) values.Value {
			fn := asFunction(field, arg(field, args, 0))
			for i, e := range elems {
				if isTruthyCall(d, fn, e) {
					return values.WrapInteger(int64(i))
				}
			}
			return values.None
		}), true
	case `filter`:
		return method(field, func(args values.Arguments) values.Value {
			fn := asFunction(field, arg(field, args, 0))
			var out []values.Value
			for _, e := range elems {
				if isTruthyCall(d, fn, e) {
					out = append(out, e)
				}
			}
			return values.WrapArray(out)
		}), true
	case `map`:
		return method(field, func(args values.Arguments) values.Value {
			fn := asFunction(field, arg(field, args, 0))
			out := make([]values.Value, len(elems))
			for i, e := range elems {
				out[i] = d.CallFunction(fn, values.NewArguments([]values.Value{e}, values.EmptyDict))
			}
			return values.WrapArray(out)
		}), true
	case `flatten`:
		return method(field, func(values.Arguments) values.Value {
			return values.WrapArray(flattenArray(elems))
		}), true
	case `enumerate`:
		return method(field, func(values.Arguments) values.Value {
			out := make([]values.Value, len(elems))
			for i, e := range elems {
				out[i] = values.WrapArray([]values.Value{values.WrapInteger(int64(i)), e})
			}
			return values.WrapArray(out)
		}), true
	case `fold`:
		return method(field, func(args values.Arguments) values.Value {
			acc := arg(field, args, 0)
			fn := asFunction(field, arg(field, args, 1))
			for _, e := range elems {
				acc = d.CallFunction(fn, values.NewArguments([]values.Value{acc, e}, values.EmptyDict))
			}
			return acc
		}), true
	case `any`:
		return method(field, func(args values.Arguments) values.Value {
			fn := asFunction(field, arg(field, args, 0))
			for _, e := range elems {
				if isTruthyCall(d, fn, e) {
					return values.True
				}
			}
			return values.False
		}), true
	case `all`:
		return method(field, func(args values.Arguments) values.Value {
			fn := asFunction(field, arg(field, args, 0))
			for _, e := range elems {
				if !isTruthyCall(d, fn, e) {
					return values.False
				}
			}
			return values.True
		}), true
	case `rev`:
		return method(field, func(values.Arguments) values.Value {
			out := make([]values.Value, len(elems))
			for i, e := range elems {
				out[len(elems)-1-i] = e
			}
			return values.WrapArray(out)
		}), true
	case `join`:
		return method(field, func(args values.Arguments) values.Value {
			return joinArray(elems, args)
		}), true
	case `sorted`:
		return method(field, func(args values.Arguments) values.Value {
			return values.WrapArray(sortedArray(d, elems, args))
		}), true
	case `zip`:
		return method(field, func(args values.Arguments) values.Value {
			other, ok := arg(field, args, 0).(values.Array)
			if !ok {
				typeErr(field, 0, values.KArray, arg(field, args, 0).Kind())
			}
			n := len(elems)
			if other.Len() < n {
				n = other.Len()
			}
			out := make([]values.Value, n)
			for i := 0; i < n; i++ {
				out[i] = values.WrapArray([]values.Value{elems[i], other.At(i)})
			}
			return values.WrapArray(out)
		}), true
	case `sum`:
		return method(field, func(args values.Arguments) values.Value {
			return foldArith(field, elems, optArg(args, 0, nil), values.MaybePlus)
		}), true
	case `product`:
		return method(field, func(args values.Arguments) values.Value {
			return foldArith(field, elems, optArg(args, 0, nil), values.MaybeTimes)
		}), true
	}
	return values.Function{}, false
}

func asFunction(name string, v values.Value) values.Function {
	fn, ok := v.(values.Function)
	if !ok {
		typeErr(name, 0, values.KFunction, v.Kind())
	}
	return fn
}

func isTruthyCall(d Deps, fn values.Function, e values.Value) bool {
	result := d.CallFunction(fn, values.NewArguments([]values.Value{e}, values.EmptyDict))
	b, ok := values.IsTruthy(result)
	return ok && b
}

func sliceArray(elems []values.Value, args values.Arguments) []values.Value {
	length := len(elems)
	start := 0
	if len(args.Positional) > 0 {
		if iv, ok := args.Positional[0].(values.Integer); ok {
			start = wrapIndex(int(iv.Int()), length)
		}
	}
	end := length
	if len(args.Positional) > 1 {
		if iv, ok := args.Positional[1].(values.Integer); ok {
			end = wrapIndex(int(iv.Int()), length)
		}
	}
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if end < start {
		return nil
	}
	out := make([]values.Value, end-start)
	copy(out, elems[start:end])
	return out
}

func splitArray(elems []values.Value, sep values.Value) []values.Value {
	var out []values.Value
	var cur []values.Value
	for _, e := range elems {
		if values.Equal(e, sep) {
			out = append(out, values.WrapArray(cur))
			cur = nil
			continue
		}
		cur = append(cur, e)
	}
	out = append(out, values.WrapArray(cur))
	return out
}

func flattenArray(elems []values.Value) []values.Value {
	var out []values.Value
	for _, e := range elems {
		if sub, ok := e.(values.Array); ok {
			out = append(out, flattenArray(sub.Elements())...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

func joinArray(elems []values.Value, args values.Arguments) values.Value {
	sep := values.Value(values.WrapString(``))
	if len(args.Positional) > 0 {
		sep = args.Positional[0]
	}
	var last values.Value
	if lv, ok := args.Named.Get(`last`); ok {
		last = lv
	}
	if len(elems) == 0 {
		return values.WrapString(``)
	}
	acc := elems[0]
	for i := 1; i < len(elems); i++ {
		joiner := sep
		if i == len(elems)-1 && last != nil {
			joiner = last
		}
		combined, ok := values.MaybePlus(acc, joiner)
		if !ok {
			argErr(`join`, `incompatible element type for join`)
		}
		combined, ok = values.MaybePlus(combined, elems[i])
		if !ok {
			argErr(`join`, `incompatible element type for join`)
		}
		acc = combined
	}
	return acc
}

func sortedArray(d Deps, elems []values.Value, args values.Arguments) []values.Value {
	out := make([]values.Value, len(elems))
	copy(out, elems)
	var key values.Function
	hasKey := false
	if kv, ok := args.Named.Get(`key`); ok {
		key, hasKey = kv.(values.Function)
	}
	keyOf := func(v values.Value) values.Value {
		if hasKey {
			return d.CallFunction(key, values.NewArguments([]values.Value{v}, values.EmptyDict))
		}
		return v
	}
	sort.SliceStable(out, func(i, j int) bool {
		lt, ok := values.LessThan(keyOf(out[i]), keyOf(out[j]))
		return ok && lt
	})
	return out
}

func foldArith(name string, elems []values.Value, def values.Value, op func(a, b values.Value) (values.Value, bool)) values.Value {
	if len(elems) == 0 {
		if def != nil {
			return def
		}
		argErr(name, `array is empty and no default was given`)
	}
	acc := elems[0]
	for i := 1; i < len(elems); i++ {
		v, ok := op(acc, elems[i])
		if !ok {
			argErr(name, `incompatible element type`)
		}
		acc = v
	}
	return acc
}

// --- Dict -----------------------------------------------------------

// dictMethodNames lists the reserved method names that shadow a Dict key
// of the same name; everything else falls through to field access.
var dictMethodNames = map[string]bool{
	`len`: true, `at`: true, `insert`: true, `keys`: true,
	`values`: true, `pairs`: true, `remove`: true,
}

func dictMethod(d Deps, dv values.Dict, field string) (values.Function, bool) {
	if !dictMethodNames[field] {
		return values.Function{}, false
	}
	switch field {
	case `len`:
		return method(field, func(values.Arguments) values.Value {
			return values.WrapInteger(int64(dv.Len()))
		}), true
	case `at`:
		return method(field, func(args values.Arguments) values.Value {
			key, ok := arg(field, args, 0).(values.String)
			if !ok {
				typeErr(field, 0, values.KString, arg(field, args, 0).Kind())
			}
			if v, ok := dv.Get(key.Go()); ok {
				return v
			}
			if len(args.Positional) > 1 {
				return args.Positional[1]
			}
			argErr(field, `key not found: `+key.Go())
			return values.None
		}), true
	case `insert`:
		return method(field, func(args values.Arguments) values.Value {
			key, ok := arg(field, args, 0).(values.String)
			if !ok {
				typeErr(field, 0, values.KString, arg(field, args, 0).Kind())
			}
			next := dv.Copy()
			next.Set(key.Go(), arg(field, args, 1))
			d.UpdateVal(next)
			return values.None
		}), true
	case `keys`:
		return method(field, func(values.Arguments) values.Value {
			ks := dv.Keys()
			out := make([]values.Value, len(ks))
			for i, k := range ks {
				out[i] = values.WrapString(k)
			}
			return values.WrapArray(out)
		}), true
	case `values`:
		return method(field, func(values.Arguments) values.Value {
			es := dv.Entries()
			out := make([]values.Value, len(es))
			for i, e := range es {
				out[i] = e.Value
			}
			return values.WrapArray(out)
		}), true
	case `pairs`:
		return method(field, func(values.Arguments) values.Value {
			es := dv.Entries()
			out := make([]values.Value, len(es))
			for i, e := range es {
				out[i] = values.WrapArray([]values.Value{values.WrapString(e.Key), e.Value})
			}
			return values.WrapArray(out)
		}), true
	case `remove`:
		return method(field, func(args values.Arguments) values.Value {
			key, ok := arg(field, args, 0).(values.String)
			if !ok {
				typeErr(field, 0, values.KString, arg(field, args, 0).Kind())
			}
			next := dv.Copy()
			removed, ok := next.Remove(key.Go())
			if !ok {
				argErr(field, `key not found: `+key.Go())
			}
			d.UpdateVal(next)
			return removed
		}), true
	}
	return values.Function{}, false
}

// --- Content --------------------------------------------------------

func contentMethod(d Deps, c values.Content, field string) (values.Function, bool) {
	switch field {
	case `func`:
		return method(field, func(values.Arguments) values.Value {
			if len(c.Seq.Nodes) == 1 && c.Seq.Nodes[0].NKind == values.NodeElt {
				return values.NewFunction(strPtr(c.Seq.Nodes[0].Name), nil, nil, c.Seq.Nodes[0].Name)
			}
			return values.None
		}), true
	case `has`:
		return method(field, func(args values.Arguments) values.Value {
			name, ok := arg(field, args, 0).(values.String)
			if !ok {
				typeErr(field, 0, values.KString, arg(field, args, 0).Kind())
			}
			if len(c.Seq.Nodes) != 1 || c.Seq.Nodes[0].NKind != values.NodeElt {
				return values.False
			}
			_, present := c.Seq.Nodes[0].Fields.Get(name.Go())
			return values.WrapBoolean(present)
		}), true
	case `at`:
		return method(field, func(args values.Arguments) values.Value {
			name, ok := arg(field, args, 0).(values.String)
			if !ok {
				typeErr(field, 0, values.KString, arg(field, args, 0).Kind())
			}
			if len(c.Seq.Nodes) == 1 && c.Seq.Nodes[0].NKind == values.NodeElt {
				if v, ok := c.Seq.Nodes[0].Fields.Get(name.Go()); ok {
					return v
				}
			}
			if len(args.Positional) > 1 {
				return args.Positional[1]
			}
			argErr(field, `field not found: `+name.Go())
			return values.None
		}), true
	case `text`:
		return method(field, func(values.Arguments) values.Value {
			var b strings.Builder
			for _, n := range c.Seq.Nodes {
				if n.NKind == values.NodeTxt {
					b.WriteString(n.Text)
				}
			}
			return values.WrapString(b.String())
		}), true
	case `children`:
		return method(field, func(values.Arguments) values.Value {
			out := make([]values.Value, len(c.Seq.Nodes))
			for i, n := range c.Seq.Nodes {
				out[i] = values.WrapContent(values.NewContentSeq([]values.Node{n}))
			}
			return values.WrapArray(out)
		}), true
	}
	return values.Function{}, false
}

func strPtr(s string) *string { return &s }

// --- Counter ----------------------------------------------------------

func counterMethod(d Deps, c values.Counter, field string) (values.Function, bool) {
	switch field {
	case `display`:
		return method(field, func(values.Arguments) values.Value {
			return d.CounterGet(c.Key)
		}), true
	case `step`:
		return method(field, func(values.Arguments) values.Value {
			cur := d.CounterGet(c.Key)
			iv, ok := cur.(values.Integer)
			if !ok {
				iv = 0
			}
			d.CounterSet(c.Key, values.WrapInteger(iv.Int()+1))
			return values.None
		}), true
	case `update`:
		return method(field, func(args values.Arguments) values.Value {
			switch nv := arg(field, args, 0).(type) {
			case values.Function:
				cur := d.CounterGet(c.Key)
				next := d.CallFunction(nv, values.NewArguments([]values.Value{cur}, values.EmptyDict))
				d.CounterSet(c.Key, next)
			default:
				d.CounterSet(c.Key, nv)
			}
			return values.None
		}), true
	// at and final are unimplemented in the evaluator this ports, and stay
	// that way here; both surface the same error rather than silently
	// returning a wrong answer.
	case `at`, `final`:
		return method(field, func(values.Arguments) values.Value {
			argErr(field, `counter.`+field+` is not implemented`)
			return values.None
		}), true
	}
	return values.Function{}, false
}

// --- Color --------------------------------------------------------------

func colorMethod(d Deps, c values.Color, field string) (values.Function, bool) {
	switch field {
	case `darken`:
		return method(field, func(args values.Arguments) values.Value {
			return c.Darken(ratioArg(field, args, 0))
		}), true
	case `lighten`:
		return method(field, func(args values.Arguments) values.Value {
			return c.Lighten(ratioArg(field, args, 0))
		}), true
	case `negate`:
		return method(field, func(values.Arguments) values.Value {
			return c.Negate()
		}), true
	}
	return values.Function{}, false
}

func ratioArg(name string, args values.Arguments, i int) float64 {
	v := arg(name, args, i)
	switch rv := v.(type) {
	case values.Ratio:
		return rv.Float()
	case values.Float:
		return float64(rv)
	case values.Integer:
		return float64(rv.Int())
	}
	typeErr(name, i, values.KRatio, v.Kind())
	return 0
}

// --- Function -------------------------------------------------------

func functionMethod(d Deps, f values.Function, field string) (values.Function, bool) {
	switch field {
	case `with`:
		return method(field, func(args values.Arguments) values.Value {
			return f.WithDefaults(args)
		}), true
	case `where`:
		return method(field, func(args values.Arguments) values.Value {
			name, ok := f.IsElement()
			if !ok {
				argErr(field, `where() requires an element function`)
			}
			fields := values.NewDict(args.Named.Len())
			args.Named.EachPair(func(k string, v values.Value) { fields.Set(k, v) })
			return values.NewElementSelector(name, fields)
		}), true
	}
	return values.Function{}, false
}

// --- Selector -------------------------------------------------------

func selectorMethod(d Deps, s values.Selector, field string) (values.Function, bool) {
	switch field {
	case `or`:
		return method(field, func(args values.Arguments) values.Value {
			other, ok := arg(field, args, 0).(values.Selector)
			if !ok {
				typeErr(field, 0, values.KSelector, arg(field, args, 0).Kind())
			}
			return s.Or(other)
		}), true
	case `and`:
		return method(field, func(args values.Arguments) values.Value {
			other, ok := arg(field, args, 0).(values.Selector)
			if !ok {
				typeErr(field, 0, values.KSelector, arg(field, args, 0).Kind())
			}
			return s.And(other)
		}), true
	case `before`:
		return method(field, func(args values.Arguments) values.Value {
			other, ok := arg(field, args, 0).(values.Selector)
			if !ok {
				typeErr(field, 0, values.KSelector, arg(field, args, 0).Kind())
			}
			return s.Before(other)
		}), true
	case `after`:
		return method(field, func(args values.Arguments) values.Value {
			other, ok := arg(field, args, 0).(values.Selector)
			if !ok {
				typeErr(field, 0, values.KSelector, arg(field, args, 0).Kind())
			}
			return s.After(other)
		}), true
	}
	return values.Function{}, false
}

// --- Arguments ------------------------------------------------------

func argumentsMethod(d Deps, a values.Arguments, field string) (values.Function, bool) {
	switch field {
	case `pos`:
		return method(field, func(values.Arguments) values.Value {
			return values.WrapArray(a.Positional)
		}), true
	case `named`:
		return method(field, func(values.Arguments) values.Value {
			return a.Named
		}), true
	}
	return values.Function{}, false
}
