// Package loader implements loadModule (spec.md §4.8): resolving an
// import path literal to source text, parsing it, and evaluating it in a
// fresh, isolated evaluator state to produce a module's exports. It also
// implements the versioned package import supplement (SPEC_FULL.md §3.1):
// `@namespace/name:version` import specifiers resolved against a package
// cache directory instead of a relative path.
//
// The actual parse and evaluate steps are supplied by the caller (Deps):
// this package never imports the evaluator, keeping it a leaf the
// evaluator depends on rather than the reverse.
package loader

import (
	"path"
	"strings"

	"github.com/the-dr-lazy/typst-core/semver"
	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

// Deps are the callbacks the evaluator supplies.
type Deps struct {
	// LoadBytes reads the source text at a resolved path. Absent (nil) in
	// the sandboxed state the `eval` built-in constructs, matching spec.md
	// §4.9's "lacks loadBytes" requirement.
	LoadBytes func(resolvedPath string) (string, error)
	// ParseMarkup parses source text into a Markup stream, an external
	// collaborator this package never implements itself.
	ParseMarkup func(source string) ([]syntax.Markup, error)
	// EvaluateModule runs ms in a freshly constructed evaluator state with
	// its own environment, handing it loadBytes explicitly, and returns the
	// innermost frame's bindings as the module's Dict of exports.
	EvaluateModule func(ms []syntax.Markup, loadBytes func(resolvedPath string) (string, error)) (values.Dict, error)
	// PackageRoot is the configurable root directory versioned imports
	// resolve under: <root>/<namespace>/<name>/<version>/lib.typ.
	PackageRoot string
	// ListInstalledVersions returns the version strings available for
	// namespace/name under PackageRoot, used to pick the highest version
	// matching a range specifier.
	ListInstalledVersions func(namespace, name string) ([]string, error)
}

// LoadModule resolves pathLiteral relative to currentSourceName (a plain
// relative path) or, for a `@namespace/name:version` specifier, against
// PackageRoot (SPEC_FULL.md §3.1), then parses and evaluates it.
func LoadModule(d Deps, currentSourceName, pathLiteral string) (values.Module, error) {
	if d.LoadBytes == nil {
		return values.Module{}, errUnimplemented(`loadModule: loadBytes is unavailable in this evaluator state`)
	}
	resolvedPath, moduleID, err := resolve(d, currentSourceName, pathLiteral)
	if err != nil {
		return values.Module{}, err
	}
	text, err := d.LoadBytes(resolvedPath)
	if err != nil {
		return values.Module{}, err
	}
	ms, err := d.ParseMarkup(text)
	if err != nil {
		return values.Module{}, err
	}
	exports, err := d.EvaluateModule(ms, d.LoadBytes)
	if err != nil {
		return values.Module{}, err
	}
	return values.NewModule(moduleID, exports), nil
}

func errUnimplemented(msg string) error { return pathError(msg) }

type pathError string

func (e pathError) Error() string { return string(e) }

// resolve computes the filesystem path and module identifier a path
// literal names. A leading `@` selects the versioned-package form; any
// other literal is resolved relative to currentSourceName the way
// spec.md §4.8's replaceFileName does.
func resolve(d Deps, currentSourceName, pathLiteral string) (resolvedPath, moduleID string, err error) {
	if strings.HasPrefix(pathLiteral, `@`) {
		return resolveVersioned(d, pathLiteral)
	}
	base := replaceFileName(currentSourceName, pathLiteral)
	return base, moduleName(base), nil
}

// replaceFileName swaps the file component of base for pathLiteral,
// keeping base's directory, the shape spec.md §4.8 names directly.
func replaceFileName(base, pathLiteral string) string {
	dir := path.Dir(base)
	if dir == `.` && !strings.Contains(base, `/`) {
		return pathLiteral
	}
	return path.Join(dir, pathLiteral)
}

func moduleName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

// resolveVersioned parses an `@namespace/name:version` specifier,
// selects the highest installed version matching the constraint, and
// returns <PackageRoot>/<namespace>/<name>/<version>/lib.typ.
func resolveVersioned(d Deps, spec string) (resolvedPath, moduleID string, err error) {
	namespace, name, versionSpec, err := parseVersionedSpec(spec)
	if err != nil {
		return ``, ``, err
	}
	if d.ListInstalledVersions == nil {
		return ``, ``, pathError(`loadModule: no package cache configured for versioned imports`)
	}
	versions, err := d.ListInstalledVersions(namespace, name)
	if err != nil {
		return ``, ``, err
	}
	best, err := selectBestVersion(versions, versionSpec)
	if err != nil {
		return ``, ``, err
	}
	resolvedPath = path.Join(d.PackageRoot, namespace, name, best, `lib.typ`)
	return resolvedPath, name, nil
}

// parseVersionedSpec splits `@namespace/name:versionSpec` into its three
// parts.
func parseVersionedSpec(spec string) (namespace, name, versionSpec string, err error) {
	rest := strings.TrimPrefix(spec, `@`)
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return ``, ``, ``, pathError(`malformed package import: missing "/" in ` + spec)
	}
	namespace = rest[:slash]
	afterSlash := rest[slash+1:]
	colon := strings.IndexByte(afterSlash, ':')
	if colon < 0 {
		return ``, ``, ``, pathError(`malformed package import: missing version in ` + spec)
	}
	name = afterSlash[:colon]
	versionSpec = afterSlash[colon+1:]
	return namespace, name, versionSpec, nil
}

// selectBestVersion parses versionSpec as either an exact version or a
// range, and returns the highest installed version satisfying it.
func selectBestVersion(installed []string, versionSpec string) (string, error) {
	if exact, err := semver.ParseVersion(versionSpec); err == nil {
		for _, v := range installed {
			if pv, err := semver.ParseVersion(v); err == nil && pv.Equals(exact) {
				return v, nil
			}
		}
		return ``, pathError(`no installed version matches ` + versionSpec)
	}
	vr, err := semver.ParseVersionRange(versionSpec)
	if err != nil {
		return ``, pathError(`malformed version range: ` + versionSpec)
	}
	var best *semver.Version
	var bestStr string
	for _, v := range installed {
		pv, err := semver.ParseVersion(v)
		if err != nil || !vr.Includes(pv) {
			continue
		}
		if best == nil || pv.CompareTo(best) > 0 {
			best = pv
			bestStr = v
		}
	}
	if best == nil {
		return ``, pathError(`no installed version satisfies ` + versionSpec)
	}
	return bestStr, nil
}
