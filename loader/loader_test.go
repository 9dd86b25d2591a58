package loader

import (
	"testing"

	"github.com/the-dr-lazy/typst-core/syntax"
	"github.com/the-dr-lazy/typst-core/values"
)

func stubDeps(text string) Deps {
	return Deps{
		LoadBytes:   func(string) (string, error) { return text, nil },
		ParseMarkup: func(string) ([]syntax.Markup, error) { return nil, nil },
		EvaluateModule: func(ms []syntax.Markup, loadBytes func(string) (string, error)) (values.Dict, error) {
			d := values.NewDict(1)
			d.Set(`x`, values.WrapInteger(1))
			return d, nil
		},
	}
}

func TestLoadModuleRelativePath(t *testing.T) {
	mod, err := LoadModule(stubDeps(`let x = 1`), `main.typ`, `util.typ`)
	if err != nil {
		t.Fatal(err)
	}
	if mod.Ident != `util` {
		t.Errorf(`Ident = %q, want "util"`, mod.Ident)
	}
	if v, ok := mod.Exports.Get(`x`); !ok || v.(values.Integer).Int() != 1 {
		t.Errorf(`Exports["x"] = %v, %v`, v, ok)
	}
}

func TestLoadModuleSandboxedRejectsWithoutLoadBytes(t *testing.T) {
	d := stubDeps(``)
	d.LoadBytes = nil
	if _, err := LoadModule(d, `main.typ`, `util.typ`); err == nil {
		t.Error(`expected an error when loadBytes is unavailable`)
	}
}

func TestReplaceFileNameKeepsDirectory(t *testing.T) {
	got := replaceFileName(`docs/main.typ`, `util.typ`)
	if got != `docs/util.typ` {
		t.Errorf(`replaceFileName = %q, want "docs/util.typ"`, got)
	}
}

func TestParseVersionedSpec(t *testing.T) {
	ns, name, vs, err := parseVersionedSpec(`@preview/cetz:0.2.0`)
	if err != nil {
		t.Fatal(err)
	}
	if ns != `preview` || name != `cetz` || vs != `0.2.0` {
		t.Errorf(`parseVersionedSpec = %q, %q, %q`, ns, name, vs)
	}
}

func TestSelectBestVersionPicksHighestInRange(t *testing.T) {
	got, err := selectBestVersion([]string{`0.1.0`, `0.2.0`, `0.3.0`}, `>=0.1.0 <0.3.0`)
	if err != nil {
		t.Fatal(err)
	}
	if got != `0.2.0` {
		t.Errorf(`selectBestVersion = %q, want "0.2.0"`, got)
	}
}

func TestLoadModuleVersionedImport(t *testing.T) {
	d := stubDeps(`body`)
	d.PackageRoot = `/pkgs`
	d.ListInstalledVersions = func(namespace, name string) ([]string, error) {
		if namespace != `preview` || name != `cetz` {
			t.Fatalf(`unexpected namespace/name: %s/%s`, namespace, name)
		}
		return []string{`0.1.0`, `0.2.0`}, nil
	}
	mod, err := LoadModule(d, `main.typ`, `@preview/cetz:0.2.0`)
	if err != nil {
		t.Fatal(err)
	}
	if mod.Ident != `cetz` {
		t.Errorf(`Ident = %q, want "cetz"`, mod.Ident)
	}
}
