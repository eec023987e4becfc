package rgen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vugu/vgnav"
)

const testManifest = `package = "approutes"

[[route]]
name = "Home"
path = "/"

[[route]]
name = "Setting"
path = "/setting"
view = "SettingPage"
`

func TestGenerateFromManifest(t *testing.T) {

	dir := t.TempDir()
	must(os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(testManifest), 0644))

	err := New().SetDir(dir).Generate()
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, OutputFileName))
	require.NoError(t, err)
	out := string(b)
	t.Logf("OUTPUT:\n%s", out)

	assert.True(t, strings.HasPrefix(out, "package approutes\n"))
	assert.Contains(t, out, `{Path: "/", Name: "Home", View: "Home"},`)
	assert.Contains(t, out, `{Path: "/setting", Name: "Setting", View: "SettingPage"},`)
	assert.Contains(t, out, "func MakeTable() (*vgnav.Table, error) {")
	assert.Less(t, strings.Index(out, `"Home"`), strings.Index(out, `"Setting"`))
}

func TestGenerateFromFiles(t *testing.T) {

	dir := filepath.Join(t.TempDir(), "pages")
	must(os.MkdirAll(filepath.Join(dir, "section1"), 0755))
	for _, fn := range []string{"page1.vugu", "index.vugu", "page-a.vugu", "notes.txt", "section1/index.vugu"} {
		must(os.WriteFile(filepath.Join(dir, fn), []byte("<div></div>"), 0644))
	}

	g := New().SetDir(dir)
	rl, err := g.Routes()
	require.NoError(t, err)
	assert.Equal(t, []vgnav.Route{
		{Path: "/", Name: "Index", View: "Index"},
		{Path: "/page-a", Name: "PageA", View: "PageA"},
		{Path: "/page1", Name: "Page1", View: "Page1"},
	}, rl)

	require.NoError(t, g.SetPackageName("views").Generate())
	b, err := os.ReadFile(filepath.Join(dir, OutputFileName))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "package views\n"))
}

func TestGenerateCustomFuncs(t *testing.T) {

	dir := t.TempDir()
	for _, fn := range []string{"home.html", "api.html"} {
		must(os.WriteFile(filepath.Join(dir, fn), nil, 0644))
	}

	rl, err := New().
		SetDir(dir).
		SetIncludeFunc(func(fileName string) bool { return strings.HasSuffix(fileName, ".html") }).
		SetPathFunc(func(fileName string) string {
			if fileName == "home.html" {
				return "/"
			}
			return "/" + strings.TrimSuffix(fileName, ".html")
		}).
		Routes()
	require.NoError(t, err)
	assert.Equal(t, []vgnav.Route{
		{Path: "/api", Name: "Api", View: "Api"},
		{Path: "/", Name: "Home", View: "Home"},
	}, rl)
}

func TestGenerateInvalid(t *testing.T) {

	var tlist = []struct {
		name     string
		manifest string
		check    func(err error) bool
	}{
		{
			"duplicate path",
			"[[route]]\nname = \"A\"\npath = \"/\"\n[[route]]\nname = \"B\"\npath = \"/\"\n",
			func(err error) bool { var e *vgnav.DuplicatePathError; return errors.As(err, &e) },
		},
		{
			"duplicate name",
			"[[route]]\nname = \"A\"\npath = \"/\"\n[[route]]\nname = \"A\"\npath = \"/b\"\n",
			func(err error) bool { var e *vgnav.DuplicateNameError; return errors.As(err, &e) },
		},
		{
			"empty",
			"package = \"x\"\n",
			func(err error) bool { return errors.Is(err, vgnav.ErrEmptyTable) },
		},
		{
			"unknown key",
			"[[route]]\nname = \"A\"\npath = \"/\"\ncomponent = \"A\"\n",
			func(err error) bool { return strings.Contains(err.Error(), "route.component") },
		},
	}

	for _, ti := range tlist {
		t.Run(ti.name, func(t *testing.T) {
			dir := t.TempDir()
			must(os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(ti.manifest), 0644))
			err := New().SetDir(dir).Generate()
			require.Error(t, err)
			assert.True(t, ti.check(err), "unexpected error: %v", err)
			_, statErr := os.Stat(filepath.Join(dir, OutputFileName))
			assert.True(t, os.IsNotExist(statErr), "nothing written on error")
		})
	}
}

func TestManifestTable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "routes.toml")
	must(os.WriteFile(p, []byte(testManifest), 0644))
	table, err := Table(p)
	require.NoError(t, err)
	rt, ok := table.ByName("Setting")
	assert.True(t, ok)
	assert.Equal(t, vgnav.ViewID("SettingPage"), rt.View)

	_, err = Table(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDefaultPathFunc(t *testing.T) {
	assert.Equal(t, "/", DefaultPathFunc("index.vugu"))
	assert.Equal(t, "/page-a", DefaultPathFunc("page-a.vugu"))
	assert.Equal(t, "PageA", structName("page-a.vugu"))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
