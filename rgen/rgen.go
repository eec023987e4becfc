package rgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vugu/vgnav"
)

// OutputFileName is the name of the file written by Generate.
const OutputFileName = "0_routes_vgen.go"

// New returns a new Generator instance.
func New() *Generator {
	return &Generator{}
}

// Generator writes a route list for a given directory, either from a
// routes.toml manifest or from the view files found in it.
type Generator struct {
	dir         string                       // directory to generate in
	packageName string                       // Go package name for the output file
	pathFunc    func(fileName string) string // function derive path from file name
	includeFunc func(fileName string) bool   // function to determine if a file should be included
}

// SetDir assigns the directory to generate in.
func (g *Generator) SetDir(dir string) *Generator {
	g.dir = dir
	return g
}

// SetPackageName sets the package clause of the generated file. If not set the
// manifest's package is used, falling back to the base name of the directory.
func (g *Generator) SetPackageName(packageName string) *Generator {
	g.packageName = packageName
	return g
}

// SetPathFunc sets a function which transforms a view file name into a route path.
// If not set, DefaultPathFunc will be used.
func (g *Generator) SetPathFunc(f func(fileName string) string) *Generator {
	g.pathFunc = f
	return g
}

// SetIncludeFunc sets the function which determines which files become routes
// when there is no manifest. If not set, DefaultIncludeFunc will be used.
func (g *Generator) SetIncludeFunc(f func(fileName string) bool) *Generator {
	g.includeFunc = f
	return g
}

// DefaultPathFunc will return the fileName with any suffix removed and a slash prepended.
// E.g. file name "example.vugu" will return "/example".  The special case of index.vugu
// will return "/".
func DefaultPathFunc(fileName string) string {
	if fileName == "index.vugu" {
		return "/"
	}
	return "/" + strings.TrimSuffix(fileName, path.Ext(fileName))
}

// DefaultIncludeFunc will return true for any file which ends with .vugu.
func DefaultIncludeFunc(fileName string) bool {
	return strings.HasSuffix(fileName, ".vugu")
}

// Routes returns the routes Generate would write, validated with vgnav.Register.
func (g *Generator) Routes() ([]vgnav.Route, error) {
	_, rl, err := g.collect()
	return rl, err
}

func (g *Generator) collect() (string, []vgnav.Route, error) {

	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return "", nil, err
	}

	var pkg string
	var rl []vgnav.Route

	m, err := ReadManifest(filepath.Join(dir, ManifestFileName))
	switch {
	case err == nil:
		pkg = m.Package
		rl = m.RouteList()
	case errors.Is(err, os.ErrNotExist):
		rl, err = g.scanDir(dir)
		if err != nil {
			return "", nil, err
		}
	default:
		return "", nil, err
	}

	if g.packageName != "" {
		pkg = g.packageName
	}
	if pkg == "" {
		pkg = filepath.Base(dir)
	}

	if _, err := vgnav.Register(rl...); err != nil {
		return "", nil, fmt.Errorf("routes in %q: %w", dir, err)
	}

	return pkg, rl, nil
}

// scanDir turns each included file into a route. index files sort first
// so they become the root route.
func (g *Generator) scanDir(dir string) ([]vgnav.Route, error) {

	includeFunc := g.includeFunc
	if includeFunc == nil {
		includeFunc = DefaultIncludeFunc
	}
	pathFunc := g.pathFunc
	if pathFunc == nil {
		pathFunc = DefaultPathFunc
	}

	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var fileNames []string
	for _, de := range des {
		if de.IsDir() || !includeFunc(de.Name()) {
			continue
		}
		fileNames = append(fileNames, de.Name())
	}

	sort.SliceStable(fileNames, func(i, j int) bool {
		ii, ji := isIndex(fileNames[i]), isIndex(fileNames[j])
		if ii != ji {
			return ii
		}
		return fileNames[i] < fileNames[j]
	})

	ret := make([]vgnav.Route, 0, len(fileNames))
	for _, fn := range fileNames {
		name := structName(fn)
		ret = append(ret, vgnav.Route{
			Path: pathFunc(fn),
			Name: name,
			View: vgnav.ViewID(name),
		})
	}

	return ret, nil
}

func isIndex(fileName string) bool {
	return strings.TrimSuffix(fileName, path.Ext(fileName)) == "index"
}

// Generate does the route generation.
func (g *Generator) Generate() error {

	pkg, rl, err := g.collect()
	if err != nil {
		return err
	}

	b, err := render(pkg, rl)
	if err != nil {
		return err
	}

	outPath := filepath.Join(g.dir, OutputFileName)
	err = os.WriteFile(outPath, b, 0644)
	if err != nil {
		return fmt.Errorf("error writing %q: %w", outPath, err)
	}

	return nil
}

var outTemplate = template.Must(template.New(OutputFileName).Parse(`package {{.Package}}

// WARNING: This file was generated by vgnav/rgen. Do not modify.

import "github.com/vugu/vgnav"

// vgRouteList is the generated route list for this package, in declaration order.
// The first entry is the root route.
var vgRouteList = []vgnav.Route{
{{range .Routes}}	{Path: {{printf "%q" .Path}}, Name: {{printf "%q" .Name}}, View: {{printf "%q" .View}}},
{{end}}}

// Routes returns the generated routes in declaration order.
func Routes() []vgnav.Route {
	return append([]vgnav.Route(nil), vgRouteList...)
}

// MakeTable registers the generated routes.
func MakeTable() (*vgnav.Table, error) {
	return vgnav.Register(vgRouteList...)
}
`))

func render(pkg string, rl []vgnav.Route) ([]byte, error) {

	var buf bytes.Buffer
	err := outTemplate.Execute(&buf, map[string]interface{}{
		"Package": pkg,
		"Routes":  rl,
	})
	if err != nil {
		return nil, err
	}

	b, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("error formatting generated routes: %w; full output:\n%s", err, buf.Bytes())
	}

	return b, nil
}

func structName(s string) string {
	// same transform vugu applies to component file names
	return fnameToGoTypeName(s)
}

func fnameToGoTypeName(s string) string {
	s = strings.Split(s, ".")[0] // remove file extension if present
	parts := strings.Split(s, "-")
	for i := range parts {
		p := parts[i]
		if len(p) > 0 {
			p = strings.ToUpper(p[:1]) + p[1:]
		}
		parts[i] = p
	}
	return strings.Join(parts, "")
}
