package rgen

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vugu/vgnav"
)

// ManifestFileName is the manifest Generate looks for in its directory.
const ManifestFileName = "routes.toml"

// Manifest is a route table written as TOML:
//
//	package = "approutes"
//
//	[[route]]
//	name = "Home"
//	path = "/"
//
//	[[route]]
//	name = "Setting"
//	path = "/setting"
//	view = "SettingPage"
type Manifest struct {
	Package string          `toml:"package"`
	Routes  []ManifestRoute `toml:"route"`
}

// ManifestRoute is one [[route]] entry. View defaults to Name.
type ManifestRoute struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
	View string `toml:"view"`
}

// ReadManifest reads and decodes the manifest file at p.
func ReadManifest(p string) (*Manifest, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return m, nil
}

// DecodeManifest decodes a manifest. Unknown keys are an error.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	md, err := toml.NewDecoder(r).Decode(&m)
	if err != nil {
		return nil, err
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown manifest keys: %s", strings.Join(keys, ", "))
	}
	return &m, nil
}

// RouteList converts the manifest entries to routes, in order.
func (m *Manifest) RouteList() []vgnav.Route {
	ret := make([]vgnav.Route, 0, len(m.Routes))
	for _, mr := range m.Routes {
		view := mr.View
		if view == "" {
			view = mr.Name
		}
		ret = append(ret, vgnav.Route{Path: mr.Path, Name: mr.Name, View: vgnav.ViewID(view)})
	}
	return ret
}

// Table decodes the manifest at p and registers its routes.
func Table(p string) (*vgnav.Table, error) {
	m, err := ReadManifest(p)
	if err != nil {
		return nil, err
	}
	return vgnav.Register(m.RouteList()...)
}
