package approutes

// WARNING: This file was generated by vgnav/rgen. Do not modify.

import "github.com/vugu/vgnav"

// vgRouteList is the generated route list for this package, in declaration order.
// The first entry is the root route.
var vgRouteList = []vgnav.Route{
	{Path: "/", Name: "Home", View: "Home"},
	{Path: "/setting", Name: "Setting", View: "Setting"},
	{Path: "/data", Name: "Data", View: "Data"},
	{Path: "/api", Name: "Api", View: "Api"},
	{Path: "/system", Name: "System", View: "System"},
	{Path: "/functions", Name: "Functions", View: "Functions"},
}

// Routes returns the generated routes in declaration order.
func Routes() []vgnav.Route {
	return append([]vgnav.Route(nil), vgRouteList...)
}

// MakeTable registers the generated routes.
func MakeTable() (*vgnav.Table, error) {
	return vgnav.Register(vgRouteList...)
}
