// Package vgnav resolves in-app navigation for single page applications.
//
// A Table binds absolute paths to views under unique names. A Resolver
// follows a History (the browser's window.history, or a MemoryHistory
// outside the browser), pushing or replacing entries as the application
// navigates and re-resolving the address when the user goes back or forward.
//
//	table := vgnav.MustRegister(
//		vgnav.Route{Path: "/", Name: "Home", View: "Home"},
//		vgnav.Route{Path: "/setting", Name: "Setting", View: "Setting"},
//	)
//	r := vgnav.New(table, history, vgnav.Options{Base: "/app"})
//	r.Navigate("Setting")
//	rt, ok := r.CurrentView()
package vgnav
