// Package approutes holds the application's route table.
package approutes

import "github.com/vugu/vgnav"

//go:generate go run github.com/vugu/vgnav/cmd/vgnavgen -q .

// Views rendered by the application shell.
const (
	ViewHome      vgnav.ViewID = "Home"
	ViewSetting   vgnav.ViewID = "Setting"
	ViewData      vgnav.ViewID = "Data"
	ViewApi       vgnav.ViewID = "Api"
	ViewSystem    vgnav.ViewID = "System"
	ViewFunctions vgnav.ViewID = "Functions"
)

// MustMakeTable is like MakeTable but panics upon error.
func MustMakeTable() *vgnav.Table {
	t, err := MakeTable()
	if err != nil {
		panic(err)
	}
	return t
}
