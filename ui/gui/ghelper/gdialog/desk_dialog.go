//go:build !js && !wasm
// +build !js,!wasm

package gdialog

import (
	"github.com/sqweek/dialog"
)

// ShowError blocks until the user closes the native message box.
func ShowError(title, message string) {
	dialog.Message("%s", message).Title(title).Error()
}
