//go:build !linux

package system

import "errors"

var errNoConsole = errors.New("linux console not available")

func SetGraphicsMode(l Logger) error { return errNoConsole }
func RestoreTextMode(l Logger) error { return errNoConsole }
func HideCursor(l Logger) error      { return errNoConsole }
func ShowCursor(l Logger) error      { return errNoConsole }
