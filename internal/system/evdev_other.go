//go:build !linux

package system

import "context"

const DefaultInputGlob = ""

func NativeLayout() EventLayout { return EventLayout{TimevalSize: 16} }

// WatchInput is unavailable off Linux.
func WatchInput(ctx context.Context, glob string, logger Logger, onEvent func(InputEvent)) error {
	return ErrNoInputDevices
}
