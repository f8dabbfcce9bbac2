//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// DefaultInputGlob matches every evdev node.
const DefaultInputGlob = "/dev/input/event*"

// NativeLayout is the input_event layout of the running kernel.
func NativeLayout() EventLayout {
	tvSize := binary.Size(unix.Timeval{})
	if tvSize <= 0 {
		tvSize = 16
	}
	return EventLayout{TimevalSize: tvSize}
}

// WatchInput reads every evdev device matching glob and calls onEvent for
// each decoded event until ctx is done. Devices are read on their own
// goroutines and onEvent calls are serialized. It returns
// ErrNoInputDevices when nothing could be opened.
func WatchInput(ctx context.Context, glob string, logger Logger, onEvent func(InputEvent)) error {
	if glob == "" {
		glob = DefaultInputGlob
	}
	paths, err := filepath.Glob(glob)
	if err != nil {
		return err
	}

	layout := NativeLayout()
	var deliver sync.Mutex
	opened := 0
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			logf(logger, "input", "open %s failed: %v", path, err)
			continue
		}
		opened++
		f := os.NewFile(uintptr(fd), path)
		go func() {
			defer func() {
				_ = f.Close()
			}()
			readDevice(ctx, fd, layout, func(ev InputEvent) {
				deliver.Lock()
				defer deliver.Unlock()
				onEvent(ev)
			})
			logf(logger, "input", "stopped reading %s", f.Name())
		}()
	}
	if opened == 0 {
		return ErrNoInputDevices
	}
	logf(logger, "input", "watching %d evdev devices", opened)
	return nil
}

func readDevice(ctx context.Context, fd int, layout EventLayout, onEvent func(InputEvent)) {
	buf := make([]byte, 64*layout.RecordSize())
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		_, pollErr := unix.Poll(pollFds, 250)
		if pollErr != nil {
			if pollErr == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			if pollFds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
				return
			}
			continue
		}

		n, readErr := unix.Read(fd, buf)
		if readErr != nil {
			if readErr == unix.EAGAIN || readErr == unix.EINTR {
				continue
			}
			return
		}
		for _, ev := range layout.DecodeEvents(buf[:n]) {
			onEvent(ev)
		}
	}
}
