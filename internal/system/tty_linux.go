//go:build linux

package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Prefer /dev/tty (active VT), fallback to /dev/tty0
var vtPaths = []string{"/dev/tty", "/dev/tty0"}

// SetGraphicsMode switches the active console to graphics mode so the
// kernel stops drawing its text console and cursor over the framebuffer.
func SetGraphicsMode(l Logger) error {
	return setKDMode(l, kdGraphics, "KD_GRAPHICS")
}

// RestoreTextMode gives the console back to the kernel.
func RestoreTextMode(l Logger) error {
	return setKDMode(l, kdText, "KD_TEXT")
}

func setKDMode(l Logger, mode int, name string) error {
	var lastErr error
	for _, p := range vtPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("%s on %s: %w", name, p, err)
			continue
		}
		logf(l, "tty", "%s set", name)
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("%s failed: unknown error", name)
	}
	errorf(l, "tty", "%s failed: %v", name, lastErr)
	return lastErr
}

// HideCursor writes the ANSI escape to hide the cursor to the active VT.
func HideCursor(l Logger) error { return writeVT(l, "\x1b[?25l", "hide cursor") }

func ShowCursor(l Logger) error { return writeVT(l, "\x1b[?25h", "show cursor") }

func writeVT(l Logger, seq, what string) error {
	var lastErr error
	for _, p := range vtPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(seq)
		_ = f.Close()
		if err == nil {
			logf(l, "tty", "%s done", what)
			return nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no VT available")
	}
	errorf(l, "tty", "%s failed: %v", what, lastErr)
	return fmt.Errorf("%s: %w", what, lastErr)
}
