//go:build linux

package cooked

import "golang.org/x/sys/unix"

// Linux's ioctl termios requests differ from the BSD/Darwin ones; see
// termios_darwin.go for the other half of this split.
const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)
