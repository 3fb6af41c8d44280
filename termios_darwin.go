//go:build darwin

package cooked

import "golang.org/x/sys/unix"

// Darwin's ioctl termios requests differ from Linux's; see
// termios_linux.go for the other half of this split.
const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETA
)
