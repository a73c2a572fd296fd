// ABOUTME: BSD and Darwin termios ioctl request numbers and token width.

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETA
)

var tokenCCFields = len(unix.Termios{}.Cc)
