// ABOUTME: Linux termios ioctl request numbers and token width.
// ABOUTME: glibc's struct termios carries 32 control characters, so tokens are padded to match `stty -g`.

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TCGETS
	ioctlWriteTermios = unix.TCSETS
)

const tokenCCFields = 32
