//go:build !windows

package diskstore

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// fsyncFile flushes file's contents to stable storage.
func fsyncFile(file *os.File) error {
	if err := unix.Fsync(int(file.Fd())); err != nil {
		return errors.Wrap(err, "unable to fsync file")
	}
	return nil
}
