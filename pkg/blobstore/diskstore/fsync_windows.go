package diskstore

import (
	"os"

	"github.com/pkg/errors"
)

// fsyncFile flushes file's contents to stable storage.
func fsyncFile(file *os.File) error {
	if err := file.Sync(); err != nil {
		return errors.Wrap(err, "unable to sync file")
	}
	return nil
}
