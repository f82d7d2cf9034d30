package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/kjk/common/atomicfile"
)

// WriteFileAtomic streams the content produced by write into a temporary
// file next to path which replaces path only once fully written and synced.
// On any failure the destination is left untouched.
func WriteFileAtomic(path string, write func(w io.Writer) error) error {
	f, err := atomicfile.New(path)
	if err != nil {
		return err
	}
	defer f.RemoveIfNotClosed()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	// temporary files are created 0600.
	return os.Chmod(path, 0o644)
}
