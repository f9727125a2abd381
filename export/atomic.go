// SPDX-License-Identifier: MIT

package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileMode of every exported file.
const FileMode os.FileMode = 0o644

// WriteFileAtomic replaces path with the output of render.
//
// Implementation:
//   - Stage 1: Render fully into memory; a render error returns before any file is touched.
//   - Stage 2: Write a temp file next to path, fsync and close it.
//   - Stage 3: Rename over path.
//
// Readers see either the previous file or the complete new one.
func WriteFileAtomic(path string, render func(io.Writer) error) (err error) {
	var buf bytes.Buffer
	if err = render(&buf); err != nil {
		return fmt.Errorf("WriteFileAtomic(%s): render: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("WriteFileAtomic(%s): %w", path, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("WriteFileAtomic(%s): %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("WriteFileAtomic(%s): %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("WriteFileAtomic(%s): %w", path, err)
	}
	if err = tmp.Chmod(FileMode); err != nil {
		return fmt.Errorf("WriteFileAtomic(%s): %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("WriteFileAtomic(%s): %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("WriteFileAtomic(%s): %w", path, err)
	}

	return nil
}
