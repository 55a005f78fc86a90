package emit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"payloadgen/pkg/probepayload"
)

// FileSink writes the encoded table to Path, replacing it atomically.
type FileSink struct {
	Path    string
	Encoder Encoder
}

func (s *FileSink) Store(ctx context.Context, entries []probepayload.Entry) error {
	data, err := s.Encoder.Encode(entries)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFileAtomic(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

func (s *FileSink) String() string {
	return s.Path
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers see either the old or the new contents.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
