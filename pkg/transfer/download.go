// File: pkg/transfer/download.go
package transfer

import (
	"context"
	"fmt"
	"geobucket/pkg/locator"
	"geobucket/pkg/storage"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Download fetches the remote object src into the local file dst. The object is
// probed first; if it is missing nothing is created locally. The body lands in a
// temporary sibling of dst that is renamed into place once complete.
func (t *Transferer) Download(ctx context.Context, src, dst string) error {
	t.logger.Info("Downloading file", "source", src, "destination", dst)

	source, err := t.parser.ParseRemote(src)
	if err != nil {
		return err
	}
	dest, err := t.localDestination(dst)
	if err != nil {
		return err
	}

	return t.withStore(ctx, func(store storage.ObjectStore) error {
		if _, err := store.HeadObject(ctx, source.Bucket, source.Key); err != nil {
			if storage.IsObjectNotFound(err) {
				return err
			}
			return fmt.Errorf("%w: probe of %s failed: %w", storage.ErrObjectNotFound, source, err)
		}

		dir := filepath.Dir(dest.Path)
		if err := t.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
		}

		body, err := store.GetObject(ctx, source.Bucket, source.Key)
		if err != nil {
			if storage.IsObjectNotFound(err) {
				return err
			}
			return fmt.Errorf("error reading %s: %w", source, err)
		}
		defer body.Close()

		return t.writeAtomically(dest.Path, body)
	})
}

// Requires the destination to be a local path
func (t *Transferer) localDestination(dst string) (locator.Local, error) {
	if t.parser.IsRemote(dst) {
		return locator.Local{}, fmt.Errorf("%w: %q: destination must be a local path", locator.ErrInvalidLocator, dst)
	}
	return locator.Local{Path: dst}, nil
}

func (t *Transferer) writeAtomically(dst string, body io.Reader) error {
	tmp, err := afero.TempFile(t.fs, filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = t.fs.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: error writing %s: %w", ErrDestinationUnwritable, dst, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	// TempFile creates owner-only files; keep the mode of a file being replaced
	mode := os.FileMode(0644)
	if info, err := t.fs.Stat(dst); err == nil && info.Mode().IsRegular() {
		mode = info.Mode().Perm()
	}
	if err := t.fs.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("%w: error setting mode on %s: %w", ErrDestinationUnwritable, dst, err)
	}
	if err := t.fs.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	committed = true
	return nil
}
