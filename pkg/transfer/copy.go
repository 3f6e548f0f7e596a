// File: pkg/transfer/copy.go
package transfer

import (
	"context"
	"fmt"
	"geobucket/pkg/locator"
	"geobucket/pkg/storage"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// CopyOrUpload uploads the local file src to a remote dst, or copies it to a
// local dst preserving permission bits and modification time. Existing
// destinations are overwritten.
func (t *Transferer) CopyOrUpload(ctx context.Context, src, dst string) error {
	t.logger.Info("Copying to", "destination", dst)

	source, err := t.localSource(src)
	if err != nil {
		return err
	}
	info, err := t.regularFile(source.Path)
	if err != nil {
		return err
	}

	dest, err := t.parser.Parse(dst)
	if err != nil {
		return err
	}

	switch d := dest.(type) {
	case locator.Remote:
		return t.upload(ctx, source.Path, info, d)
	case locator.Local:
		return t.copyLocal(source.Path, info, d.Path)
	default:
		return fmt.Errorf("%w: unexpected locator type %T", locator.ErrInvalidLocator, dest)
	}
}

// Stats path and requires a regular file
func (t *Transferer) regularFile(path string) (os.FileInfo, error) {
	info, err := t.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrSourceNotFound, path)
	}
	return info, nil
}

func (t *Transferer) upload(ctx context.Context, src string, info os.FileInfo, dst locator.Remote) error {
	f, err := t.fs.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	defer f.Close()

	contentType, err := detectContentType(f)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", src, err)
	}

	return t.withStore(ctx, func(store storage.ObjectStore) error {
		err := store.PutObject(ctx, dst.Bucket, dst.Key, f, storage.PutOptions{
			Size:        info.Size(),
			ContentType: contentType,
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, dst, err)
		}
		return nil
	})
}

// Sniffs the content type from the head of f and rewinds it
func detectContentType(f afero.File) (string, error) {
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mt.String(), nil
}

func (t *Transferer) copyLocal(src string, info os.FileInfo, dst string) error {
	if samePath(src, dst) {
		return fmt.Errorf("%w: %s: source and destination are the same file", ErrDestinationUnwritable, dst)
	}

	if err := t.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}

	in, err := t.fs.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	defer in.Close()

	out, err := t.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: error copying to %s: %w", ErrDestinationUnwritable, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}

	// OpenFile only applies the mode to new files
	if err := t.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: error preserving mode on %s: %w", ErrDestinationUnwritable, dst, err)
	}
	// The source access time is not portable to read, so both times take the modification time
	if err := t.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("%w: error preserving times on %s: %w", ErrDestinationUnwritable, dst, err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
