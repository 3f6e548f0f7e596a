// File: pkg/transfer/delete.go
package transfer

import (
	"context"
	"fmt"
	"geobucket/pkg/locator"
	"geobucket/pkg/storage"
	"os"
)

// DeleteIfExists removes the object or file at loc. A missing target is not an error.
func (t *Transferer) DeleteIfExists(ctx context.Context, loc string) error {
	t.logger.Info("Deleting if exists", "locator", loc)

	target, err := t.parser.Parse(loc)
	if err != nil {
		return err
	}

	switch l := target.(type) {
	case locator.Remote:
		return t.withStore(ctx, func(store storage.ObjectStore) error {
			if err := store.DeleteObject(ctx, l.Bucket, l.Key); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrDestinationUnwritable, l, err)
			}
			return nil
		})
	case locator.Local:
		return t.removeLocal(l.Path)
	default:
		return fmt.Errorf("%w: unexpected locator type %T", locator.ErrInvalidLocator, target)
	}
}

func (t *Transferer) removeLocal(path string) error {
	info, err := t.fs.Stat(path)
	if os.IsNotExist(err) {
		t.logger.Debug("Local file already absent", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrDestinationUnwritable, path)
	}

	if err := t.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", ErrDestinationUnwritable, err)
	}
	return nil
}
