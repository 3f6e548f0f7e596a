// File: pkg/transfer/stat.go
package transfer

import (
	"context"
	"fmt"
	"geobucket/pkg/locator"
	"geobucket/pkg/storage"
)

// Stat describes the object or regular file at loc
func (t *Transferer) Stat(ctx context.Context, loc string) (storage.ObjectInfo, error) {
	target, err := t.parser.Parse(loc)
	if err != nil {
		return storage.ObjectInfo{}, err
	}

	switch l := target.(type) {
	case locator.Remote:
		var info storage.ObjectInfo
		err := t.withStore(ctx, func(store storage.ObjectStore) error {
			var err error
			info, err = store.HeadObject(ctx, l.Bucket, l.Key)
			return err
		})
		return info, err
	case locator.Local:
		fi, err := t.regularFile(l.Path)
		if err != nil {
			return storage.ObjectInfo{}, err
		}
		return storage.ObjectInfo{
			Key:          l.Path,
			Size:         fi.Size(),
			LastModified: fi.ModTime(),
		}, nil
	default:
		return storage.ObjectInfo{}, fmt.Errorf("%w: unexpected locator type %T", locator.ErrInvalidLocator, target)
	}
}

// AssertExists fails with storage.ErrObjectNotFound for a missing remote object
// and ErrSourceNotFound for a missing or non-regular local file
func (t *Transferer) AssertExists(ctx context.Context, loc string) error {
	_, err := t.Stat(ctx, loc)
	return err
}
