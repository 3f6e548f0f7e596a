// File: pkg/transfer/transfer.go

// Package transfer moves whole files between local disk and one object store.
// Whether a locator is remote is decided once, by the parser, and every
// operation switches on the resulting locator type.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"geobucket/pkg/locator"
	"geobucket/pkg/storage"
	"log/slog"

	"github.com/spf13/afero"
)

// Error kinds, checked with errors.Is. Remote probes that find nothing return
// storage.ErrObjectNotFound and malformed remote strings locator.ErrInvalidLocator.
var (
	ErrSourceNotFound        = errors.New("source not found")
	ErrDestinationUnwritable = errors.New("destination unwritable")
)

// Opener opens an object store session. Each remote operation opens one and
// closes it before returning.
type Opener func(ctx context.Context) (storage.ObjectStore, error)

type Transferer struct {
	parser locator.Parser
	open   Opener
	fs     afero.Fs
	logger *slog.Logger
}

type Option func(*Transferer)

// Replaces the local filesystem, e.g. with afero.NewMemMapFs() in tests
func WithFs(fs afero.Fs) Option {
	return func(t *Transferer) {
		t.fs = fs
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Transferer) {
		t.logger = logger
	}
}

// New builds a Transferer for locators carrying prefix (e.g. "s3://")
func New(prefix string, open Opener, opts ...Option) *Transferer {
	t := &Transferer{
		parser: locator.NewParser(prefix),
		open:   open,
		fs:     afero.NewOsFs(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transferer) Parse(s string) (locator.Locator, error) {
	return t.parser.Parse(s)
}

func (t *Transferer) ParseRemote(s string) (locator.Remote, error) {
	return t.parser.ParseRemote(s)
}

// Runs fn against a fresh session, closing it on every exit path
func (t *Transferer) withStore(ctx context.Context, fn func(storage.ObjectStore) error) (err error) {
	if t.open == nil {
		return errors.New("no object store configured")
	}
	store, err := t.open(ctx)
	if err != nil {
		return fmt.Errorf("error opening object store session: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			if err == nil {
				err = fmt.Errorf("error closing object store session: %w", cerr)
			} else {
				t.logger.Warn("Failed to close object store session", "error", cerr)
			}
		}
	}()
	return fn(store)
}

// Requires the source to be a local path
func (t *Transferer) localSource(src string) (locator.Local, error) {
	loc, err := t.parser.Parse(src)
	if err != nil {
		return locator.Local{}, err
	}
	switch l := loc.(type) {
	case locator.Local:
		return l, nil
	case locator.Remote:
		return locator.Local{}, fmt.Errorf("%w: %q: source must be a local path", locator.ErrInvalidLocator, src)
	default:
		return locator.Local{}, fmt.Errorf("%w: unexpected locator type %T", locator.ErrInvalidLocator, loc)
	}
}
