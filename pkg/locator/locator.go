// File: pkg/locator/locator.go

// Package locator classifies storage locator strings as either a remote object
// (prefix + bucket + "/" + key) or an opaque local filesystem path.
package locator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLocator is returned when a string cannot be parsed as a remote object locator.
var ErrInvalidLocator = errors.New("invalid locator")

// Locator is either a Remote or a Local. Callers switch on the concrete type.
type Locator interface {
	String() string
	isLocator()
}

// Remote addresses an object in a bucket
type Remote struct {
	Prefix string
	Bucket string
	// May be empty or contain "/"
	Key string
}

func (r Remote) String() string {
	return r.Prefix + r.Bucket + "/" + r.Key
}

func (Remote) isLocator() {}

// Local is a filesystem path, kept as given
type Local struct {
	Path string
}

func (l Local) String() string {
	return l.Path
}

func (Local) isLocator() {}

// Parser recognises exactly one remote prefix, e.g. "s3://"
type Parser struct {
	prefix string
}

func NewParser(prefix string) Parser {
	return Parser{prefix: prefix}
}

func (p Parser) Prefix() string {
	return p.prefix
}

func (p Parser) IsRemote(s string) bool {
	return p.prefix != "" && strings.HasPrefix(s, p.prefix)
}

// Parse classifies s. Strings carrying the remote prefix must parse as a Remote;
// everything else is a Local path.
func (p Parser) Parse(s string) (Locator, error) {
	if !p.IsRemote(s) {
		return Local{Path: s}, nil
	}
	remote, err := p.ParseRemote(s)
	if err != nil {
		return nil, err
	}
	return remote, nil
}

// ParseRemote splits s into bucket and key on the first "/" after the prefix
func (p Parser) ParseRemote(s string) (Remote, error) {
	if !p.IsRemote(s) {
		return Remote{}, fmt.Errorf("%w: %q does not start with %s", ErrInvalidLocator, s, p.prefix)
	}

	bucket, key, _ := strings.Cut(strings.TrimPrefix(s, p.prefix), "/")
	if bucket == "" {
		return Remote{}, fmt.Errorf("%w: %q has an empty bucket name", ErrInvalidLocator, s)
	}

	return Remote{
		Prefix: p.prefix,
		Bucket: bucket,
		Key:    key,
	}, nil
}
