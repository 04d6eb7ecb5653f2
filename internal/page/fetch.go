package page

import (
	"bytes"
	"context"
	"fmt"
)

// Getter fetches a server path.
type Getter interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

// Loader fetches and parses the profile page.
type Loader struct {
	getter Getter
	path   string
}

// NewLoader returns a Loader for the profile page at path.
func NewLoader(g Getter, path string) *Loader {
	return &Loader{getter: g, path: path}
}

// Load fetches and parses the profile page.
func (l *Loader) Load(ctx context.Context) (*Document, error) {
	body, err := l.getter.Get(ctx, l.path)
	if err != nil {
		return nil, fmt.Errorf("load profile page: %w", err)
	}
	return Parse(bytes.NewReader(body))
}
