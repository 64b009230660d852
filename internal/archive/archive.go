// Package archive keeps a copy of every downloaded report file in
// S3-compatible object storage. Archiving is best-effort and optional;
// an unconfigured endpoint yields a noop store.
package archive

import (
	"context"
	"fmt"
	"path"
	"time"
)

// Store persists raw report files.
type Store interface {
	SaveReport(ctx context.Context, downloadedAt time.Time, body []byte) (string, error)
}

type noopStore struct{}

// NewNoopStore returns a store that archives nothing.
func NewNoopStore() Store {
	return &noopStore{}
}

func (n *noopStore) SaveReport(ctx context.Context, downloadedAt time.Time, body []byte) (string, error) {
	return "", nil
}

func reportKey(prefix string, downloadedAt time.Time) string {
	name := fmt.Sprintf("sales_report_%s.csv", downloadedAt.UTC().Format("2006-01-02_15-04-05"))
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
