package port

import (
	"context"
	"time"
)

// ArchivedExport is a rendered export file kept in the archive bucket.
type ArchivedExport struct {
	Key         string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// ExportArchive keeps exported documents and hands out time-limited download links.
// Implementations are bound to a single bucket.
type ExportArchive interface {
	Put(ctx context.Context, obj ArchivedExport) (location string, err error)
	DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	// RemovePrefix deletes every archived object under prefix and reports how many went.
	RemovePrefix(ctx context.Context, prefix string) (int, error)
}
