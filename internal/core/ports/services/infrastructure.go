package services

import (
	"context"
	"io"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// ReportCache stores built reports under keys that carry a global version.
// Bump invalidates every cached report at once.
type ReportCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
	Bump(ctx context.Context) error
}

// NotificationDispatcher hands a notification to background delivery.
type NotificationDispatcher interface {
	DispatchNotification(ctx context.Context, n domain.Notification) error
}

// FileStore keeps uploaded files such as project logos.
type FileStore interface {
	// Save stores the content under a generated name derived from filename and returns its public path.
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
	// Delete removes a stored file. Removing a missing file is not an error.
	Delete(ctx context.Context, path string) error
}
