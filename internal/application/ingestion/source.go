package ingestion

import (
	"context"
	"io"
	"os"

	"github.com/turtacn/NyayVandan/internal/infrastructure/storage/minio"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

// ObjectOpener fetches dataset objects by URI.  Satisfied by
// minio.ObjectSource; nil means no object store is configured.
type ObjectOpener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// open resolves a configured source path: object-store URIs go through the
// opener, everything else is a local file.
func (l *Loader) open(ctx context.Context, path string) (io.ReadCloser, error) {
	if minio.IsObjectURI(path) {
		if l.objects == nil {
			return nil, errors.New(errors.ErrCodeSourceUnreadable,
				"object storage source configured but no object store connected").
				WithDetail(path)
		}
		return l.objects.Open(ctx, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceUnreadable, "open dataset source").
			WithDetail(path)
	}
	return f, nil
}
