package recordstore

import (
	"context"
	goerrors "errors"

	"github.com/daybook-app/daybook/internal/errors"
)

// ErrNoRemote is returned by the Offline remote. It is tagged as a
// connectivity failure, so every store operation degrades to the cache
// exactly as if the network were down.
var ErrNoRemote = errors.WithKind(goerrors.New("no remote store configured"), errors.KindConnectivity)

// Offline is the remote used when no connection string is configured.
type Offline[T any] struct{}

func (Offline[T]) List(ctx context.Context, ownerID string) ([]T, error) {
	return nil, ErrNoRemote
}

func (Offline[T]) Insert(ctx context.Context, rec T) (T, error) {
	var zero T
	return zero, ErrNoRemote
}

func (Offline[T]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	return zero, ErrNoRemote
}

func (Offline[T]) Delete(ctx context.Context, rec T) error {
	return ErrNoRemote
}
