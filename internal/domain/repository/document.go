package repository

import (
	"context"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

// Subscription is a live feed of full collection snapshots until closed.
type Subscription interface {
	// Snapshots delivers the current snapshot on open and again after every change.
	// The channel is closed once the subscription ends.
	Snapshots() <-chan model.Snapshot
	// Err reports why the feed ended; nil after Close.
	Err() error
	Close()
}

// DocumentStore describes the document database consumed by the dashboard.
type DocumentStore interface {
	Subscribe(ctx context.Context, collection model.Collection) (Subscription, error)
	UpdateField(ctx context.Context, collection model.Collection, id, field string, value any) error
}
