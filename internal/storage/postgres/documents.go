package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

var _ repository.DocumentStore = (*Storage)(nil)

// Subscribe loads the current collection snapshot and keeps redelivering it after
// every change notification or poll tick until closed or ctx ends.
func (s *Storage) Subscribe(ctx context.Context, collection model.Collection) (repository.Subscription, error) {
	// Registered before the initial load so a change committed during it still
	// triggers a reload.
	changes, unregister := s.changes().register(collection)
	snapshot, err := s.loadSnapshot(ctx, collection)
	if err != nil {
		unregister()
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	sub := &documentSubscription{
		storage:    s,
		collection: collection,
		out:        make(chan model.Snapshot, 1),
		cancel:     cancel,
		finished:   make(chan struct{}),
		last:       snapshot.Documents,
	}
	sub.deliver(snapshot)

	go sub.run(runCtx, changes, unregister)
	return sub, nil
}

// UpdateField sets a single top-level field of a stored document.
func (s *Storage) UpdateField(ctx context.Context, collection model.Collection, id, field string, value any) error {
	const query = `UPDATE documents SET data = jsonb_set(data, $3::text[], $4::jsonb, true), updated_at=NOW()
                   WHERE collection=$1 AND id=$2`
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}

	tag, err := s.pool.Exec(ctx, query, string(collection), id, []string{field}, string(encoded))
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update %s/%s: %w", collection, id, domainErrors.ErrNotFound)
	}
	return nil
}

func (s *Storage) loadSnapshot(ctx context.Context, collection model.Collection) (model.Snapshot, error) {
	const query = `SELECT id, data FROM documents WHERE collection=$1 ORDER BY created_at, id`
	rows, err := s.pool.Query(ctx, query, string(collection))
	if err != nil {
		return model.Snapshot{}, err
	}
	defer rows.Close()

	snapshot := model.Snapshot{Collection: collection, Documents: []model.Document{}}
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return model.Snapshot{}, err
		}
		fields := map[string]any{}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &fields); err != nil {
				return model.Snapshot{}, fmt.Errorf("decode document %s: %w", id, err)
			}
		}
		snapshot.Documents = append(snapshot.Documents, model.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return model.Snapshot{}, err
	}
	return snapshot, nil
}

type documentSubscription struct {
	storage    *Storage
	collection model.Collection
	out        chan model.Snapshot
	cancel     context.CancelFunc
	finished   chan struct{}
	last       []model.Document

	mu  sync.Mutex
	err error
}

func (s *documentSubscription) Snapshots() <-chan model.Snapshot {
	return s.out
}

func (s *documentSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close stops redelivery and waits until the snapshot channel is closed.
func (s *documentSubscription) Close() {
	s.cancel()
	<-s.finished
}

func (s *documentSubscription) run(ctx context.Context, changes <-chan struct{}, unregister func()) {
	defer close(s.finished)
	defer close(s.out)
	defer unregister()

	var tick <-chan time.Time
	if s.storage.pollInterval > 0 {
		ticker := time.NewTicker(s.storage.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
		case <-tick:
		}

		snapshot, err := s.storage.loadSnapshot(ctx, s.collection)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.mu.Lock()
			s.err = fmt.Errorf("reload %s: %w", s.collection, err)
			s.mu.Unlock()
			return
		}
		if reflect.DeepEqual(snapshot.Documents, s.last) {
			continue
		}
		s.last = snapshot.Documents
		s.deliver(snapshot)
	}
}

// deliver keeps only the newest undelivered snapshot.
func (s *documentSubscription) deliver(snapshot model.Snapshot) {
	select {
	case s.out <- snapshot:
	default:
		select {
		case <-s.out:
		default:
		}
		s.out <- snapshot
	}
}
