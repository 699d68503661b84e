package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
)

// Store is an in-process document store with live snapshot subscriptions.
type Store struct {
	mu          sync.Mutex
	collections map[model.Collection][]model.Document
	subs        map[model.Collection]map[*subscription]struct{}

	// SubscribeErr, when set for a collection, is returned by Subscribe.
	SubscribeErr map[model.Collection]error
	// UpdateErr, when set, is returned by UpdateField before any change is applied.
	UpdateErr error
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections:  make(map[model.Collection][]model.Document),
		subs:         make(map[model.Collection]map[*subscription]struct{}),
		SubscribeErr: make(map[model.Collection]error),
	}
}

var _ repository.DocumentStore = (*Store)(nil)

// Put inserts or replaces a document. Replaced documents keep their position.
func (s *Store) Put(collection model.Collection, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := model.Document{ID: id, Fields: maps.Clone(fields)}
	docs := s.collections[collection]
	replaced := false
	for i := range docs {
		if docs[i].ID == id {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}
	s.collections[collection] = docs
	s.publishLocked(collection)
}

// Delete removes a document if present.
func (s *Store) Delete(collection model.Collection, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i := range docs {
		if docs[i].ID == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			s.publishLocked(collection)
			return
		}
	}
}

// Get returns a copy of the stored document.
func (s *Store) Get(collection model.Collection, id string) (model.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		if doc.ID == id {
			return model.Document{ID: doc.ID, Fields: maps.Clone(doc.Fields)}, true
		}
	}
	return model.Document{}, false
}

// Fail ends every live subscription of collection with err.
func (s *Store) Fail(collection model.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sub := range s.subs[collection] {
		sub.finishLocked(err)
	}
}

// Subscribers reports the number of live subscriptions for collection.
func (s *Store) Subscribers(collection model.Collection) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs[collection])
}

// UpdateField sets a single field on an existing document.
func (s *Store) UpdateField(ctx context.Context, collection model.Collection, id, field string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	docs := s.collections[collection]
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		fields := maps.Clone(docs[i].Fields)
		if fields == nil {
			fields = make(map[string]any)
		}
		fields[field] = value
		docs[i].Fields = fields
		s.publishLocked(collection)
		return nil
	}
	return fmt.Errorf("update %s/%s: %w", collection, id, domainErrors.ErrNotFound)
}

// Subscribe opens a live feed; the current snapshot is available immediately.
func (s *Store) Subscribe(ctx context.Context, collection model.Collection) (repository.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.SubscribeErr[collection]; err != nil {
		return nil, err
	}

	sub := &subscription{
		store:      s,
		collection: collection,
		ch:         make(chan model.Snapshot, 1),
	}
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[*subscription]struct{})
	}
	s.subs[collection][sub] = struct{}{}
	sub.deliverLocked(s.snapshotLocked(collection))
	sub.stop = context.AfterFunc(ctx, sub.Close)
	return sub, nil
}

func (s *Store) snapshotLocked(collection model.Collection) model.Snapshot {
	docs := s.collections[collection]
	out := make([]model.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, model.Document{ID: doc.ID, Fields: maps.Clone(doc.Fields)})
	}
	return model.Snapshot{Collection: collection, Documents: out}
}

func (s *Store) publishLocked(collection model.Collection) {
	if len(s.subs[collection]) == 0 {
		return
	}
	snapshot := s.snapshotLocked(collection)
	for sub := range s.subs[collection] {
		sub.deliverLocked(snapshot)
	}
}

type subscription struct {
	store      *Store
	collection model.Collection
	ch         chan model.Snapshot
	stop       func() bool
	done       bool
	err        error
}

func (s *subscription) Snapshots() <-chan model.Snapshot {
	return s.ch
}

func (s *subscription) Err() error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return s.err
}

func (s *subscription) Close() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.finishLocked(nil)
}

// deliverLocked keeps only the newest undelivered snapshot.
func (s *subscription) deliverLocked(snapshot model.Snapshot) {
	if s.done {
		return
	}
	select {
	case s.ch <- snapshot:
	default:
		select {
		case <-s.ch:
		default:
		}
		s.ch <- snapshot
	}
}

func (s *subscription) finishLocked(err error) {
	if s.done {
		return
	}
	s.done = true
	s.err = err
	if s.stop != nil {
		s.stop()
	}
	delete(s.store.subs[s.collection], s)
	close(s.ch)
}
