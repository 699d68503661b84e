package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/polkiloo/orderdesk/internal/domain/model"
)

const listenRetryDelay = time.Second

type notifier interface {
	WaitForNotification(ctx context.Context) (*pgconn.Notification, error)
	Close(ctx context.Context) error
}

type listenFunc func(ctx context.Context) (notifier, error)

// poolListener takes a connection out of the pool for the lifetime of a LISTEN session.
func poolListener(pool *pgxpool.Pool) listenFunc {
	return func(ctx context.Context) (notifier, error) {
		pooled, err := pool.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("acquire listen conn: %w", err)
		}
		conn := pooled.Hijack()
		if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
			_ = conn.Close(context.Background())
			return nil, fmt.Errorf("listen: %w", err)
		}
		return conn, nil
	}
}

// changeFeed fans document change notifications out to collection subscribers.
type changeFeed struct {
	listen     listenFunc
	logger     *slog.Logger
	retryDelay time.Duration

	mu   sync.Mutex
	subs map[model.Collection]map[chan struct{}]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

func (s *Storage) changes() *changeFeed {
	s.feedMu.Lock()
	defer s.feedMu.Unlock()
	if s.feed == nil {
		s.feed = newChangeFeed(s.listen, s.logger, listenRetryDelay)
	}
	return s.feed
}

func newChangeFeed(listen listenFunc, logger *slog.Logger, retryDelay time.Duration) *changeFeed {
	ctx, cancel := context.WithCancel(context.Background())
	f := &changeFeed{
		listen:     listen,
		logger:     logger,
		retryDelay: retryDelay,
		subs:       make(map[model.Collection]map[chan struct{}]struct{}),
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	if listen == nil {
		close(f.done)
		return f
	}
	go f.run(ctx)
	return f
}

// register returns a signal channel that fires after changes to collection.
func (f *changeFeed) register(collection model.Collection) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	f.mu.Lock()
	if f.subs[collection] == nil {
		f.subs[collection] = make(map[chan struct{}]struct{})
	}
	f.subs[collection][ch] = struct{}{}
	f.mu.Unlock()

	return ch, func() {
		f.mu.Lock()
		delete(f.subs[collection], ch)
		f.mu.Unlock()
	}
}

func (f *changeFeed) notify(collections ...model.Collection) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(collections) == 0 {
		for c := range f.subs {
			collections = append(collections, c)
		}
	}
	for _, c := range collections {
		for ch := range f.subs[c] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

func (f *changeFeed) stop() {
	f.cancel()
	<-f.done
}

func (f *changeFeed) run(ctx context.Context) {
	defer close(f.done)

	for {
		n, err := f.listen(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			f.logger.Warn("document change feed unavailable", slog.String("error", err.Error()))
		} else {
			// Changes made while disconnected were not announced.
			f.notify()
			f.consume(ctx, n)
			_ = n.Close(context.Background())
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(f.retryDelay):
		}
	}
}

func (f *changeFeed) consume(ctx context.Context, n notifier) {
	for {
		notification, err := n.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() == nil {
				f.logger.Warn("document change feed interrupted", slog.String("error", err.Error()))
			}
			return
		}
		f.notify(model.Collection(notification.Payload))
	}
}
