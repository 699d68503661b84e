package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/orderdesk/internal/domain/errors"
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
	"github.com/polkiloo/orderdesk/internal/projection"
)

var collections = []model.Collection{
	model.CollectionOrders,
	model.CollectionUsers,
	model.CollectionAddresses,
}

var errFeedEnded = errors.New("feed ended")

// Dashboard keeps the joined order view consistent with three live collections.
// All view state is owned by a single loop goroutine; feeds and mutations only
// send it messages.
type Dashboard struct {
	store  repository.DocumentStore
	dates  projection.DateFormat
	logger *slog.Logger

	snapshots chan model.Snapshot
	failures  chan error
	intents   chan intentRequest

	current atomic.Pointer[View]
	watch   watchers

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
	stopped bool
	wg      sync.WaitGroup
}

type feed struct {
	collection model.Collection
	sub        repository.Subscription
}

type intentRequest struct {
	id     string
	status model.OrderStatus
	reply  chan model.EnrichedOrder
}

// New constructs a dashboard in the Loading phase. Call Start to open the feeds.
func New(store repository.DocumentStore, dates projection.DateFormat, logger *slog.Logger) *Dashboard {
	d := &Dashboard{
		store:     store,
		dates:     dates,
		logger:    logger,
		snapshots: make(chan model.Snapshot),
		failures:  make(chan error),
		intents:   make(chan intentRequest),
		watch:     watchers{subs: make(map[chan View]struct{})},
	}
	d.current.Store(&View{Phase: PhaseLoading})
	return d
}

// View returns the latest published view.
func (d *Dashboard) View() View {
	return *d.current.Load()
}

// Watch streams published views, starting with the current one. Only the newest
// unread view is kept per watcher. The channel is closed on Stop or cancel.
func (d *Dashboard) Watch() (<-chan View, func()) {
	return d.watch.add(d.View)
}

// Start opens the three collection feeds and begins reconciliation. A feed that
// cannot be opened moves the view to PhaseError, releases the others and is
// returned; there is no retry.
func (d *Dashboard) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return nil
	}
	if d.stopped {
		return domainErrors.ErrStopped
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	feeds, err := d.subscribe(runCtx)
	if err != nil {
		cancel()
		d.logger.Error("dashboard setup failed", slog.String("error", err.Error()))
		d.publish(View{Phase: PhaseError, Err: err.Error(), Version: d.View().Version + 1})
		return err
	}

	d.cancel = cancel
	d.done = make(chan struct{})
	d.running = true

	d.wg.Add(2)
	go d.loop(runCtx)
	go d.supervise(runCtx, feeds)
	return nil
}

// Stop releases all feeds and waits for reconciliation to finish.
func (d *Dashboard) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.running = false
	d.stopped = true
	d.mu.Unlock()

	d.wg.Wait()
	d.watch.closeAll()
}

// MarkDelivered writes status Delivered for orderID once confirm agrees and then
// patches the local view without waiting for the orders feed. It reports whether
// the change was applied and returns the patched row. Once the write succeeds
// the call reports it as applied even if ctx ends before the view is patched.
func (d *Dashboard) MarkDelivered(ctx context.Context, orderID string, confirm Confirmer) (model.EnrichedOrder, bool, error) {
	d.mu.Lock()
	running, done := d.running, d.done
	d.mu.Unlock()

	if d.View().Phase != PhaseReady {
		return model.EnrichedOrder{}, false, domainErrors.ErrNotReady
	}
	if !running {
		return model.EnrichedOrder{}, false, domainErrors.ErrStopped
	}
	if confirm == nil || !confirm.Confirm(ctx, orderID) {
		return model.EnrichedOrder{}, false, nil
	}

	err := d.store.UpdateField(ctx, model.CollectionOrders, orderID, model.OrderFieldStatus, string(model.OrderStatusDelivered))
	if err != nil {
		return model.EnrichedOrder{}, false, fmt.Errorf("mark %s delivered: %w", orderID, err)
	}

	// The write is applied from here on; only the local patch may be skipped.
	written := model.EnrichedOrder{ID: orderID, Status: model.OrderStatusDelivered}
	req := intentRequest{id: orderID, status: model.OrderStatusDelivered, reply: make(chan model.EnrichedOrder, 1)}
	select {
	case d.intents <- req:
		return <-req.reply, true, nil
	case <-done:
	case <-ctx.Done():
	}
	if row, ok := d.View().Row(orderID); ok {
		row.Status = model.OrderStatusDelivered
		written = row
	}
	return written, true, nil
}

func (d *Dashboard) subscribe(ctx context.Context) ([]feed, error) {
	feeds := make([]feed, len(collections))
	var g errgroup.Group
	for i, collection := range collections {
		g.Go(func() error {
			sub, err := d.store.Subscribe(ctx, collection)
			if err != nil {
				return fmt.Errorf("open %s feed: %w", collection, err)
			}
			feeds[i] = feed{collection: collection, sub: sub}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, f := range feeds {
			if f.sub != nil {
				f.sub.Close()
			}
		}
		return nil, err
	}
	return feeds, nil
}

// supervise pumps every feed into the loop. The first feed failure cancels the
// rest; all subscriptions are released before it returns.
func (d *Dashboard) supervise(ctx context.Context, feeds []feed) {
	defer d.wg.Done()

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range feeds {
		g.Go(func() error { return d.pump(gctx, f) })
	}
	err := g.Wait()
	for _, f := range feeds {
		f.sub.Close()
	}
	if err == nil {
		return
	}
	select {
	case d.failures <- err:
	case <-ctx.Done():
	}
}

func (d *Dashboard) pump(ctx context.Context, f feed) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-f.sub.Snapshots():
			if !ok {
				if err := f.sub.Err(); err != nil {
					return fmt.Errorf("%s feed: %w", f.collection, err)
				}
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%s %w", f.collection, errFeedEnded)
			}
			snapshot.Collection = f.collection
			select {
			case d.snapshots <- snapshot:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// loop is the only writer of view state.
func (d *Dashboard) loop(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.done)

	s := reconciler{
		dates:   d.dates,
		slots:   make(map[model.Collection]model.Snapshot, len(collections)),
		intents: make(map[string]intent),
		version: d.View().Version,
	}
	d.publish(s.view())

	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-d.snapshots:
			s.apply(snapshot)
			d.publish(s.view())
		case err := <-d.failures:
			d.logger.Error("dashboard feed failed", slog.String("error", err.Error()))
			s.fail(err)
			d.publish(s.view())
		case req := <-d.intents:
			s.intend(req.id, req.status)
			view := s.view()
			d.publish(view)
			row, ok := view.Row(req.id)
			if !ok {
				row = model.EnrichedOrder{ID: req.id, Status: req.status}
			}
			req.reply <- row
		}
	}
}

func (d *Dashboard) publish(view View) {
	d.current.Store(&view)
	d.watch.broadcast(view)
}

// reconciler derives views from the latest snapshot of each collection with
// pending write intents overlaid.
type reconciler struct {
	dates   projection.DateFormat
	slots   map[model.Collection]model.Snapshot
	intents map[string]intent
	rows    []model.EnrichedOrder
	failure string
	version uint64
}

// intent is a written status not yet confirmed by the orders feed.
type intent struct {
	status model.OrderStatus
	misses int
}

// intentMisses is how many orders snapshots may disagree with an intent before it
// is dropped. The first may have been read before the write committed.
const intentMisses = 2

func (s *reconciler) apply(snapshot model.Snapshot) {
	s.slots[snapshot.Collection] = snapshot
	if snapshot.Collection == model.CollectionOrders {
		s.settle(snapshot)
	}
	s.recompute()
}

// settle drops intents the snapshot confirms and ages the others.
func (s *reconciler) settle(orders model.Snapshot) {
	if len(s.intents) == 0 {
		return
	}
	stored := make(map[string]model.OrderStatus, len(orders.Documents))
	for _, order := range projection.DecodeOrders(orders) {
		if _, seen := stored[order.ID]; !seen {
			stored[order.ID] = order.Status
		}
	}
	for id, in := range s.intents {
		if status, ok := stored[id]; ok && status == in.status {
			delete(s.intents, id)
			continue
		}
		in.misses++
		if in.misses >= intentMisses {
			delete(s.intents, id)
			continue
		}
		s.intents[id] = in
	}
}

func (s *reconciler) intend(id string, status model.OrderStatus) {
	s.intents[id] = intent{status: status}
	s.recompute()
}

func (s *reconciler) fail(err error) {
	s.failure = err.Error()
}

func (s *reconciler) recompute() {
	orders, okOrders := s.slots[model.CollectionOrders]
	users, okUsers := s.slots[model.CollectionUsers]
	addresses, okAddresses := s.slots[model.CollectionAddresses]
	if !okOrders || !okUsers || !okAddresses {
		return
	}
	rows := projection.EnrichSnapshots(orders, users, addresses, s.dates)
	for id, in := range s.intents {
		rows = projection.ApplyStatus(rows, id, in.status)
	}
	s.rows = rows
}

func (s *reconciler) view() View {
	s.version++
	switch {
	case s.failure != "":
		return View{Phase: PhaseError, Err: s.failure, Rows: s.rows, Version: s.version}
	case len(s.slots) < len(collections):
		return View{Phase: PhaseLoading, Version: s.version}
	default:
		return View{Phase: PhaseReady, Rows: s.rows, Version: s.version}
	}
}

type watchers struct {
	mu     sync.Mutex
	subs   map[chan View]struct{}
	closed bool
}

func (w *watchers) add(current func() View) (<-chan View, func()) {
	ch := make(chan View, 1)

	w.mu.Lock()
	defer w.mu.Unlock()
	ch <- current()
	if w.closed {
		close(ch)
		return ch, func() {}
	}
	w.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if _, ok := w.subs[ch]; ok {
				delete(w.subs, ch)
				close(ch)
			}
		})
	}
}

func (w *watchers) broadcast(view View) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs {
		select {
		case ch <- view:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
}

func (w *watchers) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for ch := range w.subs {
		delete(w.subs, ch)
		close(ch)
	}
	w.closed = true
}
