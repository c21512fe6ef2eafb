package report

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesdash/backend/internal/domain/sales"
)

type fakeUpstream struct {
	products    []sales.Product
	carts       []sales.Cart
	productsErr error
	cartsErr    error

	mu    sync.Mutex
	calls []string
}

func (f *fakeUpstream) GetProducts(context.Context) ([]sales.Product, error) {
	f.record("products")
	return f.products, f.productsErr
}

func (f *fakeUpstream) GetCarts(context.Context) ([]sales.Cart, error) {
	f.record("carts")
	return f.carts, f.cartsErr
}

func (f *fakeUpstream) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

// rendezvousUpstream only answers once both fetches are in flight
type rendezvousUpstream struct {
	fakeUpstream
	wg sync.WaitGroup
}

func newRendezvousUpstream(base *fakeUpstream) *rendezvousUpstream {
	u := &rendezvousUpstream{fakeUpstream: fakeUpstream{
		products:    base.products,
		carts:       base.carts,
		productsErr: base.productsErr,
		cartsErr:    base.cartsErr,
		calls:       base.calls,
	}}
	u.wg.Add(2)
	return u
}

func (u *rendezvousUpstream) wait(ctx context.Context) error {
	u.wg.Done()
	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("fetches were not concurrent")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (u *rendezvousUpstream) GetProducts(ctx context.Context) ([]sales.Product, error) {
	if err := u.wait(ctx); err != nil {
		return nil, err
	}
	return u.fakeUpstream.GetProducts(ctx)
}

func (u *rendezvousUpstream) GetCarts(ctx context.Context) ([]sales.Cart, error) {
	if err := u.wait(ctx); err != nil {
		return nil, err
	}
	return u.fakeUpstream.GetCarts(ctx)
}

type traceLine struct {
	method   string
	status   int
	duration time.Duration
	err      error
}

type fakeTrace struct {
	lines []traceLine
}

func (f *fakeTrace) RecordSuccess(method string, status int, d time.Duration) {
	f.lines = append(f.lines, traceLine{method: method, status: status, duration: d})
}

func (f *fakeTrace) RecordFailure(err error) {
	f.lines = append(f.lines, traceLine{err: err})
}

type notification struct {
	from, to, category string
}

type fakeNotifier struct {
	sent []notification
	err  error
}

func (f *fakeNotifier) NotifySalesProcessed(_ context.Context, from, to, category string) error {
	f.sent = append(f.sent, notification{from: from, to: to, category: category})
	return f.err
}

type fakeMetrics struct {
	mu              sync.Mutex
	aggregations    []error
	fetches         map[string]int
	webhookFailures int
}

func (f *fakeMetrics) RecordAggregation(_ context.Context, _ string, _ int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggregations = append(f.aggregations, err)
}

func (f *fakeMetrics) RecordUpstreamFetch(_ context.Context, resource string, _ time.Duration, _ error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetches == nil {
		f.fetches = map[string]int{}
	}
	f.fetches[resource]++
}

func (f *fakeMetrics) RecordWebhookFailure(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.webhookFailures++
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleUpstream() fakeUpstream {
	return fakeUpstream{
		products: []sales.Product{
			{ID: 1, Title: "Headphones", Price: decimal.NewFromInt(10), Category: sales.CategoryElectronics},
			{ID: 2, Title: "Cable", Price: decimal.NewFromInt(5), Category: sales.CategoryElectronics},
			{ID: 3, Title: "Ring", Price: decimal.RequireFromString("9.99"), Category: sales.CategoryJewelery},
		},
		carts: []sales.Cart{
			{ID: 1, Date: mustTime("2020-03-02T00:00:00Z"), Products: []sales.LineItem{
				{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1},
			}},
			{ID: 2, Date: mustTime("2020-03-01T08:00:00Z"), Products: []sales.LineItem{
				{ProductID: 3, Quantity: 4},
			}},
			{ID: 3, Date: mustTime("2020-03-05T12:00:00Z"), Products: []sales.LineItem{
				{ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 1},
			}},
			{ID: 4, Date: mustTime("2020-04-01T12:00:00Z"), Products: []sales.LineItem{
				{ProductID: 1, Quantity: 9},
			}},
		},
	}
}
