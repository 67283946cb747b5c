package catalog

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matst80/slask-market/pkg/types"
)

var ErrNotLoaded = errors.New("catalog not loaded")

type Provider interface {
	Load(ctx context.Context) ([]types.Product, error)
}

type ProviderFunc func(ctx context.Context) ([]types.Product, error)

func (fn ProviderFunc) Load(ctx context.Context) ([]types.Product, error) {
	return fn(ctx)
}

// StaticProvider always returns the same products.
type StaticProvider []types.Product

func (p StaticProvider) Load(ctx context.Context) ([]types.Product, error) {
	return []types.Product(p), ctx.Err()
}

type ChangeListener func(previous, current *Snapshot)

// Catalog holds the current snapshot. Readers never block, publishing a
// new snapshot is serialised and swaps it atomically.
type Catalog struct {
	provider  Provider
	mu        sync.Mutex
	current   atomic.Pointer[Snapshot]
	versions  atomic.Uint64
	listeners []ChangeListener
}

func New(provider Provider) *Catalog {
	return &Catalog{provider: provider}
}

// Current returns the latest snapshot or ErrNotLoaded before the first
// successful load.
func (c *Catalog) Current() (*Snapshot, error) {
	s := c.current.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s, nil
}

func (c *Catalog) IsLoaded() bool {
	return c.current.Load() != nil
}

// OnChange registers fn to run after every published snapshot.
func (c *Catalog) OnChange(fn ChangeListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Load fetches the catalog from the provider. A failed load keeps the
// previous snapshot.
func (c *Catalog) Load(ctx context.Context) error {
	start := time.Now()
	products, err := c.provider.Load(ctx)
	if err != nil {
		failedLoads.Inc()
		return err
	}
	if err = c.Replace(products); err != nil {
		failedLoads.Inc()
		return err
	}
	log.Printf("Catalog loaded with %d products in %v", len(products), time.Since(start))
	return nil
}

// Refresh re-invokes the provider, the same as Load.
func (c *Catalog) Refresh(ctx context.Context) error {
	return c.Load(ctx)
}

// Replace publishes a snapshot of products without calling the provider.
func (c *Catalog) Replace(products []types.Product) error {
	s, err := NewSnapshot(products)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s.version = c.versions.Add(1)
	previous := c.current.Swap(s)
	catalogSize.Set(float64(s.Len()))
	lastLoad.SetToCurrentTime()
	for _, fn := range c.listeners {
		fn(previous, s)
	}
	return nil
}
