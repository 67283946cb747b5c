package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-market/pkg/types"
)

// CachedProvider stores every valid upstream payload and serves the stored
// copy when the upstream fails or returns a catalog that would be rejected.
type CachedProvider struct {
	Upstream   Provider
	Cache      PayloadCache
	Key        string
	Expiration time.Duration
}

func NewCachedProvider(upstream Provider, cache PayloadCache, key string) *CachedProvider {
	return &CachedProvider{
		Upstream:   upstream,
		Cache:      cache,
		Key:        key,
		Expiration: 24 * time.Hour,
	}
}

func (p *CachedProvider) Load(ctx context.Context) ([]types.Product, error) {
	products, err := p.Upstream.Load(ctx)
	if err == nil {
		err = Validate(products)
	}
	if err == nil {
		data, mErr := sonic.Marshal(products)
		if mErr != nil {
			log.Printf("Could not encode catalog for cache: %v", mErr)
			return products, nil
		}
		if sErr := p.Cache.Set(ctx, p.Key, data, p.Expiration); sErr != nil {
			log.Printf("Could not store catalog in cache: %v", sErr)
		}
		return products, nil
	}

	data, cErr := p.Cache.Get(ctx, p.Key)
	if cErr != nil {
		return nil, fmt.Errorf("%w (cache: %v)", err, cErr)
	}
	cached := make([]types.Product, 0)
	if uErr := sonic.Unmarshal(data, &cached); uErr != nil {
		return nil, fmt.Errorf("%w (cache decode: %v)", err, uErr)
	}
	cacheFallbacks.Inc()
	log.Printf("Upstream catalog failed (%v), using %d cached products", err, len(cached))
	return cached, nil
}
