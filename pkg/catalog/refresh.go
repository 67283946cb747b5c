package catalog

import (
	"context"
	"log"
	"time"
)

// RetryPolicy controls how LoadWithRetry backs off between failed loads.
type RetryPolicy struct {
	Initial time.Duration
	Max     time.Duration
	Timeout time.Duration
}

var DefaultRetryPolicy = RetryPolicy{
	Initial: time.Second,
	Max:     time.Minute,
	Timeout: 30 * time.Second,
}

func (p RetryPolicy) next(d time.Duration) time.Duration {
	if d <= 0 {
		return max(p.Initial, time.Millisecond)
	}
	if p.Max <= 0 {
		return d * 2
	}
	return min(d*2, p.Max)
}

func (c *Catalog) loadWithTimeout(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		return c.Load(ctx)
	}
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Load(loadCtx)
}

// LoadWithRetry loads until a snapshot is published or ctx is done. It
// returns immediately when the catalog is already loaded.
func (c *Catalog) LoadWithRetry(ctx context.Context, policy RetryPolicy) error {
	var wait time.Duration
	for !c.IsLoaded() {
		err := c.loadWithTimeout(ctx, policy.Timeout)
		if err == nil {
			return nil
		}
		wait = policy.next(wait)
		log.Printf("Catalog load failed, retrying in %v: %v", wait, err)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// RefreshEvery refreshes the catalog on every tick until ctx is done. A
// failed refresh keeps the current snapshot.
func (c *Catalog) RefreshEvery(ctx context.Context, interval, timeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.loadWithTimeout(ctx, timeout); err != nil {
				log.Printf("Scheduled catalog refresh failed: %v", err)
			}
		}
	}
}
