package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

type countingRefresher struct {
	calls int
	err   error
}

func (c *countingRefresher) Refresh(ctx context.Context) error {
	c.calls++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected deadline")
	}
	return c.err
}

func TestGetName(t *testing.T) {
	if got := getName("market", CatalogChanged); got != "market_catalog_changed" {
		t.Errorf("Expected market_catalog_changed, got %s", got)
	}
}

func TestEncodePublishing(t *testing.T) {
	msg, err := encode(CatalogChange{File: "products.json.gz", Products: 3})
	if err != nil {
		t.Fatal(err)
	}
	if msg.ContentType != "application/json" {
		t.Errorf("Expected json content type, got %s", msg.ContentType)
	}
	var change CatalogChange
	if err := sonic.Unmarshal(msg.Body, &change); err != nil {
		t.Fatal(err)
	}
	if change.Products != 3 {
		t.Errorf("Expected 3 products, got %d", change.Products)
	}
}

func TestCatalogSyncHandle(t *testing.T) {
	r := &countingRefresher{}
	s := &CatalogSync{Refresher: r, Timeout: time.Second}
	body, _ := sonic.Marshal(CatalogChange{File: "a.json", Products: 1})
	if err := s.Handle(body); err != nil {
		t.Fatal(err)
	}
	if err := s.Handle([]byte("{nope")); err == nil {
		t.Errorf("Expected decode error")
	}
	if r.calls != 1 {
		t.Errorf("Expected one refresh, got %d", r.calls)
	}

	r.err = errors.New("upstream down")
	if err := s.Handle(body); !errors.Is(err, r.err) {
		t.Errorf("Expected refresh error, got %v", err)
	}
}
