package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-market/pkg/browse"
	"github.com/matst80/slask-market/pkg/common"
	"github.com/matst80/slask-market/pkg/types"
)

var ErrProductNotFound = errors.New("product not found")

type BoundsResponse struct {
	Price    types.PriceRange `json:"price"`
	Products int              `json:"products"`
	Version  uint64           `json:"version"`
	LoadedAt time.Time        `json:"loadedAt"`
}

func publicHeaders(w http.ResponseWriter, cacheTime string) {
	w.Header().Set("Cache-Control", "public, max-age="+cacheTime)
}

func privateHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "private, no-store")
}

func (ws *WebServer) trackSearch(sessionId string, view browse.View, r *http.Request) {
	if ws.Tracking != nil {
		ws.Tracking.TrackSearch(sessionId, view.State, view.ResultCount, r)
	}
}

// Search answers a stateless query built from the url parameters.
func (ws *WebServer) Search(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	sr, err := DecodeSearchRequest(r.URL.Query())
	if err != nil {
		return badRequest(err)
	}
	snap, err := ws.Catalog.Current()
	if err != nil {
		return statusError(err)
	}
	f, err := sr.FilterState(snap.PriceBounds())
	if err != nil {
		return statusError(err)
	}
	view := browse.QueryPage(snap, f, ws.PageSize)
	ws.trackSearch(sessionId, view, r)
	publicHeaders(w, "60")
	return enc.Encode(view)
}

func (ws *WebServer) GetProduct(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return badRequest(fmt.Errorf("invalid product id %q", r.PathValue("id")))
	}
	snap, err := ws.Catalog.Current()
	if err != nil {
		return statusError(err)
	}
	p, ok := snap.Get(types.ProductId(id))
	if !ok {
		return common.NewHttpError(http.StatusNotFound, fmt.Errorf("%w: %d", ErrProductNotFound, id))
	}
	publicHeaders(w, "120")
	return enc.Encode(p)
}

func (ws *WebServer) Bounds(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	snap, err := ws.Catalog.Current()
	if err != nil {
		return statusError(err)
	}
	publicHeaders(w, "60")
	return enc.Encode(BoundsResponse{
		Price:    snap.PriceBounds(),
		Products: snap.Len(),
		Version:  snap.Version(),
		LoadedAt: snap.LoadedAt(),
	})
}

// withSession applies fn to the caller's session and responds with the
// resulting view.
func (ws *WebServer) withSession(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder, fn func(s *browse.Session) error) error {
	var view browse.View
	err := ws.Sessions.With(sessionId, func(s *browse.Session) error {
		if fn != nil {
			if err := fn(s); err != nil {
				return err
			}
		}
		view = s.Query()
		return nil
	})
	if err != nil {
		return statusError(err)
	}
	ws.trackSearch(sessionId, view, r)
	privateHeaders(w)
	return enc.Encode(view)
}

func (ws *WebServer) SessionView(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	return ws.withSession(w, r, sessionId, enc, nil)
}

func (ws *WebServer) ToggleCategory(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	code := r.PathValue("code")
	return ws.withSession(w, r, sessionId, enc, func(s *browse.Session) error {
		s.ToggleCategory(code)
		return nil
	})
}

func (ws *WebServer) ToggleBrand(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	name := r.PathValue("name")
	return ws.withSession(w, r, sessionId, enc, func(s *browse.Session) error {
		s.ToggleBrand(name)
		return nil
	})
}

func (ws *WebServer) ToggleStorageTier(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	tier := r.PathValue("tier")
	return ws.withSession(w, r, sessionId, enc, func(s *browse.Session) error {
		s.ToggleStorageTier(tier)
		return nil
	})
}

// parsePrice returns fallback for missing or non-numeric values.
func parsePrice(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return v
}

func (ws *WebServer) SetPriceRange(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	q := r.URL.Query()
	return ws.withSession(w, r, sessionId, enc, func(s *browse.Session) error {
		current := s.State().Price
		s.SetPriceRange(parsePrice(q.Get("min"), current.Min), parsePrice(q.Get("max"), current.Max))
		return nil
	})
}

func (ws *WebServer) SetTextQuery(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	query := r.URL.Query().Get("q")
	return ws.withSession(w, r, sessionId, enc, func(s *browse.Session) error {
		s.SetTextQuery(query)
		return nil
	})
}

func (ws *WebServer) SetSortKey(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	key := r.PathValue("key")
	return ws.withSession(w, r, sessionId, enc, func(s *browse.Session) error {
		return s.SetSortKey(key)
	})
}

func (ws *WebServer) SetPage(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		return badRequest(fmt.Errorf("invalid page %q", r.PathValue("n")))
	}
	return ws.withSession(w, r, sessionId, enc, func(s *browse.Session) error {
		s.SetPage(n)
		return nil
	})
}

func (ws *WebServer) ClearAll(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	return ws.withSession(w, r, sessionId, enc, func(s *browse.Session) error {
		s.ClearAll()
		return nil
	})
}
