package server

import (
	"errors"
	"net/http"
	"net/http/pprof"

	"github.com/matst80/slask-market/pkg/catalog"
	"github.com/matst80/slask-market/pkg/common"
	"github.com/matst80/slask-market/pkg/paging"
	"github.com/matst80/slask-market/pkg/tracking"
	"github.com/matst80/slask-market/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WebServer struct {
	Catalog  *catalog.Catalog
	Sessions *SessionStore
	Tracking tracking.Tracking
	PageSize int
}

func NewWebServer(c *catalog.Catalog, sessions *SessionStore, trk tracking.Tracking, pageSize int) *WebServer {
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	return &WebServer{
		Catalog:  c,
		Sessions: sessions,
		Tracking: trk,
		PageSize: pageSize,
	}
}

// statusError attaches a response status to errors the api knows about.
func statusError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotLoaded):
		return common.NewHttpError(http.StatusServiceUnavailable, err)
	case errors.Is(err, types.ErrUnknownSortKey):
		return common.NewHttpError(http.StatusBadRequest, err)
	}
	return err
}

func badRequest(err error) error {
	return common.NewHttpError(http.StatusBadRequest, err)
}

func (ws *WebServer) tracker() common.SessionTracker {
	if ws.Tracking == nil {
		return nil
	}
	return ws.Tracking
}

func (ws *WebServer) handle(mux *http.ServeMux, pattern, route string, fn common.HandlerFunc) {
	h := common.JsonHandler(ws.tracker(), fn)
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		requests.WithLabelValues(route).Inc()
		h(w, r)
	})
}

func (ws *WebServer) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	ws.handle(mux, "GET /api/search", "search", ws.Search)
	ws.handle(mux, "GET /api/product/{id}", "product", ws.GetProduct)
	ws.handle(mux, "GET /api/bounds", "bounds", ws.Bounds)

	ws.handle(mux, "GET /api/session", "session", ws.SessionView)
	ws.handle(mux, "POST /api/session/category/{code}", "session_category", ws.ToggleCategory)
	ws.handle(mux, "POST /api/session/brand/{name}", "session_brand", ws.ToggleBrand)
	ws.handle(mux, "POST /api/session/storage/{tier}", "session_storage", ws.ToggleStorageTier)
	ws.handle(mux, "POST /api/session/price", "session_price", ws.SetPriceRange)
	ws.handle(mux, "POST /api/session/query", "session_query", ws.SetTextQuery)
	ws.handle(mux, "POST /api/session/sort/{key}", "session_sort", ws.SetSortKey)
	ws.handle(mux, "POST /api/session/page/{n}", "session_page", ws.SetPage)
	ws.handle(mux, "POST /api/session/clear", "session_clear", ws.ClearAll)

	mux.HandleFunc("OPTIONS /api/", common.RespondToOptions)
	return mux
}

// DebugHandler serves readiness, prometheus metrics and optionally pprof.
func DebugHandler(c *catalog.Catalog, profiling bool) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !c.IsLoaded() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("catalog not loaded"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	if profiling {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	return mux
}
