package tracking

import (
	"net/http"

	"github.com/matst80/slask-market/pkg/types"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackSearch(sessionId string, filters types.FilterState, resultCount int, r *http.Request)
}

const (
	EventSession uint16 = 0
	EventSearch  uint16 = 1
)

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type SessionEvent struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

type SearchEvent struct {
	*BaseEvent
	Query           string           `json:"query"`
	Categories      []string         `json:"categories,omitempty"`
	Brands          []string         `json:"brands,omitempty"`
	StorageTiers    []string         `json:"storage,omitempty"`
	Price           types.PriceRange `json:"price"`
	Sort            types.SortKey    `json:"sort"`
	Page            int              `json:"page"`
	NumberOfResults int              `json:"noi"`
	Referer         string           `json:"referer,omitempty"`
}

func clientIp(r *http.Request) string {
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func newSessionEvent(base *BaseEvent, r *http.Request) SessionEvent {
	return SessionEvent{
		BaseEvent:    base,
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	}
}

func newSearchEvent(base *BaseEvent, f types.FilterState, resultCount int, r *http.Request) SearchEvent {
	return SearchEvent{
		BaseEvent:       base,
		Query:           f.Query,
		Categories:      f.Categories.Values(),
		Brands:          f.Brands.Values(),
		StorageTiers:    f.StorageTiers.Values(),
		Price:           f.Price,
		Sort:            f.Sort,
		Page:            f.Page,
		NumberOfResults: resultCount,
		Referer:         r.Header.Get("Referer"),
	}
}
