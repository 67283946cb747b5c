package messaging

import "time"

type ChangeTopic string

const (
	CatalogChanged ChangeTopic = "catalog_changed"
	TrackingEvents ChangeTopic = "tracking"
)

// CatalogChange is published by the importer after a new catalog file has
// been written.
type CatalogChange struct {
	File      string    `json:"file"`
	Products  int       `json:"products"`
	Published time.Time `json:"published"`
}
