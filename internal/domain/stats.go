package domain

// Stats holds the platform-wide aggregate counters shown on the landing
// page and pushed to websocket subscribers.
type Stats struct {
	Volunteers   int64 `json:"volunteers"`
	Projects     int64 `json:"projects"`
	Applications int64 `json:"applications"`
	States       int64 `json:"states"`
}
