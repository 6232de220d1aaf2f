package events

import (
	"github.com/spec-kit/volunteerhub/internal/domain"
)

// EventType enumerates supported event identifiers. The values double as
// the `type` field of the websocket frames pushed to connected clients.
type EventType string

const (
	EventProjectCreated     EventType = "project_created"
	EventProjectUpdated     EventType = "project_updated"
	EventProjectDeleted     EventType = "project_deleted"
	EventApplicationCreated EventType = "application_created"
	EventApplicationUpdated EventType = "application_updated"
	EventApplicationDeleted EventType = "application_deleted"
	EventStatsUpdate        EventType = "stats_update"
)

// AllEventTypes lists every event a realtime subscriber may receive.
var AllEventTypes = []EventType{
	EventProjectCreated,
	EventProjectUpdated,
	EventProjectDeleted,
	EventApplicationCreated,
	EventApplicationUpdated,
	EventApplicationDeleted,
	EventStatsUpdate,
}

// Event represents a domain change emitted by services. Only the fields
// relevant to the event type are populated; payloads carry domain objects
// and are redacted by the realtime bridge before leaving the process.
type Event struct {
	Type          EventType
	Project       *domain.ProjectWithOrganization
	ProjectID     string
	Application   *domain.ApplicationDetail
	ApplicationID string
	Stats         *domain.Stats
}
