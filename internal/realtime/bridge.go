package realtime

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/volunteerhub/internal/api/dto"
	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/events"
)

// frame is the wire shape pushed to websocket clients: the event type plus
// the payload fields that apply to it.
type frame struct {
	Type          events.EventType         `json:"type"`
	Project       *dto.ProjectResponse     `json:"project,omitempty"`
	ProjectID     string                   `json:"projectId,omitempty"`
	Application   *dto.ApplicationResponse `json:"application,omitempty"`
	ApplicationID string                   `json:"applicationId,omitempty"`
	Stats         *domain.Stats            `json:"stats,omitempty"`
}

// Bridge subscribes to domain events and fans the redacted wire frames out
// through the hub.
type Bridge struct {
	hub    *Hub
	logger *zap.Logger
}

// NewBridge creates the bridge.
func NewBridge(hub *Hub, logger *zap.Logger) *Bridge {
	return &Bridge{hub: hub, logger: logger}
}

// Register subscribes the bridge to every broadcastable event type.
func (b *Bridge) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, b.handle)
	}
}

func (b *Bridge) handle(_ context.Context, event events.Event) error {
	f := frame{
		Type:          event.Type,
		ProjectID:     event.ProjectID,
		ApplicationID: event.ApplicationID,
		Stats:         event.Stats,
	}
	if event.Project != nil {
		f.Project = dto.NewProjectWithOrganizationResponse(event.Project)
	}
	if event.Application != nil {
		f.Application = dto.NewApplicationDetailResponse(event.Application)
	}

	payload, err := json.Marshal(f)
	if err != nil {
		b.logger.Error("marshal realtime frame", zap.Error(err), zap.String("type", string(event.Type)))
		return err
	}
	b.hub.Broadcast(payload)
	return nil
}
