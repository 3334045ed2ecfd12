package audit

import (
	"context"

	"fundboard/internal/log"
)

// LogPublisher writes events to the structured log.
type LogPublisher struct {
	logger *log.Logger
}

func NewLogPublisher(logger *log.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.WithComponent(log.ComponentAudit)}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.logger.InfoContext(ctx, "Session event",
		log.FieldEventType, string(e.Type),
		log.FieldEmail, e.Email,
		log.FieldRole, e.Role,
		"event_id", e.ID)
	return nil
}
