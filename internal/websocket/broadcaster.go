package websocket

import (
	"log/slog"
	"time"

	"github.com/pkordes/discgolf-planner/internal/domain"
)

// PlanBroadcaster publishes plans to every hub client as plan.updated
// messages. Encode maps the plan to its wire payload.
type PlanBroadcaster struct {
	hub    *Hub
	encode func(domain.Plan) any
	logger *slog.Logger
}

// NewPlanBroadcaster creates a broadcaster. A nil encode sends the plan as is.
func NewPlanBroadcaster(hub *Hub, encode func(domain.Plan) any, logger *slog.Logger) *PlanBroadcaster {
	if encode == nil {
		encode = func(p domain.Plan) any { return p }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanBroadcaster{hub: hub, encode: encode, logger: logger}
}

// Publish implements service.Publisher.
func (b *PlanBroadcaster) Publish(plan domain.Plan) {
	msg, err := NewMessage(TypePlanUpdated, plan.GeneratedAt, b.encode(plan)).JSON()
	if err != nil {
		b.logger.Error("encode plan message", "plan_id", plan.ID, "error", err)
		return
	}
	b.hub.Broadcast(msg)
}

// Pong builds the reply to a client ping.
func Pong(at time.Time) []byte {
	msg, _ := NewMessage(TypePong, at, nil).JSON()
	return msg
}
