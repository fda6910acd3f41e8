package order

import (
	"github.com/goccy/go-json"

	domorder "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/order"
)

// Channel is the pub/sub channel order events are published on.
const Channel = "order_updates"

// Event types.
const (
	EventPlaced        = "order_placed"
	EventStatusChanged = "status_changed"
)

// Event is the JSON message published for every order change.
type Event struct {
	Type      string  `json:"type"`
	OrderID   int64   `json:"order_id"`
	Reference string  `json:"order_reference"`
	UserID    int64   `json:"user_id"`
	Status    string  `json:"status"`
	Total     float64 `json:"total_amount"`
}

func newEvent(typ string, o *domorder.Order) Event {
	return Event{
		Type:      typ,
		OrderID:   o.ID(),
		Reference: o.Reference(),
		UserID:    o.UserID(),
		Status:    string(o.Status()),
		Total:     o.Total(),
	}
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}
