// Package order models placed orders and their lifecycle.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain"
)

// Status is the fulfilment state of an order.
type Status string

// Order statuses.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// DefaultFullName is used when a customer places an order without a name.
const DefaultFullName = "Customer"

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Line is one ordered part, frozen at placement time.
type Line struct {
	PartID int64
	Item   string
	Qty    int
	Brand  string
	Model  string
	Price  float64
}

// Attrs carries the raw fields of an order.
type Attrs struct {
	ID        int64
	Reference string
	UserID    int64
	Lines     []Line
	Total     float64
	Status    Status
	FullName  string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Order is a placed order.
type Order struct {
	a Attrs
}

// New validates a freshly placed order. The total is computed from the lines
// and the status starts at pending.
func New(reference string, userID int64, lines []Line, fullName, phone, address, notes string, now time.Time) (Order, error) {
	if reference == "" {
		return Order{}, domain.NewValidationError("reference", "is required")
	}
	if userID <= 0 {
		return Order{}, domain.NewValidationError("user_id", "must be positive")
	}
	if len(lines) == 0 {
		return Order{}, domain.ErrCartEmpty
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		fullName = DefaultFullName
	}

	a := Attrs{
		Reference: reference,
		UserID:    userID,
		Lines:     cloneLines(lines),
		Status:    StatusPending,
		FullName:  fullName,
		Phone:     strings.TrimSpace(phone),
		Address:   strings.TrimSpace(address),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	for _, l := range lines {
		if l.Qty < 1 {
			return Order{}, domain.NewValidationError("items", fmt.Sprintf("%q has non-positive quantity", l.Item))
		}
		a.Total += l.Price * float64(l.Qty)
	}
	return Order{a: a}, nil
}

// Reconstruct creates an Order without validation (storage hydration).
func Reconstruct(a Attrs) Order {
	a.Lines = cloneLines(a.Lines)
	return Order{a: a}
}

// Reference builds the public order reference ORD-YYYYMMDD-<user>-<short>.
func Reference(now time.Time, userID int64, short string) string {
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("ORD-%s-%d-%s", now.UTC().Format("20060102"), userID, strings.ToUpper(short))
}

func (o *Order) ID() int64            { return o.a.ID }
func (o *Order) Reference() string    { return o.a.Reference }
func (o *Order) UserID() int64        { return o.a.UserID }
func (o *Order) Lines() []Line        { return cloneLines(o.a.Lines) }
func (o *Order) Total() float64       { return o.a.Total }
func (o *Order) Status() Status       { return o.a.Status }
func (o *Order) FullName() string     { return o.a.FullName }
func (o *Order) Phone() string        { return o.a.Phone }
func (o *Order) Address() string      { return o.a.Address }
func (o *Order) Notes() string        { return o.a.Notes }
func (o *Order) CreatedAt() time.Time { return o.a.CreatedAt }
func (o *Order) UpdatedAt() time.Time { return o.a.UpdatedAt }

// Attrs returns a copy of the raw fields.
func (o *Order) Attrs() Attrs {
	a := o.a
	a.Lines = cloneLines(a.Lines)
	return a
}

// WithID returns a copy carrying the store-assigned identifier.
func (o Order) WithID(id int64) Order {
	o.a.ID = id
	o.a.Lines = cloneLines(o.a.Lines)
	return o
}

// Transition moves the order to next. Delivered and cancelled orders are final.
func (o *Order) Transition(next Status, now time.Time) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	if o.a.Status.Terminal() && next != o.a.Status {
		return fmt.Errorf("%w: order %s is already %s", domain.ErrInvalidStatus, o.a.Reference, o.a.Status)
	}
	o.a.Status = next
	o.a.UpdatedAt = now.UTC()
	return nil
}

func cloneLines(in []Line) []Line {
	if in == nil {
		return nil
	}
	out := make([]Line, len(in))
	copy(out, in)
	return out
}
