package order

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	domorder "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/order"
)

const selectColumns = "id, order_reference, user_id, items, total_amount, status, " +
	"full_name, phone, address, notes, created_at, updated_at"

const insertColumns = "order_reference, user_id, items, total_amount, status, " +
	"full_name, phone, address, notes, created_at, updated_at"

// lineDTO is the JSON form of an order line inside the items column.
type lineDTO struct {
	PartID int64   `json:"part_id,omitempty"`
	Item   string  `json:"item"`
	Qty    int     `json:"qty"`
	Brand  string  `json:"brand"`
	Model  string  `json:"model"`
	Price  float64 `json:"price"`
}

type row struct {
	id        int64
	reference string
	userID    int64
	items     string
	total     float64
	status    string
	fullName  sql.NullString
	phone     sql.NullString
	address   sql.NullString
	notes     sql.NullString
	createdAt time.Time
	updatedAt time.Time
}

func (r *row) dest() []any {
	return []any{
		&r.id, &r.reference, &r.userID, &r.items, &r.total, &r.status,
		&r.fullName, &r.phone, &r.address, &r.notes, &r.createdAt, &r.updatedAt,
	}
}

func (r *row) toDomain() (domorder.Order, error) {
	var lines []lineDTO
	if err := json.Unmarshal([]byte(r.items), &lines); err != nil {
		return domorder.Order{}, fmt.Errorf("decode items of order %d: %w", r.id, err)
	}
	out := make([]domorder.Line, len(lines))
	for i, l := range lines {
		out[i] = domorder.Line(l)
	}
	return domorder.Reconstruct(domorder.Attrs{
		ID:        r.id,
		Reference: r.reference,
		UserID:    r.userID,
		Lines:     out,
		Total:     r.total,
		Status:    domorder.Status(r.status),
		FullName:  r.fullName.String,
		Phone:     r.phone.String,
		Address:   r.address.String,
		Notes:     r.notes.String,
		CreatedAt: r.createdAt.UTC(),
		UpdatedAt: r.updatedAt.UTC(),
	}), nil
}

func insertValues(o *domorder.Order) ([]any, error) {
	lines := o.Lines()
	dtos := make([]lineDTO, len(lines))
	for i, l := range lines {
		dtos[i] = lineDTO(l)
	}
	items, err := json.Marshal(dtos)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return []any{
		o.Reference(), o.UserID(), string(items), o.Total(), string(o.Status()),
		o.FullName(), o.Phone(), o.Address(), o.Notes(), o.CreatedAt(), o.UpdatedAt(),
	}, nil
}
