package chi

import (
	"time"

	domcart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/cart"
	domcustomer "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/customer"
	domorder "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/order"
	dompart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/result"
	cataloguc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/catalog"
)

// --- responses ---

type partResponse struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Price            float64  `json:"price"`
	Stock            int      `json:"stock"`
	ImageURL         string   `json:"image_url"`
	PartNumber       string   `json:"part_number"`
	Brand            string   `json:"brand"`
	Model            string   `json:"model"`
	YearFrom         *int     `json:"year_from"`
	YearTo           *int     `json:"year_to"`
	Color            *string  `json:"color"`
	CompatibleModels []string `json:"compatible_models"`
}

type cartItemResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Price        float64 `json:"price"`
	CartQuantity int     `json:"cart_quantity"`
	ImageURL     string  `json:"image_url"`
}

type cartResponse struct {
	Cart  []cartItemResponse `json:"cart"`
	Total float64            `json:"total"`
}

type orderLineResponse struct {
	Item  string  `json:"item"`
	Qty   int     `json:"qty"`
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Price float64 `json:"price"`
}

type orderResponse struct {
	ID          int64               `json:"id"`
	OrderID     string              `json:"order_id"`
	UserID      int64               `json:"user_id"`
	Items       []orderLineResponse `json:"items"`
	TotalAmount float64             `json:"total_amount"`
	Status      string              `json:"status"`
	FullName    string              `json:"full_name"`
	Phone       string              `json:"phone"`
	Address     string              `json:"address"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type profileResponse struct {
	UserID    int64     `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

type customerResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	CreatedAt time.Time `json:"created_at"`
}

type suggestionResponse struct {
	Text     string `json:"text"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

type modelRefResponse struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- requests ---

type addToCartRequest struct {
	UserID   int64 `json:"user_id" validate:"required,gt=0"`
	PartID   int64 `json:"part_id" validate:"required,gt=0"`
	Quantity *int  `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

type placeOrderRequest struct {
	UserID          int64  `json:"user_id" validate:"required,gt=0"`
	DeliveryAddress string `json:"delivery_address" validate:"max=1024"`
	Phone           string `json:"phone" validate:"max=32"`
	FullName        string `json:"full_name" validate:"max=256"`
	Notes           string `json:"notes" validate:"max=2048"`
}

type saveProfileRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	FullName string `json:"full_name" validate:"required,max=256"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Address  string `json:"address" validate:"required,max=1024"`
}

type registerCustomerRequest struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	Username  string `json:"username" validate:"max=64"`
	FirstName string `json:"first_name" validate:"max=256"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

// --- converters ---

func partToResponse(p *dompart.Part) partResponse {
	resp := partResponse{
		ID:               p.ID(),
		Name:             p.Name(),
		Description:      p.Description(),
		Category:         p.Category(),
		Price:            p.Price(),
		Stock:            p.Stock(),
		ImageURL:         p.DisplayImage(),
		PartNumber:       p.PartNumber(),
		Brand:            p.Brand(),
		Model:            p.Model(),
		CompatibleModels: p.CompatibleModels(),
	}
	if y, ok := p.YearFrom(); ok {
		resp.YearFrom = &y
	}
	if y, ok := p.YearTo(); ok {
		resp.YearTo = &y
	}
	if c := p.Color(); c != "" {
		resp.Color = &c
	}
	return resp
}

func partsToResponse(parts []dompart.Part) []partResponse {
	out := make([]partResponse, len(parts))
	for i := range parts {
		out[i] = partToResponse(&parts[i])
	}
	return out
}

func cartToResponse(c *domcart.Cart) cartResponse {
	items := c.Items()
	out := cartResponse{Cart: make([]cartItemResponse, len(items)), Total: c.Total()}
	for i, it := range items {
		out.Cart[i] = cartItemResponse{
			ID:           it.PartID,
			Name:         it.Name,
			Brand:        it.Brand,
			Model:        it.Model,
			Price:        it.Price,
			CartQuantity: it.Quantity,
			ImageURL:     it.ImageURL,
		}
	}
	return out
}

func orderToResponse(o *domorder.Order) orderResponse {
	lines := o.Lines()
	items := make([]orderLineResponse, len(lines))
	for i, l := range lines {
		items[i] = orderLineResponse{Item: l.Item, Qty: l.Qty, Brand: l.Brand, Model: l.Model, Price: l.Price}
	}
	return orderResponse{
		ID:          o.ID(),
		OrderID:     o.Reference(),
		UserID:      o.UserID(),
		Items:       items,
		TotalAmount: o.Total(),
		Status:      string(o.Status()),
		FullName:    o.FullName(),
		Phone:       o.Phone(),
		Address:     o.Address(),
		Notes:       o.Notes(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}
}

func ordersToResponse(orders []domorder.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = orderToResponse(&orders[i])
	}
	return out
}

func profileToResponse(p domcustomer.Profile) profileResponse {
	return profileResponse{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Address:   p.Address,
		UpdatedAt: p.UpdatedAt,
	}
}

func suggestionsToResponse(in []result.Suggestion) []suggestionResponse {
	out := make([]suggestionResponse, len(in))
	for i, s := range in {
		out[i] = suggestionResponse{Text: s.Text, Type: string(s.Type), Category: s.Category}
	}
	return out
}

func modelRefsToResponse(in []cataloguc.ModelRef) []modelRefResponse {
	out := make([]modelRefResponse, len(in))
	for i, m := range in {
		out[i] = modelRefResponse(m)
	}
	return out
}
