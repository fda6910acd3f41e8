package cart

import domcart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/cart"

// itemDTO is the cached JSON form of a cart line.
type itemDTO struct {
	PartID   int64   `json:"part_id"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"part_name"`
	Brand    string  `json:"brand"`
	Model    string  `json:"model"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}

func toDTO(c *domcart.Cart) []itemDTO {
	items := c.Items()
	out := make([]itemDTO, len(items))
	for i, it := range items {
		out[i] = itemDTO(it)
	}
	return out
}

func fromDTO(userID int64, in []itemDTO) domcart.Cart {
	items := make([]domcart.Item, 0, len(in))
	for _, d := range in {
		if d.PartID <= 0 || d.Quantity <= 0 {
			continue
		}
		items = append(items, domcart.Item(d))
	}
	return domcart.Reconstruct(userID, items)
}
