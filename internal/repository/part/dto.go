package part

import (
	"database/sql"
	"strings"

	dompart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
)

// selectColumns is the column list of every full-row read, in scan order.
const selectColumns = "id, part_name, description, part_category, bike_brand, bike_model, " +
	"year_from, year_to, price, stock_qty, color, web_image_url, part_number"

// columns maps filter keys to spare_parts columns.
var columns = map[string]string{
	dompart.FieldID:       "id",
	dompart.FieldName:     "part_name",
	dompart.FieldBrand:    "bike_brand",
	dompart.FieldModel:    "bike_model",
	dompart.FieldCategory: "part_category",
	dompart.FieldYearFrom: "year_from",
	dompart.FieldYearTo:   "year_to",
	dompart.FieldPrice:    "price",
	dompart.FieldColor:    "color",
}

// row is the storage shape of a spare_parts record. Nullable columns stay
// nullable here and become zero values or nil years on the domain side.
type row struct {
	ID          int64
	Name        sql.NullString
	Description sql.NullString
	Category    sql.NullString
	Brand       sql.NullString
	Model       sql.NullString
	YearFrom    sql.NullInt64
	YearTo      sql.NullInt64
	Price       sql.NullFloat64
	Stock       sql.NullInt64
	Color       sql.NullString
	ImageURL    sql.NullString
	PartNumber  sql.NullString
}

func (r *row) dest() []any {
	return []any{
		&r.ID, &r.Name, &r.Description, &r.Category, &r.Brand, &r.Model,
		&r.YearFrom, &r.YearTo, &r.Price, &r.Stock, &r.Color, &r.ImageURL, &r.PartNumber,
	}
}

// toDomain hydrates a Part without re-validating values: rows already in the
// store are served as they are, inverted year ranges included. NULL required
// columns are recorded on the part so ranking can refuse to score it.
func (r *row) toDomain() dompart.Part {
	var missing []string
	for _, c := range []struct {
		field string
		v     sql.NullString
	}{
		{dompart.FieldName, r.Name},
		{dompart.FieldBrand, r.Brand},
		{dompart.FieldModel, r.Model},
		{dompart.FieldCategory, r.Category},
	} {
		if !c.v.Valid {
			missing = append(missing, c.field)
		}
	}

	return dompart.Hydrate(dompart.Attrs{
		ID:          r.ID,
		Name:        strings.TrimSpace(r.Name.String),
		Description: r.Description.String,
		Category:    strings.TrimSpace(r.Category.String),
		Brand:       strings.TrimSpace(r.Brand.String),
		Model:       strings.TrimSpace(r.Model.String),
		YearFrom:    nullInt(r.YearFrom),
		YearTo:      nullInt(r.YearTo),
		Price:       r.Price.Float64,
		Stock:       int(r.Stock.Int64),
		Color:       r.Color.String,
		ImageURL:    r.ImageURL.String,
		PartNumber:  r.PartNumber.String,
	}, missing...)
}

// insertValues returns the bind values of an INSERT in insertColumns order.
func insertValues(p *dompart.Part) []any {
	a := p.Attrs()
	return []any{
		a.Name, nullString(a.Description), a.Category, a.Brand, a.Model,
		nullYear(a.YearFrom), nullYear(a.YearTo), a.Price, a.Stock,
		nullString(a.Color), nullString(a.ImageURL), nullString(a.PartNumber),
	}
}

const insertColumns = "part_name, description, part_category, bike_brand, bike_model, " +
	"year_from, year_to, price, stock_qty, color, web_image_url, part_number"

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullYear(y *int) sql.NullInt64 {
	if y == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*y), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
