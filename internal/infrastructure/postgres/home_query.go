package postgres

import (
	"fmt"
	"strings"

	"github.com/realtora/realtor-api/internal/domain/repository"
)

// homeWhere renders the WHERE clause for a listing query. Only the
// constraints present on the filter appear in the predicate; an empty
// filter yields no clause at all.
func homeWhere(f repository.HomeFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(expr string, v any) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}

	if f.City != "" {
		add("h.city = $%d", f.City)
	}
	if f.MinPrice != nil {
		add("h.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("h.price <= $%d", *f.MaxPrice)
	}
	if f.PropertyType != nil {
		add("h.property_type = $%d", string(*f.PropertyType))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// updateSet renders the SET clause for a partial home update. Only
// supplied scalar fields appear; realtor_id is never updatable.
func updateSet(p repository.HomeUpdate) (string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Address != nil {
		add("address", *p.Address)
	}
	if p.City != nil {
		add("city", *p.City)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.PropertyType != nil {
		add("property_type", string(*p.PropertyType))
	}
	if p.NumberOfBedrooms != nil {
		add("number_of_bedrooms", *p.NumberOfBedrooms)
	}
	if p.NumberOfBathrooms != nil {
		add("number_of_bathrooms", *p.NumberOfBathrooms)
	}
	if p.LandSize != nil {
		add("land_size", *p.LandSize)
	}

	if len(sets) == 0 {
		return "", nil
	}
	sets = append(sets, "updated_at = now()")
	return strings.Join(sets, ", "), args
}
