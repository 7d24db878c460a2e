package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
)

func int64p(v int64) *int64 { return &v }

func TestHomeWhereEmptyFilter(t *testing.T) {
	where, args := homeWhere(repository.HomeFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestHomeWhereSingleFields(t *testing.T) {
	condo := entity.PropertyCondo

	cases := []struct {
		name      string
		filter    repository.HomeFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "city only",
			filter:    repository.HomeFilter{City: "Toronto"},
			wantWhere: " WHERE h.city = $1",
			wantArgs:  []any{"Toronto"},
		},
		{
			name:      "min price only",
			filter:    repository.HomeFilter{MinPrice: int64p(100000)},
			wantWhere: " WHERE h.price >= $1",
			wantArgs:  []any{int64(100000)},
		},
		{
			name:      "max price only",
			filter:    repository.HomeFilter{MaxPrice: int64p(900000)},
			wantWhere: " WHERE h.price <= $1",
			wantArgs:  []any{int64(900000)},
		},
		{
			name:      "property type only",
			filter:    repository.HomeFilter{PropertyType: &condo},
			wantWhere: " WHERE h.property_type = $1",
			wantArgs:  []any{"CONDO"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := homeWhere(tc.filter)
			assert.Equal(t, tc.wantWhere, where)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestHomeWhereCombinesWithAnd(t *testing.T) {
	res := entity.PropertyResidential
	where, args := homeWhere(repository.HomeFilter{
		City:         "Toronto",
		MinPrice:     int64p(100000),
		MaxPrice:     int64p(900000),
		PropertyType: &res,
	})
	assert.Equal(t, " WHERE h.city = $1 AND h.price >= $2 AND h.price <= $3 AND h.property_type = $4", where)
	assert.Equal(t, []any{"Toronto", int64(100000), int64(900000), "RESIDENTIAL"}, args)
}

func TestHomeWhereZeroValuesDoNotConstrain(t *testing.T) {
	// a zero MinPrice pointer still constrains; an absent one does not
	where, args := homeWhere(repository.HomeFilter{MinPrice: int64p(0)})
	assert.Equal(t, " WHERE h.price >= $1", where)
	assert.Equal(t, []any{int64(0)}, args)
}

func strp(s string) *string { return &s }
func intp(v int) *int       { return &v }

func TestUpdateSetEmptyPatch(t *testing.T) {
	set, args := updateSet(repository.HomeUpdate{})
	assert.Empty(t, set)
	assert.Empty(t, args)
}

func TestUpdateSetPartialPatch(t *testing.T) {
	set, args := updateSet(repository.HomeUpdate{
		City:  strp("Ottawa"),
		Price: int64p(425000),
	})
	assert.Equal(t, "city = $1, price = $2, updated_at = now()", set)
	assert.Equal(t, []any{"Ottawa", int64(425000)}, args)
}

func TestUpdateSetAllScalars(t *testing.T) {
	condo := entity.PropertyCondo
	set, args := updateSet(repository.HomeUpdate{
		Address:           strp("1 Main St"),
		City:              strp("Ottawa"),
		Price:             int64p(425000),
		PropertyType:      &condo,
		NumberOfBedrooms:  intp(2),
		NumberOfBathrooms: intp(1),
		LandSize:          intp(800),
	})
	assert.Equal(t,
		"address = $1, city = $2, price = $3, property_type = $4, "+
			"number_of_bedrooms = $5, number_of_bathrooms = $6, land_size = $7, updated_at = now()",
		set)
	assert.Len(t, args, 7)
}

// ImageURLs are reconciled separately and must never leak into the
// scalar SET clause; neither may the owning realtor.
func TestUpdateSetIgnoresImagesAndOwner(t *testing.T) {
	set, _ := updateSet(repository.HomeUpdate{ImageURLs: []string{"https://img.example/a.jpg"}})
	assert.Empty(t, set)
	assert.NotContains(t, set, "realtor_id")
}
