package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
)

const homeColumns = `
	h.id, h.address, h.city, h.price, h.property_type,
	h.number_of_bedrooms, h.number_of_bathrooms, h.land_size,
	h.realtor_id, h.created_at, h.updated_at`

type HomeRepository struct {
	pool *pgxpool.Pool
}

func NewHomeRepository(pool *pgxpool.Pool) *HomeRepository {
	return &HomeRepository{pool: pool}
}

func scanHome(row pgx.Row, h *entity.Home) error {
	return row.Scan(&h.ID, &h.Address, &h.City, &h.Price, &h.PropertyType,
		&h.NumberOfBedrooms, &h.NumberOfBathrooms, &h.LandSize,
		&h.RealtorID, &h.CreatedAt, &h.UpdatedAt)
}

// FindMany lists homes matching the filter. The lateral join pulls at
// most the first image per home so list views never fetch the rest.
func (r *HomeRepository) FindMany(ctx context.Context, filter repository.HomeFilter) ([]repository.HomeWithImages, error) {
	where, args := homeWhere(filter)
	rows, err := r.pool.Query(ctx, `
		SELECT`+homeColumns+`, i.id, i.url
		FROM homes h
		LEFT JOIN LATERAL (
			SELECT id, url FROM images WHERE home_id = h.id ORDER BY id LIMIT 1
		) i ON true`+where+`
		ORDER BY h.id
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.HomeWithImages
	for rows.Next() {
		var (
			rec    repository.HomeWithImages
			imgID  *int64
			imgURL *string
		)
		h := &rec.Home
		if err := rows.Scan(&h.ID, &h.Address, &h.City, &h.Price, &h.PropertyType,
			&h.NumberOfBedrooms, &h.NumberOfBathrooms, &h.LandSize,
			&h.RealtorID, &h.CreatedAt, &h.UpdatedAt, &imgID, &imgURL); err != nil {
			return nil, err
		}
		if imgID != nil && imgURL != nil {
			rec.Images = append(rec.Images, entity.Image{ID: *imgID, URL: *imgURL, HomeID: h.ID})
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *HomeRepository) FindByID(ctx context.Context, id int64) (*repository.HomeDetail, error) {
	d := &repository.HomeDetail{}
	row := r.pool.QueryRow(ctx, `
		SELECT`+homeColumns+`, u.name, u.email, u.phone
		FROM homes h
		JOIN users u ON u.id = h.realtor_id
		WHERE h.id = $1
	`, id)
	h := &d.Home
	if err := row.Scan(&h.ID, &h.Address, &h.City, &h.Price, &h.PropertyType,
		&h.NumberOfBedrooms, &h.NumberOfBathrooms, &h.LandSize,
		&h.RealtorID, &h.CreatedAt, &h.UpdatedAt,
		&d.Realtor.Name, &d.Realtor.Email, &d.Realtor.Phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, url, home_id FROM images WHERE home_id = $1 ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var img entity.Image
		if err := rows.Scan(&img.ID, &img.URL, &img.HomeID); err != nil {
			return nil, err
		}
		d.Images = append(d.Images, img)
	}
	return d, rows.Err()
}

func (r *HomeRepository) OwnerID(ctx context.Context, homeID int64) (int64, error) {
	var realtorID int64
	err := r.pool.QueryRow(ctx, `
		SELECT realtor_id FROM homes WHERE id = $1
	`, homeID).Scan(&realtorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return realtorID, nil
}

// Create inserts the home and its images in one transaction so a home
// is never visible with zero images.
func (r *HomeRepository) Create(ctx context.Context, h *entity.Home, imageURLs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO homes (address, city, price, property_type,
			number_of_bedrooms, number_of_bathrooms, land_size, realtor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, h.Address, h.City, h.Price, h.PropertyType,
		h.NumberOfBedrooms, h.NumberOfBathrooms, h.LandSize, h.RealtorID)
	if err := row.Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return err
	}

	for _, url := range imageURLs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO images (url, home_id) VALUES ($1, $2)
		`, url, h.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update applies a partial scalar update and, when patch.ImageURLs is
// non-nil, reconciles the photo set by URL inside the same transaction.
// realtor_id is deliberately never part of the SET clause.
func (r *HomeRepository) Update(ctx context.Context, id int64, patch repository.HomeUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	set, args := updateSet(patch)
	if set != "" {
		args = append(args, id)
		res, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE homes SET %s WHERE id = $%d`, set, len(args)), args...)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
	}

	if patch.ImageURLs != nil {
		if err := reconcileImages(ctx, tx, id, patch.ImageURLs); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete removes images first, then the home, preserving the no-orphan
// invariant even if the transaction machinery is ever removed.
func (r *HomeRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM images WHERE home_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.Exec(ctx, `DELETE FROM homes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

// reconcileImages makes the stored photo set equal to urls: rows whose
// URL is still present are kept, new URLs are inserted, the rest are
// deleted. Callers must reject an empty urls slice beforehand.
func reconcileImages(ctx context.Context, tx pgx.Tx, homeID int64, urls []string) error {
	if _, err := tx.Exec(ctx, `
		DELETE FROM images WHERE home_id = $1 AND NOT (url = ANY($2))
	`, homeID, urls); err != nil {
		return err
	}
	for _, url := range urls {
		if _, err := tx.Exec(ctx, `
			INSERT INTO images (url, home_id)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM images WHERE home_id = $2 AND url = $1)
		`, url, homeID); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.HomeRepository = (*HomeRepository)(nil)
