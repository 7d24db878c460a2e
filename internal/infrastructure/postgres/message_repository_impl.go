package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (home_id, buyer_id, realtor_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.HomeID, m.BuyerID, m.RealtorID, m.Text)

	return row.Scan(&m.ID, &m.CreatedAt)
}

func (r *MessageRepository) ListByHome(ctx context.Context, homeID int64) ([]repository.MessageWithBuyer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.home_id, m.buyer_id, m.realtor_id, m.message, m.created_at,
			u.name, u.email, u.phone
		FROM messages m
		JOIN users u ON u.id = m.buyer_id
		WHERE m.home_id = $1
		ORDER BY m.id
	`, homeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.MessageWithBuyer
	for rows.Next() {
		var rec repository.MessageWithBuyer
		m := &rec.Message
		if err := rows.Scan(&m.ID, &m.HomeID, &m.BuyerID, &m.RealtorID, &m.Text, &m.CreatedAt,
			&rec.Buyer.Name, &rec.Buyer.Email, &rec.Buyer.Phone); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
