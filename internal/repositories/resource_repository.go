package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"portops-backend/internal/models"
)

// ResourceRepository manages the worker and team lists. Both lists are
// small and always saved whole, so writes are replace-all per kind.
type ResourceRepository struct {
	DB *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

func (r *ResourceRepository) ListByKind(ctx context.Context, kind string) ([]*models.ResourceItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, kind, name, phone_number, department FROM resources WHERE kind=$1 ORDER BY name`, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s resources: %w", kind, err)
	}
	defer rows.Close()

	var out []*models.ResourceItem
	for rows.Next() {
		var item models.ResourceItem
		if err := rows.Scan(&item.ID, &item.Kind, &item.Name, &item.PhoneNumber, &item.Department); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the full list for one kind in a single transaction.
func (r *ResourceRepository) ReplaceAll(ctx context.Context, kind string, items []*models.ResourceItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace %s resources: %w", kind, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM resources WHERE kind=$1`, kind); err != nil {
		return fmt.Errorf("clear %s resources: %w", kind, err)
	}
	for _, item := range items {
		if item.ID == "" {
			item.ID = models.NewID()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO resources (id, kind, name, phone_number, department) VALUES ($1,$2,$3,$4,$5)`,
			item.ID, kind, item.Name, item.PhoneNumber, item.Department); err != nil {
			return fmt.Errorf("insert %s resource %q: %w", kind, item.Name, err)
		}
	}
	return tx.Commit(ctx)
}
