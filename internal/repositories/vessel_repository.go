package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"portops-backend/internal/models"
)

type VesselRepository struct {
	DB *pgxpool.Pool
}

func NewVesselRepository(db *pgxpool.Pool) *VesselRepository {
	return &VesselRepository{DB: db}
}

func (r *VesselRepository) List(ctx context.Context) ([]*models.Vessel, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, vessel_name, voyage_no, commodity, consignee, eta,
		       total_containers, total_pkgs, total_weight, updated_at
		FROM vessels ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list vessels: %w", err)
	}
	defer rows.Close()

	var out []*models.Vessel
	for rows.Next() {
		var v models.Vessel
		if err := rows.Scan(&v.ID, &v.VesselName, &v.VoyageNo, &v.Commodity, &v.Consignee,
			&v.ETA, &v.TotalContainers, &v.TotalPkgs, &v.TotalWeight, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *VesselRepository) Get(ctx context.Context, id string) (*models.Vessel, error) {
	var v models.Vessel
	err := r.DB.QueryRow(ctx, `
		SELECT id, vessel_name, voyage_no, commodity, consignee, eta,
		       total_containers, total_pkgs, total_weight, updated_at
		FROM vessels WHERE id=$1`, id).
		Scan(&v.ID, &v.VesselName, &v.VoyageNo, &v.Commodity, &v.Consignee,
			&v.ETA, &v.TotalContainers, &v.TotalPkgs, &v.TotalWeight, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Upsert inserts or updates a vessel by id. Vessels are never bulk-deleted.
func (r *VesselRepository) Upsert(ctx context.Context, v *models.Vessel) error {
	if v.ID == "" {
		v.ID = models.NewID()
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO vessels (id, vessel_name, voyage_no, commodity, consignee, eta,
			total_containers, total_pkgs, total_weight, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			vessel_name=EXCLUDED.vessel_name, voyage_no=EXCLUDED.voyage_no,
			commodity=EXCLUDED.commodity, consignee=EXCLUDED.consignee, eta=EXCLUDED.eta,
			total_containers=EXCLUDED.total_containers, total_pkgs=EXCLUDED.total_pkgs,
			total_weight=EXCLUDED.total_weight, updated_at=CURRENT_TIMESTAMP`,
		v.ID, v.VesselName, v.VoyageNo, v.Commodity, v.Consignee, v.ETA,
		v.TotalContainers, v.TotalPkgs, v.TotalWeight)
	if err != nil {
		return fmt.Errorf("upsert vessel %s: %w", v.ID, err)
	}
	return nil
}

// UpsertMany applies Upsert to each vessel in the batch.
func (r *VesselRepository) UpsertMany(ctx context.Context, vessels []*models.Vessel) error {
	for _, v := range vessels {
		if err := r.Upsert(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTotals writes back the recomputed aggregate totals after an import.
func (r *VesselRepository) UpdateTotals(ctx context.Context, id string, containers, pkgs int, weight float64) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE vessels
		SET total_containers=$1, total_pkgs=$2, total_weight=$3, updated_at=CURRENT_TIMESTAMP
		WHERE id=$4`, containers, pkgs, weight, id)
	if err != nil {
		return fmt.Errorf("update vessel totals %s: %w", id, err)
	}
	return nil
}

func (r *VesselRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM vessels WHERE id=$1`, id)
	return err
}
