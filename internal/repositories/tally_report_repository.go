package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portops-backend/internal/models"
)

type TallyReportRepository struct {
	DB *pgxpool.Pool
}

func NewTallyReportRepository(db *pgxpool.Pool) *TallyReportRepository {
	return &TallyReportRepository{DB: db}
}

const tallyColumns = `id, vessel_id, mode, shift, work_date, owner, worker_count, worker_names,
	mechanical_count, mechanical_names, equipment, vehicle_no, ship_no, vehicle_type, items,
	is_holiday, is_weekend, status, created_at, created_by`

func scanTallyReport(row pgx.Row) (*models.TallyReport, error) {
	var t models.TallyReport
	var items []byte
	err := row.Scan(&t.ID, &t.VesselID, &t.Mode, &t.Shift, &t.WorkDate, &t.Owner,
		&t.WorkerCount, &t.WorkerNames, &t.MechanicalCount, &t.MechanicalNames,
		&t.Equipment, &t.VehicleNo, &t.ShipNo, &t.VehicleType, &items,
		&t.IsHoliday, &t.IsWeekend, &t.Status, &t.CreatedAt, &t.CreatedBy)
	if err != nil {
		return nil, err
	}
	t.Items.UnmarshalJSON(items)
	return &t, nil
}

func (r *TallyReportRepository) List(ctx context.Context) ([]*models.TallyReport, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+tallyColumns+` FROM tally_reports ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tally reports: %w", err)
	}
	defer rows.Close()

	var out []*models.TallyReport
	for rows.Next() {
		t, err := scanTallyReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TallyReportRepository) Get(ctx context.Context, id string) (*models.TallyReport, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+tallyColumns+` FROM tally_reports WHERE id=$1`, id)
	return scanTallyReport(row)
}

// GetMany returns the reports with the given ids, in storage order.
func (r *TallyReportRepository) GetMany(ctx context.Context, ids []string) ([]*models.TallyReport, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+tallyColumns+` FROM tally_reports WHERE id = ANY($1) ORDER BY created_at ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("get tally reports: %w", err)
	}
	defer rows.Close()

	var out []*models.TallyReport
	for rows.Next() {
		t, err := scanTallyReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpsertOne inserts or updates a single report by id.
func (r *TallyReportRepository) UpsertOne(ctx context.Context, t *models.TallyReport) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert tally report: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := upsertTallyReport(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceAll swaps the entire tally report collection in one transaction.
func (r *TallyReportRepository) ReplaceAll(ctx context.Context, reports []*models.TallyReport) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace tally reports: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tally_reports`); err != nil {
		return fmt.Errorf("clear tally reports: %w", err)
	}
	for _, t := range reports {
		if err := upsertTallyReport(ctx, tx, t); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func upsertTallyReport(ctx context.Context, tx pgx.Tx, t *models.TallyReport) error {
	items, _ := json.Marshal(t.Items)
	_, err := tx.Exec(ctx, `
		INSERT INTO tally_reports (`+tallyColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (id) DO UPDATE SET
			vessel_id=EXCLUDED.vessel_id, mode=EXCLUDED.mode, shift=EXCLUDED.shift,
			work_date=EXCLUDED.work_date, owner=EXCLUDED.owner,
			worker_count=EXCLUDED.worker_count, worker_names=EXCLUDED.worker_names,
			mechanical_count=EXCLUDED.mechanical_count, mechanical_names=EXCLUDED.mechanical_names,
			equipment=EXCLUDED.equipment, vehicle_no=EXCLUDED.vehicle_no, ship_no=EXCLUDED.ship_no,
			vehicle_type=EXCLUDED.vehicle_type, items=EXCLUDED.items,
			is_holiday=EXCLUDED.is_holiday, is_weekend=EXCLUDED.is_weekend,
			status=EXCLUDED.status, created_at=EXCLUDED.created_at, created_by=EXCLUDED.created_by`,
		t.ID, t.VesselID, t.Mode, t.Shift, t.WorkDate, t.Owner, t.WorkerCount, t.WorkerNames,
		t.MechanicalCount, t.MechanicalNames, t.Equipment, t.VehicleNo, t.ShipNo, t.VehicleType,
		items, t.IsHoliday, t.IsWeekend, t.Status, t.CreatedAt, t.CreatedBy)
	if err != nil {
		return fmt.Errorf("upsert tally report %s: %w", t.ID, err)
	}
	return nil
}

// ApproveWithContainers sets the reports to approved and marks their
// constituent containers completed, all inside one transaction. This is the
// applier for the tally-approval event; the two writes never happen
// independently.
func (r *TallyReportRepository) ApproveWithContainers(ctx context.Context, reportIDs, containerNos []string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tally approval: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE tally_reports SET status=$1 WHERE id = ANY($2)`,
		models.TallyStatusApproved, reportIDs); err != nil {
		return fmt.Errorf("approve tally reports: %w", err)
	}
	if err := MarkTallyApproved(ctx, tx, containerNos); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
