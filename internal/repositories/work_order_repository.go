package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portops-backend/internal/models"
)

type WorkOrderRepository struct {
	DB *pgxpool.Pool
}

func NewWorkOrderRepository(db *pgxpool.Pool) *WorkOrderRepository {
	return &WorkOrderRepository{DB: db}
}

const workOrderColumns = `id, type, vessel_id, container_ids, container_nos, team_name, worker_names,
	people_count, vehicle_type, vehicle_nos, shift, work_date, items, is_holiday, is_weekend,
	status, tally_id, created_by, updated_at`

func scanWorkOrder(row pgx.Row) (*models.WorkOrder, error) {
	var wo models.WorkOrder
	var containerIDs, containerNos, workerNames, vehicleNos, items []byte
	err := row.Scan(&wo.ID, &wo.Type, &wo.VesselID, &containerIDs, &containerNos, &wo.TeamName,
		&workerNames, &wo.PeopleCount, &wo.VehicleType, &vehicleNos, &wo.Shift, &wo.Date,
		&items, &wo.IsHoliday, &wo.IsWeekend, &wo.Status, &wo.TallyID, &wo.CreatedBy, &wo.UpdatedAt)
	if err != nil {
		return nil, err
	}
	wo.ContainerIDs.UnmarshalJSON(containerIDs)
	wo.ContainerNos.UnmarshalJSON(containerNos)
	wo.WorkerNames.UnmarshalJSON(workerNames)
	wo.VehicleNos.UnmarshalJSON(vehicleNos)
	wo.Items.UnmarshalJSON(items)
	return &wo, nil
}

func (r *WorkOrderRepository) List(ctx context.Context) ([]*models.WorkOrder, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+workOrderColumns+` FROM work_orders ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var out []*models.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, wo)
	}
	return out, rows.Err()
}

func (r *WorkOrderRepository) Get(ctx context.Context, id string) (*models.WorkOrder, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id=$1`, id)
	return scanWorkOrder(row)
}

// UpsertOne inserts or updates a single work order by id.
func (r *WorkOrderRepository) UpsertOne(ctx context.Context, wo *models.WorkOrder) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert work order: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := upsertWorkOrder(ctx, tx, wo); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceAll swaps the entire work order collection in one transaction.
func (r *WorkOrderRepository) ReplaceAll(ctx context.Context, orders []*models.WorkOrder) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace work orders: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM work_orders`); err != nil {
		return fmt.Errorf("clear work orders: %w", err)
	}
	for _, wo := range orders {
		if err := upsertWorkOrder(ctx, tx, wo); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func upsertWorkOrder(ctx context.Context, tx pgx.Tx, wo *models.WorkOrder) error {
	containerIDs, _ := json.Marshal(wo.ContainerIDs)
	containerNos, _ := json.Marshal(wo.ContainerNos)
	workerNames, _ := json.Marshal(wo.WorkerNames)
	vehicleNos, _ := json.Marshal(wo.VehicleNos)
	items, _ := json.Marshal(wo.Items)
	_, err := tx.Exec(ctx, `
		INSERT INTO work_orders (`+workOrderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			type=EXCLUDED.type, vessel_id=EXCLUDED.vessel_id,
			container_ids=EXCLUDED.container_ids, container_nos=EXCLUDED.container_nos,
			team_name=EXCLUDED.team_name, worker_names=EXCLUDED.worker_names,
			people_count=EXCLUDED.people_count, vehicle_type=EXCLUDED.vehicle_type,
			vehicle_nos=EXCLUDED.vehicle_nos, shift=EXCLUDED.shift, work_date=EXCLUDED.work_date,
			items=EXCLUDED.items, is_holiday=EXCLUDED.is_holiday, is_weekend=EXCLUDED.is_weekend,
			status=EXCLUDED.status, tally_id=EXCLUDED.tally_id, created_by=EXCLUDED.created_by,
			updated_at=CURRENT_TIMESTAMP`,
		wo.ID, wo.Type, wo.VesselID, containerIDs, containerNos, wo.TeamName, workerNames,
		wo.PeopleCount, wo.VehicleType, vehicleNos, wo.Shift, wo.Date, items,
		wo.IsHoliday, wo.IsWeekend, wo.Status, wo.TallyID, wo.CreatedBy)
	if err != nil {
		return fmt.Errorf("upsert work order %s: %w", wo.ID, err)
	}
	return nil
}
