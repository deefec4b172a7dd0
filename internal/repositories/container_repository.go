package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portops-backend/internal/models"
)

type ContainerRepository struct {
	DB *pgxpool.Pool
}

func NewContainerRepository(db *pgxpool.Pool) *ContainerRepository {
	return &ContainerRepository{DB: db}
}

const containerColumns = `id, vessel_id, unit_type, container_no, size, seal_no, consignee, carrier,
	pkgs, weight, bill_no, vendor, det_expiry, tk_nha_vc, ngay_tk_nha_vc, tk_dnl_ola, ngay_tk_dnl,
	ngay_ke_hoach, noi_ha_rong, status, tally_approved, work_order_approved, remarks, worker_names,
	last_urged_at, updated_at`

func scanContainer(row pgx.Row) (*models.Container, error) {
	var c models.Container
	var workerNames []byte
	err := row.Scan(&c.ID, &c.VesselID, &c.UnitType, &c.ContainerNo, &c.Size, &c.SealNo,
		&c.Consignee, &c.Carrier, &c.Pkgs, &c.Weight, &c.BillNo, &c.Vendor, &c.DetExpiry,
		&c.TkNhaVC, &c.NgayTkNhaVC, &c.TkDnlOla, &c.NgayTkDnl, &c.NgayKeHoach, &c.NoiHaRong,
		&c.Status, &c.TallyApproved, &c.WorkOrderApproved, &c.Remarks, &workerNames,
		&c.LastUrgedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	// tolerant decode: legacy rows may hold a JSON-encoded string
	c.WorkerNames.UnmarshalJSON(workerNames)
	return &c, nil
}

func (r *ContainerRepository) List(ctx context.Context) ([]*models.Container, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+containerColumns+` FROM containers ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()
	return collectContainers(rows)
}

func (r *ContainerRepository) ListByVessel(ctx context.Context, vesselID string) ([]*models.Container, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+containerColumns+` FROM containers WHERE vessel_id=$1 ORDER BY updated_at DESC`, vesselID)
	if err != nil {
		return nil, fmt.Errorf("list containers for vessel %s: %w", vesselID, err)
	}
	defer rows.Close()
	return collectContainers(rows)
}

func collectContainers(rows pgx.Rows) ([]*models.Container, error) {
	var out []*models.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContainerRepository) Get(ctx context.Context, id string) (*models.Container, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+containerColumns+` FROM containers WHERE id=$1`, id)
	return scanContainer(row)
}

// GetByNo returns the newest record for a container number. The same
// number can recur across plan dates, so pick the latest plan.
func (r *ContainerRepository) GetByNo(ctx context.Context, containerNo string) (*models.Container, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+containerColumns+` FROM containers WHERE container_no=$1 ORDER BY ngay_ke_hoach DESC LIMIT 1`,
		containerNo)
	return scanContainer(row)
}

// ReplaceAllForVessel swaps the vessel's full container set inside one
// transaction. Containers of other vessels are untouched.
func (r *ContainerRepository) ReplaceAllForVessel(ctx context.Context, vesselID string, containers []*models.Container) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace containers: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM containers WHERE vessel_id=$1`, vesselID); err != nil {
		return fmt.Errorf("clear containers for vessel %s: %w", vesselID, err)
	}
	for _, c := range containers {
		if err := insertContainer(ctx, tx, c); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// UpsertMany inserts or updates containers by id in one transaction.
func (r *ContainerRepository) UpsertMany(ctx context.Context, containers []*models.Container) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert containers: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range containers {
		if err := upsertContainer(ctx, tx, c); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertContainer(ctx context.Context, tx pgx.Tx, c *models.Container) error {
	workerNames, _ := json.Marshal(c.WorkerNames)
	_, err := tx.Exec(ctx, `
		INSERT INTO containers (`+containerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,CURRENT_TIMESTAMP)`,
		c.ID, c.VesselID, c.UnitType, c.ContainerNo, c.Size, c.SealNo, c.Consignee, c.Carrier,
		c.Pkgs, c.Weight, c.BillNo, c.Vendor, c.DetExpiry, c.TkNhaVC, c.NgayTkNhaVC,
		c.TkDnlOla, c.NgayTkDnl, c.NgayKeHoach, c.NoiHaRong, c.Status, c.TallyApproved,
		c.WorkOrderApproved, c.Remarks, workerNames, c.LastUrgedAt)
	if err != nil {
		return fmt.Errorf("insert container %s: %w", c.ContainerNo, err)
	}
	return nil
}

func upsertContainer(ctx context.Context, tx pgx.Tx, c *models.Container) error {
	workerNames, _ := json.Marshal(c.WorkerNames)
	_, err := tx.Exec(ctx, `
		INSERT INTO containers (`+containerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			vessel_id=EXCLUDED.vessel_id, unit_type=EXCLUDED.unit_type,
			container_no=EXCLUDED.container_no, size=EXCLUDED.size, seal_no=EXCLUDED.seal_no,
			consignee=EXCLUDED.consignee, carrier=EXCLUDED.carrier, pkgs=EXCLUDED.pkgs,
			weight=EXCLUDED.weight, bill_no=EXCLUDED.bill_no, vendor=EXCLUDED.vendor,
			det_expiry=EXCLUDED.det_expiry, tk_nha_vc=EXCLUDED.tk_nha_vc,
			ngay_tk_nha_vc=EXCLUDED.ngay_tk_nha_vc, tk_dnl_ola=EXCLUDED.tk_dnl_ola,
			ngay_tk_dnl=EXCLUDED.ngay_tk_dnl, ngay_ke_hoach=EXCLUDED.ngay_ke_hoach,
			noi_ha_rong=EXCLUDED.noi_ha_rong, status=EXCLUDED.status,
			tally_approved=EXCLUDED.tally_approved, work_order_approved=EXCLUDED.work_order_approved,
			remarks=EXCLUDED.remarks, worker_names=EXCLUDED.worker_names,
			last_urged_at=EXCLUDED.last_urged_at, updated_at=CURRENT_TIMESTAMP`,
		c.ID, c.VesselID, c.UnitType, c.ContainerNo, c.Size, c.SealNo, c.Consignee, c.Carrier,
		c.Pkgs, c.Weight, c.BillNo, c.Vendor, c.DetExpiry, c.TkNhaVC, c.NgayTkNhaVC,
		c.TkDnlOla, c.NgayTkDnl, c.NgayKeHoach, c.NoiHaRong, c.Status, c.TallyApproved,
		c.WorkOrderApproved, c.Remarks, workerNames, c.LastUrgedAt)
	if err != nil {
		return fmt.Errorf("upsert container %s: %w", c.ContainerNo, err)
	}
	return nil
}

// UpdateFields applies a partial per-record update. Unset fields keep their
// stored values.
func (r *ContainerRepository) UpdateFields(ctx context.Context, id string, req *models.UpdateContainerRequest) error {
	var workerNames []byte
	if req.WorkerNames != nil {
		workerNames, _ = json.Marshal(*req.WorkerNames)
	}
	tag, err := r.DB.Exec(ctx, `
		UPDATE containers SET
			status = COALESCE($1, status),
			tally_approved = COALESCE($2, tally_approved),
			work_order_approved = COALESCE($3, work_order_approved),
			remarks = COALESCE($4, remarks),
			worker_names = COALESCE($5, worker_names),
			last_urged_at = COALESCE($6, last_urged_at),
			updated_at = CURRENT_TIMESTAMP
		WHERE id=$7`,
		req.Status, req.TallyApproved, req.WorkOrderApproved, req.Remarks, workerNames, req.LastUrgedAt, id)
	if err != nil {
		return fmt.Errorf("update container %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// MarkTallyApproved marks the named containers approved and completed as
// part of the tally approval transaction.
func MarkTallyApproved(ctx context.Context, tx pgx.Tx, containerNos []string) error {
	if len(containerNos) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
		UPDATE containers
		SET tally_approved=true, status=$1, updated_at=CURRENT_TIMESTAMP
		WHERE container_no = ANY($2)`,
		models.StatusCompleted, containerNos)
	if err != nil {
		return fmt.Errorf("mark containers tally-approved: %w", err)
	}
	return nil
}
