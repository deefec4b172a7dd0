package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portops-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, role, is_active, department, created_at, updated_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role,
		&user.IsActive, &user.Department, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, password_hash, role, is_active, department, created_at, updated_at
         FROM users WHERE username=$1`, username)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role,
		&user.IsActive, &user.Department, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users (password hashes excluded)
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, username, role, is_active, department, created_at, updated_at
         FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Username, &user.Role,
			&user.IsActive, &user.Department, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Upsert inserts or updates a user by id. An empty PasswordHash keeps the
// stored password.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = models.NewID()
	}
	if u.Role == "" {
		u.Role = models.RoleCS
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, role, is_active, department)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			username=EXCLUDED.username,
			password_hash=CASE WHEN EXCLUDED.password_hash='' THEN users.password_hash ELSE EXCLUDED.password_hash END,
			role=EXCLUDED.role, is_active=EXCLUDED.is_active, department=EXCLUDED.department,
			updated_at=CURRENT_TIMESTAMP`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.IsActive, u.Department)
	return err
}

// SetPasswordHash replaces the stored password hash. Used to upgrade legacy
// plaintext rows after a successful login.
func (r *UserRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, hash, id)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}
