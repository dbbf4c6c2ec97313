package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/keshavkalani15/Aapna-Bank/internal/bankerr"
	"github.com/keshavkalani15/Aapna-Bank/internal/models"
)

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	query := `
		SELECT employee_id, first_name, last_name, email, password_hash
		FROM employees
		WHERE email = $1
	`
	var e models.Employee
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PasswordHash,
	)
	if err == sql.ErrNoRows {
		return nil, bankerr.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

// SeedDefaultManager inserts the bootstrap manager credential if no row with
// that email exists. Idempotent: a second start is a no-op. Reports whether a
// row was created.
func (r *EmployeeRepository) SeedDefaultManager(ctx context.Context, firstName, lastName, email, passwordHash string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (first_name, last_name, email, password_hash)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (SELECT 1 FROM employees WHERE email = $3)
	`, firstName, lastName, email, passwordHash)
	if err != nil {
		return false, fmt.Errorf("failed to seed default manager: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to seed default manager: %w", err)
	}
	return n > 0, nil
}
