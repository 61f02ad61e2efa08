package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const founderColumns = `id, company_id, name, email, role, linkedin, bio, created_at, updated_at`

func scanFounder(row pgx.Row) (*Founder, error) {
	var f Founder
	err := row.Scan(&f.ID, &f.CompanyID, &f.Name, &f.Email, &f.Role,
		&f.LinkedIn, &f.Bio, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFounder attaches a founder to a company.
func (db *DB) CreateFounder(ctx context.Context, f *Founder) (*Founder, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("founder name cannot be empty")
	}
	if f.Role == "" {
		f.Role = "founder"
	}
	row := db.pool.QueryRow(ctx,
		`INSERT INTO founders (company_id, name, email, role, linkedin, bio)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+founderColumns,
		f.CompanyID, f.Name, f.Email, f.Role, f.LinkedIn, f.Bio)
	created, err := scanFounder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create founder: %w", err)
	}
	return created, nil
}

// ListFounders returns a company's founders.
func (db *DB) ListFounders(ctx context.Context, companyID uuid.UUID) ([]*Founder, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+founderColumns+` FROM founders WHERE company_id = $1 ORDER BY created_at`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list founders: %w", err)
	}
	defer rows.Close()

	var founders []*Founder
	for rows.Next() {
		f, err := scanFounder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan founder: %w", err)
		}
		founders = append(founders, f)
	}
	return founders, rows.Err()
}

// UpdateFounder applies the mutable fields of f.
func (db *DB) UpdateFounder(ctx context.Context, f *Founder) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE founders SET name = $1, email = $2, role = $3, linkedin = $4,
			bio = $5, updated_at = NOW()
		 WHERE id = $6`,
		f.Name, f.Email, f.Role, f.LinkedIn, f.Bio, f.ID)
	if err != nil {
		return fmt.Errorf("failed to update founder: %w", err)
	}
	return nil
}

// DeleteFounder removes a founder.
func (db *DB) DeleteFounder(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM founders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete founder: %w", err)
	}
	return nil
}
