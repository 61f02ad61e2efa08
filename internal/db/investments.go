package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const investmentColumns = `id, company_id, amount, instrument, round_size,
	conversion_cap, discount_percent, pro_rata, invested_on, rationale,
	created_at, updated_at`

func scanInvestment(row pgx.Row) (*Investment, error) {
	var inv Investment
	err := row.Scan(&inv.ID, &inv.CompanyID, &inv.Amount, &inv.Instrument,
		&inv.RoundSize, &inv.ConversionCap, &inv.DiscountPercent, &inv.ProRata,
		&inv.InvestedOn, &inv.Rationale, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvestment records an investment into a company.
func (db *DB) CreateInvestment(ctx context.Context, inv *Investment) (*Investment, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO investments (company_id, amount, instrument, round_size,
			conversion_cap, discount_percent, pro_rata, invested_on, rationale)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+investmentColumns,
		inv.CompanyID, inv.Amount, inv.Instrument, inv.RoundSize,
		inv.ConversionCap, inv.DiscountPercent, inv.ProRata, inv.InvestedOn,
		inv.Rationale)
	created, err := scanInvestment(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	return created, nil
}

// GetInvestment retrieves one investment, or nil when absent.
func (db *DB) GetInvestment(ctx context.Context, id uuid.UUID) (*Investment, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE id = $1`, id)
	inv, err := scanInvestment(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return inv, nil
}

// ListInvestments returns a company's investments, newest first.
func (db *DB) ListInvestments(ctx context.Context, companyID uuid.UUID) ([]*Investment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+investmentColumns+` FROM investments
		 WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var investments []*Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

// UpdateInvestment applies the mutable fields of inv.
func (db *DB) UpdateInvestment(ctx context.Context, inv *Investment) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE investments SET amount = $1, instrument = $2, round_size = $3,
			conversion_cap = $4, discount_percent = $5, pro_rata = $6,
			invested_on = $7, rationale = $8, updated_at = NOW()
		 WHERE id = $9`,
		inv.Amount, inv.Instrument, inv.RoundSize, inv.ConversionCap,
		inv.DiscountPercent, inv.ProRata, inv.InvestedOn, inv.Rationale, inv.ID)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}
	return nil
}

// DeleteInvestment removes an investment.
func (db *DB) DeleteInvestment(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return nil
}
