package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, name, name_normalized, description, tagline, tags, keywords,
	country, incorporation, hq_line1, hq_city, hq_state, hq_zip, hq_country,
	latitude, longitude, created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.Name, &c.NameNormalized, &c.Description, &c.Tagline,
		&c.Tags, &c.Keywords, &c.Country, &c.Incorporation, &c.HQLine1, &c.HQCity,
		&c.HQState, &c.HQZip, &c.HQCountry, &c.Latitude, &c.Longitude,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCompany inserts a company; the normalized name must be unique.
func (db *DB) CreateCompany(ctx context.Context, name string) (*Company, error) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, fmt.Errorf("company name cannot be empty")
	}
	row := db.pool.QueryRow(ctx,
		`INSERT INTO companies (name, name_normalized)
		 VALUES ($1, $2)
		 ON CONFLICT (name_normalized) DO UPDATE SET updated_at = NOW()
		 RETURNING `+companyColumns,
		name, normalized,
	)
	c, err := scanCompany(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return c, nil
}

// GetCompanyByID retrieves a company, or nil when absent.
func (db *DB) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// GetCompanyByName retrieves a company by normalized name, or nil when absent.
func (db *DB) GetCompanyByName(ctx context.Context, name string) (*Company, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE name_normalized = $1`,
		NormalizeName(name))
	c, err := scanCompany(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company by name: %w", err)
	}
	return c, nil
}

// ListCompanies returns companies ordered by name, paginated.
func (db *DB) ListCompanies(ctx context.Context, limit, offset int) ([]*Company, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// UpdateCompany applies the mutable fields of c.
func (db *DB) UpdateCompany(ctx context.Context, c *Company) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE companies SET
			name = $1, name_normalized = $2, description = $3, tagline = $4,
			tags = $5, keywords = $6, country = $7, incorporation = $8,
			hq_line1 = $9, hq_city = $10, hq_state = $11, hq_zip = $12,
			hq_country = $13, latitude = $14, longitude = $15, updated_at = NOW()
		 WHERE id = $16`,
		c.Name, NormalizeName(c.Name), c.Description, c.Tagline, c.Tags,
		c.Keywords, c.Country, c.Incorporation, c.HQLine1, c.HQCity, c.HQState,
		c.HQZip, c.HQCountry, c.Latitude, c.Longitude, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	return nil
}

// DeleteCompany removes a company and, via cascade, its founders and
// investments.
func (db *DB) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}
