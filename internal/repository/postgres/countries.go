package postgres

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type countryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCountryRepository creates a new country lookup repository
func NewCountryRepository(db *sql.DB, logger *zap.Logger) *countryRepository {
	return &countryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *countryRepository) NameByCode(ctx context.Context, code string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT country_name FROM countries WHERE code = $1`,
		strings.ToLower(code),
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", &errors.ErrNotFound{Resource: "country", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to look up country by code", zap.Error(err))
		return "", err
	}
	return name, nil
}

func (r *countryRepository) CodeByName(ctx context.Context, name string) (string, error) {
	var code string
	err := r.db.QueryRowContext(ctx,
		`SELECT code FROM countries WHERE country_name = $1`, name,
	).Scan(&code)
	if err == sql.ErrNoRows {
		return "", &errors.ErrNotFound{Resource: "country", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to look up country by name", zap.Error(err))
		return "", err
	}
	return code, nil
}
