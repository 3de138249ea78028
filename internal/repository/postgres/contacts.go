package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

type contactRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sql.DB, logger *zap.Logger) *contactRepository {
	return &contactRepository{
		db:     db,
		logger: logger,
	}
}

const contactColumns = `name, first_name, last_name, email_id, phone, customer_link, created_at`

func scanContact(row interface{ Scan(...interface{}) error }) (*domain.Contact, error) {
	var contact domain.Contact
	err := row.Scan(
		&contact.Name,
		&contact.FirstName,
		&contact.LastName,
		&contact.EmailID,
		&contact.Phone,
		&contact.CustomerLink,
		&contact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) Get(ctx context.Context, name string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE name = $1`

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "contact", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get contact", zap.Error(err))
		return nil, err
	}
	return contact, nil
}

func (r *contactRepository) FindByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE email_id = $1 LIMIT 1`

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "contact", ID: email}
	}
	if err != nil {
		r.logger.Error("Failed to find contact by email", zap.Error(err))
		return nil, err
	}
	return contact, nil
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		contact.Name,
		contact.FirstName,
		contact.LastName,
		contact.EmailID,
		contact.Phone,
		contact.CustomerLink,
		contact.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create contact", zap.Error(err))
		return err
	}
	return nil
}
