package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
	"github.com/ParsimonyGit/shipstation-integration/pkg/errors"
)

// cancelDocument flips a submitted document to cancelled. Drafts and
// already-cancelled documents are rejected so a cancel never silently
// clobbers the wrong lifecycle state.
func cancelDocument(ctx context.Context, db *sql.DB, logger *zap.Logger, table, resource, name string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET status = $2, updated_at = NOW() WHERE name = $1 AND status = $3`,
		table,
	)

	result, err := db.ExecContext(ctx, query, name, domain.DocStatusCancelled, domain.DocStatusSubmitted)
	if err != nil {
		logger.Error("Failed to cancel document",
			zap.String("resource", resource),
			zap.String("name", name),
			zap.Error(err),
		)
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: resource, ID: name}
	}
	return nil
}
