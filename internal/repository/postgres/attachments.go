package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/ParsimonyGit/shipstation-integration/internal/domain"
)

type attachmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *sql.DB, logger *zap.Logger) *attachmentRepository {
	return &attachmentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	query := `
		INSERT INTO attachments (name, file_name, content, attached_to_type,
			attached_to_name, folder, is_private, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		attachment.Name,
		attachment.FileName,
		attachment.Content,
		attachment.AttachedToType,
		attachment.AttachedToName,
		attachment.Folder,
		attachment.IsPrivate,
		attachment.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create attachment", zap.Error(err))
		return err
	}
	return nil
}

func (r *attachmentRepository) ListFor(ctx context.Context, attachedToType, attachedToName string) ([]*domain.Attachment, error) {
	query := `
		SELECT name, file_name, content, attached_to_type, attached_to_name,
			folder, is_private, created_at
		FROM attachments
		WHERE attached_to_type = $1 AND attached_to_name = $2
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, attachedToType, attachedToName)
	if err != nil {
		r.logger.Error("Failed to list attachments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		var attachment domain.Attachment
		err := rows.Scan(
			&attachment.Name,
			&attachment.FileName,
			&attachment.Content,
			&attachment.AttachedToType,
			&attachment.AttachedToName,
			&attachment.Folder,
			&attachment.IsPrivate,
			&attachment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, &attachment)
	}
	return attachments, rows.Err()
}
