package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

const resumeColumns = `id, user_id, title, template_id, document,
	share_link_id, share_active, share_expires_at, created_at, updated_at`

func scanResume(row pgx.Row) (*Resume, error) {
	var (
		r           Resume
		raw         []byte
		shareLinkID *string
		shareActive bool
		shareExpiry *time.Time
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.TemplateID, &raw,
		&shareLinkID, &shareActive, &shareExpiry, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &r.Document); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if shareLinkID != nil {
		r.ShareLink = &ShareLink{ID: *shareLinkID, Active: shareActive, ExpiresAt: shareExpiry}
	}
	return &r, nil
}

// CreateResume inserts a new resume document and returns the stored row.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, title, templateID string, doc types.Document) (*Resume, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, template_id, document)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resumeColumns,
		userID, title, templateID, raw,
	)
	resume, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return resume, nil
}

// GetResume retrieves a resume by id. A missing resume returns (nil, nil).
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	resume, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return resume, nil
}

// GetResumeByShareLink retrieves a resume through its share link id,
// regardless of the link's active flag; validity is the caller's call.
func (db *DB) GetResumeByShareLink(ctx context.Context, linkID string) (*Resume, error) {
	resume, err := scanResume(db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE share_link_id = $1`, linkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume by share link: %w", err)
	}
	return resume, nil
}

// ListResumes retrieves all resumes owned by a user, newest first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *resume)
	}
	return resumes, rows.Err()
}

// UpdateResumeDocument replaces the document wholesale. Concurrent edits to
// the same resume resolve last-write-wins.
func (db *DB) UpdateResumeDocument(ctx context.Context, id uuid.UUID, doc types.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET document = $1, updated_at = NOW() WHERE id = $2`,
		raw, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// UpdateResumeMeta updates title and template. Empty values keep the
// current column.
func (db *DB) UpdateResumeMeta(ctx context.Context, id uuid.UUID, title, templateID string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET
			title = COALESCE(NULLIF($1, ''), title),
			template_id = COALESCE(NULLIF($2, ''), template_id),
			updated_at = NOW()
		 WHERE id = $3`,
		title, templateID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// DeleteResume removes a resume permanently.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// SetShareLink attaches or replaces the public share link on a resume.
func (db *DB) SetShareLink(ctx context.Context, id uuid.UUID, link ShareLink) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET
			share_link_id = $1, share_active = $2, share_expires_at = $3,
			updated_at = NOW()
		 WHERE id = $4`,
		link.ID, link.Active, link.ExpiresAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set share link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}

// ClearShareLink revokes the public share link.
func (db *DB) ClearShareLink(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes SET
			share_link_id = NULL, share_active = FALSE, share_expires_at = NULL,
			updated_at = NOW()
		 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to clear share link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", id)
	}
	return nil
}
