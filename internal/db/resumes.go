package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/types"
)

const savedResumeColumns = `id, user_id, name, target_job, format, resume_data, ats_score, created_at, updated_at`

// CreateResume stores a new resume for userID
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, input SavedResumeInput) (*SavedResume, error) {
	docJSON, scoreJSON, err := marshalResume(input)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO saved_resumes (user_id, name, target_job, format, resume_data, ats_score)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+savedResumeColumns,
		userID, input.Name, input.TargetJob, formatOrDefault(input.Format), docJSON, scoreJSON,
	)
	r, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// GetResume returns the resume with id owned by userID, or nil if there is none
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*SavedResume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+savedResumeColumns+` FROM saved_resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	r, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListResumes returns the resumes of userID, most recently updated first
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]SavedResume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+savedResumeColumns+` FROM saved_resumes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []SavedResume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResume replaces the resume with id owned by userID. It returns ErrNotFound
// when there is no such resume.
func (db *DB) UpdateResume(ctx context.Context, userID, id uuid.UUID, input SavedResumeInput) (*SavedResume, error) {
	docJSON, scoreJSON, err := marshalResume(input)
	if err != nil {
		return nil, err
	}

	row := db.pool.QueryRow(ctx,
		`UPDATE saved_resumes
		 SET name = $3, target_job = $4, format = $5, resume_data = $6, ats_score = $7, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+savedResumeColumns,
		id, userID, input.Name, input.TargetJob, formatOrDefault(input.Format), docJSON, scoreJSON,
	)
	r, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return r, nil
}

// DeleteResume removes the resume with id owned by userID
func (db *DB) DeleteResume(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM saved_resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalResume(input SavedResumeInput) (docJSON, scoreJSON []byte, err error) {
	docJSON, err = json.Marshal(types.Normalize(input.Document))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}
	if input.ATSScore != nil {
		if scoreJSON, err = json.Marshal(input.ATSScore); err != nil {
			return nil, nil, fmt.Errorf("failed to marshal ATS score: %w", err)
		}
	}
	return docJSON, scoreJSON, nil
}

func formatOrDefault(f types.LayoutFormat) string {
	if f == "" {
		return string(types.FormatStandard)
	}
	return string(f)
}

func scanResume(row pgx.Row) (*SavedResume, error) {
	var (
		r         SavedResume
		format    string
		docJSON   []byte
		scoreJSON []byte
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.TargetJob, &format, &docJSON, &scoreJSON, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Format = types.LayoutFormat(format)

	doc, err := types.ParseDocument(docJSON)
	if err != nil {
		return nil, fmt.Errorf("stored resume %s is invalid: %w", r.ID, err)
	}
	r.Document = *doc

	if scoreJSON != nil {
		var score types.ATSScore
		if err := json.Unmarshal(scoreJSON, &score); err != nil {
			return nil, fmt.Errorf("stored ATS score of %s is invalid: %w", r.ID, err)
		}
		r.ATSScore = &score
	}
	return &r, nil
}
