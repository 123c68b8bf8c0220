package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/tracker"
)

const applicationColumns = `id, user_id, company_name, position_title, location, work_type, status,
	applied_date, job_url, salary_range, resume_id, created_at, updated_at`

// -----------------------------------------------------------------------------
// Job Application Methods
// -----------------------------------------------------------------------------

// CreateApplication stores a new job application for userID
func (db *DB) CreateApplication(ctx context.Context, userID uuid.UUID, input ApplicationInput) (*tracker.Application, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_applications
		   (user_id, company_name, position_title, location, work_type, status, applied_date, job_url, salary_range, resume_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+applicationColumns,
		userID, input.CompanyName, input.PositionTitle, input.Location, input.WorkType,
		statusOrDefault(input.Status), input.AppliedDate, input.JobURL, input.SalaryRange, input.ResumeID,
	)
	a, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplication returns the application with id owned by userID, or nil if there is none
func (db *DB) GetApplication(ctx context.Context, userID, id uuid.UUID) (*tracker.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// ListApplications returns the applications of userID, newest first. A non-empty
// status other than "all" restricts the list to that status.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID, status string) ([]tracker.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE user_id = $1`
	args := []any{userID}
	if status != "" && status != "all" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []tracker.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// UpdateApplication replaces the fields of an application owned by userID
func (db *DB) UpdateApplication(ctx context.Context, userID, id uuid.UUID, input ApplicationInput) (*tracker.Application, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE job_applications
		 SET company_name = $3, position_title = $4, location = $5, work_type = $6, status = $7,
		     applied_date = $8, job_url = $9, salary_range = $10, resume_id = $11, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+applicationColumns,
		id, userID, input.CompanyName, input.PositionTitle, input.Location, input.WorkType,
		statusOrDefault(input.Status), input.AppliedDate, input.JobURL, input.SalaryRange, input.ResumeID,
	)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return a, nil
}

// UpdateApplicationStatus moves an application owned by userID to status
func (db *DB) UpdateApplicationStatus(ctx context.Context, userID, id uuid.UUID, status tracker.Status) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET status = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteApplication removes an application owned by userID together with its notes
func (db *DB) DeleteApplication(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM job_applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------------------------
// Application Note Methods
// -----------------------------------------------------------------------------

// AddNote attaches a note to an application owned by userID
func (db *DB) AddNote(ctx context.Context, userID, applicationID uuid.UUID, input NoteInput) (*tracker.Note, error) {
	noteType := input.NoteType
	if noteType == "" {
		noteType = tracker.NoteGeneral
	}

	var n tracker.Note
	err := db.pool.QueryRow(ctx,
		`INSERT INTO application_notes (application_id, user_id, note_type, content)
		 SELECT id, user_id, $3, $4 FROM job_applications WHERE id = $1 AND user_id = $2
		 RETURNING id, application_id, user_id, note_type, content, note_date`,
		applicationID, userID, noteType, input.Content,
	).Scan(&n.ID, &n.ApplicationID, &n.UserID, &n.NoteType, &n.Content, &n.NoteDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return &n, nil
}

// ListNotes returns the notes of an application owned by userID, newest first
func (db *DB) ListNotes(ctx context.Context, userID, applicationID uuid.UUID) ([]tracker.Note, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, application_id, user_id, note_type, content, note_date
		 FROM application_notes WHERE application_id = $1 AND user_id = $2
		 ORDER BY note_date DESC`,
		applicationID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []tracker.Note{}
	for rows.Next() {
		var n tracker.Note
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.UserID, &n.NoteType, &n.Content, &n.NoteDate); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// NotesByApplication returns every note of userID grouped by application ID
func (db *DB) NotesByApplication(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]tracker.Note, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, application_id, user_id, note_type, content, note_date
		 FROM application_notes WHERE user_id = $1
		 ORDER BY note_date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	grouped := make(map[uuid.UUID][]tracker.Note)
	for rows.Next() {
		var n tracker.Note
		if err := rows.Scan(&n.ID, &n.ApplicationID, &n.UserID, &n.NoteType, &n.Content, &n.NoteDate); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		grouped[n.ApplicationID] = append(grouped[n.ApplicationID], n)
	}
	return grouped, rows.Err()
}

// DeleteNote removes a note owned by userID
func (db *DB) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM application_notes WHERE id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func statusOrDefault(s tracker.Status) string {
	if s == "" {
		return string(tracker.DefaultStatus)
	}
	return string(s)
}

func scanApplication(row pgx.Row) (*tracker.Application, error) {
	var (
		a      tracker.Application
		status string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.CompanyName, &a.PositionTitle, &a.Location, &a.WorkType, &status,
		&a.AppliedDate, &a.JobURL, &a.SalaryRange, &a.ResumeID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = tracker.Status(status)
	return &a, nil
}
