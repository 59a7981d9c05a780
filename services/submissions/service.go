// Package submissions manages the editorial film-submission pipeline.
// Admin-facing only; nothing here reaches the feed path.
package submissions

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelhouse/models"
)

var (
	ErrTitleRequired     = errors.New("title is required")
	ErrFilmmakerRequired = errors.New("filmmaker is required")
	ErrNotFound          = errors.New("submission not found")
	ErrInvalidStatus     = errors.New("invalid submission status")
)

// Service persists submissions in the shared sqlite database.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

func NewService(db *sql.DB, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{db: db, now: now}
}

// Create registers a new pending submission.
func (s *Service) Create(title, filmmaker, email, screenerURL, notes string) (models.Submission, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Submission{}, ErrTitleRequired
	}
	filmmaker = strings.TrimSpace(filmmaker)
	if filmmaker == "" {
		return models.Submission{}, ErrFilmmakerRequired
	}

	now := s.now().UTC()
	sub := models.Submission{
		ID:          uuid.NewString(),
		Title:       title,
		Filmmaker:   filmmaker,
		Email:       strings.TrimSpace(email),
		ScreenerURL: strings.TrimSpace(screenerURL),
		Notes:       notes,
		Status:      models.SubmissionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.Exec(`
		INSERT INTO submissions (id, title, filmmaker, email, screener_url, notes, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Title, sub.Filmmaker, sub.Email, sub.ScreenerURL, sub.Notes, sub.Status, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return models.Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	return sub, nil
}

// List returns submissions newest first, optionally filtered by status.
func (s *Service) List(status string) ([]models.Submission, error) {
	query := `SELECT id, title, filmmaker, email, screener_url, notes, status, created_at, updated_at
		FROM submissions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	subs := []models.Submission{}
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(&sub.ID, &sub.Title, &sub.Filmmaker, &sub.Email,
			&sub.ScreenerURL, &sub.Notes, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// SetStatus moves a submission to accepted or declined.
func (s *Service) SetStatus(id, status string) (models.Submission, error) {
	switch status {
	case models.SubmissionStatusPending, models.SubmissionStatusAccepted, models.SubmissionStatusDeclined:
	default:
		return models.Submission{}, ErrInvalidStatus
	}

	res, err := s.db.Exec(`UPDATE submissions SET status = ?, updated_at = ? WHERE id = ?`,
		status, s.now().UTC(), id)
	if err != nil {
		return models.Submission{}, fmt.Errorf("update submission: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Submission{}, ErrNotFound
	}
	return s.get(id)
}

func (s *Service) get(id string) (models.Submission, error) {
	var sub models.Submission
	err := s.db.QueryRow(`SELECT id, title, filmmaker, email, screener_url, notes, status, created_at, updated_at
		FROM submissions WHERE id = ?`, id).
		Scan(&sub.ID, &sub.Title, &sub.Filmmaker, &sub.Email,
			&sub.ScreenerURL, &sub.Notes, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, ErrNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}
