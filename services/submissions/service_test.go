package submissions

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reelhouse/internal/database"
	"reelhouse/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return NewService(db, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
}

func TestCreateAndList(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Create("Static", "R. Ortiz", "r@example.com", "https://vimeo.example/1", "")
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusPending, first.Status)
	require.NotEmpty(t, first.ID)

	_, err = svc.Create("Driftwood", "K. Chen", "k@example.com", "", "rough cut")
	require.NoError(t, err)

	subs, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.Equal(t, "Driftwood", subs[0].Title, "newest first")
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create("  ", "Someone", "", "", "")
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create("Film", "  ", "", "", "")
	require.ErrorIs(t, err, ErrFilmmakerRequired)
}

func TestSetStatus(t *testing.T) {
	svc := newTestService(t)

	sub, err := svc.Create("Static", "R. Ortiz", "r@example.com", "", "")
	require.NoError(t, err)

	updated, err := svc.SetStatus(sub.ID, models.SubmissionStatusAccepted)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusAccepted, updated.Status)

	_, err = svc.SetStatus(sub.ID, "archived")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus("missing", models.SubmissionStatusDeclined)
	require.ErrorIs(t, err, ErrNotFound)

	pending, err := svc.List(models.SubmissionStatusPending)
	require.NoError(t, err)
	require.Empty(t, pending)
}
