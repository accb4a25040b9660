package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Artexxx/hr-onboarding/internal/dto"
)

// fakeRow fills the columns of scanSubmission in order.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = []byte(r.values[i].(string))
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unexpected destination")
		}
	}
	return nil
}

type fakePool struct {
	row     fakeRow
	tag     string
	execErr error

	execArgs []any
}

func (p *fakePool) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (p *fakePool) QueryRow(context.Context, string, ...any) pgx.Row {
	return p.row
}

func (p *fakePool) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	p.execArgs = args
	return pgconn.NewCommandTag(p.tag), p.execErr
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("not supported")
}

func TestRepository_Upsert(t *testing.T) {
	pool := &fakePool{tag: "INSERT 0 1"}
	repo := NewRepository(pool)

	id := uuid.New()
	submittedAt := time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)
	err := repo.Upsert(context.Background(), dto.Submission{
		SubmissionID: id,
		FullName:     "Anna Ivanova",
		Department:   "Engineering",
		StartDate:    "2026-11-02",
		Form: dto.OnboardingForm{
			Review: dto.Review{Confirmation: true},
		},
		SubmittedAt: submittedAt,
	})
	require.NoError(t, err)

	require.Len(t, pool.execArgs, 1)
	args, ok := pool.execArgs[0].(pgx.NamedArgs)
	require.True(t, ok)
	assert.Equal(t, id, args["submission_id"])
	assert.Equal(t, `{"confirmation":true}`, args["review"])
	assert.Equal(t, submittedAt, args["submitted_at"])
}

func TestRepository_Get(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, time.October, 18, 10, 0, 0, 0, time.UTC)

	pool := &fakePool{row: fakeRow{values: []any{
		id, "Anna Ivanova", "anna@company.com", "Engineering", "2026-11-02",
		`{"fullName":"Anna Ivanova","email":"anna@company.com","phoneNumber":"+1-123-456-7890","dateOfBirth":"1994-06-12"}`,
		`{"department":"Engineering","positionTitle":"Software Engineer","startDate":"2026-11-02","jobType":"Full-time","salary":120000,"manager":"m1"}`,
		`{"primarySkills":["Go","SQL","Docker"],"experience":{"Go":5},"preferredHours":{"start":"09:00","end":"17:00"},"remoteWorkPreference":40}`,
		`{"contactName":"Ivan Ivanov","relationship":"Parent","phoneNumber":"+7-916-123-4567"}`,
		`{"confirmation":true}`,
		at, at,
	}}}
	repo := NewRepository(pool)

	got, err := repo.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, got.SubmissionID)
	assert.Equal(t, "1994-06-12", got.Form.PersonalInfo.DateOfBirth)
	assert.Equal(t, float64(120000), got.Form.JobDetails.Salary)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, got.Form.Skills.PrimarySkills)
	assert.Equal(t, "Parent", got.Form.EmergencyContact.Relationship)
	assert.True(t, got.Form.Review.Confirmation)
	assert.Equal(t, at, got.SubmittedAt)
}

func TestRepository_GetNotFound(t *testing.T) {
	repo := NewRepository(&fakePool{row: fakeRow{err: pgx.ErrNoRows}})

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dto.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(&fakePool{tag: "DELETE 1"})
	assert.NoError(t, repo.Delete(context.Background(), uuid.New()))

	repo = NewRepository(&fakePool{tag: "DELETE 0"})
	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), dto.ErrNotFound)
}
