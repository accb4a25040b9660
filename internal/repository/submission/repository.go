package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Artexxx/hr-onboarding/internal/dto"
)

type PgxPoolIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	pool PgxPoolIface
}

func NewRepository(pool PgxPoolIface) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Upsert(ctx context.Context, s dto.Submission) error {
	query := `
insert into employee_onboarding
  (submission_id, full_name, email, department, start_date,
   personal_info, job_details, skills, emergency_contact, review, submitted_at, updated_at)
values
  (@submission_id, @full_name, @email, @department, nullif(@start_date, '')::date,
   @personal_info::jsonb, @job_details::jsonb, @skills::jsonb, @emergency_contact::jsonb, @review::jsonb,
   @submitted_at, now())
on conflict (submission_id) do update set
  full_name         = excluded.full_name,
  email             = excluded.email,
  department        = excluded.department,
  start_date        = excluded.start_date,
  personal_info     = excluded.personal_info,
  job_details       = excluded.job_details,
  skills            = excluded.skills,
  emergency_contact = excluded.emergency_contact,
  review            = excluded.review,
  updated_at        = now();
`
	sections, err := marshalSections(s.Form)
	if err != nil {
		return err
	}

	submittedAt := s.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}

	args := pgx.NamedArgs{
		"submission_id":     s.SubmissionID,
		"full_name":         s.FullName,
		"email":             s.Email,
		"department":        s.Department,
		"start_date":        s.StartDate,
		"personal_info":     sections[0],
		"job_details":       sections[1],
		"skills":            sections[2],
		"emergency_contact": sections[3],
		"review":            sections[4],
		"submitted_at":      submittedAt,
	}

	if _, err := r.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*dto.Submission, error) {
	query := `
select submission_id,
       full_name,
       email,
       department,
       coalesce(to_char(start_date, 'YYYY-MM-DD'), ''),
       personal_info,
       job_details,
       skills,
       emergency_contact,
       review,
       submitted_at,
       updated_at
from employee_onboarding
where submission_id = $1;
`
	out, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dto.ErrNotFound
		}

		return nil, err
	}

	return out, nil
}

func (r *Repository) List(ctx context.Context, department string, limit, offset int) ([]dto.Submission, error) {
	query := `
select submission_id,
       full_name,
       email,
       department,
       coalesce(to_char(start_date, 'YYYY-MM-DD'), ''),
       personal_info,
       job_details,
       skills,
       emergency_contact,
       review,
       submitted_at,
       updated_at
from employee_onboarding
where (@department = '' or department = @department)
order by submitted_at desc, submission_id
limit @limit offset @offset
`
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{
		"department": department,
		"limit":      limit,
		"offset":     offset,
	})
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	out := make([]dto.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `delete from employee_onboarding where submission_id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dto.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*dto.Submission, error) {
	var (
		out                                       dto.Submission
		personal, job, skills, emergency, review []byte
	)

	err := row.Scan(
		&out.SubmissionID,
		&out.FullName,
		&out.Email,
		&out.Department,
		&out.StartDate,
		&personal,
		&job,
		&skills,
		&emergency,
		&review,
		&out.SubmittedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("row.Scan: %w", err)
	}

	targets := []struct {
		data []byte
		dst  any
	}{
		{personal, &out.Form.PersonalInfo},
		{job, &out.Form.JobDetails},
		{skills, &out.Form.Skills},
		{emergency, &out.Form.EmergencyContact},
		{review, &out.Form.Review},
	}
	for _, t := range targets {
		if len(t.data) == 0 {
			continue
		}
		if err := json.Unmarshal(t.data, t.dst); err != nil {
			return nil, fmt.Errorf("json.Unmarshal: %w", err)
		}
	}

	return &out, nil
}

func marshalSections(f dto.OnboardingForm) ([5]string, error) {
	var out [5]string

	for i, section := range []any{f.PersonalInfo, f.JobDetails, f.Skills, f.EmergencyContact, f.Review} {
		b, err := json.Marshal(section)
		if err != nil {
			return out, fmt.Errorf("json.Marshal: %w", err)
		}
		out[i] = string(b)
	}

	return out, nil
}
