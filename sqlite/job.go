package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/mailscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ mailscout.JobService = (*JobService)(nil)

const jobColumns = "id, name, status, urls, processed_urls, emails, created_at, updated_at, started_at, last_processed_at"

// JobService implements mailscout.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob creates a new pending job.
func (s *JobService) CreateJob(ctx context.Context, job *mailscout.Job) error {
	job.ProcessedURLs = 0
	if err := job.Validate(); err != nil {
		return err
	}

	urls, err := encodeStrings(job.URLs)
	if err != nil {
		return fmt.Errorf("encode urls: %w", err)
	}

	job.ID = uuid.New().String()
	job.Status = mailscout.JobPending
	job.Emails = []string{}
	job.StartedAt = time.Time{}
	job.LastProcessedAt = time.Time{}
	now := time.Now().UTC().Truncate(time.Second)
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, name, status, urls, processed_urls, emails, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, '[]', ?, ?)
	`, job.ID, job.Name, string(job.Status), urls,
		formatRFC3339(job.CreatedAt), formatRFC3339(job.UpdatedAt))

	return err
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*mailscout.Job, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)

	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mailscout.Errorf(mailscout.ENOTFOUND, "job not found")
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// FindJobs retrieves jobs matching the filter.
func (s *JobService) FindJobs(ctx context.Context, filter mailscout.JobFilter) ([]*mailscout.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + jobColumns + " FROM jobs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, string(status))
		}
		query.WriteString(" AND status IN (" + strings.Join(placeholders, ", ") + ")")
	}

	switch filter.SortBy {
	case mailscout.SortByLastProcessed:
		query.WriteString(" ORDER BY last_processed_at ASC, created_at ASC")
	case mailscout.SortByCreatedAt, "":
		query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	default:
		return nil, mailscout.Errorf(mailscout.EINVALID, "unknown sort order %q", filter.SortBy)
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*mailscout.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// UpdateJob updates an existing job.
func (s *JobService) UpdateJob(ctx context.Context, id string, upd mailscout.JobUpdate) (*mailscout.Job, error) {
	job, err := s.FindJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		job.Status = *upd.Status
	}
	if upd.ProcessedURLs != nil {
		job.ProcessedURLs = *upd.ProcessedURLs
	}
	if upd.Emails != nil {
		job.Emails = *upd.Emails
	}
	if upd.StartedAt != nil {
		job.StartedAt = upd.StartedAt.UTC().Truncate(time.Second)
	}
	if upd.LastProcessedAt != nil {
		job.LastProcessedAt = upd.LastProcessedAt.UTC().Truncate(time.Second)
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	emails, err := encodeStrings(job.Emails)
	if err != nil {
		return nil, fmt.Errorf("encode emails: %w", err)
	}

	job.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	_, err = s.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = ?, processed_urls = ?, emails = ?, updated_at = ?, started_at = ?, last_processed_at = ?
		WHERE id = ?
	`, string(job.Status), job.ProcessedURLs, emails, formatRFC3339(job.UpdatedAt),
		formatRFC3339(job.StartedAt), formatRFC3339(job.LastProcessedAt), id)

	if err != nil {
		return nil, err
	}

	return job, nil
}

// DeleteJob permanently removes a job.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return mailscout.Errorf(mailscout.ENOTFOUND, "job not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*mailscout.Job, error) {
	var (
		job                        mailscout.Job
		status, urls, emails       string
		createdAt, updatedAt       string
		startedAt, lastProcessedAt string
	)

	if err := s.Scan(&job.ID, &job.Name, &status, &urls, &job.ProcessedURLs, &emails,
		&createdAt, &updatedAt, &startedAt, &lastProcessedAt); err != nil {
		return nil, err
	}
	job.Status = mailscout.JobStatus(status)

	var err error
	if job.URLs, err = decodeStrings(urls, "urls"); err != nil {
		return nil, err
	}
	if job.Emails, err = decodeStrings(emails, "emails"); err != nil {
		return nil, err
	}
	if job.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if job.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if job.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if job.LastProcessedAt, err = parseRFC3339(lastProcessedAt, "last_processed_at"); err != nil {
		return nil, err
	}

	return &job, nil
}
