package mailscout

import (
	"context"
	"time"
)

// JobStatus represents the lifecycle state of a job.
type JobStatus string

// JobStatus constants.
const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == JobCompleted || s == JobFailed
}

// Estimates used before any URL of a job has been processed.
const (
	EstimatedTimePerURL = 1 * time.Second
	EstimateBuffer      = 5 * time.Second
)

// Job represents a batch of websites to harvest emails from.
type Job struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          JobStatus `json:"status"`
	URLs            []string  `json:"urls"`
	ProcessedURLs   int       `json:"processedUrls"`
	Emails          []string  `json:"emails"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	StartedAt       time.Time `json:"startedAt"`
	LastProcessedAt time.Time `json:"lastProcessedAt"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.Name == "" {
		return Errorf(EINVALID, "job name required")
	}
	if len(j.URLs) == 0 {
		return Errorf(EINVALID, "job requires at least one URL")
	}
	if j.ProcessedURLs < 0 || j.ProcessedURLs > len(j.URLs) {
		return Errorf(EINVALID, "job processed count out of range")
	}
	return nil
}

// TotalURLs returns the number of URLs in the job.
func (j *Job) TotalURLs() int {
	return len(j.URLs)
}

// Progress returns the share of processed URLs as a percentage.
func (j *Job) Progress() int {
	if len(j.URLs) == 0 {
		return 0
	}
	return j.ProcessedURLs * 100 / len(j.URLs)
}

// Remaining estimates how long the job needs to finish, measured from now.
// Before any URL is processed the estimate is EstimatedTimePerURL per URL
// plus EstimateBuffer; afterwards it extrapolates the observed average.
func (j *Job) Remaining(now time.Time) time.Duration {
	remaining := len(j.URLs) - j.ProcessedURLs
	if j.Status.Done() || remaining <= 0 {
		return 0
	}
	if j.ProcessedURLs == 0 || j.StartedAt.IsZero() {
		return time.Duration(remaining)*EstimatedTimePerURL + EstimateBuffer
	}

	elapsed := now.Sub(j.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	perURL := elapsed / time.Duration(j.ProcessedURLs)
	return perURL * time.Duration(remaining)
}

// JobService represents a service for managing jobs.
type JobService interface {
	// CreateJob creates a new pending job.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if job does not exist.
	FindJobByID(ctx context.Context, id string) (*Job, error)

	// FindJobs retrieves jobs matching the filter.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// UpdateJob updates an existing job.
	// Returns ENOTFOUND if job does not exist.
	UpdateJob(ctx context.Context, id string, upd JobUpdate) (*Job, error)

	// DeleteJob permanently removes a job.
	// Returns ENOTFOUND if job does not exist.
	DeleteJob(ctx context.Context, id string) error
}

// JobSortOrder represents the sort order for job queries.
type JobSortOrder string

// JobSortOrder constants for JobFilter.
const (
	SortByCreatedAt     JobSortOrder = "created_at"
	SortByLastProcessed JobSortOrder = "last_processed_at"
)

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	ID       *string     `json:"id"`
	Name     *string     `json:"name"`
	Statuses []JobStatus `json:"statuses"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy JobSortOrder `json:"sortBy"`
}

// JobUpdate represents fields that can be updated on a job.
type JobUpdate struct {
	Status          *JobStatus `json:"status"`
	ProcessedURLs   *int       `json:"processedUrls"`
	Emails          *[]string  `json:"emails"`
	StartedAt       *time.Time `json:"startedAt"`
	LastProcessedAt *time.Time `json:"lastProcessedAt"`
}
