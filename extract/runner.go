package extract

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/mailscout"
	"golang.org/x/sync/errgroup"
)

// Runner defaults.
const (
	DefaultDelay       = 1 * time.Second
	DefaultConcurrency = 3
)

// Runner drives jobs through the extractor one URL at a time, persisting
// progress after every URL so an interrupted job resumes where it stopped.
type Runner struct {
	Jobs      mailscout.JobService
	Extractor mailscout.Extractor

	// Delay is the pause between consecutive URLs of a job.
	Delay time.Duration

	// BatchSize limits how many URLs a single run processes. Zero means all.
	BatchSize int

	// Concurrency limits how many jobs RunPending processes at once.
	Concurrency int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewRunner creates a Runner with the default delay and concurrency.
func NewRunner(jobs mailscout.JobService, extractor mailscout.Extractor) *Runner {
	return &Runner{
		Jobs:        jobs,
		Extractor:   extractor,
		Delay:       DefaultDelay,
		Concurrency: DefaultConcurrency,
	}
}

// Result holds the outcome of a single job run.
type Result struct {
	JobID     string
	Status    mailscout.JobStatus
	Processed int
	Failed    int
	Emails    int
}

// ProgressEvent reports progress during a job run.
type ProgressEvent struct {
	Type      ProgressType
	JobID     string
	Completed int
	Total     int
	URL       string
	Emails    []string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting job progress.
type ProgressFunc func(event ProgressEvent)

// reporter serializes progress callbacks from concurrent jobs.
type reporter struct {
	mu sync.Mutex
	fn ProgressFunc
}

func (r *reporter) report(event ProgressEvent) {
	if r == nil || r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fn(event)
}

// RunJob processes the remaining URLs of the job with the given ID.
// Returns ECONFLICT if the job already completed or failed.
func (r *Runner) RunJob(ctx context.Context, id string, progress ProgressFunc) (*Result, error) {
	return r.runJob(ctx, id, &reporter{fn: progress})
}

// RunPending processes every pending or interrupted job, least recently
// processed first, up to Concurrency jobs at a time. Every job is attempted;
// the first error encountered is returned alongside all results.
func (r *Runner) RunPending(ctx context.Context, progress ProgressFunc) ([]*Result, error) {
	jobs, err := r.Jobs.FindJobs(ctx, mailscout.JobFilter{
		Statuses: []mailscout.JobStatus{mailscout.JobPending, mailscout.JobProcessing},
		SortBy:   mailscout.SortByLastProcessed,
	})
	if err != nil {
		return nil, fmt.Errorf("find pending jobs: %w", err)
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	rep := &reporter{fn: progress}
	results := make([]*Result, len(jobs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.runJob(ctx, job.ID, rep)
			results[i] = res
			return err
		})
	}
	err = g.Wait()

	out := make([]*Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			out = append(out, res)
		}
	}
	return out, err
}

func (r *Runner) runJob(ctx context.Context, id string, rep *reporter) (*Result, error) {
	job, err := r.Jobs.FindJobByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status.Done() {
		return nil, mailscout.Errorf(mailscout.ECONFLICT, "job %s already %s", job.ID, job.Status)
	}

	upd := mailscout.JobUpdate{Status: ptr(mailscout.JobProcessing)}
	if job.StartedAt.IsZero() {
		upd.StartedAt = ptr(r.now())
	}
	if job, err = r.Jobs.UpdateJob(ctx, id, upd); err != nil {
		return nil, fmt.Errorf("start job: %w", err)
	}

	total := job.TotalURLs()
	start := job.ProcessedURLs
	end := total
	if r.BatchSize > 0 && start+r.BatchSize < total {
		end = start + r.BatchSize
	}

	res := &Result{JobID: job.ID, Status: job.Status}
	emails := mailscout.NewEmailSet(job.Emails...)

	rep.report(ProgressEvent{
		Type:      ProgressStarted,
		JobID:     job.ID,
		Completed: start,
		Total:     total,
	})

	processed := start
	for i := start; i < end; i++ {
		if i > start {
			if err := sleep(ctx, r.Delay); err != nil {
				break
			}
		} else if ctx.Err() != nil {
			break
		}

		pageURL := job.URLs[i]
		found, extractErr := r.Extractor.Extract(ctx, pageURL)
		if ctx.Err() != nil {
			// Fetches were cut short; leave the URL for the next run.
			break
		}
		emails.Add(found...)
		processed = i + 1

		if _, err := r.Jobs.UpdateJob(ctx, id, mailscout.JobUpdate{
			ProcessedURLs:   ptr(processed),
			Emails:          ptr(emails.Slice()),
			LastProcessedAt: ptr(r.now()),
		}); err != nil {
			r.fail(ctx, id)
			res.Status = mailscout.JobFailed
			res.Emails = emails.Len()
			rep.report(ProgressEvent{Type: ProgressFinished, JobID: job.ID, Completed: processed, Total: total, Error: err})
			return res, fmt.Errorf("save job progress: %w", err)
		}

		event := ProgressEvent{
			Type:      ProgressCompleted,
			JobID:     job.ID,
			Completed: processed,
			Total:     total,
			URL:       pageURL,
			Emails:    found,
		}
		res.Processed++
		if extractErr != nil {
			event.Type = ProgressFailed
			event.Error = extractErr
			res.Failed++
		}
		rep.report(event)
	}

	if processed == total {
		if _, err := r.Jobs.UpdateJob(ctx, id, mailscout.JobUpdate{Status: ptr(mailscout.JobCompleted)}); err != nil {
			return res, fmt.Errorf("complete job: %w", err)
		}
		res.Status = mailscout.JobCompleted
	}
	res.Emails = emails.Len()

	rep.report(ProgressEvent{
		Type:      ProgressFinished,
		JobID:     job.ID,
		Completed: processed,
		Total:     total,
	})

	return res, ctx.Err()
}

// fail marks the job failed. The original error is what callers see, so a
// failure here is ignored.
func (r *Runner) fail(ctx context.Context, id string) {
	_, _ = r.Jobs.UpdateJob(context.WithoutCancel(ctx), id, mailscout.JobUpdate{Status: ptr(mailscout.JobFailed)})
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// sleep waits for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
