package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/mailscout"
	main "github.com/fwojciec/mailscout/cmd/mailscout"
	"github.com/fwojciec/mailscout/extract"
	"github.com/fwojciec/mailscout/mock"
	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeJobs returns a JobService mock holding a single job in memory.
func storeJobs(job *mailscout.Job) *mock.JobService {
	var mu sync.Mutex
	return &mock.JobService{
		FindJobByIDFn: func(_ context.Context, id string) (*mailscout.Job, error) {
			mu.Lock()
			defer mu.Unlock()
			if id != job.ID {
				return nil, mailscout.Errorf(mailscout.ENOTFOUND, "job not found")
			}
			cp := *job
			return &cp, nil
		},
		FindJobsFn: func(_ context.Context, filter mailscout.JobFilter) ([]*mailscout.Job, error) {
			mu.Lock()
			defer mu.Unlock()
			if job.Status.Done() {
				return []*mailscout.Job{}, nil
			}
			cp := *job
			return []*mailscout.Job{&cp}, nil
		},
		UpdateJobFn: func(_ context.Context, id string, upd mailscout.JobUpdate) (*mailscout.Job, error) {
			mu.Lock()
			defer mu.Unlock()
			if upd.Status != nil {
				job.Status = *upd.Status
			}
			if upd.ProcessedURLs != nil {
				job.ProcessedURLs = *upd.ProcessedURLs
			}
			if upd.Emails != nil {
				job.Emails = *upd.Emails
			}
			cp := *job
			return &cp, nil
		},
	}
}

func newRunDeps(t *testing.T, job *mailscout.Job) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	deps, stdout, stderr := newDeps()
	deps.Jobs = storeJobs(job)
	deps.LockPath = filepath.Join(t.TempDir(), "mailscout.db.lock")
	deps.Runner = &extract.Runner{
		Jobs: deps.Jobs,
		Extractor: &mock.Extractor{
			ExtractFn: func(_ context.Context, baseURL string) ([]string, error) {
				if baseURL == "bogus" {
					return nil, mailscout.Errorf(mailscout.EINVALID, "base URL must be http or https")
				}
				return []string{"info@acme.com"}, nil
			},
		},
	}
	return deps, stdout, stderr
}

func TestRunCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs a single job to completion", func(t *testing.T) {
		t.Parallel()

		job := &mailscout.Job{ID: "job-1", Name: "leads", Status: mailscout.JobPending, URLs: []string{"https://acme.com", "bogus"}}
		deps, stdout, stderr := newRunDeps(t, job)

		err := (&main.RunCmd{ID: "job-1"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, mailscout.JobCompleted, job.Status)
		assert.Equal(t, []string{"info@acme.com"}, job.Emails)
		assert.Contains(t, stdout.String(), "[job-1] 1/2 https://acme.com: 1 emails")
		assert.Contains(t, stdout.String(), "Job job-1 completed: processed 2 URLs (1 failed), 1 emails total")
		assert.Contains(t, stderr.String(), "[job-1] skip bogus: base URL must be http or https")
	})

	t.Run("runs pending jobs when no ID is given", func(t *testing.T) {
		t.Parallel()

		job := &mailscout.Job{ID: "job-1", Name: "leads", Status: mailscout.JobPending, URLs: []string{"https://acme.com"}}
		deps, _, _ := newRunDeps(t, job)

		err := (&main.RunCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, mailscout.JobCompleted, job.Status)
	})

	t.Run("applies batch size flag", func(t *testing.T) {
		t.Parallel()

		job := &mailscout.Job{ID: "job-1", Name: "leads", Status: mailscout.JobPending, URLs: []string{"https://a.com", "https://b.com", "https://c.com"}}
		deps, _, _ := newRunDeps(t, job)

		err := (&main.RunCmd{ID: "job-1", BatchSize: 2}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 2, job.ProcessedURLs)
		assert.Equal(t, mailscout.JobProcessing, job.Status)
		assert.Zero(t, deps.Runner.BatchSize, "flag must not leak into shared runner")
	})

	t.Run("reports when nothing is pending", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newRunDeps(t, &mailscout.Job{ID: "job-1", Status: mailscout.JobCompleted})

		err := (&main.RunCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No pending jobs.")
	})

	t.Run("refuses finished job", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newRunDeps(t, &mailscout.Job{ID: "job-1", Status: mailscout.JobCompleted, URLs: []string{"https://acme.com"}})

		err := (&main.RunCmd{ID: "job-1"}).Run(deps)

		assert.Equal(t, mailscout.ECONFLICT, mailscout.ErrorCode(err))
	})

	t.Run("refuses to start while another run holds the lock", func(t *testing.T) {
		t.Parallel()

		job := &mailscout.Job{ID: "job-1", Status: mailscout.JobPending, URLs: []string{"https://acme.com"}}
		deps, _, stderr := newRunDeps(t, job)
		held := flock.New(deps.LockPath)
		locked, err := held.TryLock()
		require.NoError(t, err)
		require.True(t, locked)
		defer held.Unlock()

		err = (&main.RunCmd{ID: "job-1"}).Run(deps)

		assert.Equal(t, mailscout.ECONFLICT, mailscout.ErrorCode(err))
		assert.Equal(t, mailscout.JobPending, job.Status)
		assert.Contains(t, stderr.String(), "another run is in progress")
	})
}
