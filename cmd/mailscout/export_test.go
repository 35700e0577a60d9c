package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mailscout"
	main "github.com/fwojciec/mailscout/cmd/mailscout"
	"github.com/fwojciec/mailscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportJobs() *mock.JobService {
	return &mock.JobService{
		FindJobByIDFn: func(_ context.Context, id string) (*mailscout.Job, error) {
			return &mailscout.Job{ID: id, Name: "leads", Emails: []string{"info@acme.com", "hank@globex.com"}}, nil
		},
	}
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes CSV to stdout", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Jobs = exportJobs()

		err := (&main.ExportCmd{ID: "job-1"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "email\ninfo@acme.com\nhank@globex.com\n", stdout.String())
	})

	t.Run("writes CSV to file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "emails.csv")
		deps, stdout, stderr := newDeps()
		deps.Jobs = exportJobs()

		err := (&main.ExportCmd{ID: "job-1", Output: path}).Run(deps)

		require.NoError(t, err)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "email\ninfo@acme.com\nhank@globex.com\n", string(b))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Exported 2 emails")
	})

	t.Run("writes header only for job without emails", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Jobs = &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*mailscout.Job, error) {
				return &mailscout.Job{ID: id}, nil
			},
		}

		err := (&main.ExportCmd{ID: "job-1"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "email\n", stdout.String())
	})
}
