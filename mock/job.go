package mock

import (
	"context"

	"github.com/fwojciec/mailscout"
)

var _ mailscout.JobService = (*JobService)(nil)

// JobService is a mock implementation of mailscout.JobService.
type JobService struct {
	CreateJobFn   func(ctx context.Context, job *mailscout.Job) error
	FindJobByIDFn func(ctx context.Context, id string) (*mailscout.Job, error)
	FindJobsFn    func(ctx context.Context, filter mailscout.JobFilter) ([]*mailscout.Job, error)
	UpdateJobFn   func(ctx context.Context, id string, upd mailscout.JobUpdate) (*mailscout.Job, error)
	DeleteJobFn   func(ctx context.Context, id string) error
}

func (s *JobService) CreateJob(ctx context.Context, job *mailscout.Job) error {
	return s.CreateJobFn(ctx, job)
}

func (s *JobService) FindJobByID(ctx context.Context, id string) (*mailscout.Job, error) {
	return s.FindJobByIDFn(ctx, id)
}

func (s *JobService) FindJobs(ctx context.Context, filter mailscout.JobFilter) ([]*mailscout.Job, error) {
	return s.FindJobsFn(ctx, filter)
}

func (s *JobService) UpdateJob(ctx context.Context, id string, upd mailscout.JobUpdate) (*mailscout.Job, error) {
	return s.UpdateJobFn(ctx, id, upd)
}

func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	return s.DeleteJobFn(ctx, id)
}
