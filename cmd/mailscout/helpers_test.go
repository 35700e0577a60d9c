package main_test

import (
	"bytes"
	"context"

	main "github.com/fwojciec/mailscout/cmd/mailscout"
)

// newDeps returns Dependencies writing to fresh buffers.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func ptr[T any](v T) *T {
	return &v
}
