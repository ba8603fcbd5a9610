package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	clierrors "github.com/declare-cloud/releasenotes/internal/errors"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":          {err: nil, want: ExitSuccess},
		"exit error":         {err: NewExitError(ExitNoRelease), want: 2},
		"wrapped exit error": {err: fmt.Errorf("decide: %w", NewExitError(ExitNoRelease)), want: 2},
		"argument error":     {err: clierrors.NewArgumentError("bad flag"), want: ExitInvalidArguments},
		"prerequisite error": {err: clierrors.NewPrerequisiteError("no repo"), want: ExitMissingDependencies},
		"configuration error": {
			err:  clierrors.NewConfigError("bad config"),
			want: ExitFailure,
		},
		"runtime error": {err: clierrors.NewRuntimeError("boom"), want: ExitFailure},
		"generic error": {err: errors.New("generic error"), want: ExitFailure},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exit code 2", NewExitError(2).Error())
}

func TestExitCodeUniqueness(t *testing.T) {
	t.Parallel()

	codes := []int{
		ExitSuccess,
		ExitFailure,
		ExitNoRelease,
		ExitInvalidArguments,
		ExitMissingDependencies,
	}

	seen := make(map[int]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "Duplicate exit code: %d", code)
		seen[code] = true
	}
}
