package exitcode

import (
	"fmt"
	"testing"

	"eventsctl/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"plain error", fmt.Errorf("boom"), GeneralError},
		{"invalid credentials", errors.NewInvalidCredentialsError(""), AuthError},
		{"not logged in", errors.NewNotLoggedInError(), AuthError},
		{"forbidden", errors.NewForbiddenError("admin"), Forbidden},
		{"network", errors.NewNetworkError(fmt.Errorf("dial tcp")), NetworkError},
		{"not found is not fatal classification", errors.NewNotFoundError("events"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.want {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
