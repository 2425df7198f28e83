package zcli

import "strconv"

// Process exit codes produced by the parser itself. Handlers may return any
// other value.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ExitError carries a non-zero exit code out of Execute.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }
