package domain

import "errors"

// Pipeline error taxonomy. Stages wrap these with fmt.Errorf+%w so
// callers classify with errors.Is regardless of how deep the failure was.
var (
	// ErrRateLimited marks external throttling. It is matched by the
	// transport's numeric status code, never by message text.
	ErrRateLimited = errors.New("rate limited by seller API")

	// ErrReportFailed is the terminal failed status of a report job.
	ErrReportFailed = errors.New("report generation failed")

	// ErrReportTimeout means the poll attempt budget ran out before the
	// job reached a terminal state.
	ErrReportTimeout = errors.New("report not ready within attempt budget")

	// ErrUnexpectedJobStatus covers any status outside the known set.
	// It is fatal and never retried.
	ErrUnexpectedJobStatus = errors.New("unexpected report job status")

	// ErrMalformedResponse means a required field was missing from a
	// submit, poll or detail response.
	ErrMalformedResponse = errors.New("malformed seller API response")

	// ErrNoDataAvailable means a stage completed but produced zero
	// usable records. Fatal to the caller.
	ErrNoDataAvailable = errors.New("no suitable records")

	// ErrUpdateCooldown means the full update was triggered again within
	// the cooldown window.
	ErrUpdateCooldown = errors.New("update cooldown in effect")

	// ErrUpdateInProgress means another process holds the update lock.
	ErrUpdateInProgress = errors.New("update already in progress")
)
