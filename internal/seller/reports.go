package seller

import (
	"context"
	"fmt"
	"time"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/rs/zerolog/log"
)

// Report job statuses the API is known to return. Anything else is
// treated as fatal and never retried.
const (
	reportStatusSuccess    = "success"
	reportStatusFailed     = "failed"
	reportStatusProcessing = "processing"
	reportStatusWaiting    = "waiting"
)

// timestampLayout is ISO-8601 with millisecond precision and a literal
// UTC marker, as the report filter requires.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// ReportWaitOptions controls the polling loop of WaitForReport. The
// sleep between polls is fixed: no backoff, no jitter.
type ReportWaitOptions struct {
	Interval    time.Duration
	MaxAttempts int
}

func DefaultReportWaitOptions() ReportWaitOptions {
	return ReportWaitOptions{
		Interval:    3 * time.Second,
		MaxAttempts: 20,
	}
}

type reportCreateResponse struct {
	Result struct {
		Code string `json:"code"`
	} `json:"result"`
}

type reportInfoResponse struct {
	Result *struct {
		Status string `json:"status"`
		File   string `json:"file"`
		Error  string `json:"error"`
	} `json:"result"`
}

// CreatePostingsReport submits a delivered-FBO postings report for the
// given time range and returns the opaque job code.
func (c *Client) CreatePostingsReport(ctx context.Context, from, to time.Time) (string, error) {
	payload := map[string]interface{}{
		"filter": map[string]interface{}{
			"processed_at_from": from.UTC().Format(timestampLayout),
			"processed_at_to":   to.UTC().Format(timestampLayout),
			"delivery_schema":   []string{"fbo"},
			"status":            "delivered",
		},
		"language": "DEFAULT",
	}

	var resp reportCreateResponse
	if err := c.post(ctx, "/v1/report/postings/create", payload, &resp); err != nil {
		return "", fmt.Errorf("could not create postings report: %w", err)
	}
	if resp.Result.Code == "" {
		return "", fmt.Errorf("%w: report create response has no code", domain.ErrMalformedResponse)
	}

	log.Info().Str("code", resp.Result.Code).Msg("postings report submitted")
	return resp.Result.Code, nil
}

// WaitForReport polls the report job until it reaches a terminal state
// and returns the artifact file URL. waiting and processing re-poll
// after opts.Interval; failed and any unknown status abort immediately;
// exhausting opts.MaxAttempts yields domain.ErrReportTimeout.
func (c *Client) WaitForReport(ctx context.Context, code string, opts ReportWaitOptions) (string, error) {
	if opts.MaxAttempts <= 0 {
		opts = DefaultReportWaitOptions()
	}

	payload := map[string]string{"code": code}
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		var resp reportInfoResponse
		if err := c.post(ctx, "/v1/report/info", payload, &resp); err != nil {
			return "", fmt.Errorf("report status poll failed: %w", err)
		}
		if resp.Result == nil {
			return "", fmt.Errorf("%w: report info response has no result", domain.ErrMalformedResponse)
		}

		status := resp.Result.Status
		log.Debug().
			Str("code", code).
			Str("status", status).
			Int("attempt", attempt).
			Msg("report status")

		switch status {
		case reportStatusSuccess:
			if resp.Result.File == "" {
				return "", fmt.Errorf("%w: successful report has no file URL", domain.ErrMalformedResponse)
			}
			return resp.Result.File, nil
		case reportStatusFailed:
			return "", fmt.Errorf("%w: %s", domain.ErrReportFailed, resp.Result.Error)
		case reportStatusProcessing, reportStatusWaiting:
			if attempt == opts.MaxAttempts {
				break
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(opts.Interval):
			}
		default:
			return "", fmt.Errorf("%w: %q", domain.ErrUnexpectedJobStatus, status)
		}
	}

	return "", fmt.Errorf("%w: %d attempts", domain.ErrReportTimeout, opts.MaxAttempts)
}

// DownloadReport fetches the report artifact. A non-200 response is fatal.
func (c *Client) DownloadReport(ctx context.Context, fileURL string) ([]byte, error) {
	body, err := c.get(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("could not download report file: %w", err)
	}
	log.Info().Int("bytes", len(body)).Msg("report file downloaded")
	return body, nil
}
