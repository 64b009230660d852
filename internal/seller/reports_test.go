package seller

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/billingfox/ozonator/internal/config"
	"github.com/billingfox/ozonator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.SellerConfig{
		BaseURL:  srv.URL,
		ClientID: "client",
		APIKey:   "key",
	})
	require.NoError(t, err)
	return client, srv
}

func fastWaitOptions() ReportWaitOptions {
	return ReportWaitOptions{Interval: time.Millisecond, MaxAttempts: 20}
}

func TestCreatePostingsReport(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "client", r.Header.Get("Client-Id"))
		assert.Equal(t, "key", r.Header.Get("Api-Key"))
		fmt.Fprint(w, `{"result":{"code":"report-123"}}`)
	}))

	code, err := client.CreatePostingsReport(context.Background(),
		time.Now().Add(-24*time.Hour), time.Now())

	require.NoError(t, err)
	assert.Equal(t, "report-123", code)
	assert.Equal(t, "/v1/report/postings/create", gotPath)
}

func TestCreatePostingsReportMissingCode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{}}`)
	}))

	_, err := client.CreatePostingsReport(context.Background(),
		time.Now().Add(-24*time.Hour), time.Now())

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestWaitForReportResolvesAfterTransientStatuses(t *testing.T) {
	polls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls++
		switch polls {
		case 1:
			fmt.Fprint(w, `{"result":{"status":"waiting"}}`)
		case 2:
			fmt.Fprint(w, `{"result":{"status":"processing"}}`)
		default:
			fmt.Fprint(w, `{"result":{"status":"success","file":"https://files.example/report.csv"}}`)
		}
	}))

	fileURL, err := client.WaitForReport(context.Background(), "report-123", fastWaitOptions())

	require.NoError(t, err)
	assert.Equal(t, "https://files.example/report.csv", fileURL)
	assert.Equal(t, 3, polls)
}

func TestWaitForReportTimesOutAfterAttemptBudget(t *testing.T) {
	polls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls++
		fmt.Fprint(w, `{"result":{"status":"processing"}}`)
	}))

	_, err := client.WaitForReport(context.Background(), "report-123", fastWaitOptions())

	assert.ErrorIs(t, err, domain.ErrReportTimeout)
	assert.Equal(t, 20, polls)
}

func TestWaitForReportFailedStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{"status":"failed","error":"internal error"}}`)
	}))

	_, err := client.WaitForReport(context.Background(), "report-123", fastWaitOptions())

	assert.ErrorIs(t, err, domain.ErrReportFailed)
	assert.Contains(t, err.Error(), "internal error")
}

func TestWaitForReportUnknownStatusIsFatal(t *testing.T) {
	polls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls++
		fmt.Fprint(w, `{"result":{"status":"cancelled"}}`)
	}))

	_, err := client.WaitForReport(context.Background(), "report-123", fastWaitOptions())

	assert.ErrorIs(t, err, domain.ErrUnexpectedJobStatus)
	assert.Contains(t, err.Error(), `"cancelled"`)
	assert.Equal(t, 1, polls)
}

func TestWaitForReportMissingResult(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	_, err := client.WaitForReport(context.Background(), "report-123", fastWaitOptions())

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestWaitForReportSuccessWithoutFile(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{"status":"success"}}`)
	}))

	_, err := client.WaitForReport(context.Background(), "report-123", fastWaitOptions())

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestWaitForReportHonorsContextCancel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{"status":"processing"}}`)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.WaitForReport(ctx, "report-123",
		ReportWaitOptions{Interval: time.Hour, MaxAttempts: 20})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDownloadReport(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "file body")
	}))

	body, err := client.DownloadReport(context.Background(), srv.URL+"/report.csv")

	require.NoError(t, err)
	assert.Equal(t, "file body", string(body))
}
