// Package ga is a minimal Google Analytics Reporting API v4 client. It owns
// authentication (service-account JWT) and pagination, and hands the rest of
// the tool flat row sets with both already resolved.
package ga

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/oauth2/google"

	"github.com/admariner/ga-extractor/internal/report"
)

const defaultBaseURL = "https://analyticsreporting.googleapis.com/v4"

// Scope is the OAuth scope required to read reports.
const Scope = "https://www.googleapis.com/auth/analytics.readonly"

// Client calls the Reporting API for a single view (table).
type Client struct {
	baseURL    string
	viewID     string
	httpClient *http.Client
}

// NewClient builds a client authenticated with the service-account key file
// at keyPath, scoped to read-only analytics access.
func NewClient(ctx context.Context, keyPath string, viewID int64) (*Client, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("reading service account key: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(key, Scope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}
	return &Client{
		baseURL:    defaultBaseURL,
		viewID:     strconv.FormatInt(viewID, 10),
		httpClient: conf.Client(ctx),
	}, nil
}

// NewClientWithHTTP builds a client against a custom endpoint with a caller
// supplied HTTP client. Used by tests.
func NewClientWithHTTP(baseURL string, viewID int64, hc *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		viewID:     strconv.FormatInt(viewID, 10),
		httpClient: hc,
	}
}

// CheckCredentials verifies the key file at keyPath can mint an access
// token, returning the service-account email and the token expiry.
func CheckCredentials(ctx context.Context, keyPath string) (string, time.Time, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("reading service account key: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(key, Scope)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parsing service account key: %w", err)
	}
	tok, err := conf.TokenSource(ctx).Token()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("requesting token: %w", err)
	}
	return conf.Email, tok.Expiry, nil
}

// Request describes one report request. Dimensions are API dimension names,
// metrics are API metric expressions.
type Request struct {
	StartDate     string
	EndDate       string
	Dimensions    []string
	Metrics       []string
	Filters       string
	SamplingLevel string
}

// BatchGet runs a report request, following nextPageToken until the row set
// is exhausted.
func (c *Client) BatchGet(ctx context.Context, req Request) ([]ReportRow, error) {
	rr := reportRequest{
		ViewID:            c.viewID,
		DateRanges:        []dateRange{{StartDate: req.StartDate, EndDate: req.EndDate}},
		FiltersExpression: req.Filters,
		SamplingLevel:     req.SamplingLevel,
	}
	for _, d := range req.Dimensions {
		rr.Dimensions = append(rr.Dimensions, dimension{Name: d})
	}
	for _, m := range req.Metrics {
		rr.Metrics = append(rr.Metrics, metric{Expression: m})
	}

	var rows []ReportRow
	for {
		payload, err := c.post(ctx, batchGetRequest{ReportRequests: []reportRequest{rr}})
		if err != nil {
			return nil, err
		}
		rows = append(rows, payload.Data.Rows...)
		if payload.NextPageToken == "" {
			return rows, nil
		}
		rr.PageToken = payload.NextPageToken
	}
}

// FetchDay fetches the migration dimension/metric set for a single calendar
// day and converts it to dimension rows. It satisfies report.FetchFunc.
func (c *Client) FetchDay(ctx context.Context, day time.Time) ([]report.DimensionRow, error) {
	d := day.Format(report.DayFormat)
	rows, err := c.BatchGet(ctx, Request{
		StartDate:  d,
		EndDate:    d,
		Dimensions: report.MigrationDimensions,
		Metrics:    report.MigrationMetrics,
	})
	if err != nil {
		return nil, err
	}

	out := make([]report.DimensionRow, 0, len(rows))
	for _, row := range rows {
		dr, err := toDimensionRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, dr)
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, body batchGetRequest) (*reportPayload, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/reports:batchGet", bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, respBody)
	}

	var parsed batchGetResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Reports) == 0 {
		return nil, fmt.Errorf("response contained no reports")
	}
	return &parsed.Reports[0], nil
}

// toDimensionRow converts an API row in the migration dimension order to a
// typed dimension row, rejecting malformed metric values.
func toDimensionRow(row ReportRow) (report.DimensionRow, error) {
	if len(row.Dimensions) != len(report.MigrationDimensions) {
		return report.DimensionRow{}, fmt.Errorf("expected %d dimensions, got %d",
			len(report.MigrationDimensions), len(row.Dimensions))
	}
	if len(row.Metrics) == 0 || len(row.Metrics[0].Values) != len(report.MigrationMetrics) {
		return report.DimensionRow{}, fmt.Errorf("expected %d metric values in row for %q",
			len(report.MigrationMetrics), row.Dimensions[0])
	}

	pageViews, err := strconv.ParseInt(row.Metrics[0].Values[0], 10, 64)
	if err != nil {
		return report.DimensionRow{}, fmt.Errorf("parsing page views for %q: %w", row.Dimensions[0], err)
	}
	sessions, err := strconv.ParseInt(row.Metrics[0].Values[1], 10, 64)
	if err != nil {
		return report.DimensionRow{}, fmt.Errorf("parsing sessions for %q: %w", row.Dimensions[0], err)
	}

	return report.DimensionRow{
		URLPath:   row.Dimensions[0],
		Browser:   row.Dimensions[1],
		OS:        row.Dimensions[2],
		Device:    row.Dimensions[3],
		Screen:    row.Dimensions[4],
		Language:  row.Dimensions[5],
		Country:   row.Dimensions[6],
		PageViews: pageViews,
		Sessions:  sessions,
	}, nil
}
