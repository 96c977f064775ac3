package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"datacleaner/pkg/model"
)

const (
	CleanRecordsPath = "/api/v1/clean/records"
	CleanCSVPath     = "/api/v1/clean/csv"
	RunsPath         = "/api/v1/runs"

	RunIDHeader = "X-Cleaning-Run-ID"
)

// APIError is returned when the API answers with a non 2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type RunList struct {
	Data       []model.CleaningRun `json:"data"`
	TotalCount int64               `json:"total_count"`
	Limit      int                 `json:"limit"`
	Offset     int64               `json:"offset"`
}

// CleanerClient talks to the cleaning API.
type CleanerClient struct {
	http *HttpClient
}

func NewCleanerClient(baseURL string, timeout time.Duration) *CleanerClient {
	return &CleanerClient{http: NewHttpClient(baseURL, timeout)}
}

func (c *CleanerClient) CleanRecords(ctx context.Context, records []model.Record) (*model.CleanRecordsResponse, error) {
	resp, err := c.http.POST(ctx, CleanRecordsPath, model.CleanRecordsRequest{Records: records})
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	var body struct {
		Data model.CleanRecordsResponse `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode clean response: %w", err)
	}
	return &body.Data, nil
}

// CleanCSV uploads csv and returns the cleaned CSV body with the run id
// reported by the server.
func (c *CleanerClient) CleanCSV(ctx context.Context, csv io.Reader) ([]byte, string, error) {
	resp, err := c.http.POSTRaw(ctx, CleanCSVPath, csv, "text/csv")
	if err != nil {
		return nil, "", err
	}
	if !resp.IsSuccess() {
		return nil, "", apiError(resp)
	}
	return resp.Body, resp.Header.Get(RunIDHeader), nil
}

func (c *CleanerClient) GetRun(ctx context.Context, id string) (*model.CleaningRun, error) {
	resp, err := c.http.GET(ctx, RunsPath+"/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	var body struct {
		Data model.CleaningRun `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return &body.Data, nil
}

func (c *CleanerClient) ListRuns(ctx context.Context, limit int, offset int64) (*RunList, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.FormatInt(offset, 10))

	resp, err := c.http.GET(ctx, RunsPath+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, apiError(resp)
	}

	var list RunList
	if err := resp.DecodeJSON(&list); err != nil {
		return nil, fmt.Errorf("failed to decode run list: %w", err)
	}
	return &list, nil
}

func (c *CleanerClient) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.http.WaitForHealthy(ctx, maxWait)
}

func apiError(resp *Response) error {
	msg := GetErrorMessage(resp)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
