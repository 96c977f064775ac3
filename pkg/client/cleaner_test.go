package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"datacleaner/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanerClient_CleanRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, CleanRecordsPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.CleanRecordsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Records, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"run_id":"r1","records":[{"Gender":"fem","Gender_cleaned":"F"}],"summary":{"source":"api_records","record_count":1}}}`)
	}))
	defer srv.Close()

	c := NewCleanerClient(srv.URL+"/", time.Second)
	resp, err := c.CleanRecords(context.Background(), []model.Record{{"Gender": "fem"}})

	require.NoError(t, err)
	assert.Equal(t, "r1", resp.RunID)
	assert.Equal(t, "F", resp.Records[0]["Gender_cleaned"])
	assert.Equal(t, 1, resp.Summary.RecordCount)
}

func TestCleanerClient_CleanCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, CleanCSVPath, r.URL.Path)
		assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "Age\n07\n", string(body))

		w.Header().Set(RunIDHeader, "r2")
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "Age,Age_cleaned\n07,7\n")
	}))
	defer srv.Close()

	out, runID, err := NewCleanerClient(srv.URL, time.Second).CleanCSV(context.Background(), strings.NewReader("Age\n07\n"))

	require.NoError(t, err)
	assert.Equal(t, "r2", runID)
	assert.Equal(t, "Age,Age_cleaned\n07,7\n", string(out))
}

func TestCleanerClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Cleaning run not found","code":"NOT_FOUND"}`)
	}))
	defer srv.Close()

	_, err := NewCleanerClient(srv.URL, time.Second).GetRun(context.Background(), "missing")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Cleaning run not found", apiErr.Message)
}

func TestCleanerClient_ListRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, RunsPath, r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		_, _ = io.WriteString(w, `{"data":[{"id":"a","source":"cli"}],"total_count":11,"limit":5,"offset":10}`)
	}))
	defer srv.Close()

	list, err := NewCleanerClient(srv.URL, time.Second).ListRuns(context.Background(), 5, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(11), list.TotalCount)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "cli", list.Data[0].Source)
}

func TestHttpClient_WaitForHealthy(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewHttpClient(srv.URL, time.Second).WaitForHealthy(context.Background(), 5*time.Second)
	assert.NoError(t, err)
}

func TestHttpClient_WaitForHealthy_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewHttpClient(srv.URL, time.Second).WaitForHealthy(context.Background(), 50*time.Millisecond)
	assert.Error(t, err)
}
