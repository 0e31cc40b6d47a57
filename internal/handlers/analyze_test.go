package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitpulse/gitpulse/internal/models"
	"github.com/gitpulse/gitpulse/internal/services"
	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, githubHandler http.Handler) (*gin.Engine, *httptest.Server) {
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(githubHandler)
	t.Cleanup(server.Close)

	client := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	analysisService := services.NewAnalysisService(
		services.NewReferenceService(),
		services.NewCommitServiceWithClient(client, 100),
		services.NewVelocityService(),
	)
	analyzeHandler := NewAnalyzeHandler(analysisService)

	router := gin.New()
	router.POST("/api/analyze", analyzeHandler.Analyze)
	return router, server
}

func commitDetailBody(sha, author, date, message string, additions, deletions int) string {
	return fmt.Sprintf(`{
		"sha": %q,
		"commit": {
			"message": %q,
			"author": {"name": %q, "date": %q}
		},
		"stats": {"additions": %d, "deletions": %d, "total": %d}
	}`, sha, message, author, date, additions, deletions, additions+deletions)
}

func threeCommitStub(hits *atomic.Int64) http.Handler {
	details := map[string]string{
		"c1": commitDetailBody("c1", "octocat", "2024-05-01T12:00:00Z", "third\n\ndetails", 10, 5),
		"c2": commitDetailBody("c2", "octocat", "2024-05-01T11:50:00Z", "second", 4, 0),
		"c3": commitDetailBody("c3", "hubot", "2024-05-01T11:30:00Z", "first", 1, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/commits", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"sha":"c1"},{"sha":"c2"},{"sha":"c3"}]`)
	})
	mux.HandleFunc("/repos/octocat/demo/commits/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		sha := r.URL.Path[len("/repos/octocat/demo/commits/"):]
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, details[sha])
	})
	return mux
}

func postAnalyze(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAnalyzeEndToEnd(t *testing.T) {
	var hits atomic.Int64
	router, _ := newTestRouter(t, threeCommitStub(&hits))

	recorder := postAnalyze(router, `{"url":"https://github.com/octocat/demo"}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)

	// Oldest pair first after assembly.
	assert.Equal(t, "c2", resp.Data[0].SHA)
	assert.Equal(t, "c1", resp.Data[1].SHA)
	assert.True(t, resp.Data[0].Date.Before(resp.Data[1].Date))

	// c2: 4 changes over 20 minutes; c1: 15 changes over 10 minutes.
	assert.Equal(t, 0.2, resp.Data[0].Velocity)
	assert.Equal(t, 1.5, resp.Data[1].Velocity)

	// Message truncated to its first line.
	assert.Equal(t, "third", resp.Data[1].Message)
	assert.Equal(t, "octocat", resp.Data[1].Author)
	assert.Equal(t, 10, resp.Data[1].Additions)
	assert.Equal(t, 5, resp.Data[1].Deletions)

	// One list request plus three detail requests.
	assert.Equal(t, int64(4), hits.Load())
}

func TestAnalyzeMalformedURL(t *testing.T) {
	var hits atomic.Int64
	router, _ := newTestRouter(t, threeCommitStub(&hits))

	recorder := postAnalyze(router, `{"url":"not-a-url"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)

	// Validation failures never reach the network.
	assert.Equal(t, int64(0), hits.Load())
}

func TestAnalyzeMissingURLField(t *testing.T) {
	var hits atomic.Int64
	router, _ := newTestRouter(t, threeCommitStub(&hits))

	recorder := postAnalyze(router, `{}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, int64(0), hits.Load())
}

func TestAnalyzeUpstreamStatusMapping(t *testing.T) {
	testCases := []struct {
		name         string
		upstreamCode int
		wantStatus   int
		wantError    string
	}{
		{
			name:         "Repository not found",
			upstreamCode: http.StatusNotFound,
			wantStatus:   http.StatusNotFound,
			wantError:    "repository not found",
		},
		{
			name:         "Rate limited",
			upstreamCode: http.StatusForbidden,
			wantStatus:   http.StatusForbidden,
			wantError:    "rate limit exceeded",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/octocat/demo/commits", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.upstreamCode)
				fmt.Fprint(w, `{"message":"nope"}`)
			})
			router, _ := newTestRouter(t, mux)

			recorder := postAnalyze(router, `{"url":"https://github.com/octocat/demo"}`)

			require.Equal(t, tc.wantStatus, recorder.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.wantError, resp.Error)
		})
	}
}

func TestAnalyzeAllCommitsFilteredOut(t *testing.T) {
	// Two raw commits exist but neither carries statistics, so the series
	// is empty. That is a success, not an error.
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/commits", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"sha":"c1"},{"sha":"c2"}]`)
	})
	mux.HandleFunc("/repos/octocat/demo/commits/", func(w http.ResponseWriter, r *http.Request) {
		sha := r.URL.Path[len("/repos/octocat/demo/commits/"):]
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"sha":%q,"commit":{"message":"m","author":{"name":"octocat","date":"2024-05-01T12:00:00Z"}}}`, sha)
	})
	router, _ := newTestRouter(t, mux)

	recorder := postAnalyze(router, `{"url":"https://github.com/octocat/demo"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, recorder.Body.String())
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", NewHealthHandler().HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])

	_, err := time.Parse(time.RFC3339, body["time"])
	assert.NoError(t, err)
}
