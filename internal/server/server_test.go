package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/match-intel/internal/types"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	prefs := &types.Preferences{
		HourlyRateMin: 30,
		HourlyRateMax: 70,
		Keywords:      types.StringList{"go", "react"},
	}
	srv, err := New(Config{
		JWTSecret:   testSecret,
		Preferences: prefs,
	})
	require.NoError(t, err)
	return srv
}

func bearerToken(t *testing.T, srv *Server) string {
	t.Helper()
	token, err := srv.jwt.GenerateToken("test")
	require.NoError(t, err)
	return token
}

// doJSON performs an authenticated request and decodes the JSON response.
func doJSON(t *testing.T, srv *Server, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, srv))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestNew_RequiresSecretAndPreferences(t *testing.T) {
	_, err := New(Config{Preferences: types.DefaultPreferences()})
	assert.Error(t, err)

	_, err = New(Config{JWTSecret: testSecret})
	assert.Error(t, err)
}

func TestHealthEndpointIsOpen(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestAuth_RejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"empty token", "Bearer"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/score", bytes.NewReader([]byte(`{}`)))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_AcceptsTokenFromOtherServiceInstance(t *testing.T) {
	token, err := NewJWTService(testSecret).GenerateToken("cli")
	require.NoError(t, err)

	claims, err := NewJWTService(testSecret).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cli", claims.Subject)

	_, err = NewJWTService("other-secret").ValidateToken(token)
	assert.Error(t, err, "a different secret must reject the token")
}

func TestHandleExtractListing(t *testing.T) {
	srv := newTestServer(t)

	tile := `<section class="job-tile">
		<h2 class="job-tile-title"><a href="/jobs/~021abc">Go API</a></h2>
		<ul class="job-tile-info-list"><li>Hourly: $40-$60</li></ul>
	</section>`

	var resp struct {
		Job *types.JobRecord `json:"job"`
	}
	rec := doJSON(t, srv, http.MethodPost, "/v1/extract/listing", map[string]string{"html": tile}, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Job)
	assert.Equal(t, "Go API", resp.Job.Title)
	assert.Equal(t, types.EngagementHourly, resp.Job.Type)
	assert.Equal(t, 40, resp.Job.RateMin)
}

func TestHandleExtractListing_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/extract/listing", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/extract/listing", bytes.NewReader([]byte(`{broken`)))
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, srv))
	raw := httptest.NewRecorder()
	srv.Handler().ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestHandleExtractFeed_SkipsProcessed(t *testing.T) {
	srv := newTestServer(t)

	feed := `<div data-test="job-tile-list">
		<section><h2 class="job-tile-title"><a href="/jobs/~a1">One</a></h2></section>
		<section><h2 class="job-tile-title"><a href="/jobs/~b2">Two</a></h2></section>
	</div>`

	var resp struct {
		Jobs  []*types.JobRecord `json:"jobs"`
		Count int                `json:"count"`
	}
	rec := doJSON(t, srv, http.MethodPost, "/v1/extract/feed", map[string]any{
		"html":      feed,
		"processed": []string{"/jobs/~a1"},
	}, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Two", resp.Jobs[0].Title)
}

func TestHandleExtractIntel_FromHTML(t *testing.T) {
	srv := newTestServer(t)

	detail := `<li data-test="about-client-stat">Hire rate: 62%</li>`
	var resp struct {
		Intel *types.DeepIntel `json:"intel"`
	}
	rec := doJSON(t, srv, http.MethodPost, "/v1/extract/intel", map[string]string{"html": detail}, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Intel)
	assert.Equal(t, 62, resp.Intel.HireRate)
}

func TestHandleExtractIntel_RequiresInput(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/extract/intel", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtractIntel_LinkNeedsEnricher(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/extract/intel", map[string]string{"link": "/jobs/~a1"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleScore(t *testing.T) {
	srv := newTestServer(t)

	job := &types.JobRecord{
		Title:           "Build dashboard",
		Type:            types.EngagementHourly,
		RateMin:         40,
		RateMax:         60,
		PaymentVerified: true,
		Skills:          []string{"Go", "React"},
	}

	var resp struct {
		Result *types.ScoreResult `json:"result"`
	}
	rec := doJSON(t, srv, http.MethodPost, "/v1/score", map[string]any{"job": job}, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Result)
	// 35 base + 10 verified + 40 full keyword ratio + 15 in-band rate.
	assert.Equal(t, 100, resp.Result.Total)
	assert.NotEmpty(t, resp.Result.Advice.Message)
}

func TestHandleScore_RequiresJob(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/score", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScore_EnrichNeedsEnricher(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/score", map[string]any{
		"job":    &types.JobRecord{Link: "/jobs/~a1"},
		"enrich": true,
	}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSavedJobEndpoints_NeedStorage(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/jobs/saved", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/v1/jobs/saved", map[string]any{
		"job":   &types.JobRecord{Link: "/jobs/~a1"},
		"score": 90,
	}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
