package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taxsale-agent/internal/export"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
)

type dealsResponse struct {
	Deals []models.ScoredProperty `json:"deals"`
	Count int                     `json:"count"`
}

func writeScoredFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scored.csv")

	mk := func(address string, score float64) models.ScoredProperty {
		rec := models.NewPropertyRecord("Harris", "hctax.net")
		rec.Address = address
		return models.ScoredProperty{PropertyRecord: rec, DealScore: score}
	}
	recs := []models.ScoredProperty{
		mk("22 ELM AVE", 41.5),
		mk("1801 MAIN ST", 95.8),
		mk("9 OAK CT", 70.0),
	}
	require.NoError(t, export.WriteScored(path, recs))
	return path
}

func doGet(t *testing.T, router http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	router := NewRouter(writeScoredFixture(t), logger.New())

	w := doGet(t, router, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestGetDealsSortedByScore(t *testing.T) {
	router := NewRouter(writeScoredFixture(t), logger.New())

	w := doGet(t, router, "/api/v1/deals")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dealsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Count)
	require.Equal(t, "1801 MAIN ST", resp.Deals[0].Address)
	require.Equal(t, "9 OAK CT", resp.Deals[1].Address)
	require.Equal(t, "22 ELM AVE", resp.Deals[2].Address)
}

func TestGetDealsFilters(t *testing.T) {
	router := NewRouter(writeScoredFixture(t), logger.New())

	w := doGet(t, router, "/api/v1/deals?min_score=50")
	var resp dealsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)

	w = doGet(t, router, "/api/v1/deals?limit=1")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, 95.8, resp.Deals[0].DealScore)
}

func TestGetDealsBadQuery(t *testing.T) {
	router := NewRouter(writeScoredFixture(t), logger.New())

	require.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/deals?min_score=high").Code)
	require.Equal(t, http.StatusBadRequest, doGet(t, router, "/api/v1/deals?limit=1.5").Code)
}

func TestGetDealsMissingFile(t *testing.T) {
	router := NewRouter(filepath.Join(t.TempDir(), "absent.csv"), logger.New())

	w := doGet(t, router, "/api/v1/deals")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetDealByID(t *testing.T) {
	path := writeScoredFixture(t)
	router := NewRouter(path, logger.New())

	recs, err := export.ReadScored(path)
	require.NoError(t, err)

	w := doGet(t, router, "/api/v1/deals/"+recs[0].ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	w = doGet(t, router, "/api/v1/deals/00000000-0000-0000-0000-000000000001")
	require.Equal(t, http.StatusNotFound, w.Code)
}
