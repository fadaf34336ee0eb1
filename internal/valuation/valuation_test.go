package valuation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
)

type stubEstimator struct {
	res   *Result
	err   error
	calls int
}

func (s *stubEstimator) Estimate(context.Context, models.PropertyRecord) (*Result, error) {
	s.calls++
	return s.res, s.err
}

func testRecord() models.PropertyRecord {
	adjudged := 120000.0
	return models.PropertyRecord{
		Address:       "1801 Main St",
		City:          "Houston",
		State:         "TX",
		Zip:           "77002",
		AdjudgedValue: &adjudged,
	}
}

func TestChainShortCircuits(t *testing.T) {
	primary := &stubEstimator{res: &Result{Value: 250000, Source: "primary"}}
	fallback := &stubEstimator{res: &Result{Value: 1, Source: "fallback"}}
	chain := NewChain(logger.New(), primary, fallback)

	res := chain.Estimate(context.Background(), testRecord())
	require.NotNil(t, res)
	require.Equal(t, 250000.0, res.Value)
	require.Equal(t, "primary", res.Source)
	require.Zero(t, fallback.calls, "fallback must not run once the primary answers")
}

func TestChainSkipsNoEstimate(t *testing.T) {
	primary := &stubEstimator{} // confirmed no estimate
	fallback := &stubEstimator{res: &Result{Value: 120000, Source: SourceAdjudged}}
	chain := NewChain(logger.New(), primary, fallback)

	res := chain.Estimate(context.Background(), testRecord())
	require.NotNil(t, res)
	require.Equal(t, SourceAdjudged, res.Source)
}

func TestChainSkipsFailures(t *testing.T) {
	primary := &stubEstimator{err: errors.New("connection reset")}
	fallback := &stubEstimator{res: &Result{Value: 120000, Source: SourceAdjudged}}
	chain := NewChain(logger.New(), primary, fallback)

	res := chain.Estimate(context.Background(), testRecord())
	require.NotNil(t, res)
	require.Equal(t, SourceAdjudged, res.Source)
}

func TestChainAllExhausted(t *testing.T) {
	chain := NewChain(logger.New(), &stubEstimator{}, &stubEstimator{err: errors.New("down")})
	require.Nil(t, chain.Estimate(context.Background(), testRecord()))
}

func TestChainEstimateAll(t *testing.T) {
	chain := NewChain(logger.New(), AdjudgedFallback{})
	recs := []models.PropertyRecord{testRecord(), {Address: "empty"}}

	chain.EstimateAll(context.Background(), recs)

	require.NotNil(t, recs[0].EstValue)
	require.Equal(t, 120000.0, *recs[0].EstValue)
	require.Equal(t, SourceAdjudged, recs[0].EstValueSource)
	require.Nil(t, recs[1].EstValue, "record without adjudged value stays unenriched")
}

func TestAdjudgedFallback(t *testing.T) {
	res, err := AdjudgedFallback{}.Estimate(context.Background(), testRecord())
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, 120000.0, res.Value)

	res, err = AdjudgedFallback{}.Estimate(context.Background(), models.PropertyRecord{})
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestRapidAPIEstimator(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/propertyExtendedSearch", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1801 Main St", r.URL.Query().Get("address"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"props":[{"zpid":12345678},{"zpid":"99"}]}`))
	})
	mux.HandleFunc("/property", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "12345678", r.URL.Query().Get("zpid"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"zestimate":245000}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	est := NewRapidAPIEstimator("example.test", "test-key")
	est.client.SetBaseURL(srv.URL)

	res, err := est.Estimate(context.Background(), testRecord())
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, 245000.0, res.Value)
	require.Equal(t, SourceRapidAPI, res.Source)
}

func TestRapidAPIEstimatorNoMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/propertyExtendedSearch", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"props":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	est := NewRapidAPIEstimator("example.test", "test-key")
	est.client.SetBaseURL(srv.URL)

	res, err := est.Estimate(context.Background(), testRecord())
	require.NoError(t, err)
	require.Nil(t, res, "no zpid match is a confirmed no-estimate, not an error")
}

func TestRapidAPIEstimatorServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	est := NewRapidAPIEstimator("example.test", "test-key")
	est.client.SetRetryCount(0)
	est.client.SetBaseURL(srv.URL)

	res, err := est.Estimate(context.Background(), testRecord())
	require.Error(t, err, "server failures must be distinguishable from no-estimate")
	require.Nil(t, res)
}

func TestRapidAPIEstimatorMissingInputs(t *testing.T) {
	est := NewRapidAPIEstimator("example.test", "")
	res, err := est.Estimate(context.Background(), testRecord())
	require.NoError(t, err)
	require.Nil(t, res, "missing API key confirms no estimate without a network call")

	est = NewRapidAPIEstimator("example.test", "key")
	res, err = est.Estimate(context.Background(), models.PropertyRecord{Address: "1801 Main St"})
	require.NoError(t, err)
	require.Nil(t, res, "address without city or zip cannot be searched")
}

func TestCachedEstimator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	inner := &stubEstimator{res: &Result{Value: 300000, Source: "primary"}}

	cache, err := NewCachedEstimator(path, inner)
	require.NoError(t, err)
	defer cache.Close()

	rec := testRecord()

	res, err := cache.Estimate(context.Background(), rec)
	require.NoError(t, err)
	require.Equal(t, 300000.0, res.Value)
	require.Equal(t, 1, inner.calls)

	// Second lookup is served from the cache.
	res, err = cache.Estimate(context.Background(), rec)
	require.NoError(t, err)
	require.Equal(t, 300000.0, res.Value)
	require.Equal(t, "primary", res.Source)
	require.Equal(t, 1, inner.calls, "cache hit must not call the inner estimator")
}

func TestCachedEstimatorSkipsUnkeyedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	inner := &stubEstimator{res: &Result{Value: 1, Source: "primary"}}

	cache, err := NewCachedEstimator(path, inner)
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.Estimate(context.Background(), models.PropertyRecord{})
	require.NoError(t, err)
	_, err = cache.Estimate(context.Background(), models.PropertyRecord{})
	require.NoError(t, err)
	require.Equal(t, 2, inner.calls, "records without an address bypass the cache")
}
