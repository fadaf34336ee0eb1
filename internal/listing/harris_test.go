package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/scraper"
)

const listingHTML = `
<html><body>
<h1>Upcoming Tax Sale</h1>
<table>
  <tr>
    <th>Cause No</th><th>Acct. No</th><th>Property Address</th><th>City</th>
    <th>Legal Description</th><th>Sale Date</th><th>Minimum Bid</th><th>Adjudged Value</th>
  </tr>
  <tr>
    <td>2023-12345</td><td>0660640130020</td><td>1801 MAIN ST</td><td>Houston, TX 77002-1234</td>
    <td>LT 2 BLK 13 BAKER NSBB</td><td>2026-10-06</td><td>$25,000.00</td><td>$180,000.00</td>
  </tr>
  <tr>
    <td>2023-67890</td><td></td><td>22 ELM AVE</td><td>Pasadena 77506</td>
    <td>TR 4A ABST 1 A ANDERS</td><td>2026-10-06</td><td>TBD</td><td>$95,500.00</td>
  </tr>
  <tr></tr>
</table>
</body></html>`

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *HarrisAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := scraper.NewClient(50)
	t.Cleanup(client.Close)
	return NewHarrisAdapter(client, srv.URL, "TX", logger.New())
}

func TestHarrisAdapterFetch(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingHTML))
	})

	recs, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	first := recs[0]
	require.Equal(t, "Harris", first.Jurisdiction)
	require.Equal(t, "2023-12345", first.CauseNo)
	require.Equal(t, "2023-12345", first.CaseNo)
	require.Equal(t, "0660640130020", first.AccountNo)
	require.Equal(t, "1801 MAIN ST", first.Address)
	require.Equal(t, "Houston", first.City)
	require.Equal(t, "TX", first.State)
	require.Equal(t, "77002", first.Zip, "zip extension must be stripped")
	require.Equal(t, "LT 2 BLK 13 BAKER NSBB", first.LegalDesc)
	require.Equal(t, "2026-10-06", first.SaleDate)
	require.NotNil(t, first.MinBid)
	require.Equal(t, 25000.0, *first.MinBid)
	require.NotNil(t, first.AdjudgedValue)
	require.Equal(t, 180000.0, *first.AdjudgedValue)
	require.Equal(t, SourceName, first.SourceName)
	require.NotEmpty(t, first.ID)

	second := recs[1]
	require.Equal(t, "", second.City, "city unreliable when the full pattern fails")
	require.Equal(t, "77506", second.Zip, "zip still recovered best-effort")
	require.Equal(t, "TX", second.State, "state defaults for the single-jurisdiction source")
	require.Nil(t, second.MinBid, "unparseable bid resolves to nil, not an error")
}

func TestHarrisAdapterNoTable(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Sale postponed</p></body></html>`))
	})

	recs, err := adapter.Fetch(context.Background())
	require.NoError(t, err, "a missing table degrades to empty, it is not a fetch failure")
	require.Empty(t, recs)
}

func TestHarrisAdapterServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	client := scraper.NewClient(50)
	defer client.Close()
	adapter := NewHarrisAdapter(client, srv.URL, "TX", logger.New())

	_, err := adapter.Fetch(context.Background())
	require.Error(t, err, "an unreachable listing source is a stage-boundary failure")
}
