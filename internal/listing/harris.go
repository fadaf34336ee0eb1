// Package listing acquires the upcoming tax-sale listing and turns its
// rows into property records.
package listing

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
	"taxsale-agent/internal/scraper"
	"taxsale-agent/internal/textutil"
)

// HarrisAdapter fetches the Harris County tax-sale listing table.
type HarrisAdapter struct {
	client       *scraper.Client
	listingURL   string
	defaultState string
	log          logger.Logger
}

// SourceName identifies rows produced by this adapter.
const SourceName = "hctax.net"

// NewHarrisAdapter builds the adapter. defaultState fills the state
// column because the source is single-jurisdiction and never carries one.
func NewHarrisAdapter(client *scraper.Client, listingURL, defaultState string, log logger.Logger) *HarrisAdapter {
	return &HarrisAdapter{client: client, listingURL: listingURL, defaultState: defaultState, log: log}
}

// Fetch downloads the listing and parses its first table. A page with no
// table degrades to an empty result with a warning; the column layout is
// matched fuzzily because the county renames headers between sales.
func (a *HarrisAdapter) Fetch(ctx context.Context) ([]models.PropertyRecord, error) {
	doc, err := a.client.Get(ctx, a.listingURL)
	if err != nil {
		return nil, err
	}
	return a.parse(doc), nil
}

func (a *HarrisAdapter) parse(doc *goquery.Document) []models.PropertyRecord {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		a.log.Warn("no table found on listing page", "url", a.listingURL)
		return []models.PropertyRecord{}
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		a.log.Warn("listing table has no data rows", "url", a.listingURL)
		return []models.PropertyRecord{}
	}

	headers := rows.First().Find("th, td").Map(func(_ int, s *goquery.Selection) string {
		return strings.ToLower(strings.TrimSpace(s.Text()))
	})

	var records []models.PropertyRecord
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		if len(cols) == 0 {
			return
		}

		get := func(names ...string) string {
			for _, name := range names {
				for i, h := range headers {
					if strings.Contains(h, name) && i < len(cols) {
						return cols[i]
					}
				}
			}
			return ""
		}

		rec := models.NewPropertyRecord("Harris", SourceName)
		rec.SourceURL = a.listingURL
		rec.Address = get("address", "situs", "property")
		city, state, zip := textutil.SplitCityStateZip(get("city"))
		rec.City = city
		rec.Zip = zip
		if state == "" {
			state = a.defaultState
		}
		rec.State = state

		caseNo := get("cause", "case")
		rec.CaseNo = caseNo
		rec.CauseNo = caseNo
		rec.AccountNo = get("account", "acct")
		rec.LegalDesc = get("legal")
		rec.SaleDate = get("sale", "date")
		rec.MinBid = textutil.ParseMoney(get("min", "minimum"))
		rec.AdjudgedValue = textutil.ParseMoney(get("adjudged", "value"))
		rec.RoundMoney()

		records = append(records, rec)
	})

	a.log.Info("parsed tax sale listing", "rows", len(records))
	return records
}
