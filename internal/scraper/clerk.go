package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
)

// ClerkScraper searches the county clerk real-property index for
// recorded instruments matching a free-text query (an address or an
// owner name) and extracts the result rows.
type ClerkScraper struct {
	client    *Client
	searchURL string
	maxPages  int
	log       logger.Logger
}

// NewClerkScraper builds a clerk scraper. maxPages bounds pagination
// per query.
func NewClerkScraper(client *Client, searchURL string, maxPages int, log logger.Logger) *ClerkScraper {
	if maxPages < 1 {
		maxPages = 1
	}
	return &ClerkScraper{client: client, searchURL: searchURL, maxPages: maxPages, log: log}
}

// Search runs one query and returns its de-duplicated lien rows, each
// tagged with the query as its PropertyKey. One call is one cancellable
// unit: the passed context aborts the query and its pagination.
func (s *ClerkScraper) Search(ctx context.Context, query string) ([]models.LienRecord, error) {
	form := url.Values{"SearchText": {query}}
	doc, err := s.client.PostForm(ctx, s.searchURL, form)
	if err != nil {
		return nil, err
	}

	var recs []models.LienRecord
	seen := make(map[string]struct{})
	pageURL := s.searchURL

	for page := 0; page < s.maxPages; page++ {
		for _, rec := range parseClerkRows(doc, query) {
			key := strings.Join([]string{rec.Grantor, rec.Grantee, rec.DocType, rec.InstrumentNo, rec.RecordedDate}, "|")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			recs = append(recs, rec)
		}

		if page+1 >= s.maxPages {
			break
		}
		next := nextLink(doc, pageURL)
		if next == "" {
			break
		}
		doc, err = s.client.Get(ctx, next)
		if err != nil {
			// Rows already collected are still useful; stop paginating.
			s.log.Warn("clerk pagination stopped early", "query", query, "err", err)
			break
		}
		pageURL = next
	}

	return recs, nil
}

// SearchAll runs a sequence of queries, skipping ones that fail so a
// single blocked query does not lose the whole batch.
func (s *ClerkScraper) SearchAll(ctx context.Context, queries []string) []models.LienRecord {
	var all []models.LienRecord
	for _, q := range queries {
		if ctx.Err() != nil {
			break
		}
		s.log.Info("clerk search", "query", q)
		recs, err := s.Search(ctx, q)
		if err != nil {
			s.log.Warn("clerk search failed, skipping query", "query", q, "err", err)
			continue
		}
		all = append(all, recs...)
	}
	return all
}

// parseClerkRows maps the result table to lien records. The clerk's
// column layout is positional: grantor, grantee, document type,
// instrument number, recorded date, legal, notes.
func parseClerkRows(doc *goquery.Document, query string) []models.LienRecord {
	var recs []models.LienRecord
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cols := row.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		if len(cols) == 0 {
			return
		}
		rec := models.LienRecord{PropertyKey: query}
		assign := []*string{&rec.Grantor, &rec.Grantee, &rec.DocType, &rec.InstrumentNo, &rec.RecordedDate, &rec.Legal, &rec.Notes}
		for j, field := range assign {
			if j < len(cols) {
				*field = cols[j]
			}
		}
		recs = append(recs, rec)
	})
	return recs
}

// nextLink finds the pagination link, preferring an explicit title over
// link text.
func nextLink(doc *goquery.Document, base string) string {
	if href, ok := doc.Find("a[title='Next']").First().Attr("href"); ok {
		return resolveHref(base, href)
	}
	var found string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(a.Text()), "next") {
			if href, ok := a.Attr("href"); ok {
				found = resolveHref(base, href)
				return false
			}
		}
		return true
	})
	return found
}
