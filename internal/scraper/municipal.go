package scraper

import (
	"context"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"taxsale-agent/internal/errors"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
)

// MunicipalConfig describes how to walk one municipal lien source.
// Municipal sites vary too much to hard-code, so the selectors live in
// a YAML file supplied by the operator.
type MunicipalConfig struct {
	StartURL    string `yaml:"start_url"`
	RowSelector string `yaml:"row_selector"`
	// Fields maps LienRecord field names (grantor, grantee, doc_type,
	// instrument_no, recorded_date, legal, notes, lien_type, amount,
	// property_key) to CSS selectors evaluated inside each row.
	Fields       map[string]string `yaml:"fields"`
	NextSelector string            `yaml:"next_selector"`
	MaxPages     int               `yaml:"max_pages"`
}

// LoadMunicipalConfig reads and validates a scraper config file. A
// missing or malformed file is a hard stop at the stage boundary.
func LoadMunicipalConfig(path string) (*MunicipalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("failed to read municipal scraper config", err).WithOperation("muni")
	}
	var cfg MunicipalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ConfigError("failed to parse municipal scraper config", err).WithOperation("muni")
	}
	if cfg.StartURL == "" || cfg.RowSelector == "" || len(cfg.Fields) == 0 {
		return nil, errors.ConfigError("municipal scraper config requires start_url, row_selector and fields", nil).WithOperation("muni")
	}
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 5
	}
	return &cfg, nil
}

// MunicipalScraper extracts lien rows from a configured municipal site.
type MunicipalScraper struct {
	client *Client
	cfg    *MunicipalConfig
	log    logger.Logger
}

// NewMunicipalScraper builds a municipal scraper from a loaded config.
func NewMunicipalScraper(client *Client, cfg *MunicipalConfig, log logger.Logger) *MunicipalScraper {
	return &MunicipalScraper{client: client, cfg: cfg, log: log}
}

// Scrape walks the configured source, following next_selector up to
// max_pages, and returns de-duplicated lien rows.
func (s *MunicipalScraper) Scrape(ctx context.Context) ([]models.LienRecord, error) {
	doc, err := s.client.Get(ctx, s.cfg.StartURL)
	if err != nil {
		return nil, errors.ScrapeError("failed to fetch municipal source", err).WithOperation("muni")
	}

	var recs []models.LienRecord
	seen := make(map[string]struct{})
	pageURL := s.cfg.StartURL

	for page := 0; page < s.cfg.MaxPages; page++ {
		doc.Find(s.cfg.RowSelector).Each(func(_ int, row *goquery.Selection) {
			rec := s.extractRow(row)
			key := recordKey(rec)
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
			recs = append(recs, rec)
		})

		if page+1 >= s.cfg.MaxPages || s.cfg.NextSelector == "" {
			break
		}
		href, ok := doc.Find(s.cfg.NextSelector).First().Attr("href")
		if !ok || href == "" {
			break
		}
		next := resolveHref(pageURL, href)
		doc, err = s.client.Get(ctx, next)
		if err != nil {
			s.log.Warn("municipal pagination stopped early", "page", page+1, "err", err)
			break
		}
		pageURL = next
	}

	s.log.Info("municipal scrape complete", "rows", len(recs))
	return recs, nil
}

func (s *MunicipalScraper) extractRow(row *goquery.Selection) models.LienRecord {
	var rec models.LienRecord
	targets := map[string]*string{
		"grantor":       &rec.Grantor,
		"grantee":       &rec.Grantee,
		"doc_type":      &rec.DocType,
		"instrument_no": &rec.InstrumentNo,
		"recorded_date": &rec.RecordedDate,
		"legal":         &rec.Legal,
		"notes":         &rec.Notes,
		"lien_type":     &rec.LienType,
		"amount":        &rec.Amount,
		"property_key":  &rec.PropertyKey,
	}
	for field, selector := range s.cfg.Fields {
		target, known := targets[field]
		if !known {
			continue
		}
		*target = strings.TrimSpace(row.Find(selector).First().Text())
	}
	return rec
}

func recordKey(rec models.LienRecord) string {
	return strings.Join([]string{
		rec.Grantor, rec.Grantee, rec.DocType, rec.InstrumentNo,
		rec.RecordedDate, rec.Legal, rec.Notes, rec.LienType, rec.Amount,
	}, "|")
}
