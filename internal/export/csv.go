// Package export persists pipeline output as row-per-record CSV files.
// Column presence, not byte-exact formatting, is the compatibility
// contract between stages.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"taxsale-agent/internal/errors"
	"taxsale-agent/internal/models"
	"taxsale-agent/internal/textutil"
)

var propertyHeaders = []string{
	"id", "jurisdiction", "case_no", "cause_no", "account_no",
	"address", "city", "state", "zip", "legal_description", "sale_date",
	"min_bid", "adjudged_value", "est_value", "est_value_source",
	"source_name", "source_url",
}

var enrichedHeaders = append(append([]string{}, propertyHeaders...),
	"survive_total", "risk_flags", "deal_score")

var lienHeaders = []string{
	"grantor", "grantee", "doc_type", "instrument_no", "recorded_date",
	"legal", "notes", "lien_type", "amount", "property_key",
}

// WriteProperties writes the base property CSV.
func WriteProperties(path string, recs []models.PropertyRecord) error {
	rows := make([][]string, 0, len(recs))
	for i := range recs {
		recs[i].RoundMoney()
		rows = append(rows, propertyRow(recs[i]))
	}
	return writeFile(path, propertyHeaders, rows)
}

// WriteScored writes the enriched CSV with the appended scoring columns.
func WriteScored(path string, recs []models.ScoredProperty) error {
	rows := make([][]string, 0, len(recs))
	for i := range recs {
		recs[i].RoundMoney()
		row := propertyRow(recs[i].PropertyRecord)
		row = append(row,
			formatMoney(&recs[i].SurviveTotal),
			strings.Join(recs[i].RiskFlags, ","),
			strconv.FormatFloat(recs[i].DealScore, 'f', -1, 64),
		)
		rows = append(rows, row)
	}
	return writeFile(path, enrichedHeaders, rows)
}

// WriteLiens writes an intermediate lien CSV.
func WriteLiens(path string, recs []models.LienRecord) error {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Grantor, r.Grantee, r.DocType, r.InstrumentNo, r.RecordedDate,
			r.Legal, r.Notes, r.LienType, r.Amount, r.PropertyKey,
		})
	}
	return writeFile(path, lienHeaders, rows)
}

// ReadProperties reads a base or enriched property CSV; unknown columns
// are ignored and missing ones come back zero-valued.
func ReadProperties(path string) ([]models.PropertyRecord, error) {
	header, rows, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var recs []models.PropertyRecord
	for _, row := range rows {
		get := cellGetter(header, row)
		rec := models.PropertyRecord{
			Jurisdiction:   get("jurisdiction"),
			CaseNo:         get("case_no"),
			CauseNo:        get("cause_no"),
			AccountNo:      get("account_no"),
			Address:        get("address"),
			City:           get("city"),
			State:          get("state"),
			Zip:            get("zip"),
			LegalDesc:      get("legal_description"),
			SaleDate:       get("sale_date"),
			MinBid:         textutil.ParseMoney(get("min_bid")),
			AdjudgedValue:  textutil.ParseMoney(get("adjudged_value")),
			EstValue:       textutil.ParseMoney(get("est_value")),
			EstValueSource: get("est_value_source"),
			SourceName:     get("source_name"),
			SourceURL:      get("source_url"),
		}
		if id, err := uuid.Parse(get("id")); err == nil {
			rec.ID = id
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// ReadScored reads an enriched CSV produced by WriteScored.
func ReadScored(path string) ([]models.ScoredProperty, error) {
	header, rows, err := readFile(path)
	if err != nil {
		return nil, err
	}
	base, err := ReadProperties(path)
	if err != nil {
		return nil, err
	}

	recs := make([]models.ScoredProperty, 0, len(rows))
	for i, row := range rows {
		get := cellGetter(header, row)
		sp := models.ScoredProperty{PropertyRecord: base[i]}
		if v := textutil.ParseMoney(get("survive_total")); v != nil {
			sp.SurviveTotal = *v
		}
		if flags := get("risk_flags"); flags != "" {
			sp.RiskFlags = strings.Split(flags, ",")
		}
		if v := textutil.ParseMoney(get("deal_score")); v != nil {
			sp.DealScore = *v
		}
		recs = append(recs, sp)
	}
	return recs, nil
}

// ReadLiens reads an intermediate lien CSV. A missing file is not an
// error: lien sources are optional and absence means no liens found.
func ReadLiens(path string) ([]models.LienRecord, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	header, rows, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var recs []models.LienRecord
	for _, row := range rows {
		get := cellGetter(header, row)
		recs = append(recs, models.LienRecord{
			Grantor:      get("grantor"),
			Grantee:      get("grantee"),
			DocType:      get("doc_type"),
			InstrumentNo: get("instrument_no"),
			RecordedDate: get("recorded_date"),
			Legal:        get("legal"),
			Notes:        get("notes"),
			LienType:     get("lien_type"),
			Amount:       get("amount"),
			PropertyKey:  get("property_key"),
		})
	}
	return recs, nil
}

func propertyRow(rec models.PropertyRecord) []string {
	return []string{
		rec.ID.String(), rec.Jurisdiction, rec.CaseNo, rec.CauseNo, rec.AccountNo,
		rec.Address, rec.City, rec.State, rec.Zip, rec.LegalDesc, rec.SaleDate,
		formatMoney(rec.MinBid), formatMoney(rec.AdjudgedValue), formatMoney(rec.EstValue),
		rec.EstValueSource, rec.SourceName, rec.SourceURL,
	}
}

func formatMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func writeFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.ExportError("failed to create output file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.ExportError("failed to write header", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return errors.ExportError("failed to write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.ExportError("failed to flush output", err)
	}
	return nil
}

func readFile(path string) (map[string]int, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.ExportError("failed to open input file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, errors.ExportError("failed to parse CSV", err)
	}
	if len(all) == 0 {
		return map[string]int{}, nil, nil
	}

	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return header, all[1:], nil
}

func cellGetter(header map[string]int, row []string) func(string) string {
	return func(name string) string {
		i, ok := header[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
}
