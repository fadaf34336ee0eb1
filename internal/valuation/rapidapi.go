package valuation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"taxsale-agent/internal/models"
)

// SourceRapidAPI tags estimates produced by the Zillow RapidAPI service.
const SourceRapidAPI = "zillow_rapidapi"

// RapidAPIEstimator looks up a zestimate via the Zillow RapidAPI host:
// a property search resolves the address to a zpid, then the property
// endpoint yields the estimate.
type RapidAPIEstimator struct {
	client *resty.Client
	host   string
	apiKey string
}

// NewRapidAPIEstimator builds the estimator. An empty apiKey yields an
// estimator that always reports no estimate.
func NewRapidAPIEstimator(host, apiKey string) *RapidAPIEstimator {
	client := resty.New().
		SetBaseURL("https://"+host).
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetHeader("X-RapidAPI-Host", host).
		SetHeader("X-RapidAPI-Key", apiKey)
	return &RapidAPIEstimator{client: client, host: host, apiKey: apiKey}
}

type searchResponse struct {
	Props []struct {
		Zpid any `json:"zpid"`
	} `json:"props"`
}

type propertyResponse struct {
	Zestimate *float64 `json:"zestimate"`
	Price     *float64 `json:"price"`
}

// Estimate implements Estimator. Missing credentials or an address too
// sparse to search confirm "no estimate"; network and decode failures
// return errors so the chain can distinguish them.
func (e *RapidAPIEstimator) Estimate(ctx context.Context, rec models.PropertyRecord) (*Result, error) {
	if e.apiKey == "" || rec.Address == "" || (rec.City == "" && rec.Zip == "") {
		return nil, nil
	}

	state := rec.State
	if state == "" {
		state = "TX"
	}
	cityStateZip := strings.TrimSpace(fmt.Sprintf("%s %s %s", rec.City, state, rec.Zip))

	var search searchResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address":      rec.Address,
			"citystatezip": cityStateZip,
		}).
		SetResult(&search).
		Get("/propertyExtendedSearch")
	if err != nil {
		return nil, fmt.Errorf("property search: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("property search: status %d", resp.StatusCode())
	}

	zpid := firstZpid(search)
	if zpid == "" {
		return nil, nil
	}

	var prop propertyResponse
	resp, err = e.client.R().
		SetContext(ctx).
		SetQueryParam("zpid", zpid).
		SetResult(&prop).
		Get("/property")
	if err != nil {
		return nil, fmt.Errorf("property detail: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("property detail: status %d", resp.StatusCode())
	}

	switch {
	case prop.Zestimate != nil:
		return &Result{Value: *prop.Zestimate, Source: SourceRapidAPI}, nil
	case prop.Price != nil:
		return &Result{Value: *prop.Price, Source: SourceRapidAPI}, nil
	default:
		return nil, nil
	}
}

// firstZpid extracts the first usable zpid; the API returns it as either
// a number or a string depending on the endpoint revision.
func firstZpid(search searchResponse) string {
	for _, p := range search.Props {
		switch v := p.Zpid.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return fmt.Sprintf("%.0f", v)
			}
		}
	}
	return ""
}
