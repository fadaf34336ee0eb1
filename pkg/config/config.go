package config

import (
	"os"
	"strconv"
)

// Config holds application configuration sourced from the environment.
type Config struct {
	// Valuation service (RapidAPI) credentials.
	RapidAPIKey  string
	RapidAPIHost string

	// DefaultState is applied when a single-jurisdiction listing source
	// does not carry a state column.
	DefaultState string

	// ListingURL is the tax-sale listing page.
	ListingURL string
	// ClerkSearchURL is the county clerk real-property search endpoint.
	ClerkSearchURL string

	// ValuationCachePath is the sqlite file caching valuation lookups;
	// empty disables the cache.
	ValuationCachePath string

	// RequestsPerSecond rate-limits scraping requests.
	RequestsPerSecond int
	// ClerkMaxPages bounds clerk result pagination per query.
	ClerkMaxPages int

	// Port for the deals API server.
	Port string
}

// New creates a configuration instance from environment variables.
func New() *Config {
	return &Config{
		RapidAPIKey:        getEnv("ZILLOW_RAPIDAPI_KEY", ""),
		RapidAPIHost:       getEnv("ZILLOW_RAPIDAPI_HOST", "zillow-com1.p.rapidapi.com"),
		DefaultState:       getEnv("DEFAULT_STATE", "TX"),
		ListingURL:         getEnv("LISTING_URL", "https://www.hctax.net/Property/listings/taxsalelisting"),
		ClerkSearchURL:     getEnv("CLERK_SEARCH_URL", "https://www.cclerk.hctx.net/applications/websearch/RPsearch.aspx"),
		ValuationCachePath: getEnv("VALUATION_CACHE_PATH", "valuation_cache.db"),
		RequestsPerSecond:  getEnvAsInt("SCRAPE_REQUESTS_PER_SECOND", 2),
		ClerkMaxPages:      getEnvAsInt("CLERK_MAX_PAGES", 3),
		Port:               getEnv("PORT", "8080"),
	}
}

// HasRapidAPICredentials returns true if the valuation service is usable.
func (c *Config) HasRapidAPICredentials() bool {
	return c.RapidAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
