package api

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxsale-agent/internal/export"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
)

// DealsHandler serves scored deals from the enriched CSV. The CSV is
// the store: every request re-reads it, so a fresh pipeline run is
// visible without restarting the server.
type DealsHandler struct {
	scoredPath string
	log        logger.Logger
}

// NewDealsHandler creates a handler backed by the enriched CSV at path.
func NewDealsHandler(scoredPath string, log logger.Logger) *DealsHandler {
	return &DealsHandler{scoredPath: scoredPath, log: log}
}

// GetDeals returns scored properties sorted by deal score, best first.
// Supports ?min_score= and ?limit= filters.
func (h *DealsHandler) GetDeals(c *gin.Context) {
	recs, err := export.ReadScored(h.scoredPath)
	if err != nil {
		h.log.Error("failed to read scored deals", err, "path", h.scoredPath)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scored deals not available; run the enrich stage first"})
		return
	}

	minScore, err := parseFloatQuery(c, "min_score", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_score must be a number"})
		return
	}
	limit, err := parseIntQuery(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	deals := make([]models.ScoredProperty, 0, len(recs))
	for _, rec := range recs {
		if rec.DealScore >= minScore {
			deals = append(deals, rec)
		}
	}
	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].DealScore > deals[j].DealScore
	})
	if limit > 0 && len(deals) > limit {
		deals = deals[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"deals": deals,
		"count": len(deals),
	})
}

// GetDeal returns one scored property by its record ID.
func (h *DealsHandler) GetDeal(c *gin.Context) {
	recs, err := export.ReadScored(h.scoredPath)
	if err != nil {
		h.log.Error("failed to read scored deals", err, "path", h.scoredPath)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scored deals not available; run the enrich stage first"})
		return
	}

	id := c.Param("id")
	for _, rec := range recs {
		if rec.ID.String() == id {
			c.JSON(http.StatusOK, gin.H{"deal": rec})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
}

func parseFloatQuery(c *gin.Context, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseIntQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
