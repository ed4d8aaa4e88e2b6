package controllers

import (
	"net/http"

	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/response"
	"github.com/bistrohq/bistro/pkg/storage"
)

type StatsController struct {
	service *services.StatsService
}

func NewStatsController(service *services.StatsService) *StatsController {
	return &StatsController{service: service}
}

// Overview returns the admin overview: estimated counts plus revenue.
func (c *StatsController) Overview(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Overview(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, stats)
}

// CategoryBreakdown returns per-category order counts and totals.
func (c *StatsController) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	buckets, err := c.service.CategoryBreakdown(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, buckets)
}

// Export snapshots both reports to the configured storage disk.
func (c *StatsController) Export(w http.ResponseWriter, r *http.Request) {
	path, err := c.service.Export(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}
