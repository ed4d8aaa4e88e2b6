package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/bind"
	"github.com/bistrohq/bistro/pkg/response"
)

type MenuController struct {
	service *services.MenuService
}

func NewMenuController(service *services.MenuService) *MenuController {
	return &MenuController{service: service}
}

// List returns the full catalog.
func (c *MenuController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}

type menuInput struct {
	Name     string  `json:"name" validate:"required"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// Add inserts a catalog entry. Admin only.
func (c *MenuController) Add(w http.ResponseWriter, r *http.Request) {
	var input menuInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	item := &models.MenuItem{
		Name:     input.Name,
		Recipe:   input.Recipe,
		Image:    input.Image,
		Category: input.Category,
		Price:    input.Price,
	}
	id, err := c.service.Add(r.Context(), item)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, map[string]string{"insertedId": id})
}

// Delete removes a catalog entry by id. Admin only.
func (c *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := c.service.Delete(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]int64{"deletedCount": removed})
}
