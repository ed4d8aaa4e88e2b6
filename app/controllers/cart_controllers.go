package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/bind"
	"github.com/bistrohq/bistro/pkg/middleware"
	"github.com/bistrohq/bistro/pkg/response"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// List returns the caller's cart. The email query parameter must match the
// verified principal; an empty parameter yields an empty list.
func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromCtx(r.Context())
	owner := r.URL.Query().Get("email")

	items, err := c.service.List(r.Context(), owner, p.Email)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}

type cartInput struct {
	Email      string  `json:"email" validate:"required,email"`
	MenuItemID string  `json:"menuItemId" validate:"required,objectid"`
	Name       string  `json:"name" validate:"required"`
	Image      string  `json:"image"`
	Price      float64 `json:"price" validate:"required,gt=0"`
}

// Add inserts a cart item for the owner named in the body.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var input cartInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	menuID, err := primitive.ObjectIDFromHex(input.MenuItemID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menuItemId")
		return
	}

	item := &models.CartItem{
		Email:      input.Email,
		MenuItemID: menuID,
		Name:       input.Name,
		Image:      input.Image,
		Price:      input.Price,
	}
	id, err := c.service.Add(r.Context(), item)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, map[string]string{"insertedId": id})
}

// Remove deletes a cart item by id.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := c.service.Remove(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]int64{"deletedCount": removed})
}
