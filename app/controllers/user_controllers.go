package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/bind"
	"github.com/bistrohq/bistro/pkg/middleware"
	"github.com/bistrohq/bistro/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

type registerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"nullable,min=6"`
}

// Register creates a directory record on first registration.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user := &models.User{Name: input.Name, Email: input.Email, Password: input.Password}
	created, id, err := c.service.Register(r.Context(), user)
	if err != nil {
		fail(w, r, err)
		return
	}
	if !created {
		response.Success(w, map[string]string{"message": "User Already Exists"})
		return
	}

	response.Created(w, map[string]string{"insertedId": id})
}

// List returns every directory record. Admin only.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, users)
}

// Promote sets the given user's role to admin.
func (c *UserController) Promote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.service.Promote(r.Context(), id); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"modified": id})
}

// IsAdmin answers the dashboard's "am I an admin" check for the caller.
func (c *UserController) IsAdmin(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFromCtx(r.Context())
	email := chi.URLParam(r, "email")

	admin, err := c.service.IsAdminFor(r.Context(), email, p.Email)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"admin": admin})
}

// Delete removes a directory record by email.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	removed, err := c.service.Delete(r.Context(), email)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]int64{"deletedCount": removed})
}
