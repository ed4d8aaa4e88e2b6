package controllers

import (
	"net/http"

	"github.com/bistrohq/bistro/pkg/auth"
	"github.com/bistrohq/bistro/pkg/bind"
	"github.com/bistrohq/bistro/pkg/response"
)

// AuthController issues bearer credentials. Verification lives in
// middleware; issuance is just a signing call.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

type tokenInput struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken signs an hour-lived credential for the given email.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var input tokenInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, err := auth.GenerateToken(input.Email)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]string{"token": token})
}
