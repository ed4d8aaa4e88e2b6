package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/bind"
	"github.com/bistrohq/bistro/pkg/response"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController(service *services.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

type intentInput struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// CreateIntent starts phase one of the purchase workflow and returns the
// gateway client secret.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var input intentInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	secret, err := c.service.CreateIntent(r.Context(), input.Price)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"clientSecret": secret})
}

type paymentInput struct {
	Email         string   `json:"email" validate:"required,email"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	TransactionID string   `json:"transactionId"`
	CartItems     []string `json:"cartItems"`
	MenuItems     []string `json:"menuItems"`
}

// finalizeResponse reports both halves of the finalize workflow. cleanupError
// is only present when the payment was recorded but the cart sweep failed.
type finalizeResponse struct {
	PaymentID    string `json:"paymentId"`
	DeletedCount int64  `json:"deletedCount"`
	CartCleared  bool   `json:"cartCleared"`
	CleanupError string `json:"cleanupError,omitempty"`
}

// Record runs phase two: insert the payment, then sweep the referenced cart
// items. Both outcomes are reported separately.
func (c *PaymentController) Record(w http.ResponseWriter, r *http.Request) {
	var input paymentInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	cartIDs, err := hexToObjectIDs(input.CartItems)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid cartItems id")
		return
	}
	menuIDs, err := hexToObjectIDs(input.MenuItems)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menuItems id")
		return
	}

	payment := &models.Payment{
		Email:         input.Email,
		Price:         input.Price,
		TransactionID: input.TransactionID,
		CartItems:     cartIDs,
		MenuItems:     menuIDs,
	}
	result, err := c.service.Finalize(r.Context(), payment)
	if err != nil {
		fail(w, r, err)
		return
	}

	resp := finalizeResponse{
		PaymentID:    result.PaymentID,
		DeletedCount: result.Removed,
		CartCleared:  !result.PartialFailure(),
	}
	if result.PartialFailure() {
		resp.CleanupError = result.CleanupErr.Error()
	}
	response.Created(w, resp)
}

func hexToObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		oid, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, oid)
	}
	return ids, nil
}
