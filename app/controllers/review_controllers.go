package controllers

import (
	"context"
	"net/http"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/response"
)

// ReviewLister is the single read the reviews surface needs.
type ReviewLister interface {
	All(ctx context.Context) ([]models.Review, error)
}

type ReviewController struct {
	reviews ReviewLister
}

func NewReviewController(reviews ReviewLister) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// List returns every review.
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.reviews.All(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, reviews)
}
