package reviewRepo

import (
	"context"
	"errors"

	"github.com/EternalGerms/trampoaqui-sub001/models"
)

// ErrDuplicate is returned when a reviewer already reviewed the request.
var ErrDuplicate = errors.New("review already exists for this reviewer and request")

// ReviewRepository defines data access for reviews.
type ReviewRepository interface {
	// Create inserts a new review. The unique (requestId, reviewerId) index
	// turns a duplicate submission into ErrDuplicate.
	Create(ctx context.Context, review *models.Review) error
	// GetByRequestAndReviewer returns the review for a (request, reviewer)
	// pair, or nil when none exists.
	GetByRequestAndReviewer(ctx context.Context, requestID, reviewerID string) (*models.Review, error)
	// ListByReviewee returns all reviews received by a user, newest first.
	ListByReviewee(ctx context.Context, revieweeID string) ([]models.Review, error)
	// ListByRequest returns the reviews attached to a request.
	ListByRequest(ctx context.Context, requestID string) ([]models.Review, error)
}
