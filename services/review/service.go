package review

import (
	"context"
	"errors"
	"time"

	requestRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/request"
	reviewRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/review"
	"github.com/EternalGerms/trampoaqui-sub001/models"
	"github.com/EternalGerms/trampoaqui-sub001/services/notification"
	"github.com/EternalGerms/trampoaqui-sub001/services/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minCommentLength = 10

// ReviewService gates and records post-completion reviews.
type ReviewService interface {
	// CanReview reports whether the reviewer may still review the request.
	CanReview(ctx context.Context, requestID, reviewerID string) (bool, error)
	// SubmitReview validates eligibility and records the review.
	SubmitReview(ctx context.Context, reviewerID string, in models.ReviewInput) (*models.Review, error)
	// ListForUser returns all reviews received by a user, newest first.
	ListForUser(ctx context.Context, revieweeID string) ([]models.Review, error)
	// ListForRequest returns the reviews attached to a request.
	ListForRequest(ctx context.Context, requestID string) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Repo     reviewRepo.ReviewRepository
	Requests requestRepo.ServiceRequestRepository
	Notifier notification.NotificationService
	Logger   *zap.Logger
}

func (s *DefaultReviewService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}

// eligibility loads the request and checks the gate: the reviewer must be a
// party, the effective status must be completed, and no earlier review by
// the same reviewer may exist.
func (s *DefaultReviewService) eligibility(ctx context.Context, requestID, reviewerID string) (*models.ServiceRequest, error) {
	req, err := s.Requests.GetByID(ctx, requestID)
	if errors.Is(err, requestRepo.ErrNotFound) {
		return nil, NewReviewError(CodeNotFound, "service request %s not found", requestID)
	}
	if err != nil {
		return nil, err
	}
	if req.PartyOf(reviewerID) == "" {
		return nil, NewReviewError(CodeForbidden, "reviewer %s is not a party to request %s", reviewerID, requestID)
	}
	if request.EffectiveRequestStatus(req) != models.StatusCompleted {
		return nil, NewReviewError(CodeNotEligible, "request %s is not completed yet", requestID)
	}
	existing, err := s.Repo.GetByRequestAndReviewer(ctx, requestID, reviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewReviewError(CodeAlreadyReviewed, "request %s was already reviewed by %s", requestID, reviewerID)
	}
	return req, nil
}

// CanReview reports whether the reviewer may still review the request.
func (s *DefaultReviewService) CanReview(ctx context.Context, requestID, reviewerID string) (bool, error) {
	_, err := s.eligibility(ctx, requestID, reviewerID)
	if err != nil {
		switch ErrorCode(err) {
		case CodeNotEligible, CodeAlreadyReviewed, CodeForbidden:
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SubmitReview validates eligibility and records the review. The unique
// index on (requestId, reviewerId) backstops a concurrent duplicate.
func (s *DefaultReviewService) SubmitReview(ctx context.Context, reviewerID string, in models.ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, NewReviewError(CodeValidation, "rating must be between 1 and 5, got %d", in.Rating)
	}
	if len(in.Comment) < minCommentLength {
		return nil, NewReviewError(CodeValidation, "comment must be at least %d characters", minCommentLength)
	}

	req, err := s.eligibility(ctx, in.RequestID, reviewerID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		RequestID:  req.ID,
		ReviewerID: reviewerID,
		RevieweeID: req.CounterpartyOf(reviewerID),
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, review); err != nil {
		if errors.Is(err, reviewRepo.ErrDuplicate) {
			return nil, NewReviewError(CodeAlreadyReviewed, "request %s was already reviewed by %s", req.ID, reviewerID)
		}
		return nil, err
	}

	s.logger().Info("review submitted",
		zap.String("requestId", req.ID),
		zap.String("reviewerId", reviewerID),
		zap.Int("rating", review.Rating))
	if s.Notifier != nil {
		if err := s.Notifier.Notify(ctx, review.RevieweeID, req.ID, models.NotifyReviewReceived,
			"New review", "You received a new review for "+req.Title+"."); err != nil {
			s.logger().Warn("failed to store review notification", zap.Error(err))
		}
	}
	return review, nil
}

// ListForUser returns all reviews received by a user, newest first.
func (s *DefaultReviewService) ListForUser(ctx context.Context, revieweeID string) ([]models.Review, error) {
	return s.Repo.ListByReviewee(ctx, revieweeID)
}

// ListForRequest returns the reviews attached to a request.
func (s *DefaultReviewService) ListForRequest(ctx context.Context, requestID string) ([]models.Review, error) {
	return s.Repo.ListByRequest(ctx, requestID)
}
