package review

import (
	"context"
	"sort"
	"testing"
	"time"

	requestRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/request"
	reviewRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/review"
	"github.com/EternalGerms/trampoaqui-sub001/models"

	"go.uber.org/zap"
)

const (
	clientID   = "client-1"
	providerID = "provider-1"
)

// fakeRequestStore serves requests from a map; reviews only need reads.
type fakeRequestStore struct {
	docs map[string]models.ServiceRequest
}

func (f *fakeRequestStore) Create(ctx context.Context, req *models.ServiceRequest) error {
	f.docs[req.ID] = *req
	return nil
}

func (f *fakeRequestStore) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	copied := doc
	return &copied, nil
}

func (f *fakeRequestStore) ListByClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error) {
	return nil, nil
}

func (f *fakeRequestStore) ListByProvider(ctx context.Context, providerID string) ([]models.ServiceRequest, error) {
	return nil, nil
}

func (f *fakeRequestStore) ReplaceVersioned(ctx context.Context, req *models.ServiceRequest) error {
	f.docs[req.ID] = *req
	return nil
}

// fakeReviewStore enforces the (requestId, reviewerId) uniqueness the Mongo
// index provides in production.
type fakeReviewStore struct {
	reviews []models.Review
}

func (f *fakeReviewStore) Create(ctx context.Context, review *models.Review) error {
	for _, r := range f.reviews {
		if r.RequestID == review.RequestID && r.ReviewerID == review.ReviewerID {
			return reviewRepo.ErrDuplicate
		}
	}
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewStore) GetByRequestAndReviewer(ctx context.Context, requestID, reviewerID string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.RequestID == requestID && r.ReviewerID == reviewerID {
			copied := r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewStore) ListByReviewee(ctx context.Context, revieweeID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeReviewStore) ListByRequest(ctx context.Context, requestID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.RequestID == requestID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestService() (*DefaultReviewService, *fakeRequestStore, *fakeReviewStore) {
	requests := &fakeRequestStore{docs: map[string]models.ServiceRequest{}}
	reviews := &fakeReviewStore{}
	svc := &DefaultReviewService{
		Repo:     reviews,
		Requests: requests,
		Logger:   zap.NewNop(),
	}
	return svc, requests, reviews
}

func seedRequest(store *fakeRequestStore, status string) string {
	id := "req-" + status
	store.docs[id] = models.ServiceRequest{
		ID:         id,
		ClientID:   clientID,
		ProviderID: providerID,
		Title:      "Fix kitchen outlet",
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	return id
}

func validInput(requestID string) models.ReviewInput {
	return models.ReviewInput{
		RequestID: requestID,
		Rating:    5,
		Comment:   "Excellent and punctual work.",
	}
}

func TestSubmitReviewOnCompletedRequest(t *testing.T) {
	svc, requests, _ := newTestService()
	reqID := seedRequest(requests, models.StatusCompleted)

	review, err := svc.SubmitReview(context.Background(), clientID, validInput(reqID))
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if review.RevieweeID != providerID {
		t.Errorf("reviewee: got %q, want the counterparty %q", review.RevieweeID, providerID)
	}
	if review.Rating != 5 {
		t.Errorf("rating not recorded: %d", review.Rating)
	}
}

func TestBothPartiesMayReviewIndependently(t *testing.T) {
	svc, requests, reviews := newTestService()
	reqID := seedRequest(requests, models.StatusCompleted)
	ctx := context.Background()

	if _, err := svc.SubmitReview(ctx, clientID, validInput(reqID)); err != nil {
		t.Fatalf("client review: %v", err)
	}
	if _, err := svc.SubmitReview(ctx, providerID, validInput(reqID)); err != nil {
		t.Fatalf("provider review: %v", err)
	}
	if len(reviews.reviews) != 2 {
		t.Errorf("expected 2 reviews, got %d", len(reviews.reviews))
	}
}

func TestSubmitReviewTwiceByOneParty(t *testing.T) {
	svc, requests, _ := newTestService()
	reqID := seedRequest(requests, models.StatusCompleted)
	ctx := context.Background()

	if _, err := svc.SubmitReview(ctx, clientID, validInput(reqID)); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err := svc.SubmitReview(ctx, clientID, validInput(reqID))
	if !IsCode(err, CodeAlreadyReviewed) {
		t.Errorf("got %v, want alreadyReviewed", err)
	}
}

func TestSubmitReviewEligibility(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		reviewer string
		reqID    string
		wantCode string
	}{
		{"request not completed", clientID, seedRequest(requests, models.StatusAccepted), CodeNotEligible},
		{"pending completion is not completed", clientID, seedRequest(requests, models.StatusPendingCompletion), CodeNotEligible},
		{"cancelled request", clientID, seedRequest(requests, models.StatusCancelled), CodeNotEligible},
		{"stranger", "stranger", seedRequest(requests, models.StatusCompleted), CodeForbidden},
		{"missing request", clientID, "no-such-request", CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitReview(ctx, tt.reviewer, validInput(tt.reqID))
			if !IsCode(err, tt.wantCode) {
				t.Errorf("got %v, want code %q", err, tt.wantCode)
			}
		})
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	svc, requests, _ := newTestService()
	reqID := seedRequest(requests, models.StatusCompleted)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -2} {
		in := validInput(reqID)
		in.Rating = rating
		if _, err := svc.SubmitReview(ctx, clientID, in); !IsCode(err, CodeValidation) {
			t.Errorf("rating %d: got %v, want validation error", rating, err)
		}
	}

	in := validInput(reqID)
	in.Comment = "too short"
	if _, err := svc.SubmitReview(ctx, clientID, in); !IsCode(err, CodeValidation) {
		t.Errorf("short comment: want validation error")
	}
}

func TestCanReview(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	completed := seedRequest(requests, models.StatusCompleted)
	accepted := seedRequest(requests, models.StatusAccepted)

	if ok, err := svc.CanReview(ctx, completed, clientID); err != nil || !ok {
		t.Errorf("completed request: got (%v, %v), want eligible", ok, err)
	}
	if ok, err := svc.CanReview(ctx, accepted, clientID); err != nil || ok {
		t.Errorf("accepted request: got (%v, %v), want not eligible without error", ok, err)
	}
	if ok, err := svc.CanReview(ctx, completed, "stranger"); err != nil || ok {
		t.Errorf("stranger: got (%v, %v), want not eligible without error", ok, err)
	}
	if _, err := svc.CanReview(ctx, "no-such-request", clientID); !IsCode(err, CodeNotFound) {
		t.Errorf("missing request must surface notFound, got %v", err)
	}

	if _, err := svc.SubmitReview(ctx, clientID, validInput(completed)); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if ok, err := svc.CanReview(ctx, completed, clientID); err != nil || ok {
		t.Errorf("already reviewed: got (%v, %v), want not eligible", ok, err)
	}
	if ok, err := svc.CanReview(ctx, completed, providerID); err != nil || !ok {
		t.Errorf("counterparty must stay eligible: got (%v, %v)", ok, err)
	}
}

func TestListForUser(t *testing.T) {
	svc, requests, _ := newTestService()
	reqID := seedRequest(requests, models.StatusCompleted)
	ctx := context.Background()

	if _, err := svc.SubmitReview(ctx, clientID, validInput(reqID)); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}

	got, err := svc.ListForUser(ctx, providerID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(got) != 1 || got[0].RevieweeID != providerID {
		t.Errorf("provider reviews: %+v", got)
	}

	empty, err := svc.ListForUser(ctx, clientID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("client has received no reviews, got %d", len(empty))
	}
}
