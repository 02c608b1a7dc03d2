package request

import (
	"context"
	"sync"
	"time"

	directoryRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/directory"
	requestRepo "github.com/EternalGerms/trampoaqui-sub001/database/repository/request"
	"github.com/EternalGerms/trampoaqui-sub001/models"

	"go.uber.org/zap"
)

// fakeRequestRepo is an in-memory ServiceRequestRepository with the same
// versioning semantics as the Mongo implementation.
type fakeRequestRepo struct {
	mu   sync.Mutex
	docs map[string]models.ServiceRequest
	// forceConflicts makes the next N ReplaceVersioned calls fail with a
	// version conflict, as if a concurrent writer always got there first.
	forceConflicts int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{docs: make(map[string]models.ServiceRequest)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[req.ID] = *req
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	copied := doc
	return &copied, nil
}

func (f *fakeRequestRepo) ListByClient(ctx context.Context, clientID string) ([]models.ServiceRequest, error) {
	return f.listBy(func(r models.ServiceRequest) bool { return r.ClientID == clientID })
}

func (f *fakeRequestRepo) ListByProvider(ctx context.Context, providerID string) ([]models.ServiceRequest, error) {
	return f.listBy(func(r models.ServiceRequest) bool { return r.ProviderID == providerID })
}

func (f *fakeRequestRepo) listBy(match func(models.ServiceRequest) bool) ([]models.ServiceRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ServiceRequest
	for _, doc := range f.docs {
		if match(doc) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ReplaceVersioned(ctx context.Context, req *models.ServiceRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.docs[req.ID]
	if !ok {
		return requestRepo.ErrNotFound
	}
	if f.forceConflicts > 0 {
		f.forceConflicts--
		return requestRepo.ErrVersionConflict
	}
	if stored.Version != req.Version {
		return requestRepo.ErrVersionConflict
	}
	req.Version++
	req.UpdatedAt = time.Now().UTC()
	f.docs[req.ID] = *req
	return nil
}

// fakeProviderDirectory serves providers from a map.
type fakeProviderDirectory struct {
	providers map[string]models.Provider
}

func (f *fakeProviderDirectory) GetProviderByID(ctx context.Context, id string) (*models.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, directoryRepo.ErrNotFound
	}
	return &p, nil
}

// recordedNotification captures one Notify call.
type recordedNotification struct {
	RecipientID string
	RequestID   string
	Kind        string
}

// fakeNotifier records notifications instead of storing them.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, recipientID, requestID, kind, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, recordedNotification{RecipientID: recipientID, RequestID: requestID, Kind: kind})
	return nil
}

func (f *fakeNotifier) List(ctx context.Context, recipientID string) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, id, recipientID string) error {
	return nil
}

func (f *fakeNotifier) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, n := range f.sent {
		out = append(out, n.Kind)
	}
	return out
}

// fakeScheduler records reminder scheduling calls.
type fakeScheduler struct {
	scheduled []string
}

func (f *fakeScheduler) ScheduleUpcoming(req *models.ServiceRequest) error {
	f.scheduled = append(f.scheduled, req.ID)
	return nil
}

const (
	testClientID   = "client-1"
	testProviderID = "provider-1"
)

type testEnv struct {
	svc       *DefaultRequestService
	repo      *fakeRequestRepo
	notifier  *fakeNotifier
	scheduler *fakeScheduler
}

func newTestEnv() *testEnv {
	repo := newFakeRequestRepo()
	notifier := &fakeNotifier{}
	scheduler := &fakeScheduler{}
	svc := &DefaultRequestService{
		Repo: repo,
		Providers: &fakeProviderDirectory{providers: map[string]models.Provider{
			testProviderID: {ID: testProviderID, Name: "Ana", Category: "electrician"},
		}},
		Notifier:  notifier,
		Reminders: scheduler,
		Logger:    zap.NewNop(),
	}
	return &testEnv{svc: svc, repo: repo, notifier: notifier, scheduler: scheduler}
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func timePtr(t time.Time) *time.Time {
	return &t
}

// seedRequest stores a request directly in the fake repo.
func (e *testEnv) seedRequest(req models.ServiceRequest) {
	if req.Version == 0 {
		req.Version = 1
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	e.repo.docs[req.ID] = req
}

// createFixed creates a plain fixed-price request via the service.
func (e *testEnv) createFixed() *models.ServiceRequestView {
	view, err := e.svc.CreateRequest(context.Background(), testClientID, models.ServiceRequestInput{
		ProviderID:    testProviderID,
		Title:         "Fix kitchen outlet",
		Description:   "Outlet sparks when used",
		PricingType:   models.PricingFixed,
		ProposedPrice: floatPtr(150),
	})
	if err != nil {
		panic(err)
	}
	return view
}
