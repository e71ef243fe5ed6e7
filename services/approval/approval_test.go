package approval

import (
	"context"
	"testing"

	guideRepo "pescalia/database/repository/guide"
	serviceRepo "pescalia/database/repository/service"
	"pescalia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// In-memory fakes mirroring the repository semantics the service relies on:
// SetApproval reports whether the flag actually changed, bulk operations
// report how many documents transitioned.

type fakeServiceRepo struct {
	services map[string]*models.Service
}

func (f *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeServiceRepo) ListByGuide(guideID string, includePending bool) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.GuideID != guideID {
			continue
		}
		if !includePending && !s.IsApproved() {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeServiceRepo) ListPending() ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if !s.IsApproved() {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) CountPendingByGuide(guideID string) (int64, error) {
	var count int64
	for _, s := range f.services {
		if s.GuideID == guideID && !s.IsApproved() {
			count++
		}
	}
	return count, nil
}

func (f *fakeServiceRepo) Create(s *models.Service) error {
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) Update(s *models.Service) error {
	if _, ok := f.services[s.ID]; !ok {
		return serviceRepo.ErrNotFound
	}
	f.services[s.ID] = s
	return nil
}

func (f *fakeServiceRepo) Delete(id string) error {
	if _, ok := f.services[id]; !ok {
		return serviceRepo.ErrNotFound
	}
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) SetApproval(id string, approved bool) (bool, error) {
	s, ok := f.services[id]
	if !ok {
		return false, serviceRepo.ErrNotFound
	}
	// Transition means the normalized state changed; writing false over a
	// missing flag keeps the service pending and does not count.
	transitioned := s.IsApproved() != approved
	value := approved
	s.Approved = &value
	return transitioned, nil
}

func (f *fakeServiceRepo) ApproveAllForGuide(guideID string) (int64, error) {
	var count int64
	for _, s := range f.services {
		if s.GuideID == guideID && !s.IsApproved() {
			value := true
			s.Approved = &value
			count++
		}
	}
	return count, nil
}

func (f *fakeServiceRepo) ApproveAllPending() (int64, error) {
	var count int64
	for _, s := range f.services {
		if !s.IsApproved() {
			value := true
			s.Approved = &value
			count++
		}
	}
	return count, nil
}

type fakeGuideRepo struct {
	guides map[string]*models.Guide
}

func (f *fakeGuideRepo) GetByID(id string) (*models.Guide, error) {
	g, ok := f.guides[id]
	if !ok {
		return nil, guideRepo.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGuideRepo) GetAll(bson.M) ([]models.Guide, error)              { return nil, nil }
func (f *fakeGuideRepo) GetMostRecentByOwner(string) (*models.Guide, error) { return nil, nil }
func (f *fakeGuideRepo) Create(*models.Guide) error                         { return nil }
func (f *fakeGuideRepo) Update(*models.Guide) error                         { return nil }
func (f *fakeGuideRepo) UpdateWithDocument(string, bson.M) error            { return nil }
func (f *fakeGuideRepo) Delete(string) error                                { return nil }

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) NotifyGuide(_ context.Context, _ *models.Guide, title, _ string, _ map[string]string) error {
	f.sent = append(f.sent, title)
	return nil
}

func boolPtr(b bool) *bool { return &b }

var (
	owner1 = models.AuthContext{UserID: "owner-1", Role: models.RoleUser}
	owner2 = models.AuthContext{UserID: "owner-2", Role: models.RoleUser}
	admin  = models.AuthContext{UserID: "mod", Role: models.RoleAdmin}
)

func newTestApproval() (*DefaultApprovalService, *fakeServiceRepo) {
	services := &fakeServiceRepo{services: map[string]*models.Service{
		"a": {ID: "a", GuideID: "g1", Title: "A"},
		"b": {ID: "b", GuideID: "g1", Title: "B"},
		"c": {ID: "c", GuideID: "g1", Title: "C", Approved: boolPtr(true)},
		"d": {ID: "d", GuideID: "g2", Title: "D", Approved: boolPtr(false)},
	}}
	guides := &fakeGuideRepo{guides: map[string]*models.Guide{
		"g1": {ID: "g1", OwnerUserID: "owner-1"},
		"g2": {ID: "g2", OwnerUserID: "owner-2"},
	}}
	return &DefaultApprovalService{
		Services: services,
		Guides:   guides,
		Logger:   zap.NewNop(),
	}, services
}

func TestApprove(t *testing.T) {
	svc, repo := newTestApproval()
	ctx := context.Background()

	approved, err := svc.Approve(ctx, owner1, "a")
	require.NoError(t, err)
	assert.True(t, approved.IsApproved())
	assert.True(t, repo.services["a"].IsApproved())
}

func TestApproveIsIdempotent(t *testing.T) {
	svc, repo := newTestApproval()
	ctx := context.Background()

	// "c" is already approved; approving again succeeds without a transition.
	approved, err := svc.Approve(ctx, owner1, "c")
	require.NoError(t, err)
	assert.True(t, approved.IsApproved())
	assert.True(t, repo.services["c"].IsApproved())
}

func TestApproveNotifiesOnlyOnTransition(t *testing.T) {
	svc, _ := newTestApproval()
	notifier := &fakeNotifier{}
	svc.Notifier = notifier
	ctx := context.Background()

	// First approval transitions and notifies; the repeat is a no-op success
	// and must stay silent.
	_, err := svc.Approve(ctx, owner1, "a")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, owner1, "a")
	require.NoError(t, err)
	assert.Len(t, notifier.sent, 1)

	// Same for sending an already-pending service back to pending.
	_, err = svc.MarkPending(ctx, admin, "b")
	require.NoError(t, err)
	assert.Len(t, notifier.sent, 1)
}

func TestApproveFailsClosed(t *testing.T) {
	svc, repo := newTestApproval()
	ctx := context.Background()

	// owner-1 owns g1, not g2; owning some guide never grants access to
	// another guide's services.
	_, err := svc.Approve(ctx, owner1, "d")
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, repo.services["d"].IsApproved(), "rejected mutation must not change state")

	_, err = svc.Approve(ctx, models.AuthContext{}, "a")
	require.ErrorAs(t, err, &authErr)

	// Admins may approve anywhere.
	_, err = svc.Approve(ctx, admin, "d")
	assert.NoError(t, err)
}

func TestApproveUnknownService(t *testing.T) {
	svc, _ := newTestApproval()

	_, err := svc.Approve(context.Background(), admin, "missing")
	assert.ErrorIs(t, err, serviceRepo.ErrNotFound)
}

func TestMarkPendingIsAdminOnly(t *testing.T) {
	svc, repo := newTestApproval()
	ctx := context.Background()

	_, err := svc.MarkPending(ctx, owner1, "c")
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.True(t, repo.services["c"].IsApproved())

	unpublished, err := svc.MarkPending(ctx, admin, "c")
	require.NoError(t, err)
	assert.False(t, unpublished.IsApproved())
	assert.False(t, repo.services["c"].IsApproved())
}

func TestApproveAllForGuide(t *testing.T) {
	svc, repo := newTestApproval()
	ctx := context.Background()

	// g1 has two pending services (a, b) and one already approved (c).
	count, err := svc.ApproveAllForGuide(ctx, owner1, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.True(t, repo.services["a"].IsApproved())
	assert.True(t, repo.services["b"].IsApproved())
	assert.True(t, repo.services["c"].IsApproved())

	// A second run transitions nothing.
	count, err = svc.ApproveAllForGuide(ctx, owner1, "g1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestApproveAllForGuideAuthorization(t *testing.T) {
	svc, repo := newTestApproval()

	_, err := svc.ApproveAllForGuide(context.Background(), owner2, "g1")
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, repo.services["a"].IsApproved())
}

func TestApproveAllPending(t *testing.T) {
	svc, repo := newTestApproval()
	ctx := context.Background()

	_, err := svc.ApproveAllPending(ctx, owner1)
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)

	count, err := svc.ApproveAllPending(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	for id, s := range repo.services {
		assert.True(t, s.IsApproved(), "service %s should be approved", id)
	}
}

func TestListForGuide(t *testing.T) {
	svc, _ := newTestApproval()
	ctx := context.Background()

	// The owner sees pending listings.
	own, err := svc.ListForGuide(ctx, owner1, "g1")
	require.NoError(t, err)
	assert.Len(t, own, 3)

	// A stranger only sees approved ones.
	public, err := svc.ListForGuide(ctx, owner2, "g1")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "c", public[0].ID)

	// So does the anonymous user.
	anon, err := svc.ListForGuide(ctx, models.AuthContext{}, "g1")
	require.NoError(t, err)
	assert.Len(t, anon, 1)
}

func TestListPendingIsAdminOnly(t *testing.T) {
	svc, _ := newTestApproval()
	ctx := context.Background()

	_, err := svc.ListPending(ctx, owner1)
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)

	pending, err := svc.ListPending(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestPendingCountForGuide(t *testing.T) {
	svc, _ := newTestApproval()
	ctx := context.Background()

	count, err := svc.PendingCountForGuide(ctx, owner1, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.PendingCountForGuide(ctx, owner2, "g1")
	var authErr *AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}
