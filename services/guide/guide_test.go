package guide

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

func (f *fakeGuideRepo) GetAll(bson.M) ([]models.Guide, error) {
	var out []models.Guide
	for _, g := range f.guides {
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeGuideRepo) GetMostRecentByOwner(ownerUserID string) (*models.Guide, error) {
	var latest *models.Guide
	for _, g := range f.guides {
		if g.OwnerUserID != ownerUserID {
			continue
		}
		if latest == nil || g.CreatedAt.After(latest.CreatedAt) {
			latest = g
		}
	}
	if latest == nil {
		return nil, guideRepo.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeGuideRepo) Create(g *models.Guide) error {
	f.guides[g.ID] = g
	return nil
}

func (f *fakeGuideRepo) Update(g *models.Guide) error {
	if _, ok := f.guides[g.ID]; !ok {
		return guideRepo.ErrNotFound
	}
	f.guides[g.ID] = g
	return nil
}

func (f *fakeGuideRepo) UpdateWithDocument(string, bson.M) error { return nil }

func (f *fakeGuideRepo) Delete(id string) error {
	if _, ok := f.guides[id]; !ok {
		return guideRepo.ErrNotFound
	}
	delete(f.guides, id)
	return nil
}

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

func (f *fakeServiceRepo) ListByGuide(string, bool) ([]models.Service, error) { return nil, nil }
func (f *fakeServiceRepo) ListPending() ([]models.Service, error)            { return nil, nil }
func (f *fakeServiceRepo) CountPendingByGuide(string) (int64, error)         { return 0, nil }

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
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) SetApproval(string, bool) (bool, error)   { return false, nil }
func (f *fakeServiceRepo) ApproveAllForGuide(string) (int64, error) { return 0, nil }
func (f *fakeServiceRepo) ApproveAllPending() (int64, error)        { return 0, nil }

func boolPtr(b bool) *bool { return &b }

var (
	owner = models.AuthContext{UserID: "owner-1", Role: models.RoleUser}
	other = models.AuthContext{UserID: "owner-2", Role: models.RoleUser}
	admin = models.AuthContext{UserID: "mod", Role: models.RoleAdmin}
)

func newTestGuideService() (*DefaultGuideService, *fakeGuideRepo, *fakeServiceRepo) {
	guides := &fakeGuideRepo{guides: map[string]*models.Guide{
		"g1": {ID: "g1", OwnerUserID: "owner-1", Name: "Don Pedro", Location: "Pucon"},
	}}
	services := &fakeServiceRepo{services: map[string]*models.Service{
		"svc-1": {ID: "svc-1", GuideID: "g1", Title: "Fly fishing", Price: 18000, MaxPeople: 4, Approved: boolPtr(true)},
	}}
	return &DefaultGuideService{Guides: guides, Services: services, Logger: zap.NewNop()}, guides, services
}

func TestRegisterGuide(t *testing.T) {
	svc, repo, _ := newTestGuideService()

	created, err := svc.RegisterGuide(context.Background(), other, models.Guide{
		Name: "Dona Rosa", Location: "Valdivia",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-2", created.OwnerUserID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Contains(t, repo.guides, created.ID)
}

func TestUpdateGuideOwnership(t *testing.T) {
	svc, repo, _ := newTestGuideService()
	ctx := context.Background()

	_, err := svc.UpdateGuide(ctx, other, models.Guide{ID: "g1", Name: "Hijacked"})
	var ownErr *OwnershipError
	require.ErrorAs(t, err, &ownErr)
	assert.Equal(t, "Don Pedro", repo.guides["g1"].Name)

	updated, err := svc.UpdateGuide(ctx, owner, models.Guide{ID: "g1", Name: "Don Pedro M.", Location: "Pucon"})
	require.NoError(t, err)
	assert.Equal(t, "Don Pedro M.", updated.Name)
	// Ownership never changes through an update.
	assert.Equal(t, "owner-1", updated.OwnerUserID)

	_, err = svc.UpdateGuide(ctx, admin, models.Guide{ID: "g1", Name: "Moderated", Location: "Pucon"})
	assert.NoError(t, err)
}

func TestCreateServiceStartsPending(t *testing.T) {
	svc, _, repo := newTestGuideService()

	created, err := svc.CreateService(context.Background(), owner, models.Service{
		GuideID: "g1", Title: "Night spinning", Price: 30000, MaxPeople: 2,
	})
	require.NoError(t, err)
	assert.Nil(t, created.Approved)
	assert.Equal(t, models.ApprovalPending, created.Status())
	assert.Contains(t, repo.services, created.ID)
}

func TestCreateServiceRejectsNonPositivePrice(t *testing.T) {
	svc, _, _ := newTestGuideService()

	_, err := svc.CreateService(context.Background(), owner, models.Service{
		GuideID: "g1", Title: "Free trip", Price: 0, MaxPeople: 2,
	})
	assert.Error(t, err)
}

func TestCreateServiceRequiresOwnership(t *testing.T) {
	svc, _, _ := newTestGuideService()

	_, err := svc.CreateService(context.Background(), other, models.Service{
		GuideID: "g1", Title: "Night spinning", Price: 30000, MaxPeople: 2,
	})
	var ownErr *OwnershipError
	assert.ErrorAs(t, err, &ownErr)
}

func TestUpdateServiceResetsApproval(t *testing.T) {
	svc, _, repo := newTestGuideService()
	ctx := context.Background()

	// An owner edit sends the approved listing back to pending.
	updated, err := svc.UpdateService(ctx, owner, models.Service{
		ID: "svc-1", Title: "Fly fishing deluxe", Price: 22000, MaxPeople: 4,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Approved)
	assert.Equal(t, models.ApprovalPending, repo.services["svc-1"].Status())
}

func TestAdminUpdateServiceKeepsApproval(t *testing.T) {
	svc, _, repo := newTestGuideService()

	updated, err := svc.UpdateService(context.Background(), admin, models.Service{
		ID: "svc-1", Title: "Fly fishing (moderated)", Price: 18000, MaxPeople: 4,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsApproved())
	assert.True(t, repo.services["svc-1"].IsApproved())
}

func TestDeleteServiceOwnership(t *testing.T) {
	svc, _, repo := newTestGuideService()
	ctx := context.Background()

	var ownErr *OwnershipError
	require.ErrorAs(t, svc.DeleteService(ctx, other, "svc-1"), &ownErr)
	assert.Contains(t, repo.services, "svc-1")

	require.NoError(t, svc.DeleteService(ctx, owner, "svc-1"))
	assert.NotContains(t, repo.services, "svc-1")
}

func TestUpdateFCMTokenRequiresOwnership(t *testing.T) {
	svc, _, _ := newTestGuideService()
	ctx := context.Background()

	var ownErr *OwnershipError
	require.ErrorAs(t, svc.UpdateFCMToken(ctx, other, "g1", "tok"), &ownErr)
	assert.NoError(t, svc.UpdateFCMToken(ctx, owner, "g1", "tok"))
}

func TestCurrentGuideForUserPicksMostRecent(t *testing.T) {
	svc, _, _ := newTestGuideService()
	ctx := context.Background()

	first, err := svc.RegisterGuide(ctx, other, models.Guide{Name: "First", Location: "Osorno"})
	require.NoError(t, err)
	second, err := svc.RegisterGuide(ctx, other, models.Guide{Name: "Second", Location: "Osorno"})
	require.NoError(t, err)
	// Force a strict ordering; uuid creation within the same nanosecond would
	// otherwise make the pick ambiguous.
	second.CreatedAt = first.CreatedAt.Add(1)

	current, err := svc.CurrentGuideForUser(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
}
