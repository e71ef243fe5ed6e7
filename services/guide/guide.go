package guide

import (
	"context"
	"fmt"
	"time"

	guideRepo "pescalia/database/repository/guide"
	serviceRepo "pescalia/database/repository/service"
	"pescalia/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GuideService manages guide profiles and their service listings. Listings
// created or edited here always re-enter the approval pipeline as pending;
// only the approval service flips the flag.
type GuideService interface {
	RegisterGuide(ctx context.Context, auth models.AuthContext, guide models.Guide) (*models.Guide, error)
	GetGuideByID(ctx context.Context, id string) (*models.Guide, error)
	ListGuides(ctx context.Context) ([]models.GuideSummary, error)
	// CurrentGuideForUser resolves the caller's guide profile. A user may
	// defectively own several records; the most-recently-created one wins.
	CurrentGuideForUser(ctx context.Context, auth models.AuthContext) (*models.Guide, error)
	UpdateGuide(ctx context.Context, auth models.AuthContext, guide models.Guide) (*models.Guide, error)
	DeleteGuide(ctx context.Context, auth models.AuthContext, id string) error

	// UpdateFCMToken stores the guide's current push token. Owner only; the
	// token never leaves the database through the API.
	UpdateFCMToken(ctx context.Context, auth models.AuthContext, guideID, token string) error

	CreateService(ctx context.Context, auth models.AuthContext, svc models.Service) (*models.Service, error)
	UpdateService(ctx context.Context, auth models.AuthContext, svc models.Service) (*models.Service, error)
	DeleteService(ctx context.Context, auth models.AuthContext, serviceID string) error
}

// DefaultGuideService implements GuideService.
type DefaultGuideService struct {
	Guides   guideRepo.GuideRepository
	Services serviceRepo.ServiceRepository
	Logger   *zap.Logger
}

func (s *DefaultGuideService) RegisterGuide(ctx context.Context, auth models.AuthContext, g models.Guide) (*models.Guide, error) {
	g.ID = uuid.New().String()
	g.OwnerUserID = auth.UserID
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt

	if err := s.Guides.Create(&g); err != nil {
		return nil, err
	}
	s.Logger.Info("guide registered", zap.String("guideId", g.ID), zap.String("ownerUserId", g.OwnerUserID))
	return &g, nil
}

func (s *DefaultGuideService) GetGuideByID(ctx context.Context, id string) (*models.Guide, error) {
	return s.Guides.GetByID(id)
}

func (s *DefaultGuideService) ListGuides(ctx context.Context) ([]models.GuideSummary, error) {
	guides, err := s.Guides.GetAll(nil)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.GuideSummary, 0, len(guides))
	for _, g := range guides {
		summaries = append(summaries, models.GuideSummary{
			ID:          g.ID,
			Name:        g.Name,
			Location:    g.Location,
			Rating:      g.Rating,
			ReviewCount: g.ReviewCount,
		})
	}
	return summaries, nil
}

func (s *DefaultGuideService) CurrentGuideForUser(ctx context.Context, auth models.AuthContext) (*models.Guide, error) {
	return s.Guides.GetMostRecentByOwner(auth.UserID)
}

func (s *DefaultGuideService) UpdateGuide(ctx context.Context, auth models.AuthContext, g models.Guide) (*models.Guide, error) {
	existing, err := s.Guides.GetByID(g.ID)
	if err != nil {
		return nil, err
	}
	if !auth.IsAdmin() && !auth.Owns(existing) {
		return nil, &OwnershipError{GuideID: g.ID}
	}

	// Ownership and creation time are immutable through this path.
	g.OwnerUserID = existing.OwnerUserID
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = time.Now()

	if err := s.Guides.Update(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *DefaultGuideService) DeleteGuide(ctx context.Context, auth models.AuthContext, id string) error {
	existing, err := s.Guides.GetByID(id)
	if err != nil {
		return err
	}
	if !auth.IsAdmin() && !auth.Owns(existing) {
		return &OwnershipError{GuideID: id}
	}
	return s.Guides.Delete(id)
}

func (s *DefaultGuideService) UpdateFCMToken(ctx context.Context, auth models.AuthContext, guideID, token string) error {
	existing, err := s.Guides.GetByID(guideID)
	if err != nil {
		return err
	}
	if !auth.Owns(existing) {
		return &OwnershipError{GuideID: guideID}
	}
	return s.Guides.UpdateWithDocument(guideID, bson.M{
		"$set": bson.M{"fcmToken": token, "updatedAt": time.Now()},
	})
}

func (s *DefaultGuideService) CreateService(ctx context.Context, auth models.AuthContext, svc models.Service) (*models.Service, error) {
	owner, err := s.Guides.GetByID(svc.GuideID)
	if err != nil {
		return nil, err
	}
	if !auth.IsAdmin() && !auth.Owns(owner) {
		return nil, &OwnershipError{GuideID: svc.GuideID}
	}
	if svc.Price <= 0 {
		return nil, fmt.Errorf("service price must be positive")
	}

	svc.ID = uuid.New().String()
	svc.Approved = nil // every new listing starts pending
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt

	if err := s.Services.Create(&svc); err != nil {
		return nil, err
	}
	s.Logger.Info("service submitted for approval",
		zap.String("serviceId", svc.ID), zap.String("guideId", svc.GuideID))
	return &svc, nil
}

func (s *DefaultGuideService) UpdateService(ctx context.Context, auth models.AuthContext, svc models.Service) (*models.Service, error) {
	existing, err := s.Services.GetByID(svc.ID)
	if err != nil {
		return nil, err
	}
	owner, err := s.Guides.GetByID(existing.GuideID)
	if err != nil {
		return nil, err
	}
	if !auth.IsAdmin() && !auth.Owns(owner) {
		return nil, &OwnershipError{GuideID: existing.GuideID}
	}
	if svc.Price <= 0 {
		return nil, fmt.Errorf("service price must be positive")
	}

	// Edits re-enter the approval pipeline; only admin edits keep the flag.
	svc.GuideID = existing.GuideID
	svc.CreatedAt = existing.CreatedAt
	svc.UpdatedAt = time.Now()
	if auth.IsAdmin() {
		svc.Approved = existing.Approved
	} else {
		svc.Approved = nil
	}

	if err := s.Services.Update(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *DefaultGuideService) DeleteService(ctx context.Context, auth models.AuthContext, serviceID string) error {
	existing, err := s.Services.GetByID(serviceID)
	if err != nil {
		return err
	}
	owner, err := s.Guides.GetByID(existing.GuideID)
	if err != nil {
		return err
	}
	if !auth.IsAdmin() && !auth.Owns(owner) {
		return &OwnershipError{GuideID: existing.GuideID}
	}
	return s.Services.Delete(serviceID)
}
