package approval

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	guideRepo "pescalia/database/repository/guide"
	serviceRepo "pescalia/database/repository/service"
	"pescalia/models"
	"pescalia/services/notification"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	servicesCacheKeyPrefix = "services:guide:"
	servicesCacheTTL       = 5 * time.Minute
)

// ApprovalService manages the pending/approved lifecycle of service listings.
// Authorization is enforced here, at the data-access boundary, not in the
// handlers: a mutation needs the owning guide's user or an admin.
type ApprovalService interface {
	Approve(ctx context.Context, auth models.AuthContext, serviceID string) (*models.Service, error)
	MarkPending(ctx context.Context, auth models.AuthContext, serviceID string) (*models.Service, error)
	ApproveAllForGuide(ctx context.Context, auth models.AuthContext, guideID string) (int64, error)
	ApproveAllPending(ctx context.Context, auth models.AuthContext) (int64, error)
	ListForGuide(ctx context.Context, auth models.AuthContext, guideID string) ([]models.Service, error)
	ListPending(ctx context.Context, auth models.AuthContext) ([]models.Service, error)
	PendingCountForGuide(ctx context.Context, auth models.AuthContext, guideID string) (int64, error)
}

// DefaultApprovalService implements ApprovalService.
type DefaultApprovalService struct {
	Services serviceRepo.ServiceRepository
	Guides   guideRepo.GuideRepository
	Cache    *redis.Client
	Notifier notification.NotificationService // optional
	Logger   *zap.Logger
}

// ServicesCacheKey is the cache key holding a guide's public service list.
func ServicesCacheKey(guideID string) string {
	return servicesCacheKeyPrefix + guideID
}

// Approve transitions a service Pending -> Approved. Approving an already
// approved service is a no-op success.
func (s *DefaultApprovalService) Approve(ctx context.Context, auth models.AuthContext, serviceID string) (*models.Service, error) {
	svc, guide, err := s.loadServiceWithGuide(serviceID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(auth, guide); err != nil {
		return nil, err
	}

	transitioned, err := s.Services.SetApproval(serviceID, true)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, svc.GuideID)

	approved := true
	svc.Approved = &approved

	if transitioned {
		s.notify(ctx, guide, "Service approved",
			fmt.Sprintf("%q is now visible to anglers", svc.Title), svc.ID)
	}
	return svc, nil
}

// MarkPending reverts a service to Pending (unpublish). Admin only; also a
// no-op success when the service is already pending.
func (s *DefaultApprovalService) MarkPending(ctx context.Context, auth models.AuthContext, serviceID string) (*models.Service, error) {
	if !auth.IsAdmin() {
		return nil, NewAuthorizationError("only admins may unpublish a service")
	}
	svc, guide, err := s.loadServiceWithGuide(serviceID)
	if err != nil {
		return nil, err
	}

	transitioned, err := s.Services.SetApproval(serviceID, false)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, svc.GuideID)

	pending := false
	svc.Approved = &pending

	if transitioned {
		s.notify(ctx, guide, "Service unpublished",
			fmt.Sprintf("%q was sent back for review", svc.Title), svc.ID)
	}
	return svc, nil
}

// ApproveAllForGuide approves every pending service of one guide and returns
// how many actually transitioned.
func (s *DefaultApprovalService) ApproveAllForGuide(ctx context.Context, auth models.AuthContext, guideID string) (int64, error) {
	guide, err := s.Guides.GetByID(guideID)
	if err != nil {
		return 0, err
	}
	if err := authorizeMutation(auth, guide); err != nil {
		return 0, err
	}

	count, err := s.Services.ApproveAllForGuide(guideID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, guideID)

	if count > 0 {
		s.notify(ctx, guide, "Services approved",
			fmt.Sprintf("%d of your services are now visible to anglers", count), "")
	}
	return count, nil
}

// ApproveAllPending approves every pending service on the platform. Admin
// only; returns the number of services that transitioned.
func (s *DefaultApprovalService) ApproveAllPending(ctx context.Context, auth models.AuthContext) (int64, error) {
	if !auth.IsAdmin() {
		return 0, NewAuthorizationError("only admins may bulk-approve the platform")
	}

	// Snapshot the affected guides first so their cached lists can be
	// dropped after the bulk write. The write itself is the source of truth
	// for the transition count.
	pending, err := s.Services.ListPending()
	if err != nil {
		return 0, err
	}
	affected := make(map[string]struct{}, len(pending))
	for _, svc := range pending {
		affected[svc.GuideID] = struct{}{}
	}

	count, err := s.Services.ApproveAllPending()
	if err != nil {
		return 0, err
	}
	for guideID := range affected {
		s.invalidate(ctx, guideID)
	}
	return count, nil
}

// ListForGuide returns a guide's services. The owner and admins see pending
// listings too; everyone else gets the cached public (approved-only) list.
func (s *DefaultApprovalService) ListForGuide(ctx context.Context, auth models.AuthContext, guideID string) ([]models.Service, error) {
	guide, err := s.Guides.GetByID(guideID)
	if err != nil {
		return nil, err
	}

	if auth.IsAdmin() || auth.Owns(guide) {
		return s.Services.ListByGuide(guideID, true)
	}

	if cached, ok := s.cachedList(ctx, guideID); ok {
		return cached, nil
	}
	services, err := s.Services.ListByGuide(guideID, false)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, guideID, services)
	return services, nil
}

// ListPending returns every pending service on the platform. Admin only.
func (s *DefaultApprovalService) ListPending(ctx context.Context, auth models.AuthContext) ([]models.Service, error) {
	if !auth.IsAdmin() {
		return nil, NewAuthorizationError("only admins may list platform-wide pending services")
	}
	return s.Services.ListPending()
}

// PendingCountForGuide returns the guide's pending count for the owner or an
// admin.
func (s *DefaultApprovalService) PendingCountForGuide(ctx context.Context, auth models.AuthContext, guideID string) (int64, error) {
	guide, err := s.Guides.GetByID(guideID)
	if err != nil {
		return 0, err
	}
	if err := authorizeMutation(auth, guide); err != nil {
		return 0, err
	}
	return s.Services.CountPendingByGuide(guideID)
}

// authorizeMutation is the single ownership gate for approval state. The
// check runs against the specific guide in question, never "any guide owned
// by the caller".
func authorizeMutation(auth models.AuthContext, guide *models.Guide) error {
	if auth.IsAdmin() {
		return nil
	}
	if auth.Owns(guide) {
		return nil
	}
	return NewAuthorizationError("caller is neither the guide owner nor an admin")
}

func (s *DefaultApprovalService) loadServiceWithGuide(serviceID string) (*models.Service, *models.Guide, error) {
	svc, err := s.Services.GetByID(serviceID)
	if err != nil {
		return nil, nil, err
	}
	guide, err := s.Guides.GetByID(svc.GuideID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve owning guide: %w", err)
	}
	return svc, guide, nil
}

// invalidate drops the cached public list for a guide after a successful
// mutation. Cache trouble is logged and swallowed: the database already holds
// the new state and the entry expires on its own.
func (s *DefaultApprovalService) invalidate(ctx context.Context, guideID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, ServicesCacheKey(guideID)).Err(); err != nil {
		s.Logger.Warn("failed to invalidate service list cache",
			zap.String("guideId", guideID), zap.Error(err))
	}
}

func (s *DefaultApprovalService) cachedList(ctx context.Context, guideID string) ([]models.Service, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, ServicesCacheKey(guideID)).Result()
	if err != nil {
		return nil, false
	}
	var services []models.Service
	if err := json.Unmarshal([]byte(data), &services); err != nil {
		return nil, false
	}
	return services, true
}

func (s *DefaultApprovalService) storeList(ctx context.Context, guideID string, services []models.Service) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(services)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, ServicesCacheKey(guideID), data, servicesCacheTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache service list",
			zap.String("guideId", guideID), zap.Error(err))
	}
}

func (s *DefaultApprovalService) notify(ctx context.Context, guide *models.Guide, title, body, serviceID string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{}
	if serviceID != "" {
		data["serviceId"] = serviceID
	}
	if err := s.Notifier.NotifyGuide(ctx, guide, title, body, data); err != nil {
		s.Logger.Warn("failed to notify guide of approval change",
			zap.String("guideId", guide.ID), zap.Error(err))
	}
}
