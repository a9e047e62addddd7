package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bargenix/bargaining-api/internal/domain"
	"github.com/bargenix/bargaining-api/internal/repository"
	apierrors "github.com/bargenix/bargaining-api/pkg/errors"
)

// In-memory repository fakes mirroring the postgres upsert semantics.

type memConfigRepo struct {
	mu      sync.Mutex
	configs map[string]*domain.BargainingConfig // key: userID|productID
	reads   int
	writes  int
}

func newMemConfigRepo() *memConfigRepo {
	return &memConfigRepo{configs: make(map[string]*domain.BargainingConfig)}
}

func configKey(userID uuid.UUID, productID string) string {
	return userID.String() + "|" + productID
}

func (m *memConfigRepo) GetByUserAndProduct(_ context.Context, userID uuid.UUID, productID string) (*domain.BargainingConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	cfg, ok := m.configs[configKey(userID, productID)]
	if !ok {
		return nil, &apierrors.ErrNotFound{Resource: "bargaining config", ID: productID}
	}
	clone := *cfg
	return &clone, nil
}

func (m *memConfigRepo) GetByProduct(_ context.Context, productID string) (*domain.BargainingConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cfg := range m.configs {
		if cfg.ProductID == productID {
			clone := *cfg
			return &clone, nil
		}
	}
	return nil, &apierrors.ErrNotFound{Resource: "bargaining config", ID: productID}
}

func (m *memConfigRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.BargainingConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.BargainingConfig
	for _, cfg := range m.configs {
		if cfg.UserID == userID {
			clone := *cfg
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *memConfigRepo) Create(_ context.Context, cfg *domain.BargainingConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	clone := *cfg
	m.configs[configKey(cfg.UserID, cfg.ProductID)] = &clone
	return nil
}

func (m *memConfigRepo) Update(_ context.Context, cfg *domain.BargainingConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	clone := *cfg
	m.configs[configKey(cfg.UserID, cfg.ProductID)] = &clone
	return nil
}

func (m *memConfigRepo) BulkUpsert(_ context.Context, upserts []repository.ConfigUpsert) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	var affected int64
	for _, u := range upserts {
		key := configKey(u.UserID, u.ProductID)
		if existing, ok := m.configs[key]; ok {
			existing.MinPrice = u.MinPrice
			if u.Behavior != nil {
				existing.Behavior = u.Behavior
			}
			if u.Activate {
				existing.IsActive = true
			}
		} else {
			m.configs[key] = &domain.BargainingConfig{
				ID:          uuid.New(),
				UserID:      u.UserID,
				ProductID:   u.ProductID,
				MinPrice:    u.MinPrice,
				Behavior:    u.Behavior,
				IsActive:    true,
				IsAvailable: true,
			}
		}
		affected++
	}
	return affected, nil
}

func (m *memConfigRepo) DeactivateByUserAndProducts(_ context.Context, userID uuid.UUID, ids []string, upd repository.DeactivationUpdate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	now := time.Now()
	var affected int64
	for _, id := range ids {
		if cfg, ok := m.configs[configKey(userID, id)]; ok {
			deactivate(cfg, upd.Reason, now)
			affected++
		}
	}
	return affected, nil
}

func (m *memConfigRepo) DeactivateAll(_ context.Context, upd repository.DeactivationUpdate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	now := time.Now()
	var affected int64
	for _, cfg := range m.configs {
		deactivate(cfg, upd.Reason, now)
		affected++
	}
	return affected, nil
}

func deactivate(cfg *domain.BargainingConfig, reason string, now time.Time) {
	cfg.IsActive = false
	cfg.MinPrice = 0
	cfg.DeactivationReason = &reason
	cfg.DeactivatedAt = &now
}

func (m *memConfigRepo) get(userID uuid.UUID, productID string) *domain.BargainingConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configs[configKey(userID, productID)]
}

func (m *memConfigRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.configs)
}

type memRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*domain.BargainRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[uuid.UUID]*domain.BargainRequest)}
}

func (m *memRequestRepo) Create(_ context.Context, req *domain.BargainRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	clone := *req
	m.requests[req.ID] = &clone
	return nil
}

func (m *memRequestRepo) ListUnreadByShop(_ context.Context, shopName string) ([]*domain.BargainRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.BargainRequest
	for _, req := range m.requests {
		if req.ShopName == shopName && !req.MarkAsRead {
			clone := *req
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *memRequestRepo) MarkRead(_ context.Context, id uuid.UUID) (*domain.BargainRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, &apierrors.ErrNotFound{Resource: "bargain request", ID: id.String()}
	}
	req.MarkAsRead = true
	clone := *req
	return &clone, nil
}

type memCredRepo struct {
	creds map[uuid.UUID]*domain.ShopifyCredential
}

func newMemCredRepo() *memCredRepo {
	return &memCredRepo{creds: make(map[uuid.UUID]*domain.ShopifyCredential)}
}

func (m *memCredRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.ShopifyCredential, error) {
	cred, ok := m.creds[userID]
	if !ok {
		return nil, &apierrors.ErrNotFound{Resource: "shopify credential", ID: userID.String()}
	}
	return cred, nil
}

func (m *memCredRepo) GetByShopName(_ context.Context, shopName string) (*domain.ShopifyCredential, error) {
	for _, cred := range m.creds {
		if cred.ShopName == shopName {
			return cred, nil
		}
	}
	return nil, &apierrors.ErrNotFound{Resource: "shopify credential", ID: shopName}
}

func (m *memCredRepo) Upsert(_ context.Context, cred *domain.ShopifyCredential) error {
	if cred.ID == uuid.Nil {
		cred.ID = uuid.New()
	}
	m.creds[cred.UserID] = cred
	return nil
}
