package tenant

import (
	"context"
	"fmt"
	"strings"
)

// Cache is an optional read-through cache for tenant records. Branding and
// settings reads go through it; the auth resolver reads the store directly
// so that suspending a tenant takes effect on the very next request.
type Cache interface {
	GetTenant(ctx context.Context, id string) (*Tenant, bool)
	SetTenant(ctx context.Context, t *Tenant)
	Invalidate(ctx context.Context, id string)
}

// Service wraps the tenant store with validation and cache maintenance.
type Service struct {
	store Store
	cache Cache
}

// NewService constructs a Service. cache may be nil.
func NewService(store Store, cache Cache) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("tenant store is required")
	}
	return &Service{store: store, cache: cache}, nil
}

// Get loads a tenant by id, consulting the cache first.
func (s *Service) Get(ctx context.Context, id string) (*Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if s.cache != nil {
		if t, ok := s.cache.GetTenant(ctx, id); ok {
			return t, nil
		}
	}
	t, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetTenant(ctx, t)
	}
	return t, nil
}

// GetBySlug loads a tenant by its public slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	slug = NormalizeSlug(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	return s.store.FindBySlug(ctx, slug)
}

// UpdateSettings mutates tenant settings and invalidates the cache.
func (s *Service) UpdateSettings(ctx context.Context, id string, upd Update) (*Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		upd.Name = &name
	}
	if upd.Plan != nil {
		plan := strings.ToLower(strings.TrimSpace(*upd.Plan))
		if !ValidPlan(plan) {
			return nil, fmt.Errorf("%w: unsupported plan %s", ErrInvalidInput, plan)
		}
		upd.Plan = &plan
	}
	t, err := s.store.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return t, nil
}

// SetActive activates or deactivates a tenant. A deactivated tenant keeps
// its data but none of its users can authenticate.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if err := s.store.SetActive(ctx, id, active); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

// SoftDelete marks a tenant deleted; rows remain until operator cleanup.
func (s *Service) SoftDelete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if err := s.store.SoftDelete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}
