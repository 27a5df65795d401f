package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

// CreateTenantInput is the DTO for onboarding an audit firm. Slug is optional;
// when absent it is derived from the firm name.
type CreateTenantInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

// UpdateTenantInput is the DTO for updating a tenant.
type UpdateTenantInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	IsActive *bool   `json:"is_active"`
}

// TenantService defines the tenant management contract.
type TenantService interface {
	Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantService struct {
	repo port.TenantRepository
}

// NewTenantService creates a new TenantService implementation.
func NewTenantService(repo port.TenantRepository) TenantService {
	return &tenantService{repo: repo}
}

// slugify lowercases the input and collapses every run of characters outside
// [a-z0-9] into a single hyphen. The slug is the tenant's login namespace, so
// it must be stable and URL-safe.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (s *tenantService) Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error) {
	source := input.Slug
	if source == "" {
		source = input.Name
	}
	slug := slugify(source)
	if slug == "" {
		return nil, domain.ErrInvalidSlug
	}

	tenant := &domain.Tenant{
		Name:     input.Name,
		Slug:     slug,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *tenantService) List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.Slug != nil {
		slug := slugify(*input.Slug)
		if slug == "" {
			return nil, domain.ErrInvalidSlug
		}
		tenant.Slug = slug
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
