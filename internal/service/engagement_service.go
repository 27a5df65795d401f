package service

import (
	"context"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

// CreateEngagementInput is the DTO for creating an engagement.
type CreateEngagementInput struct {
	Name       string `json:"name" binding:"required"`
	ClientName string `json:"client_name" binding:"required"`
	FiscalYear int    `json:"fiscal_year" binding:"required"`
}

// UpdateEngagementInput is the DTO for updating an engagement.
type UpdateEngagementInput struct {
	Name       *string                  `json:"name"`
	ClientName *string                  `json:"client_name"`
	FiscalYear *int                     `json:"fiscal_year"`
	Status     *domain.EngagementStatus `json:"status"`
}

// UpdateTeamInput is the DTO for replacing an engagement's team assignments.
type UpdateTeamInput struct {
	Team            domain.TeamAssignments `json:"team"`
	LeadDeveloperID *uuid.UUID             `json:"lead_developer_id"`
}

// CreateSectionInput is the DTO for adding a section to an engagement.
type CreateSectionInput struct {
	SectionID    string              `json:"section_id" binding:"required"`
	Title        string              `json:"title" binding:"required"`
	SignOffLevel domain.SignOffLevel `json:"sign_off_level"`
	Position     int                 `json:"position"`
}

// EngagementService defines the engagement management contract.
type EngagementService interface {
	Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateEngagementInput) (*domain.Engagement, error)
	GetByID(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.Engagement, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error)
	ListMine(ctx context.Context, tenantID, userID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error)
	Update(ctx context.Context, tenantID, engagementID uuid.UUID, input UpdateEngagementInput) (*domain.Engagement, error)
	UpdateTeam(ctx context.Context, tenantID, engagementID uuid.UUID, input UpdateTeamInput) (*domain.Engagement, error)
	Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error

	CreateSections(ctx context.Context, tenantID, engagementID uuid.UUID, inputs []CreateSectionInput) ([]domain.Section, error)
	ListSections(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.Section, error)
	DeleteSection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) error
}

type engagementService struct {
	engagements port.EngagementRepository
	sections    port.SectionRepository
	users       port.UserRepository
}

// NewEngagementService creates a new EngagementService implementation.
func NewEngagementService(
	engagements port.EngagementRepository,
	sections port.SectionRepository,
	users port.UserRepository,
) EngagementService {
	return &engagementService{
		engagements: engagements,
		sections:    sections,
		users:       users,
	}
}

func (s *engagementService) Create(ctx context.Context, tenantID, createdBy uuid.UUID, input CreateEngagementInput) (*domain.Engagement, error) {
	e := &domain.Engagement{
		TenantID:   tenantID,
		Name:       input.Name,
		ClientName: input.ClientName,
		FiscalYear: input.FiscalYear,
		Status:     domain.EngagementStatusPlanning,
		CreatedBy:  createdBy,
	}
	if err := s.engagements.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *engagementService) GetByID(ctx context.Context, tenantID, engagementID uuid.UUID) (*domain.Engagement, error) {
	return s.engagements.GetByID(ctx, tenantID, engagementID)
}

func (s *engagementService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error) {
	return s.engagements.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *engagementService) ListMine(ctx context.Context, tenantID, userID uuid.UUID, offset, limit int) ([]domain.Engagement, int, error) {
	return s.engagements.ListByMember(ctx, tenantID, userID, offset, limit)
}

func (s *engagementService) Update(ctx context.Context, tenantID, engagementID uuid.UUID, input UpdateEngagementInput) (*domain.Engagement, error) {
	e, err := s.engagements.GetByID(ctx, tenantID, engagementID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		e.Name = *input.Name
	}
	if input.ClientName != nil {
		e.ClientName = *input.ClientName
	}
	if input.FiscalYear != nil {
		e.FiscalYear = *input.FiscalYear
	}
	if input.Status != nil {
		e.Status = *input.Status
	}

	if err := s.engagements.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *engagementService) UpdateTeam(ctx context.Context, tenantID, engagementID uuid.UUID, input UpdateTeamInput) (*domain.Engagement, error) {
	// Every referenced user must exist in the tenant.
	ids := collectTeamIDs(input.Team, input.LeadDeveloperID)
	if len(ids) > 0 {
		users, err := s.users.ListByIDs(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		if len(users) != len(ids) {
			return nil, domain.ErrNotFound
		}
	}

	if err := s.engagements.UpdateTeam(ctx, tenantID, engagementID, input.Team, input.LeadDeveloperID); err != nil {
		return nil, err
	}
	return s.engagements.GetByID(ctx, tenantID, engagementID)
}

func (s *engagementService) Delete(ctx context.Context, tenantID, engagementID uuid.UUID) error {
	return s.engagements.Delete(ctx, tenantID, engagementID)
}

func (s *engagementService) CreateSections(ctx context.Context, tenantID, engagementID uuid.UUID, inputs []CreateSectionInput) ([]domain.Section, error) {
	if _, err := s.engagements.GetByID(ctx, tenantID, engagementID); err != nil {
		return nil, err
	}

	sections := make([]domain.Section, 0, len(inputs))
	for _, in := range inputs {
		level := in.SignOffLevel
		if level == "" {
			level = domain.SignOffLevelInCharge
		}
		sections = append(sections, domain.Section{
			TenantID:     tenantID,
			EngagementID: engagementID,
			SectionID:    in.SectionID,
			Title:        in.Title,
			SignOffLevel: level,
			Position:     in.Position,
		})
	}
	if err := s.sections.BatchCreate(ctx, sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (s *engagementService) ListSections(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.Section, error) {
	return s.sections.ListByEngagement(ctx, tenantID, engagementID)
}

func (s *engagementService) DeleteSection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) error {
	return s.sections.Delete(ctx, tenantID, engagementID, sectionID)
}

// collectTeamIDs deduplicates the full set of user ids referenced by a team
// assignment update.
func collectTeamIDs(team domain.TeamAssignments, lead *uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	add := func(list []uuid.UUID) {
		for _, id := range list {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	add(team.Staff)
	add(team.InCharge)
	add(team.Manager)
	add(team.Partner)
	add(team.LeadPartner)
	if lead != nil {
		add([]uuid.UUID{*lead})
	}
	return ids
}
