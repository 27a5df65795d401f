package service

import (
	"context"

	"github.com/google/uuid"

	"auditdesk/internal/domain"
	"auditdesk/internal/port"
)

// CreateCommentInput is the DTO for posting a comment or reply.
type CreateCommentInput struct {
	SectionID       string     `json:"section_id" binding:"required"`
	FieldID         string     `json:"field_id"`
	ParentCommentID *uuid.UUID `json:"parent_comment_id"`
	AddressedTo     *uuid.UUID `json:"addressed_to"`
	Content         string     `json:"content" binding:"required"`
}

// CommentThread is a root comment with its replies.
type CommentThread struct {
	Comment domain.Comment   `json:"comment"`
	Replies []domain.Comment `json:"replies"`
}

// CommentService defines the section-comment contract. Threads are one level
// deep: replies to replies are rejected.
type CommentService interface {
	Create(ctx context.Context, tenantID, engagementID uuid.UUID, authorID uuid.UUID, input CreateCommentInput) (*domain.Comment, error)
	ListBySection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) ([]CommentThread, error)
	ListUnresolved(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.Comment, error)
	Resolve(ctx context.Context, tenantID, commentID, userID uuid.UUID) error
	Reopen(ctx context.Context, tenantID, commentID, userID uuid.UUID) error
	Delete(ctx context.Context, tenantID, commentID, userID uuid.UUID) error
}

type commentService struct {
	comments port.CommentRepository
	sections port.SectionRepository
	users    port.UserRepository
}

// NewCommentService creates a new CommentService implementation.
func NewCommentService(
	comments port.CommentRepository,
	sections port.SectionRepository,
	users port.UserRepository,
) CommentService {
	return &commentService{
		comments: comments,
		sections: sections,
		users:    users,
	}
}

func (s *commentService) Create(ctx context.Context, tenantID, engagementID uuid.UUID, authorID uuid.UUID, input CreateCommentInput) (*domain.Comment, error) {
	if _, err := s.sections.Get(ctx, tenantID, engagementID, input.SectionID); err != nil {
		return nil, err
	}

	if input.ParentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, tenantID, *input.ParentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.ParentCommentID != nil {
			return nil, domain.ErrNestedReply
		}
		if parent.EngagementID != engagementID || parent.SectionID != input.SectionID {
			return nil, domain.ErrCommentNotFound
		}
	}

	c := &domain.Comment{
		TenantID:        tenantID,
		EngagementID:    engagementID,
		SectionID:       input.SectionID,
		FieldID:         input.FieldID,
		ParentCommentID: input.ParentCommentID,
		AuthorID:        authorID,
		AddressedTo:     input.AddressedTo,
		Content:         input.Content,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) ListBySection(ctx context.Context, tenantID, engagementID uuid.UUID, sectionID string) ([]CommentThread, error) {
	comments, err := s.comments.ListBySection(ctx, tenantID, engagementID, sectionID)
	if err != nil {
		return nil, err
	}

	threads := make([]CommentThread, 0)
	index := make(map[uuid.UUID]int)
	for _, c := range comments {
		if c.ParentCommentID == nil {
			index[c.ID] = len(threads)
			threads = append(threads, CommentThread{Comment: c})
		}
	}
	for _, c := range comments {
		if c.ParentCommentID == nil {
			continue
		}
		if i, ok := index[*c.ParentCommentID]; ok {
			threads[i].Replies = append(threads[i].Replies, c)
		}
	}
	return threads, nil
}

func (s *commentService) ListUnresolved(ctx context.Context, tenantID, engagementID uuid.UUID) ([]domain.Comment, error) {
	return s.comments.ListByEngagement(ctx, tenantID, engagementID, true)
}

func (s *commentService) Resolve(ctx context.Context, tenantID, commentID, userID uuid.UUID) error {
	return s.setResolved(ctx, tenantID, commentID, userID, true)
}

func (s *commentService) Reopen(ctx context.Context, tenantID, commentID, userID uuid.UUID) error {
	return s.setResolved(ctx, tenantID, commentID, userID, false)
}

// setResolved lets the author, the addressee, or a privileged user toggle
// resolution on a thread root.
func (s *commentService) setResolved(ctx context.Context, tenantID, commentID, userID uuid.UUID, resolved bool) error {
	c, err := s.comments.GetByID(ctx, tenantID, commentID)
	if err != nil {
		return err
	}
	if err := s.requireParty(ctx, tenantID, c, userID); err != nil {
		return err
	}
	return s.comments.SetResolved(ctx, tenantID, commentID, resolved)
}

func (s *commentService) Delete(ctx context.Context, tenantID, commentID, userID uuid.UUID) error {
	c, err := s.comments.GetByID(ctx, tenantID, commentID)
	if err != nil {
		return err
	}
	if err := s.requireParty(ctx, tenantID, c, userID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, tenantID, commentID)
}

func (s *commentService) requireParty(ctx context.Context, tenantID uuid.UUID, c *domain.Comment, userID uuid.UUID) error {
	if c.AuthorID == userID {
		return nil
	}
	if c.AddressedTo != nil && *c.AddressedTo == userID {
		return nil
	}
	u, err := s.users.GetByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if u.IsPrivileged() {
		return nil
	}
	return domain.ErrNotCommentParty
}
