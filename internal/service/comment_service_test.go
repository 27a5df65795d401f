package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auditdesk/internal/domain"
	"auditdesk/internal/service"
	"auditdesk/mocks"
)

type commentFixture struct {
	comments *mocks.MockCommentRepo
	sections *mocks.MockSectionRepo
	users    *mocks.MockUserRepo
	svc      service.CommentService
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		comments: new(mocks.MockCommentRepo),
		sections: new(mocks.MockSectionRepo),
		users:    new(mocks.MockUserRepo),
	}
	f.svc = service.NewCommentService(f.comments, f.sections, f.users)
	return f
}

func TestCommentService_Create(t *testing.T) {
	f := newCommentFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	authorID := uuid.New()
	addressee := uuid.New()

	f.sections.On("Get", mock.Anything, tenantID, engagementID, "B2").
		Return(&domain.Section{SectionID: "B2"}, nil)
	f.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.SectionID == "B2" && c.AuthorID == authorID &&
			c.AddressedTo != nil && *c.AddressedTo == addressee
	})).Return(nil)

	c, err := f.svc.Create(context.Background(), tenantID, engagementID, authorID, service.CreateCommentInput{
		SectionID:   "B2",
		FieldID:     "conclusion",
		AddressedTo: &addressee,
		Content:     "Please recheck the accrual cut-off.",
	})

	require.NoError(t, err)
	assert.Equal(t, engagementID, c.EngagementID)
	f.comments.AssertExpectations(t)
}

func TestCommentService_Create_RejectsReplyToReply(t *testing.T) {
	f := newCommentFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	rootID := uuid.New()
	replyID := uuid.New()

	f.sections.On("Get", mock.Anything, tenantID, engagementID, "B2").
		Return(&domain.Section{SectionID: "B2"}, nil)
	f.comments.On("GetByID", mock.Anything, tenantID, replyID).Return(&domain.Comment{
		ID:              replyID,
		EngagementID:    engagementID,
		SectionID:       "B2",
		ParentCommentID: &rootID,
	}, nil)

	_, err := f.svc.Create(context.Background(), tenantID, engagementID, uuid.New(), service.CreateCommentInput{
		SectionID:       "B2",
		ParentCommentID: &replyID,
		Content:         "nested",
	})

	assert.ErrorIs(t, err, domain.ErrNestedReply)
	f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_Create_RejectsParentFromOtherSection(t *testing.T) {
	f := newCommentFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	parentID := uuid.New()

	f.sections.On("Get", mock.Anything, tenantID, engagementID, "B2").
		Return(&domain.Section{SectionID: "B2"}, nil)
	f.comments.On("GetByID", mock.Anything, tenantID, parentID).Return(&domain.Comment{
		ID:           parentID,
		EngagementID: engagementID,
		SectionID:    "C1",
	}, nil)

	_, err := f.svc.Create(context.Background(), tenantID, engagementID, uuid.New(), service.CreateCommentInput{
		SectionID:       "B2",
		ParentCommentID: &parentID,
		Content:         "reply",
	})

	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	f.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_Resolve_ByAddressee(t *testing.T) {
	f := newCommentFixture()
	tenantID := uuid.New()
	commentID := uuid.New()
	addressee := uuid.New()

	f.comments.On("GetByID", mock.Anything, tenantID, commentID).Return(&domain.Comment{
		ID:          commentID,
		AuthorID:    uuid.New(),
		AddressedTo: &addressee,
	}, nil)
	f.comments.On("SetResolved", mock.Anything, tenantID, commentID, true).Return(nil)

	err := f.svc.Resolve(context.Background(), tenantID, commentID, addressee)

	assert.NoError(t, err)
	f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	f.comments.AssertExpectations(t)
}

func TestCommentService_Resolve_ThirdPartyMemberDenied(t *testing.T) {
	f := newCommentFixture()
	tenantID := uuid.New()
	commentID := uuid.New()
	outsider := uuid.New()

	f.comments.On("GetByID", mock.Anything, tenantID, commentID).Return(&domain.Comment{
		ID:       commentID,
		AuthorID: uuid.New(),
	}, nil)
	f.users.On("GetByID", mock.Anything, tenantID, outsider).Return(&domain.User{
		ID:   outsider,
		Role: domain.RoleMember,
	}, nil)

	err := f.svc.Resolve(context.Background(), tenantID, commentID, outsider)

	assert.ErrorIs(t, err, domain.ErrNotCommentParty)
	f.comments.AssertNotCalled(t, "SetResolved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommentService_Resolve_AdminOverride(t *testing.T) {
	f := newCommentFixture()
	tenantID := uuid.New()
	commentID := uuid.New()
	adminID := uuid.New()

	f.comments.On("GetByID", mock.Anything, tenantID, commentID).Return(&domain.Comment{
		ID:       commentID,
		AuthorID: uuid.New(),
	}, nil)
	f.users.On("GetByID", mock.Anything, tenantID, adminID).Return(&domain.User{
		ID:   adminID,
		Role: domain.RoleAdmin,
	}, nil)
	f.comments.On("SetResolved", mock.Anything, tenantID, commentID, true).Return(nil)

	err := f.svc.Resolve(context.Background(), tenantID, commentID, adminID)

	assert.NoError(t, err)
	f.comments.AssertExpectations(t)
}

func TestCommentService_ListBySection_GroupsThreads(t *testing.T) {
	f := newCommentFixture()
	tenantID := uuid.New()
	engagementID := uuid.New()
	rootID := uuid.New()

	f.comments.On("ListBySection", mock.Anything, tenantID, engagementID, "B2").Return([]domain.Comment{
		{ID: rootID, SectionID: "B2"},
		{ID: uuid.New(), SectionID: "B2", ParentCommentID: &rootID},
		{ID: uuid.New(), SectionID: "B2", ParentCommentID: &rootID},
	}, nil)

	threads, err := f.svc.ListBySection(context.Background(), tenantID, engagementID, "B2")

	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, rootID, threads[0].Comment.ID)
	assert.Len(t, threads[0].Replies, 2)
}
