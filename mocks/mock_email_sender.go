package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReviewRequested(ctx context.Context, toEmail, toName, engagementName, sectionID, link string) error {
	args := m.Called(ctx, toEmail, toName, engagementName, sectionID, link)
	return args.Error(0)
}

func (m *MockEmailSender) SendReviewCompleted(ctx context.Context, toEmail, toName, engagementName, sectionID, link string) error {
	args := m.Called(ctx, toEmail, toName, engagementName, sectionID, link)
	return args.Error(0)
}
