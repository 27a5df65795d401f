package noop

import (
	"context"
	"log"

	"auditdesk/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewRequested(_ context.Context, toEmail, toName, engagementName, sectionID, link string) error {
	log.Printf("[NOOP EMAIL] Review requested for %s (%s): section %s of %s: %s",
		toName, toEmail, sectionID, engagementName, link)
	return nil
}

func (s *noopSender) SendReviewCompleted(_ context.Context, toEmail, toName, engagementName, sectionID, link string) error {
	log.Printf("[NOOP EMAIL] Review completed for %s (%s): section %s of %s: %s",
		toName, toEmail, sectionID, engagementName, link)
	return nil
}
