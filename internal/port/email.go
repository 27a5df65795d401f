package port

import "context"

// EmailSender defines the contract for sending notification emails.
type EmailSender interface {
	// SendReviewRequested tells the next reviewer a section is waiting on them.
	SendReviewRequested(ctx context.Context, toEmail, toName, engagementName, sectionID, link string) error
	// SendReviewCompleted tells the engagement team a section is fully reviewed.
	SendReviewCompleted(ctx context.Context, toEmail, toName, engagementName, sectionID, link string) error
}
