package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"auditdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendReviewRequested(ctx context.Context, toEmail, toName, engagementName, sectionID, link string) error {
	subject := fmt.Sprintf("Section %s of %s is ready for your review", sectionID, engagementName)
	htmlBody := buildReviewHTML(toName,
		fmt.Sprintf("Section <strong>%s</strong> of engagement <strong>%s</strong> has been marked ready for review and is waiting on you.", sectionID, engagementName),
		link, "Open section")
	textBody := fmt.Sprintf("Hi %s,\n\nSection %s of engagement %s has been marked ready for review and is waiting on you:\n%s\n\nAuditDesk", toName, sectionID, engagementName, link)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendReviewCompleted(ctx context.Context, toEmail, toName, engagementName, sectionID, link string) error {
	subject := fmt.Sprintf("Section %s of %s is fully reviewed", sectionID, engagementName)
	htmlBody := buildReviewHTML(toName,
		fmt.Sprintf("Section <strong>%s</strong> of engagement <strong>%s</strong> has completed its review chain.", sectionID, engagementName),
		link, "View section")
	textBody := fmt.Sprintf("Hi %s,\n\nSection %s of engagement %s has completed its review chain:\n%s\n\nAuditDesk", toName, sectionID, engagementName, link)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildReviewHTML(name, message, link, cta string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>Hi %s,</p>
  <p>%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">%s</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">AuditDesk - Audit Engagement Platform</p>
</body>
</html>`, name, message, link, cta, link)
}
