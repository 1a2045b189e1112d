package services

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailSender dispatches a single email. Satisfied by the SES client; tests
// substitute a fake.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// FeedbackService formats user feedback into a notification email and sends
// it to a fixed recipient.
type FeedbackService struct {
	sender EmailSender
	from   string
	to     string
}

func NewFeedbackService(sender EmailSender, from, to string) *FeedbackService {
	return &FeedbackService{sender: sender, from: from, to: to}
}

// NewSESSender builds the production SES client.
func NewSESSender(ctx context.Context, region string) (EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

// Send dispatches exactly one email with the feedback type and body embedded
// verbatim.
func (s *FeedbackService) Send(ctx context.Context, feedbackType, feedback string) error {
	body := fmt.Sprintf(`
                <h2>New Feedback Received</h2>
                <p><strong>Type:</strong> %s</p>
                <p><strong>Feedback:</strong></p>
                <p style="white-space: pre-wrap;">%s</p>
                <hr>
                <p style="color: #666; font-size: 12px;">Sent from Tracklet Feedback Form</p>`,
		html.EscapeString(feedbackType), html.EscapeString(feedback))

	input := &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{s.to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("New Feedback: " + feedbackType),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(body),
				},
			},
		},
	}

	if _, err := s.sender.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send feedback email: %w", err)
	}
	return nil
}
