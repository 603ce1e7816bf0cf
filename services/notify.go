package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const resendEndpoint = "https://api.resend.com/emails"

// ContactNotifier tells the portfolio owner about a new contact message
type ContactNotifier interface {
	NotifyContact(ctx context.Context, message *models.Message) error
}

// MultiNotifier fans a message out to every configured notifier and joins their errors
type MultiNotifier []ContactNotifier

func (m MultiNotifier) NotifyContact(ctx context.Context, message *models.Message) error {
	var errList []error
	for _, n := range m {
		if err := n.NotifyContact(ctx, message); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

type ResendNotifier struct {
	APIKey     string
	From       string
	Recipients []string
	Endpoint   string
	Client     *http.Client
}

func NewResendNotifier(apiKey, from string, recipients []string) *ResendNotifier {
	return &ResendNotifier{
		APIKey:     apiKey,
		From:       from,
		Recipients: recipients,
		Endpoint:   resendEndpoint,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *ResendNotifier) NotifyContact(ctx context.Context, message *models.Message) error {
	subject := fmt.Sprintf("New portfolio message from %s", message.Name)
	body := fmt.Sprintf("<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>",
		html.EscapeString(message.Name), html.EscapeString(message.Email), html.EscapeString(message.Message))
	return n.SendEmail(ctx, subject, body, message.Email)
}

// SendEmail posts one HTML email to the configured recipients
func (n *ResendNotifier) SendEmail(ctx context.Context, subject, body, replyTo string) error {
	if len(n.Recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    n.From,
		To:      n.Recipients,
		Subject: subject,
		Html:    body,
		ReplyTo: replyTo,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}

// MessageCreator is the part of the Twilio REST client used for SMS
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioNotifier struct {
	api  MessageCreator
	from string
	to   string
}

func NewTwilioNotifier(accountSID, authToken, from, to string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{api: client.Api, from: from, to: to}
}

func NewTwilioNotifierWithAPI(api MessageCreator, from, to string) *TwilioNotifier {
	return &TwilioNotifier{api: api, from: from, to: to}
}

func (n *TwilioNotifier) NotifyContact(_ context.Context, message *models.Message) error {
	body := fmt.Sprintf("Portfolio message from %s (%s): %s", message.Name, message.Email, truncate(message.Message, 300))

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	if resp != nil && resp.Sid != nil {
		log.Info().Str("sid", *resp.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
