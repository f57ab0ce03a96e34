package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TeamInviteEmailData holds data for the team invite email.
type TeamInviteEmailData struct {
	Email      string
	LeaderName string
	TeamName   string
	EventTitle string
}

// ApplicationReceiptEmailData holds data for the council application receipt email.
type ApplicationReceiptEmailData struct {
	Email       string
	Name        string
	CouncilName string
	Position    string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTeamInvite(ctx context.Context, data *TeamInviteEmailData) error
	SendApplicationReceipt(ctx context.Context, data *ApplicationReceiptEmailData) error
}
