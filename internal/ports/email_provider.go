package ports

import "context"

// EmailParams represents a plain text or HTML message to one or more recipients
type EmailParams struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// EmailProvider defines the contract for email sending
type EmailProvider interface {
	SendEmail(ctx context.Context, params EmailParams) error
}
