package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects how the worker renders the body; Data feeds the template.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "profile_updated"
	Data     map[string]any `json:"data,omitempty"`
}

const (
	TemplateWelcome        = "welcome"
	TemplateProfileUpdated = "profile_updated"
)
