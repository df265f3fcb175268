package dto

// SendEmailEvent is the payload consumed by the email worker.
type SendEmailEvent struct {
	TemplateName string            `json:"templateName"`
	To           []string          `json:"to"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}
