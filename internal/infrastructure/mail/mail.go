package mail

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"

	"github.com/archoffice/bff-admin/config"
	"github.com/archoffice/bff-admin/internal/dto"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

func CreateDialer(config *config.Config) *gomail.Dialer {
	return gomail.NewDialer(config.SMTPConfig.Host, config.SMTPConfig.Port, config.SMTPConfig.Sender, config.SMTPConfig.Password)
}

// Mailer delivers send-email events straight over SMTP. It is used when no
// email worker consumes the queue.
type Mailer struct {
	sender      Sender
	from        string
	frontendURL string
	logger      zerolog.Logger
}

func CreateMailer(sender Sender, from, frontendURL string, logger zerolog.Logger) *Mailer {
	return &Mailer{sender: sender, from: from, frontendURL: frontendURL, logger: logger}
}

func (m *Mailer) Send(ctx context.Context, event dto.SendEmailEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", event.To...)
	message.SetHeader("Subject", event.TemplateName)
	message.SetHeader("X-Template-Name", event.TemplateName)
	message.SetBody("text/html", m.render(event))

	if err := m.sender.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info().Str("component", "Mailer").Str("template", event.TemplateName).Int("recipients", len(event.To)).Msg("email sent")

	return nil
}

func (m *Mailer) render(event dto.SendEmailEvent) string {
	var b strings.Builder

	if hash, ok := event.Attributes["hash"]; ok {
		link := m.frontendURL + "?hash=" + url.QueryEscape(hash)
		fmt.Fprintf(&b, `<p>Você foi convidado para acessar a plataforma.</p><p><a href="%s">Aceitar convite</a></p>`, html.EscapeString(link))
	}

	keys := make([]string, 0, len(event.Attributes))
	for k := range event.Attributes {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "<p>%s: %s</p>", html.EscapeString(k), html.EscapeString(event.Attributes[k]))
	}

	return b.String()
}
