package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

//go:embed templates/*.html
var templatesFS embed.FS

var leadWonTmpl = template.Must(template.ParseFS(templatesFS, "templates/lead_won.html"))

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
		Dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// SendLeadWon avisa a equipe comercial que um lead chegou em Ganho.
func (s *EmailSender) SendLeadWon(evt entity.StageChanged) error {
	m, err := s.leadWonMessage(evt)
	if err != nil {
		return err
	}
	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) leadWonMessage(evt entity.StageChanged) (*gomail.Message, error) {
	body, err := renderLeadWon(evt)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("Negócio ganho: %s 🚀", evt.LeadName))
	m.SetBody("text/html", body)
	return m, nil
}

func renderLeadWon(evt entity.StageChanged) (string, error) {
	data := LeadWonEmailData{
		LeadID:    evt.LeadID,
		LeadName:  evt.LeadName,
		FromTitle: entity.PipelineStages.Title(evt.From),
		ToTitle:   entity.PipelineStages.Title(evt.To),
		ChangedAt: evt.ChangedAt.Format("02/01/2006 15:04"),
	}

	var body bytes.Buffer
	if err := leadWonTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}
