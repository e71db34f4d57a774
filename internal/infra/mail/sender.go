package mail

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var followUpTemplate = template.Must(template.ParseFS(templatesFS, "templates/follow_up.html"))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendFollowUp(to, name, company string, step int, tone string) error {
	if to == "" {
		return fmt.Errorf("destinatário vazio")
	}

	body, err := RenderFollowUp(NewFollowUpData(name, company, step, tone))
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", FollowUpSubject(company, step))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}

func NewFollowUpData(name, company string, step int, tone string) FollowUpEmailData {
	firstName, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	if firstName == "" {
		firstName = "there"
	}
	companyOrYours := strings.TrimSpace(company)
	if companyOrYours == "" {
		companyOrYours = "yours"
	}
	return FollowUpEmailData{
		FirstName:      firstName,
		CompanyOrYours: companyOrYours,
		Step:           step,
		Tone:           tone,
	}
}

func RenderFollowUp(data FollowUpEmailData) (string, error) {
	var body bytes.Buffer
	if err := followUpTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

// FollowUpSubject keeps the thread together after the first touch.
func FollowUpSubject(company string, step int) string {
	subject := "Quick question"
	if company = strings.TrimSpace(company); company != "" {
		subject = "Quick question for " + company
	}
	if step > 1 {
		return "Re: " + subject
	}
	return subject
}
