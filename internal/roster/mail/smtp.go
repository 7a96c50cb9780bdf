package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
)

// SMTPConfig holds the delivery settings for the SMTP mailer.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPMailer delivers invitation mail over SMTP, using implicit TLS on port
// 465 and STARTTLS otherwise.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

var invitationTmpl = template.Must(template.New("invitation").Parse(`<html>
<body>
	<p>Hello,</p>
	<p>{{.InviterName}} has invited you to join the roster system as
	<strong>{{.Role}}</strong>{{if .TeamName}} for <strong>{{.TeamName}}</strong>{{end}}.</p>
	<p><a href="{{.RedemptionLink}}">Accept the invitation</a> to choose a
	password and activate your account.</p>
	<p>The link is personal and expires after 48 hours.</p>
</body>
</html>`))

func (m *SMTPMailer) SendInvitation(ctx context.Context, msg InvitationEmail) error {
	var body bytes.Buffer
	if err := invitationTmpl.Execute(&body, msg); err != nil {
		return fmt.Errorf("render invitation mail: %w", err)
	}

	subject := "You have been invited"
	if msg.TeamName != "" {
		subject = fmt.Sprintf("Invitation to %s", msg.TeamName)
	}

	return m.send(msg.RecipientEmail, subject, body.String())
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := []byte("To: " + to + "\r\n" +
		"From: " + m.cfg.From + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		htmlBody + "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}

	var client *smtp.Client
	if m.cfg.Port == 465 {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("smtp tls dial: %w", err)
		}
		client, err = smtp.NewClient(conn, m.cfg.Host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("smtp client: %w", err)
		}
	} else {
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial: %w", err)
		}
		client = c
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	defer client.Quit()

	if m.cfg.User != "" {
		auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return nil
}
