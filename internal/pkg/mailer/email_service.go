package mailer

import (
	"fmt"

	"ai-workspace-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWorkspaceInvite(toEmail, inviterName, workspaceName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	baseURL     string
	logger      logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName, baseURL string, log logger.ILogger) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		baseURL:     baseURL,
		logger:      log,
	}
}

func (s *emailService) SendWorkspaceInvite(toEmail, inviterName, workspaceName string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("You were added to %s", workspaceName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to %s</h2>
			<p>%s added you to the workspace <strong>%s</strong>.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open workspace</a>
		</div>
	`, workspaceName, inviterName, workspaceName, s.baseURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send invite", map[string]interface{}{
			"to":    toEmail,
			"error": err,
		})
		return err
	}

	s.logger.Info("MAILER", "Invite sent", map[string]interface{}{"to": toEmail})
	return nil
}

type noopEmailService struct {
	logger logger.ILogger
}

// NewNoopEmailService is used when SMTP is not configured.
func NewNoopEmailService(log logger.ILogger) IEmailService {
	return &noopEmailService{logger: log}
}

func (s *noopEmailService) SendWorkspaceInvite(toEmail, _, workspaceName string) error {
	s.logger.Debug("MAILER", "SMTP disabled, invite not sent", map[string]interface{}{
		"to":        toEmail,
		"workspace": workspaceName,
	})
	return nil
}
