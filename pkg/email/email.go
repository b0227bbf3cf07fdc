package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"fleetops-backend/internal/config"
)

// EmailService sends operational notifications over SMTP. It satisfies the
// services.Notifier interface.
type EmailService struct {
	smtpHost      string
	smtpPort      string
	smtpUsername  string
	smtpPassword  string
	fromEmail     string
	fromName      string
	managersEmail string
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{
		smtpHost:      cfg.Host,
		smtpPort:      cfg.Port,
		smtpUsername:  cfg.Username,
		smtpPassword:  cfg.Password,
		fromEmail:     cfg.FromEmail,
		fromName:      cfg.FromName,
		managersEmail: cfg.ManagersEmail,
	}
}

// VehicleStatusChanged notifies the managers mailbox that a vehicle's
// operational status moved, and why.
func (s *EmailService) VehicleStatusChanged(organisationID, vehicleLabel, status, reason string) error {
	if s.managersEmail == "" {
		return fmt.Errorf("no managers email configured")
	}

	subject := fmt.Sprintf("Vehicle %s is now %s", vehicleLabel, status)
	body := fmt.Sprintf(
		"<html><body><h2>Vehicle status change</h2>"+
			"<p><strong>Vehicle:</strong> %s</p>"+
			"<p><strong>New status:</strong> %s</p>"+
			"<p><strong>Reason:</strong> %s</p>"+
			"</body></html>",
		vehicleLabel, status, reason,
	)

	message := s.buildEmailMessage(s.managersEmail, subject, body)
	if err := s.sendEmail(s.managersEmail, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) buildEmailMessage(to, subject, htmlBody string) []byte {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)

	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + htmlBody

	return []byte(message)
}

func (s *EmailService) sendEmail(to string, message []byte) error {
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.smtpHost,
	}

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)

	// Port 587 uses STARTTLS
	conn, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	if err = conn.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if err = conn.Auth(auth); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = conn.Mail(s.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return conn.Quit()
}
