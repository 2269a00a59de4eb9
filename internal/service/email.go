package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendRequestCreated(ctx context.Context, to, requesterName, itemTitle string) error {
	body := fmt.Sprintf("Hello,\n\n%s would like to rent your %s. Open the app to accept or deny the request.\n\nThe Lendly Team", requesterName, itemTitle)
	return s.send(to, fmt.Sprintf("New rental request for %s", itemTitle), body)
}

func (s *emailService) SendRequestAccepted(ctx context.Context, to, itemTitle, deposit string) error {
	body := fmt.Sprintf("Hello,\n\nYour request to rent %s was accepted. The deposit is %s. Arrange the handoff with the owner and scan the QR code at pickup.\n\nThe Lendly Team", itemTitle, deposit)
	return s.send(to, fmt.Sprintf("Request accepted: %s", itemTitle), body)
}

func (s *emailService) SendRequestDenied(ctx context.Context, to, itemTitle string) error {
	body := fmt.Sprintf("Hello,\n\nYour request to rent %s was denied by the owner.\n\nThe Lendly Team", itemTitle)
	return s.send(to, fmt.Sprintf("Request denied: %s", itemTitle), body)
}

func (s *emailService) SendHandoffConfirmed(ctx context.Context, to, itemTitle string) error {
	body := fmt.Sprintf("Hello,\n\nThe handoff of %s was confirmed. The rental is now active.\n\nThe Lendly Team", itemTitle)
	return s.send(to, fmt.Sprintf("Handoff confirmed: %s", itemTitle), body)
}

func (s *emailService) SendReturnConfirmed(ctx context.Context, to, itemTitle string) error {
	body := fmt.Sprintf("Hello,\n\nThe return of %s was confirmed by the owner. The rental is closed.\n\nThe Lendly Team", itemTitle)
	return s.send(to, fmt.Sprintf("Return confirmed: %s", itemTitle), body)
}

func (s *emailService) SendRentalOverdue(ctx context.Context, to, itemTitle, dueDate string) error {
	body := fmt.Sprintf("Hello,\n\nThe rental of %s was due back on %s. Please arrange the return with the owner.\n\nThe Lendly Team", itemTitle, dueDate)
	return s.send(to, fmt.Sprintf("Rental overdue: %s", itemTitle), body)
}
