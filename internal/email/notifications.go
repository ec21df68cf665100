package email

import (
	"log"

	"badtakes/internal/config"
	"badtakes/internal/models"
)

// Notifier sends email notifications for gallery events.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
	}
}

// NotifySubmissionReceived tells the site admin that a new submission is
// waiting in the moderation queue.
func (n *Notifier) NotifySubmissionReceived(sub *models.Submission) {
	if !n.service.IsEnabled() {
		return
	}

	if n.cfg.AdminEmail == "" {
		log.Println("No admin email configured, skipping submission notification")
		return
	}

	subject, htmlBody, textBody := n.templates.SubmissionReceived(sub)
	n.service.SendAsync([]string{n.cfg.AdminEmail}, subject, htmlBody, textBody)
}
