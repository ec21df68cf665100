package email

import (
	"strings"
	"testing"

	"badtakes/internal/config"
)

func TestNewService(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		wantEnabled bool
	}{
		{
			name: "enabled when SMTP configured",
			cfg: &config.Config{
				SMTPHost: "smtp.example.com",
				SMTPPort: 587,
				SMTPFrom: "noreply@example.com",
			},
			wantEnabled: true,
		},
		{
			name: "disabled when SMTPHost is empty",
			cfg: &config.Config{
				SMTPPort: 587,
				SMTPFrom: "noreply@example.com",
			},
			wantEnabled: false,
		},
		{
			name: "disabled when SMTPFrom is empty",
			cfg: &config.Config{
				SMTPHost: "smtp.example.com",
				SMTPPort: 587,
			},
			wantEnabled: false,
		},
		{
			name:        "disabled with empty config",
			cfg:         &config.Config{},
			wantEnabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.cfg)
			if svc.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", svc.IsEnabled(), tt.wantEnabled)
			}
		})
	}
}

func TestService_SendEmail_Disabled(t *testing.T) {
	svc := NewService(&config.Config{})

	if err := svc.SendEmail([]string{"test@example.com"}, "Test", "<p>HTML</p>", "Text"); err != nil {
		t.Errorf("SendEmail() with disabled service should return nil, got %v", err)
	}
}

func TestService_SendEmail_NoRecipients(t *testing.T) {
	cfg := &config.Config{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		SMTPFrom: "noreply@example.com",
	}
	svc := NewService(cfg)

	if err := svc.SendEmail(nil, "Test", "<p>HTML</p>", "Text"); err != nil {
		t.Errorf("SendEmail() with no recipients should return nil, got %v", err)
	}
}

func TestService_SendAsync_Disabled(t *testing.T) {
	svc := NewService(&config.Config{})

	// Should be a no-op, not a panic.
	svc.SendAsync([]string{"test@example.com"}, "Test", "<p>HTML</p>", "Text")
}

func TestBuildMessage(t *testing.T) {
	cfg := &config.Config{
		SMTPFrom:     "noreply@example.com",
		SMTPFromName: "Bad Bitcoin Takes",
	}

	msg := buildMessage(cfg, []string{"admin@example.com"}, "Test Subject", "<p>HTML</p>", "Plain text")

	checks := []string{
		"From: Bad Bitcoin Takes <noreply@example.com>\r\n",
		"To: admin@example.com\r\n",
		"Subject: Test Subject\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/alternative",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"<p>HTML</p>",
		"Plain text",
	}
	for _, check := range checks {
		if !strings.Contains(msg, check) {
			t.Errorf("message missing %q\nmessage:\n%s", check, msg)
		}
	}
}

func TestBuildMessage_FromWithoutDisplayName(t *testing.T) {
	cfg := &config.Config{SMTPFrom: "noreply@example.com"}

	msg := buildMessage(cfg, []string{"admin@example.com"}, "Subject", "", "text only")

	if !strings.Contains(msg, "From: noreply@example.com\r\n") {
		t.Errorf("bare from header missing:\n%s", msg)
	}
	if strings.Contains(msg, "text/html") {
		t.Error("message should not contain an HTML part")
	}
}
