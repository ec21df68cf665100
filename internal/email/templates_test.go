package email

import (
	"strings"
	"testing"
	"time"

	"badtakes/internal/config"
	"badtakes/internal/models"
)

func TestNewTemplates(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "Bad Bitcoin Takes",
		BaseURL:   "https://takes.example.com",
	}

	tmpl := NewTemplates(cfg)
	if tmpl == nil {
		t.Fatal("NewTemplates returned nil")
	}
	if tmpl.cfg != cfg {
		t.Error("Templates config not set correctly")
	}
}

func TestTemplates_BaseHTML(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "Bad Bitcoin Takes",
		BaseURL:   "https://takes.example.com",
	}
	tmpl := NewTemplates(cfg)

	html := tmpl.baseHTML("Test Title", "<p>Test content</p>")

	checks := []string{
		"<!DOCTYPE html>",
		"<title>Test Title</title>",
		"Bad Bitcoin Takes",
		"https://takes.example.com",
		"<p>Test content</p>",
	}

	for _, check := range checks {
		if !strings.Contains(html, check) {
			t.Errorf("baseHTML missing %q", check)
		}
	}
}

func TestTemplates_BaseHTML_EscapesHTML(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "<script>alert('xss')</script>",
		BaseURL:   "https://takes.example.com",
	}
	tmpl := NewTemplates(cfg)

	html := tmpl.baseHTML("Test", "Content")

	if strings.Contains(html, "<script>") {
		t.Error("baseHTML should escape HTML in site title")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("baseHTML should contain escaped script tag")
	}
}

func TestTemplates_SubmissionReceived(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "Bad Bitcoin Takes",
		BaseURL:   "https://takes.example.com",
	}
	tmpl := NewTemplates(cfg)

	desc := "Bitcoin declared dead again"
	sub := &models.Submission{
		ImageURL:    "https://cdn.example.com/submissions/123-abc.png",
		Platform:    models.PlatformTwitter,
		Topic:       models.TopicObituary,
		Language:    models.LanguageEnglish,
		SourceDate:  time.Date(2021, 5, 19, 0, 0, 0, 0, time.UTC),
		Description: &desc,
	}

	subject, htmlBody, textBody := tmpl.SubmissionReceived(sub)

	if !strings.Contains(subject, "Bad Bitcoin Takes") {
		t.Errorf("Subject should contain site title, got: %s", subject)
	}
	if !strings.Contains(subject, "pending review") {
		t.Errorf("Subject should mention review, got: %s", subject)
	}

	htmlChecks := []string{
		"twitter",
		"obituary",
		"2021-05-19",
		"Bitcoin declared dead again",
		"https://cdn.example.com/submissions/123-abc.png",
		"/admin",
	}
	for _, check := range htmlChecks {
		if !strings.Contains(htmlBody, check) {
			t.Errorf("HTML body missing %q", check)
		}
	}

	textChecks := []string{
		"twitter",
		"obituary",
		"2021-05-19",
		"Bitcoin declared dead again",
	}
	for _, check := range textChecks {
		if !strings.Contains(textBody, check) {
			t.Errorf("Text body missing %q", check)
		}
	}
}

func TestTemplates_SubmissionReceived_NoDescription(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "Bad Bitcoin Takes",
		BaseURL:   "https://takes.example.com",
	}
	tmpl := NewTemplates(cfg)

	sub := &models.Submission{
		ImageURL:   "https://cdn.example.com/submissions/123-abc.png",
		Platform:   models.PlatformReddit,
		Topic:      models.TopicBubble,
		Language:   models.LanguageGerman,
		SourceDate: time.Date(2018, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	_, htmlBody, _ := tmpl.SubmissionReceived(sub)

	if !strings.Contains(htmlBody, "reddit") {
		t.Error("HTML body should contain platform")
	}
}

func TestTemplates_SubmissionReceived_EscapesHTML(t *testing.T) {
	cfg := &config.Config{
		SiteTitle: "Bad Bitcoin Takes",
		BaseURL:   "https://takes.example.com",
	}
	tmpl := NewTemplates(cfg)

	desc := "<img src=x onerror=alert('xss')>"
	sub := &models.Submission{
		ImageURL:    "https://cdn.example.com/submissions/123-abc.png",
		Platform:    models.PlatformTwitter,
		Topic:       models.TopicScam,
		Language:    models.LanguageEnglish,
		SourceDate:  time.Now(),
		Description: &desc,
	}

	_, htmlBody, _ := tmpl.SubmissionReceived(sub)

	if strings.Contains(htmlBody, "<img src=x") {
		t.Error("HTML body should escape img tags in description")
	}
}
