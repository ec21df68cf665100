package email

import (
	"fmt"
	"html"

	"badtakes/internal/config"
	"badtakes/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #f7931a; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #f7931a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .success { color: #059669; }
        .error { color: #dc2626; }
        img.take { max-width: 100%%; border-radius: 6px; border: 1px solid #e5e7eb; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// SubmissionReceived generates the moderator email for a new submission.
func (t *Templates) SubmissionReceived(sub *models.Submission) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] New submission pending review", t.cfg.SiteTitle)

	description := ""
	if sub.Description != nil {
		description = *sub.Description
	}

	content := fmt.Sprintf(`
        <p>A new take has been submitted and is waiting for review.</p>

        <div class="info-box">
            <p><span class="label">Platform:</span> %s</p>
            <p><span class="label">Topic:</span> %s</p>
            <p><span class="label">Language:</span> %s</p>
            <p><span class="label">Source date:</span> %s</p>
            <p><span class="label">Description:</span> %s</p>
            <p><img class="take" src="%s" alt="submitted screenshot"></p>
        </div>

        <p style="text-align: center;">
            <a href="%s/admin" class="button">Review in Dashboard</a>
        </p>
    `,
		html.EscapeString(string(sub.Platform)),
		html.EscapeString(string(sub.Topic)),
		html.EscapeString(string(sub.Language)),
		sub.SourceDate.Format("2006-01-02"),
		html.EscapeString(description),
		html.EscapeString(sub.ImageURL),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`New submission pending review

Platform: %s
Topic: %s
Language: %s
Source date: %s
Description: %s
Image: %s

Review at: %s/admin

--
%s
%s`,
		sub.Platform,
		sub.Topic,
		sub.Language,
		sub.SourceDate.Format("2006-01-02"),
		description,
		sub.ImageURL,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}
