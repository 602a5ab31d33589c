package compose

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/creativestories/backend/internal/common/constants"
	"github.com/creativestories/backend/internal/story/domain"
)

// Email is a rendered newsletter: one subject and one HTML body shared by
// every recipient of a dispatch.
type Email struct {
	Subject string
	HTML    string
}

type emailData struct {
	Title          string
	Author         string
	Date           string
	Excerpt        string
	StoryURL       string
	UnsubscribeURL string
}

var newsletterTemplate = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; }
    .header { background-color: #6b46c1; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; }
    .story-title { color: #6b46c1; font-size: 24px; margin-bottom: 10px; }
    .story-meta { color: #666; font-size: 14px; margin-bottom: 20px; }
    .story-content { margin-bottom: 20px; }
    .cta-button { display: inline-block; background-color: #6b46c1; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Creative Stories Blog</h1>
    <p>Story of the Week</p>
  </div>
  <div class="content">
    <div class="story-title">{{.Title}}</div>
    <div class="story-meta">By {{.Author}} &bull; {{.Date}}</div>

    <div class="story-content">{{.Excerpt}}</div>

    <a href="{{.StoryURL}}" class="cta-button">Read Full Story</a>

    <div class="footer">
      <p>You're receiving this email because you subscribed to our newsletter.</p>
      <p>To unsubscribe, <a href="{{.UnsubscribeURL}}">click here</a>.</p>
    </div>
  </div>
</body>
</html>
`))

// Composer renders newsletters. It is pure: no I/O, same input always
// yields the same output.
type Composer struct {
	siteURL string
}

func NewComposer(siteURL string) *Composer {
	return &Composer{siteURL: strings.TrimRight(siteURL, "/")}
}

func (c *Composer) Compose(story domain.Story) (Email, error) {
	subject := "Story of the Week: " + story.Title

	data := emailData{
		Title:          story.Title,
		Author:         story.Author,
		Date:           story.CreatedAt.Format("January 2, 2006"),
		Excerpt:        Excerpt(story.Content, constants.NewsletterExcerptLength),
		StoryURL:       fmt.Sprintf("%s/story/%s", c.siteURL, story.ID),
		UnsubscribeURL: c.siteURL + "/unsubscribe",
	}

	var buf bytes.Buffer
	if err := newsletterTemplate.Execute(&buf, data); err != nil {
		return Email{}, fmt.Errorf("failed to render newsletter: %w", err)
	}

	return Email{Subject: subject, HTML: buf.String()}, nil
}

// Excerpt returns the first limit characters of content, with a
// three-character ellipsis appended only when something was cut off.
func Excerpt(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}
