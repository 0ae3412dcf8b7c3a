package chat

import (
	"html"
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`(?s)\*\*(.*?)\*\*`)

// View is a transcript entry prepared for display.
type View struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	HTML string `json:"html"`
}

// Visible drops ignored entries and renders the rest.
func Visible(transcript []Message) []View {
	views := make([]View, 0, len(transcript))
	for _, msg := range transcript {
		if msg.Ignored() {
			continue
		}
		views = append(views, View{Role: msg.Role, Text: msg.Text(), HTML: RenderHTML(msg.Text())})
	}
	return views
}

// RenderHTML turns the assistant's lightweight markup into HTML.
// "**x**" becomes <strong>, lines starting with "*" become list items, other lines paragraphs.
func RenderHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")

	var b strings.Builder
	inList := false
	for _, line := range strings.Split(escaped, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// bold 已替换，剩余的 "*" 开头行视为列表项
		if strings.HasPrefix(line, "*") {
			if !inList {
				b.WriteString("<ul>")
				inList = true
			}
			b.WriteString("<li>" + strings.TrimSpace(line[1:]) + "</li>")
			continue
		}
		if inList {
			b.WriteString("</ul>")
			inList = false
		}
		b.WriteString("<p>" + line + "</p>")
	}
	if inList {
		b.WriteString("</ul>")
	}
	return b.String()
}
