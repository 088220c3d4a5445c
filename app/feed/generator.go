package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"time"
)

type Generator struct {
	title    string
	selfLink string
	version  string
}

func NewGenerator(title, selfLink, version string) *Generator {
	return &Generator{
		title:    title,
		selfLink: selfLink,
		version:  version,
	}
}

// Run renders videos as an RSS 2.0 document.
func (g *Generator) Run(videos []Video, updatedAt time.Time) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:media="http://search.yahoo.com/mrss/">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", g.title, 4)
	g.writeElement(&buf, "link", g.selfLink, 4)
	g.writeElement(&buf, "description", "Latest videos from the configured channels", 4)

	if g.selfLink != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(g.selfLink)))
	}

	g.writeElement(&buf, "lastBuildDate", updatedAt.In(time.Local).Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Tube-Comb/%s", g.version), 4)

	for _, video := range videos {
		g.writeItem(&buf, video)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, video Video) {
	buf.WriteString("    <item>\n")

	guid := video.VideoID
	if guid == "" {
		guid = video.URL
	}
	if guid != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(guid)))
		xml.EscapeText(buf, []byte(guid))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", video.Title, 6)
	g.writeElement(buf, "link", video.URL, 6)
	g.writeElement(buf, "author", video.Channel, 6)

	if published, ok := ParsePublished(video.Published); ok {
		g.writeElement(buf, "pubDate", published.Format(time.RFC1123Z), 6)
	}

	if video.Thumbnail != "" {
		buf.WriteString(fmt.Sprintf("      <media:thumbnail url=\"%s\" />\n", html.EscapeString(video.Thumbnail)))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}
