package feed

import (
	"fmt"
	"strings"
	"testing"
)

const atomHeader = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
  <title>Test Channel</title>
  <yt:channelId>UCfeedlevel</yt:channelId>
`

func atomDoc(entries ...string) []byte {
	return []byte(atomHeader + strings.Join(entries, "\n") + "\n</feed>")
}

func TestParseYouTubeEntry(t *testing.T) {
	data := atomDoc(`
  <entry>
    <id>yt:video:abc123</id>
    <yt:videoId>abc123</yt:videoId>
    <yt:channelId>UCchannel</yt:channelId>
    <title>Top-level Title</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
    <author>
      <name>  Linus Tech Tips  </name>
      <uri>https://www.youtube.com/channel/UCchannel</uri>
    </author>
    <published>  2024-01-02T00:00:00+00:00 </published>
    <updated>2024-01-03T00:00:00+00:00</updated>
    <media:group>
      <media:title>  Group Title  </media:title>
      <media:content url="https://www.youtube.com/v/abc123?version=3" type="application/x-shockwave-flash" width="640" height="390"/>
      <media:thumbnail url="https://i1.ytimg.com/vi/abc123/hqdefault.jpg" width="480" height="360"/>
      <media:description>Some description</media:description>
    </media:group>
  </entry>`)

	parser := NewParser(5)
	videos, err := parser.Run(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(videos) != 1 {
		t.Fatalf("Expected 1 video, got: %d", len(videos))
	}

	video := videos[0]
	if video.VideoID != "abc123" {
		t.Errorf("Expected video ID 'abc123', got: %s", video.VideoID)
	}
	if video.Title != "Group Title" {
		t.Errorf("Expected media group title 'Group Title', got: %s", video.Title)
	}
	if video.URL != "https://www.youtube.com/v/abc123?version=3" {
		t.Errorf("Expected media group content URL, got: %s", video.URL)
	}
	if video.Thumbnail != "https://i1.ytimg.com/vi/abc123/hqdefault.jpg" {
		t.Errorf("Expected media group thumbnail URL, got: %s", video.Thumbnail)
	}
	if video.Published != "2024-01-02T00:00:00+00:00" {
		t.Errorf("Expected trimmed published date, got: '%s'", video.Published)
	}
	if video.Channel != "Linus Tech Tips" {
		t.Errorf("Expected trimmed author name 'Linus Tech Tips', got: '%s'", video.Channel)
	}
}

func TestParseCapsEntriesInDocumentOrder(t *testing.T) {
	var entries []string
	for i := 1; i <= 7; i++ {
		entries = append(entries, fmt.Sprintf(`
  <entry>
    <id>yt:video:vid%d</id>
    <title>Video %d</title>
  </entry>`, i, i))
	}

	videos, err := NewParser(5).Run(atomDoc(entries...))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(videos) != 5 {
		t.Fatalf("Expected 5 videos, got: %d", len(videos))
	}
	for i, video := range videos {
		expected := fmt.Sprintf("vid%d", i+1)
		if video.VideoID != expected {
			t.Errorf("Expected video %d to have ID '%s', got: %s", i, expected, video.VideoID)
		}
	}
}

func TestParseDefaultMaxItems(t *testing.T) {
	parser := NewParser(0)
	if parser.maxItems != DefaultMaxItems {
		t.Errorf("Expected default max items %d, got: %d", DefaultMaxItems, parser.maxItems)
	}
}

func TestParseRootLevelMediaContent(t *testing.T) {
	data := atomDoc(`
  <entry>
    <title>Flat Entry</title>
    <media:content url="https://cdn.example.com/videos/clip.mp4" type="video/mp4"/>
    <media:thumbnail url="https://cdn.example.com/thumbs/clip.jpg"/>
  </entry>`)

	videos, err := NewParser(5).Run(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("Expected 1 video, got: %d", len(videos))
	}

	video := videos[0]
	if video.URL != "https://cdn.example.com/videos/clip.mp4" {
		t.Errorf("Expected root-level media content URL, got: %s", video.URL)
	}
	if video.Thumbnail != "https://cdn.example.com/thumbs/clip.jpg" {
		t.Errorf("Expected root-level thumbnail URL, got: %s", video.Thumbnail)
	}
	if video.Title != "Flat Entry" {
		t.Errorf("Expected top-level title 'Flat Entry', got: %s", video.Title)
	}
	if video.VideoID != "" {
		t.Errorf("Expected empty video ID, got: %s", video.VideoID)
	}
}

func TestParseEntryIDAndAlternateLink(t *testing.T) {
	data := atomDoc(`
  <entry>
    <id>yt:video:XyZ_-9</id>
    <title>Linked</title>
    <link rel="self" href="https://example.com/self"/>
    <link rel="alternate" href="https://www.youtube.com/watch?v=XyZ_-9"/>
  </entry>`)

	videos, err := NewParser(5).Run(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	video := videos[0]
	if video.VideoID != "XyZ_-9" {
		t.Errorf("Expected video ID from entry id, got: %s", video.VideoID)
	}
	if video.URL != "https://www.youtube.com/watch?v=XyZ_-9" {
		t.Errorf("Expected alternate link URL, got: %s", video.URL)
	}
	if video.Thumbnail != "https://i.ytimg.com/vi/XyZ_-9/hqdefault.jpg" {
		t.Errorf("Expected synthesized thumbnail, got: %s", video.Thumbnail)
	}
}

func TestParseVideoIDFromURLParameter(t *testing.T) {
	data := atomDoc(`
  <entry>
    <id>tag:example.com,2024:entry-1</id>
    <title>Query Param</title>
    <link rel="alternate" href="https://www.youtube.com/watch?feature=share&amp;v=qp42"/>
  </entry>`)

	videos, err := NewParser(5).Run(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if videos[0].VideoID != "qp42" {
		t.Errorf("Expected video ID 'qp42' from URL, got: %s", videos[0].VideoID)
	}
}

func TestParseSynthesizesURLFromVideoID(t *testing.T) {
	data := atomDoc(`
  <entry>
    <yt:videoId>onlyid</yt:videoId>
  </entry>`)

	videos, err := NewParser(5).Run(data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	video := videos[0]
	if video.URL != "https://www.youtube.com/watch?v=onlyid" {
		t.Errorf("Expected synthesized watch URL, got: %s", video.URL)
	}
	if video.Thumbnail != "https://i.ytimg.com/vi/onlyid/hqdefault.jpg" {
		t.Errorf("Expected synthesized thumbnail, got: %s", video.Thumbnail)
	}
	if video.Title != NoTitle {
		t.Errorf("Expected placeholder title, got: %s", video.Title)
	}
	if video.Published != "" {
		t.Errorf("Expected empty published, got: %s", video.Published)
	}
}

func TestParseChannelFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		feed     []byte
		expected string
	}{
		{
			name: "first author exposing a name",
			feed: atomDoc(`
  <entry>
    <author><uri>https://example.com/nameless</uri></author>
    <author><name>Second Author</name></author>
  </entry>`),
			expected: "Second Author",
		},
		{
			name: "entry channel id",
			feed: atomDoc(`
  <entry>
    <yt:channelId>UCentry</yt:channelId>
  </entry>`),
			expected: "Channel UCentry",
		},
		{
			name: "feed channel id",
			feed: atomDoc(`
  <entry>
    <title>No author</title>
  </entry>`),
			expected: "Channel UCfeedlevel",
		},
		{
			name: "unknown channel",
			feed: []byte(`<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry><title>Bare</title></entry>
</feed>`),
			expected: UnknownChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos, err := NewParser(5).Run(tt.feed)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if len(videos) != 1 {
				t.Fatalf("Expected 1 video, got: %d", len(videos))
			}
			if videos[0].Channel != tt.expected {
				t.Errorf("Expected channel '%s', got: '%s'", tt.expected, videos[0].Channel)
			}
		})
	}
}

func TestParseNamespacePrefixes(t *testing.T) {
	tests := []struct {
		name  string
		xmlns string
		entry string
	}{
		{
			name:  "yt prefix",
			xmlns: `xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/"`,
			entry: `<yt:videoId>zz</yt:videoId><yt:channelId>UCzz</yt:channelId><media:group><media:title>GT</media:title><media:content url="https://u/c"/></media:group>`,
		},
		{
			name:  "youtube prefix",
			xmlns: `xmlns:youtube="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/"`,
			entry: `<youtube:videoId>zz</youtube:videoId><youtube:channelId>UCzz</youtube:channelId><media:group><media:title>GT</media:title><media:content url="https://u/c"/></media:group>`,
		},
		{
			name:  "mrss prefix",
			xmlns: `xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:mrss="http://search.yahoo.com/mrss/"`,
			entry: `<yt:videoId>zz</yt:videoId><yt:channelId>UCzz</yt:channelId><mrss:group><mrss:title>GT</mrss:title><mrss:content url="https://u/c"/></mrss:group>`,
		},
		{
			name:  "arbitrary prefixes",
			xmlns: `xmlns:y="http://www.youtube.com/xml/schemas/2015" xmlns:m="http://search.yahoo.com/mrss/"`,
			entry: `<y:videoId>zz</y:videoId><y:channelId>UCzz</y:channelId><m:group><m:title>GT</m:title><m:content url="https://u/c"/></m:group>`,
		},
		{
			name:  "namespace declared on the entry",
			xmlns: `xmlns:media="http://search.yahoo.com/mrss/"`,
			entry: `<v:videoId xmlns:v="http://www.youtube.com/xml/schemas/2015">zz</v:videoId><v:channelId xmlns:v="http://www.youtube.com/xml/schemas/2015">UCzz</v:channelId><media:group><media:title>GT</media:title><media:content url="https://u/c"/></media:group>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" ` + tt.xmlns + `>
  <entry>` + tt.entry + `</entry>
</feed>`)

			videos, err := NewParser(5).Run(data)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if len(videos) != 1 {
				t.Fatalf("Expected 1 video, got: %d", len(videos))
			}

			video := videos[0]
			if video.VideoID != "zz" {
				t.Errorf("Expected video ID 'zz', got: '%s'", video.VideoID)
			}
			if video.Channel != "Channel UCzz" {
				t.Errorf("Expected channel 'Channel UCzz', got: '%s'", video.Channel)
			}
			if video.Title != "GT" {
				t.Errorf("Expected media group title 'GT', got: '%s'", video.Title)
			}
			if video.URL != "https://u/c" {
				t.Errorf("Expected media group content URL, got: '%s'", video.URL)
			}
			if video.Thumbnail != "https://i.ytimg.com/vi/zz/hqdefault.jpg" {
				t.Errorf("Expected thumbnail synthesized from video ID, got: '%s'", video.Thumbnail)
			}
		})
	}
}

func TestResolveNamespacePrefixes(t *testing.T) {
	data := []byte(`<feed xmlns="http://www.w3.org/2005/Atom" xmlns:Y="http://www.youtube.com/xml/schemas/2015" xmlns:m="http://search.yahoo.com/mrss">
  <entry/>
</feed>`)

	ns := resolveNamespacePrefixes(data)

	if strings.Join(ns.youtube, ",") != "Y,y,yt,youtube" {
		t.Errorf("Expected declared prefix before defaults, got: %v", ns.youtube)
	}
	if strings.Join(ns.media, ",") != "m,media,mrss" {
		t.Errorf("Expected declared prefix before defaults, got: %v", ns.media)
	}
}

func TestResolveNamespacePrefixesMalformed(t *testing.T) {
	ns := resolveNamespacePrefixes([]byte("not xml at all"))

	if strings.Join(ns.youtube, ",") != "yt,youtube" {
		t.Errorf("Expected default youtube prefixes, got: %v", ns.youtube)
	}
	if strings.Join(ns.media, ",") != "media,mrss" {
		t.Errorf("Expected default media prefixes, got: %v", ns.media)
	}
}

func TestParseRSSVariant(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Video RSS</title>
    <item>
      <title>RSS Title</title>
      <link>https://www.youtube.com/watch?v=rss1</link>
      <guid>https://www.youtube.com/watch?v=rss1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <dc:creator>RSS Creator</dc:creator>
      <media:thumbnail url="https://example.com/rss1.jpg"/>
    </item>
  </channel>
</rss>`

	videos, err := NewParser(5).Run([]byte(rssData))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("Expected 1 video, got: %d", len(videos))
	}

	video := videos[0]
	if video.VideoID != "rss1" {
		t.Errorf("Expected video ID 'rss1', got: %s", video.VideoID)
	}
	if video.URL != "https://www.youtube.com/watch?v=rss1" {
		t.Errorf("Expected item link as URL, got: %s", video.URL)
	}
	if video.Thumbnail != "https://example.com/rss1.jpg" {
		t.Errorf("Expected media thumbnail, got: %s", video.Thumbnail)
	}
	if video.Published != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected pubDate text, got: %s", video.Published)
	}
	if video.Channel != "RSS Creator" {
		t.Errorf("Expected dc:creator as channel, got: %s", video.Channel)
	}
}

func TestParseEmptyFeed(t *testing.T) {
	videos, err := NewParser(5).Run(atomDoc())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(videos) != 0 {
		t.Errorf("Expected 0 videos, got: %d", len(videos))
	}
}

func TestParseInvalidFeed(t *testing.T) {
	inputs := map[string]string{
		"html":    `<html><body>This is not a feed</body></html>`,
		"garbage": `this is not xml at all`,
		"empty":   ``,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			if _, err := NewParser(5).Run([]byte(input)); err == nil {
				t.Error("Expected error for invalid feed data")
			}
		})
	}
}

func TestVideoIDFromURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://www.youtube.com/watch?v=abc", "abc"},
		{"https://www.youtube.com/watch?list=x&v=d_e-f", "d_e-f"},
		{"https://www.youtube.com/v/abc123?version=3", ""},
		{"https://example.com/video.mp4", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := videoIDFromURL(tt.input); got != tt.expected {
			t.Errorf("videoIDFromURL(%q): expected '%s', got '%s'", tt.input, tt.expected, got)
		}
	}
}
