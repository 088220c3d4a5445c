package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
	"github.com/mmcdole/gofeed/rss"
)

var (
	// yt:video:<id>, or any other namespace using the same shape
	entryIDPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+:video:([A-Za-z0-9_-]+)$`)
	videoParamPattern = regexp.MustCompile(`(?:^|[?&#])v=([A-Za-z0-9_-]+)`)
)

type Parser struct {
	maxItems   int
	atomParser *atom.Parser
	rssParser  *rss.Parser
}

func NewParser(maxItems int) *Parser {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Parser{
		maxItems:   maxItems,
		atomParser: &atom.Parser{},
		rssParser:  &rss.Parser{},
	}
}

// Run extracts at most maxItems videos from a raw feed document, in document order.
func (p *Parser) Run(data []byte) ([]Video, error) {
	entries, err := p.parseEntries(data)
	if err != nil {
		return nil, err
	}

	if len(entries) > p.maxItems {
		entries = entries[:p.maxItems]
	}

	videos := make([]Video, 0, len(entries))
	for i := range entries {
		videos = append(videos, entries[i].video())
	}

	return videos, nil
}

func (p *Parser) parseEntries(data []byte) ([]entryFields, error) {
	entries, err := p.decodeEntries(data)
	if err != nil || len(entries) == 0 {
		return entries, err
	}

	ns := resolveNamespacePrefixes(data)
	for i := range entries {
		entries[i].ns = ns
	}

	return entries, nil
}

func (p *Parser) decodeEntries(data []byte) ([]entryFields, error) {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom:
		feed, err := p.atomParser.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse atom feed: %w", err)
		}
		entries := make([]entryFields, 0, len(feed.Entries))
		for _, entry := range feed.Entries {
			if entry != nil {
				entries = append(entries, fromAtomEntry(entry, feed.Extensions))
			}
		}
		return entries, nil

	case gofeed.FeedTypeRSS:
		feed, err := p.rssParser.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse rss feed: %w", err)
		}
		entries := make([]entryFields, 0, len(feed.Items))
		for _, item := range feed.Items {
			if item != nil {
				entries = append(entries, fromRSSItem(item, feed.Extensions))
			}
		}
		return entries, nil

	default:
		return nil, fmt.Errorf("failed to parse feed: unrecognized document format")
	}
}

// entryFields is the closed set of optional values a feed entry may expose,
// regardless of whether it came from an Atom or an RSS document.
type entryFields struct {
	id        string
	title     string
	published string
	authors   []string
	links     []entryLink
	ext       ext.Extensions
	feedExt   ext.Extensions
	ns        namespacePrefixes
}

type entryLink struct {
	rel  string
	href string
}

func fromAtomEntry(entry *atom.Entry, feedExt ext.Extensions) entryFields {
	fields := entryFields{
		id:        strings.TrimSpace(entry.ID),
		title:     strings.TrimSpace(entry.Title),
		published: strings.TrimSpace(entry.Published),
		ext:       entry.Extensions,
		feedExt:   feedExt,
	}

	for _, author := range entry.Authors {
		if author != nil {
			fields.authors = append(fields.authors, strings.TrimSpace(author.Name))
		}
	}

	for _, link := range entry.Links {
		if link != nil {
			fields.links = append(fields.links, entryLink{
				rel:  strings.TrimSpace(link.Rel),
				href: strings.TrimSpace(link.Href),
			})
		}
	}

	return fields
}

func fromRSSItem(item *rss.Item, feedExt ext.Extensions) entryFields {
	fields := entryFields{
		title:     strings.TrimSpace(item.Title),
		published: strings.TrimSpace(item.PubDate),
		ext:       item.Extensions,
		feedExt:   feedExt,
	}

	if item.GUID != nil {
		fields.id = strings.TrimSpace(item.GUID.Value)
	}

	// RSS has a single link, which plays the role of Atom's alternate link
	if link := strings.TrimSpace(item.Link); link != "" {
		fields.links = append(fields.links, entryLink{rel: "alternate", href: link})
	}

	fields.authors = append(fields.authors, strings.TrimSpace(item.Author))
	if item.DublinCoreExt != nil {
		for _, creator := range item.DublinCoreExt.Creator {
			fields.authors = append(fields.authors, strings.TrimSpace(creator))
		}
	}

	return fields
}

// video applies each field's fallback chain; the first non-empty value wins.
func (e *entryFields) video() Video {
	videoID := cmp.Or(
		extText(e.ext, e.ns.youtube, "videoId"),
		e.entryIDVideoID(),
	)

	videoURL := cmp.Or(
		childAttr(e.mediaGroups(), "content", "url"),
		extAttr(e.ext, e.ns.media, "content", "url"),
		e.alternateLink(),
	)

	if videoID == "" {
		videoID = videoIDFromURL(videoURL)
	}
	if videoURL == "" && videoID != "" {
		videoURL = fmt.Sprintf(watchURLFormat, videoID)
	}

	thumbnail := cmp.Or(
		childAttr(e.mediaGroups(), "thumbnail", "url"),
		extAttr(e.ext, e.ns.media, "thumbnail", "url"),
	)
	if thumbnail == "" && videoID != "" {
		thumbnail = fmt.Sprintf(thumbnailURLFormat, videoID)
	}

	return Video{
		Title: cmp.Or(
			childText(e.mediaGroups(), "title"),
			e.title,
			NoTitle,
		),
		URL:       videoURL,
		Thumbnail: thumbnail,
		Published: e.published,
		Channel:   e.channelName(),
		VideoID:   videoID,
	}
}

func (e *entryFields) mediaGroups() []ext.Extension {
	return extValues(e.ext, e.ns.media, "group")
}

func (e *entryFields) entryIDVideoID() string {
	if m := entryIDPattern.FindStringSubmatch(e.id); m != nil {
		return m[1]
	}
	return ""
}

func (e *entryFields) alternateLink() string {
	for _, link := range e.links {
		if strings.EqualFold(link.rel, "alternate") && link.href != "" {
			return link.href
		}
	}
	return ""
}

func (e *entryFields) channelName() string {
	for _, name := range e.authors {
		if name != "" {
			return name
		}
	}

	channelID := cmp.Or(
		extText(e.ext, e.ns.youtube, "channelId"),
		extText(e.feedExt, e.ns.youtube, "channelId"),
	)
	if channelID != "" {
		return "Channel " + channelID
	}

	return UnknownChannel
}

func videoIDFromURL(videoURL string) string {
	if m := videoParamPattern.FindStringSubmatch(videoURL); m != nil {
		return m[1]
	}
	return ""
}

// extValues looks an element up under each accepted prefix in turn.
func extValues(exts ext.Extensions, prefixes []string, name string) []ext.Extension {
	for _, prefix := range prefixes {
		if values := exts[prefix][name]; len(values) > 0 {
			return values
		}
	}
	return nil
}

func extText(exts ext.Extensions, prefixes []string, name string) string {
	for _, value := range extValues(exts, prefixes, name) {
		if text := strings.TrimSpace(value.Value); text != "" {
			return text
		}
	}
	return ""
}

func extAttr(exts ext.Extensions, prefixes []string, name, attr string) string {
	return firstAttr(extValues(exts, prefixes, name), attr)
}

func childText(parents []ext.Extension, name string) string {
	for _, parent := range parents {
		for _, child := range parent.Children[name] {
			if text := strings.TrimSpace(child.Value); text != "" {
				return text
			}
		}
	}
	return ""
}

func childAttr(parents []ext.Extension, name, attr string) string {
	for _, parent := range parents {
		if value := firstAttr(parent.Children[name], attr); value != "" {
			return value
		}
	}
	return ""
}

func firstAttr(values []ext.Extension, attr string) string {
	for _, value := range values {
		if v := strings.TrimSpace(value.Attrs[attr]); v != "" {
			return v
		}
	}
	return ""
}
