package feed

import (
	"bytes"
	"slices"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

var (
	youtubeNamespaces = []string{
		"http://www.youtube.com/xml/schemas/2015",
		"https://www.youtube.com/xml/schemas/2015",
	}
	mediaNamespaces = []string{
		"http://search.yahoo.com/mrss/",
		"http://search.yahoo.com/mrss",
	}

	// Conventional prefixes, tried after the ones a document binds itself
	defaultYoutubePrefixes = []string{"yt", "youtube"}
	defaultMediaPrefixes   = []string{"media", "mrss"}
)

// namespacePrefixes lists, per namespace, the extension prefixes to look up.
// gofeed keys extensions by the prefix a document declares, except for the
// few namespaces it canonicalizes itself.
type namespacePrefixes struct {
	youtube []string
	media   []string
}

// resolveNamespacePrefixes collects the prefixes bound to the YouTube and
// MRSS namespaces anywhere in the document. Scanning stops quietly at the
// first XML error; whatever was collected until then is still used.
func resolveNamespacePrefixes(data []byte) namespacePrefixes {
	var youtube, media []string

	p := xpp.NewXMLPullParser(bytes.NewReader(data), false, charset.NewReaderLabel)

	for {
		event, err := p.Next()
		if err != nil || event == xpp.EndDocument {
			break
		}
		if event != xpp.StartTag {
			continue
		}

		for _, attr := range p.Attrs {
			if attr.Name.Space != "xmlns" || attr.Name.Local == "" {
				continue
			}

			uri := strings.TrimSpace(attr.Value)
			switch {
			case slices.Contains(youtubeNamespaces, uri):
				youtube = appendPrefix(youtube, attr.Name.Local)
			case slices.Contains(mediaNamespaces, uri):
				media = appendPrefix(media, attr.Name.Local)
			}
		}
	}

	for _, prefix := range defaultYoutubePrefixes {
		youtube = appendPrefix(youtube, prefix)
	}
	for _, prefix := range defaultMediaPrefixes {
		media = appendPrefix(media, prefix)
	}

	return namespacePrefixes{youtube: youtube, media: media}
}

// appendPrefix adds prefix and its lower-cased form, once each.
func appendPrefix(prefixes []string, prefix string) []string {
	for _, p := range []string{prefix, strings.ToLower(prefix)} {
		if !slices.Contains(prefixes, p) {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}
