package feed

import (
	"encoding/xml"
	"fmt"
	"time"
)

const ItunesNS = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// Metadata holds the channel-level fields. BuiltAt is supplied by the
// caller so generating a feed stays a pure function of its inputs.
type Metadata struct {
	Title       string
	Description string
	Link        string
	Language    string
	Generator   string
	BuiltAt     time.Time
}

// ValidationError rejects a feed that would be unusable for clients.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("feed validation failed: %s", e.Reason)
}

type RSS struct {
	XMLName  xml.Name `xml:"rss"`
	Version  string   `xml:"version,attr"`
	ItunesNS string   `xml:"xmlns:itunes,attr"`
	Channel  *Channel `xml:"channel"`
}

type Channel struct {
	Title         string  `xml:"title"`
	Description   string  `xml:"description"`
	Link          string  `xml:"link"`
	Language      string  `xml:"language"`
	Generator     string  `xml:"generator"`
	LastBuildDate string  `xml:"lastBuildDate"`
	Items         []*Item `xml:"item"`
}

type Item struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	GUID        GUID      `xml:"guid"`
	PubDate     string    `xml:"pubDate"`
	Category    string    `xml:"category,omitempty"`
	Duration    string    `xml:"itunes:duration"`
	Explicit    string    `xml:"itunes:explicit"`
	Enclosure   Enclosure `xml:"enclosure"`
}

type GUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type Enclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length string `xml:"length,attr"`
}
