package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/jbesclapez/RadioFluxRSS/logger"
	"github.com/jbesclapez/RadioFluxRSS/utils"
)

var (
	hrefRegex    = regexp.MustCompile(`href="([^"]+)"`)
	titleRegex   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	headingRegex = regexp.MustCompile(`(?is)<h[1-3][^>]*>(.*?)</h[1-3]>`)
	imgRegex     = regexp.MustCompile(`(?i)<img[^>]+>`)
	imgSrcRegex  = regexp.MustCompile(`(?i)src="([^"]+)"`)
	imgAltRegex  = regexp.MustCompile(`(?i)alt="([^"]*)"`)
	tagRegex     = regexp.MustCompile(`<[^>]+>`)
	bitrateRegex = regexp.MustCompile(`(?i)(\d+)\s*k?bps`)

	// candidate stream URL shapes, most specific first
	streamRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)https?://[^\s<>"']+\.mp3[^\s<>"']*`),
		regexp.MustCompile(`(?i)https?://[^\s<>"']+\.aac[^\s<>"']*`),
		regexp.MustCompile(`(?i)https?://[^\s<>"']+/[^\s<>"']*(?:stream|radio|live)[^\s<>"']*`),
		regexp.MustCompile(`(?i)https?://[^\s<>"']+:\d+[^\s<>"']*`),
	}

	skipHosts = []string{"facebook", "twitter", "google", "blogger", "youtube"}
)

// Stream is one candidate stream URL found on a radio page, with the
// quality hints extracted from its surrounding text.
type Stream struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Bitrate     int    `json:"bitrate"`
}

// Radio is the information scraped from one station page.
type Radio struct {
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	PageURL   string   `json:"page_url"`
	LogoURL   string   `json:"logo_url,omitempty"`
	StreamURL string   `json:"stream_url"`
	Quality   string   `json:"stream_quality,omitempty"`
	Streams   []Stream `json:"streams,omitempty"`
}

type Scraper struct {
	BaseURL string
}

func New(baseURL string) *Scraper {
	return &Scraper{BaseURL: baseURL}
}

func (s *Scraper) fetch(pageURL string) (string, error) {
	resp, err := utils.CustomHttpRequest(http.MethodGet, pageURL)
	if err != nil {
		return "", fmt.Errorf("error fetching %s: %v", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d fetching %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %v", pageURL, err)
	}

	return string(body), nil
}

// RadioLinks collects the per-station page links from the directory
// front page, deduplicated in first-occurrence order.
func (s *Scraper) RadioLinks() ([]string, error) {
	page, err := s.fetch(s.BaseURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("error parsing base URL: %v", err)
	}

	seen := make(map[string]bool)
	var links []string
	for _, match := range hrefRegex.FindAllStringSubmatch(page, -1) {
		href := match[1]
		if !strings.Contains(href, "flux-url-") {
			continue
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		full := base.ResolveReference(ref).String()
		if !seen[full] {
			seen[full] = true
			links = append(links, full)
		}
	}

	logger.Default.Logf("Found %d radio links", len(links))
	return links, nil
}

// RadioInfo scrapes one station page for its name, logo and the best
// available stream.
func (s *Scraper) RadioInfo(pageURL string) (*Radio, error) {
	page, err := s.fetch(pageURL)
	if err != nil {
		return nil, err
	}

	radio := &Radio{
		PageURL: pageURL,
		Name:    nameFromPageURL(pageURL),
	}

	if match := titleRegex.FindStringSubmatch(page); match != nil {
		radio.Title = strings.TrimSpace(stripTags(match[1]))
	}
	if match := headingRegex.FindStringSubmatch(page); match != nil {
		if heading := strings.TrimSpace(stripTags(match[1])); heading != "" && len(heading) < 100 {
			radio.Title = heading
		}
	}
	if radio.Title == "" {
		radio.Title = radio.Name
	}

	radio.LogoURL = findLogo(page, pageURL)

	text := stripTags(page)
	radio.Streams = findStreams(text)
	if best := selectBestStream(radio.Streams); best != nil {
		radio.StreamURL = best.URL
		radio.Quality = fmt.Sprintf("%dkbps", best.Bitrate)
	}

	return radio, nil
}

// ScrapeAll fetches every station page concurrently and returns the
// radios that yielded a stream, in directory order.
func (s *Scraper) ScrapeAll() ([]*Radio, error) {
	links, err := s.RadioLinks()
	if err != nil {
		return nil, err
	}

	results := xsync.NewMapOf[string, *Radio]()
	var wg sync.WaitGroup
	for _, link := range links {
		wg.Add(1)
		go func(pageURL string) {
			defer wg.Done()

			radio, err := s.RadioInfo(pageURL)
			if err != nil {
				logger.Default.Warnf("Error scraping %s: %v", pageURL, err)
				return
			}
			if radio.StreamURL == "" {
				logger.Default.Warnf("No stream found for: %s", pageURL)
				return
			}
			results.Store(pageURL, radio)
		}(link)
	}
	wg.Wait()

	var radios []*Radio
	for _, link := range links {
		if radio, ok := results.Load(link); ok {
			radios = append(radios, radio)
		}
	}

	logger.Default.Logf("Scraped %d radios with streams out of %d pages", len(radios), len(links))
	return radios, nil
}

// nameFromPageURL turns ".../flux-url-radio-nova.html" into "Radio Nova".
func nameFromPageURL(pageURL string) string {
	segment := pageURL[strings.LastIndex(pageURL, "/")+1:]
	if idx := strings.Index(segment, "flux-url-"); idx != -1 {
		segment = segment[idx+len("flux-url-"):]
	}
	segment = strings.TrimSuffix(segment, ".html")
	words := strings.Split(segment, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func findLogo(page, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	for _, tag := range imgRegex.FindAllString(page, -1) {
		srcMatch := imgSrcRegex.FindStringSubmatch(tag)
		if srcMatch == nil {
			continue
		}
		src := srcMatch[1]

		alt := ""
		if altMatch := imgAltRegex.FindStringSubmatch(tag); altMatch != nil {
			alt = strings.ToLower(altMatch[1])
		}

		lowerSrc := strings.ToLower(src)
		if strings.Contains(alt, "logo") || strings.Contains(alt, "radio") ||
			strings.HasSuffix(lowerSrc, ".png") || strings.HasSuffix(lowerSrc, ".jpg") ||
			strings.HasSuffix(lowerSrc, ".jpeg") || strings.HasSuffix(lowerSrc, ".gif") {
			ref, err := url.Parse(src)
			if err != nil {
				continue
			}
			return base.ResolveReference(ref).String()
		}
	}

	return ""
}

func findStreams(text string) []Stream {
	seen := make(map[string]bool)
	var streams []Stream

	for _, re := range streamRegexes {
		for _, raw := range re.FindAllString(text, -1) {
			candidate := strings.TrimRight(strings.TrimSpace(raw), ".,;)")
			if seen[candidate] || isSkippedHost(candidate) {
				continue
			}
			seen[candidate] = true

			streams = append(streams, Stream{
				URL:         candidate,
				Description: surroundingText(text, candidate),
				Bitrate:     parseStreamQuality(surroundingText(text, candidate)),
			})
		}
	}

	return streams
}

func isSkippedHost(streamURL string) bool {
	lower := strings.ToLower(streamURL)
	for _, host := range skipHosts {
		if strings.Contains(lower, host) {
			return true
		}
	}
	return false
}

// surroundingText returns the text around the URL, which usually
// carries the format and bitrate description.
func surroundingText(text, streamURL string) string {
	idx := strings.Index(text, streamURL)
	if idx == -1 {
		return ""
	}

	start := idx - 100
	if start < 0 {
		start = 0
	}
	end := idx + len(streamURL) + 100
	if end > len(text) {
		end = len(text)
	}

	return strings.TrimSpace(text[start:end])
}

// parseStreamQuality extracts the advertised bitrate, falling back to
// format defaults when none is given.
func parseStreamQuality(description string) int {
	if match := bitrateRegex.FindStringSubmatch(description); match != nil {
		if bitrate, err := strconv.Atoi(match[1]); err == nil {
			return bitrate
		}
	}

	lower := strings.ToLower(description)
	if strings.Contains(lower, "mp3") {
		return 128
	}
	if strings.Contains(lower, "aac") {
		return 96
	}

	return 64
}

// selectBestStream prefers MP3 over AAC over anything else, then the
// highest bitrate.
func selectBestStream(streams []Stream) *Stream {
	if len(streams) == 0 {
		return nil
	}

	score := func(s Stream) int {
		lower := strings.ToLower(s.URL + " " + s.Description)
		formatScore := 100
		if strings.Contains(lower, "mp3") {
			formatScore = 1000
		} else if strings.Contains(lower, "aac") {
			formatScore = 500
		}
		return formatScore + s.Bitrate
	}

	best := &streams[0]
	for i := range streams[1:] {
		if score(streams[i+1]) > score(*best) {
			best = &streams[i+1]
		}
	}

	return best
}

func stripTags(page string) string {
	return tagRegex.ReplaceAllString(page, " ")
}
