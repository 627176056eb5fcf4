package playlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jbesclapez/RadioFluxRSS/logger"
)

var (
	// attributeRegex matches M3U attributes in the format key="value"
	attributeRegex = regexp.MustCompile(`([a-zA-Z0-9_-]+)="([^"]*)"`)
)

var (
	ErrInvalidEncoding = errors.New("playlist is not valid UTF-8")
	ErrNoStations      = errors.New("playlist contains no playable stations")
)

// Parse scans playlist text in a single pass and returns stations in
// first-occurrence order. Directive metadata applies to the next URL
// line only; a directive with no following URL is dropped, and a URL
// with no preceding directive gets a title derived from the URL itself.
func Parse(data []byte) ([]*StationInfo, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var stations []*StationInfo
	var pending *StationInfo
	lineNum := 0
	pendingLine := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			if pending != nil {
				logger.Default.Debugf("Discarding orphan directive on line %d", pendingLine)
			}
			pending = parseDirective(line)
			pendingLine = lineNum
		case strings.HasPrefix(line, "#"):
			// #EXTM3U header or comment
			continue
		default:
			station := pending
			pending = nil
			if station == nil {
				station = &StationInfo{}
			}
			station.URL = line
			if station.Title == "" {
				station.Title = defaultTitle(line)
			}
			stations = append(stations, station)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning playlist at line %d: %v", lineNum, err)
	}

	return stations, nil
}

// ParseReader reads the whole input before parsing so an undecodable
// file fails as one error instead of per line.
func ParseReader(r io.Reader) ([]*StationInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading playlist: %v", err)
	}
	return Parse(data)
}

// parseDirective extracts metadata from an #EXTINF line. Unparseable
// directives yield empty metadata rather than failing the scan.
func parseDirective(line string) *StationInfo {
	station := &StationInfo{}

	matches := attributeRegex.FindAllStringSubmatch(line, -1)
	lineWithoutPairs := line

	for _, match := range matches {
		key := strings.TrimSpace(match[1])
		value := strings.TrimSpace(match[2])

		switch strings.ToLower(key) {
		case "tvg-id":
			station.TvgID = value
		case "tvg-name":
			station.Title = value
		case "tvg-group", "group-title":
			station.Group = value
		case "tvg-logo":
			station.LogoURL = value
		default:
			if station.Attrs == nil {
				station.Attrs = make(map[string]string)
			}
			station.Attrs[strings.ToLower(key)] = value
		}
		lineWithoutPairs = strings.Replace(lineWithoutPairs, match[0], "", 1)
	}

	if commaSplit := strings.SplitN(lineWithoutPairs, ",", 2); len(commaSplit) > 1 {
		if title := strings.TrimSpace(commaSplit[1]); title != "" {
			station.Title = title
		}
	}

	return station
}

// defaultTitle derives a stable display name from the stream URL, so
// re-parsing an unchanged playlist always yields the same titles.
func defaultTitle(rawUrl string) string {
	u, err := url.Parse(rawUrl)
	if err != nil || u.Host == "" {
		return rawUrl
	}

	name := strings.Trim(path.Base(u.Path), "/")
	if name == "" || name == "." {
		return u.Host
	}

	return strings.TrimSuffix(name, path.Ext(name))
}
