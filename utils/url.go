package utils

import (
	"errors"
	"net/url"
	"strings"
)

func IsPlaylistFile(rawUrl string) bool {
	urlClean := strings.TrimSpace(strings.ToLower(rawUrl))

	return strings.HasSuffix(urlClean, ".m3u") || strings.HasSuffix(urlClean, ".m3u8")
}

// IsWellFormedURL reports whether rawUrl parses as an absolute http(s)
// URL with a host, which is the minimum a client needs to open a stream.
func IsWellFormedURL(rawUrl string) bool {
	u, err := url.Parse(strings.TrimSpace(rawUrl))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func GetFileExtensionFromUrl(rawUrl string) (string, error) {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return "", err
	}
	pos := strings.LastIndex(u.Path, ".")
	if pos == -1 {
		return "", errors.New("couldn't find a period to indicate a file extension")
	}
	return u.Path[pos+1:], nil
}
