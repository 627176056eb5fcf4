package playlist

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/jbesclapez/RadioFluxRSS/logger"
	"github.com/jbesclapez/RadioFluxRSS/utils"
)

// Fetch loads raw playlist text from an http(s):// or file:// source,
// or from a plain filesystem path.
func Fetch(source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetchRemote(source)
	case strings.HasPrefix(source, "file://"):
		return fetchLocal(strings.TrimPrefix(source, "file://"))
	default:
		return fetchLocal(source)
	}
}

func fetchLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening local playlist %s: %v", path, err)
	}
	return data, nil
}

func fetchRemote(source string) ([]byte, error) {
	logger.Default.Logf("Downloading playlist from URL: %s", source)

	resp, err := utils.CustomHttpRequest(http.MethodGet, source)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d fetching %s", resp.StatusCode, source)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error downloading playlist: %v", err)
	}

	return data, nil
}
