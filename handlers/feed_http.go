package handlers

import (
	"net/http"
	"os"

	"github.com/jbesclapez/RadioFluxRSS/logger"
)

// FeedHTTPHandler serves the most recently generated feed document so
// podcast clients can subscribe to it directly.
type FeedHTTPHandler struct {
	logger   logger.Logger
	feedPath string
}

func NewFeedHTTPHandler(logger logger.Logger, feedPath string) *FeedHTTPHandler {
	return &FeedHTTPHandler{
		logger:   logger,
		feedPath: feedPath,
	}
}

func (h *FeedHTTPHandler) SetFeedPath(path string) {
	h.feedPath = path
}

func (h *FeedHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if h.feedPath == "" {
		http.Error(w, "No feed generated yet.", http.StatusNotFound)
		return
	}

	if _, err := os.Stat(h.feedPath); err != nil {
		h.logger.Debugf("Feed file not available: %v", err)
		http.Error(w, "No feed generated yet.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	http.ServeFile(w, r, h.feedPath)
}
