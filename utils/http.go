package utils

import "net/http"

// HTTPClient preserves the configured User-Agent across redirects, since
// some playlist hosts reject requests with a default Go user agent.
var HTTPClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		req.Header.Set("User-Agent", GetEnv("USER_AGENT"))
		return nil
	},
}

func CustomHttpRequest(method string, url string) (*http.Response, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", GetEnv("USER_AGENT"))

	resp, err := HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}
