package channel

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// NewPageClient returns a client for youtube.com pages. Cookies set during
// the consent redirect chain are kept for the following hops.
func NewPageClient(timeout time.Duration) *http.Client {
	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &http.Client{Timeout: timeout, Jar: jar}
}
