package scrape

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
)

// Typed failures for the expected degradation paths. Adapters convert
// these into an empty outcome plus a note; they never fail a job.
var (
	// ErrFetch indicates the page could not be fetched (network error,
	// timeout, non-2xx status).
	ErrFetch = errors.New("page fetch failed")

	// ErrChallenge indicates the site served an anti-automation
	// challenge. The search must degrade, never attempt a bypass.
	ErrChallenge = errors.New("anti-automation challenge detected")

	// ErrMarkup indicates the page structure did not match what the
	// adapter expects (site redesign, error page).
	ErrMarkup = errors.New("unexpected page structure")
)

// IsExpected reports whether an error is one of the graceful degradation
// classes.
func IsExpected(err error) bool {
	return errors.Is(err, ErrFetch) || errors.Is(err, ErrChallenge) || errors.Is(err, ErrMarkup)
}

// challengeMarkers are substrings of src/class/id attribute values that
// identify a human-verification gate.
var challengeMarkers = []string{"recaptcha", "hcaptcha", "captcha"}

// HasChallenge scans a parsed page for anti-automation challenge
// markers: captcha iframes, widget containers, and challenge scripts.
func HasChallenge(doc *html.Node) bool {
	found := false
	Walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.Data {
		case "iframe", "script":
			if attrHasMarker(n, "src") {
				found = true
				return false
			}
		case "div", "form":
			if attrHasMarker(n, "class") || attrHasMarker(n, "id") {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func attrHasMarker(n *html.Node, key string) bool {
	v := strings.ToLower(Attr(n, key))
	if v == "" {
		return false
	}
	for _, marker := range challengeMarkers {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}
