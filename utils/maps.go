package utils

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Google Maps URLs carry coordinates in a handful of shapes. Patterns are
// tried in order; the first match wins.
var mapsCoordinatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`),
	regexp.MustCompile(`[?&](?:q|ll)=(-?\d+\.\d+),(-?\d+\.\d+)`),
	regexp.MustCompile(`/(?:place|search)/(-?\d+\.\d+),(-?\d+\.\d+)`),
}

// mapsHTTPClient resolves shortened links. Redirects are not followed so the
// Location header can be read directly.
var mapsHTTPClient = &http.Client{
	Timeout: 5 * time.Second,
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// CoordinatesFromMapsLink extracts latitude and longitude from a Google Maps
// link. Shortened links (goo.gl, maps.app.goo.gl, bit.ly) are expanded first.
// ok is false when the link is empty or carries no recognisable coordinates.
func CoordinatesFromMapsLink(link string) (lat, lng float64, ok bool) {
	if link == "" {
		return 0, 0, false
	}
	resolved := expandShortMapsLink(link)
	for _, pattern := range mapsCoordinatePatterns {
		m := pattern.FindStringSubmatch(resolved)
		if m == nil {
			continue
		}
		lat, latErr := strconv.ParseFloat(m[1], 64)
		lng, lngErr := strconv.ParseFloat(m[2], 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		return lat, lng, true
	}
	return 0, 0, false
}

func isShortMapsLink(link string) bool {
	return strings.Contains(link, "goo.gl") ||
		strings.Contains(link, "maps.app.goo.gl") ||
		strings.Contains(link, "bit.ly")
}

// expandShortMapsLink follows the redirect chain of a shortened link and
// returns the final URL. The input is returned unchanged when it is not a
// short link or when expansion fails.
func expandShortMapsLink(link string) string {
	if !isShortMapsLink(link) {
		return link
	}
	req, err := http.NewRequest(http.MethodHead, link, nil)
	if err != nil {
		return link
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := mapsHTTPClient.Do(req)
	if err != nil {
		return link
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return link
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return link
	}
	if isShortMapsLink(location) {
		return expandShortMapsLink(location)
	}
	return location
}
