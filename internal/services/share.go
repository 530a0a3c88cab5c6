package services

import (
	"net/url"
	"strings"
)

const shareEndpoint = "http://twitter.com/share"

// BuildShareURL returns the share-intent link for the page and its display
// text, attributed to the respawn point name.
func BuildShareURL(pageURL, text, respawnName string) string {
	return shareEndpoint +
		"?url=" + EncodeURIComponent(pageURL) +
		"&text=" + EncodeURIComponent(text+" from "+respawnName)
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s like the browser function of the same name:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
