package ports

import "net/url"

// Port: the address of the page hosting the map.
//
// There is no push operation. State changes replace the current
// entry and never add to the back/forward history.
type PageLocation interface {
	URL() *url.URL
	Replace(u *url.URL)
}
