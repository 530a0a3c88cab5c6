package location

import (
	"fmt"
	"net/url"
	"sync"
)

// Page holds the address of one page view. Replace overwrites the current
// entry; there is no history to push onto.
type Page struct {
	mu       sync.Mutex
	u        url.URL
	replaced int
}

func NewPage(raw string) (*Page, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse page url %q: %w", raw, err)
	}
	return &Page{u: *u}, nil
}

// Return a copy of the current address.
func (p *Page) URL() *url.URL {
	p.mu.Lock()
	defer p.mu.Unlock()
	c := p.u
	return &c
}

func (p *Page) Replace(u *url.URL) {
	if u == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.u = *u
	p.replaced++
}

// Return how many times the address was replaced.
func (p *Page) Replacements() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.replaced
}
