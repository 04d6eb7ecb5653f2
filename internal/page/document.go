// Package page loads and parses the server-rendered profile page. The parsed
// Document is the client's view of the DOM: current preference values, the
// anti-forgery token carriers and which optional elements exist.
package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/colonyops/profilectl/internal/csrf"
)

// Element IDs rendered by the profile template.
const (
	ThemeSelectID    = "themeSelect"
	TimezoneSelectID = "timezoneSelect"
	AutoSyncFormID   = "autoSyncForm"
	AutoSyncToggleID = "autoSyncEnabled"
	SyncIntervalID   = "syncInterval"
	NextSyncID       = "nextSyncTime"
	SyncNowID        = "syncNowBtn"
	QuickSyncID      = "quickSyncButton"
)

// Element is a node with an id attribute.
type Element struct {
	ID       string
	Tag      string
	Text     string
	Hidden   bool
	Disabled bool
}

// Option is one choice of a select element.
type Option struct {
	Value string
	Label string
}

// Select is a parsed <select>.
type Select struct {
	Options  []Option
	Selected string
}

// Values returns the option values in document order.
func (s Select) Values() []string {
	out := make([]string, len(s.Options))
	for i, o := range s.Options {
		out[i] = o.Value
	}
	return out
}

// Document is the parsed profile page.
type Document struct {
	formToken *string
	metaToken *string

	Theme           Select
	Timezone        Select
	AutoSyncEnabled bool
	SyncInterval    Select

	elements map[string]Element
}

// CSRFFormField returns the hidden form token, nil when the field is absent.
func (d *Document) CSRFFormField() *string { return d.formToken }

// CSRFMeta returns the meta tag token, nil when the tag is absent.
func (d *Document) CSRFMeta() *string { return d.metaToken }

// Element returns the element with the given id.
func (d *Document) Element(id string) (Element, bool) {
	el, ok := d.elements[id]
	return el, ok
}

// Has reports whether an element with the given id exists.
func (d *Document) Has(id string) bool {
	_, ok := d.elements[id]
	return ok
}

// Parse builds a Document from profile page HTML.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse profile page: %w", err)
	}

	d := &Document{elements: map[string]Element{}}
	d.walk(root)
	return d, nil
}

func (d *Document) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		d.visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c)
	}
}

func (d *Document) visit(n *html.Node) {
	switch n.Data {
	case "input":
		if attr(n, "name") == csrf.FormFieldName && d.formToken == nil {
			v := attr(n, "value")
			d.formToken = &v
		}
	case "meta":
		if attr(n, "name") == csrf.MetaName && d.metaToken == nil {
			v := attr(n, "content")
			d.metaToken = &v
		}
	}

	id := attr(n, "id")
	if id == "" {
		return
	}

	d.elements[id] = Element{
		ID:       id,
		Tag:      n.Data,
		Text:     strings.Join(strings.Fields(textContent(n)), " "),
		Hidden:   hasClass(n, "hidden") || hasAttr(n, "hidden"),
		Disabled: hasAttr(n, "disabled"),
	}

	switch id {
	case ThemeSelectID:
		d.Theme = parseSelect(n)
	case TimezoneSelectID:
		d.Timezone = parseSelect(n)
	case SyncIntervalID:
		d.SyncInterval = parseSelect(n)
	case AutoSyncToggleID:
		d.AutoSyncEnabled = hasAttr(n, "checked")
	}
}

func parseSelect(n *html.Node) Select {
	var s Select
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "option" {
			label := strings.TrimSpace(textContent(c))
			value, ok := lookupAttr(c, "value")
			if !ok {
				value = label
			}
			s.Options = append(s.Options, Option{Value: value, Label: label})
			if hasAttr(c, "selected") {
				s.Selected = value
			}
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)

	// Browsers select the first option when none is marked.
	if s.Selected == "" && len(s.Options) > 0 {
		s.Selected = s.Options[0].Value
	}
	return s
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return b.String()
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := lookupAttr(n, key)
	return ok
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
