// Package csrf resolves the anti-forgery token sent with preference
// mutations.
package csrf

import (
	"net/http"
	"strings"
)

const (
	// FormFieldName is the hidden input rendered inside server forms.
	FormFieldName = "csrfmiddlewaretoken"
	// MetaName is the <meta name=...> carrying the token in the page head.
	MetaName = "csrf-token"
	// CookieName is the cookie set by the server alongside the session.
	CookieName = "csrftoken"
	// HeaderName is the request header the server checks.
	HeaderName = "X-CSRFToken"
)

// Source identifies where a token was found.
type Source string

const (
	SourceFormField Source = "form_field"
	SourceMeta      Source = "meta"
	SourceCookie    Source = "cookie"
)

// Sources holds the candidate token locations. A nil pointer means the
// element is absent from the page; an empty string means it is present but
// blank, which still wins over lower-precedence sources.
type Sources struct {
	FormField *string
	Meta      *string
	Cookies   []*http.Cookie
}

// Token is a resolved anti-forgery token.
type Token struct {
	Value string
	From  Source
}

// Lookup returns the token with precedence form field, meta tag, cookie.
// ok is false when none of the three is present.
func Lookup(src Sources) (Token, bool) {
	if src.FormField != nil {
		return Token{Value: *src.FormField, From: SourceFormField}, true
	}
	if src.Meta != nil {
		return Token{Value: *src.Meta, From: SourceMeta}, true
	}
	for _, c := range src.Cookies {
		if c == nil {
			continue
		}
		if strings.TrimSpace(c.Name) == CookieName {
			return Token{Value: c.Value, From: SourceCookie}, true
		}
	}
	return Token{}, false
}
