package csrf

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestLookup(t *testing.T) {
	cookies := []*http.Cookie{
		{Name: "sessionid", Value: "sess"},
		{Name: "csrftoken", Value: "from-cookie"},
	}

	tests := []struct {
		name   string
		src    Sources
		want   Token
		wantOK bool
	}{
		{
			name:   "form field wins over everything",
			src:    Sources{FormField: ptr("from-form"), Meta: ptr("from-meta"), Cookies: cookies},
			want:   Token{Value: "from-form", From: SourceFormField},
			wantOK: true,
		},
		{
			name:   "meta wins over cookie",
			src:    Sources{Meta: ptr("from-meta"), Cookies: cookies},
			want:   Token{Value: "from-meta", From: SourceMeta},
			wantOK: true,
		},
		{
			name:   "cookie fallback",
			src:    Sources{Cookies: cookies},
			want:   Token{Value: "from-cookie", From: SourceCookie},
			wantOK: true,
		},
		{
			name:   "blank form field is still present",
			src:    Sources{FormField: ptr(""), Meta: ptr("from-meta")},
			want:   Token{Value: "", From: SourceFormField},
			wantOK: true,
		},
		{
			name:   "other cookies only",
			src:    Sources{Cookies: []*http.Cookie{{Name: "sessionid", Value: "sess"}, nil}},
			wantOK: false,
		},
		{
			name:   "nothing",
			src:    Sources{},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.src)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
