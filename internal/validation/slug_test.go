package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{name: "simple slug", slug: "my-band", wantErr: false},
		{name: "with numbers", slug: "tour-2026", wantErr: false},
		{name: "single word", slug: "news", wantErr: false},
		{name: "empty", slug: "", wantErr: true},
		{name: "uppercase", slug: "My-Band", wantErr: true},
		{name: "leading hyphen", slug: "-band", wantErr: true},
		{name: "trailing hyphen", slug: "band-", wantErr: true},
		{name: "double hyphen", slug: "my--band", wantErr: true},
		{name: "spaces", slug: "my band", wantErr: true},
		{name: "too long", slug: strings.Repeat("a", MaxSlugLen+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
