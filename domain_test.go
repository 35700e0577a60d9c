package mailscout_test

import (
	"testing"

	"github.com/fwojciec/mailscout"
	"github.com/stretchr/testify/assert"
)

func TestDomainOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"plain host", "https://acme.com", "acme.com", true},
		{"subdomain", "https://www.acme.com/contact", "acme.com", true},
		{"multi-part suffix is not recognized", "https://sub.example.co.uk/path", "co.uk", true},
		{"single label host", "http://localhost:8080/", "localhost", true},
		{"missing scheme has no host", "acme.com", "", false},
		{"unparsable", "://bad", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := mailscout.DomainOf(tt.url)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrioritizeByDomain(t *testing.T) {
	t.Parallel()

	t.Run("puts matching domain first and sorts each group", func(t *testing.T) {
		t.Parallel()

		got := mailscout.PrioritizeByDomain([]string{"zed@other.com", "info@acme.com", "abc@acme.com"}, "acme.com")

		assert.Equal(t, []string{"abc@acme.com", "info@acme.com", "zed@other.com"}, got)
	})

	t.Run("empty domain sorts everything together", func(t *testing.T) {
		t.Parallel()

		got := mailscout.PrioritizeByDomain([]string{"zed@other.com", "abc@acme.com"}, "")

		assert.Equal(t, []string{"abc@acme.com", "zed@other.com"}, got)
	})

	t.Run("returns empty slice for no emails", func(t *testing.T) {
		t.Parallel()

		got := mailscout.PrioritizeByDomain(nil, "acme.com")

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
