package mailscout_test

import (
	"testing"

	"github.com/fwojciec/mailscout"
	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	t.Parallel()

	t.Run("drops address containing a shorter variant", func(t *testing.T) {
		t.Parallel()

		got := mailscout.Dedupe([]string{"892-0300info@digitalbytes.tv", "info@digitalbytes.tv"})

		assert.Equal(t, []string{"info@digitalbytes.tv"}, got)
	})

	t.Run("drops separator-prefixed variant", func(t *testing.T) {
		t.Parallel()

		got := mailscout.Dedupe([]string{"project.info@acme.com", "info@acme.com"})

		assert.Equal(t, []string{"info@acme.com"}, got)
	})

	t.Run("keeps same local part on different domains", func(t *testing.T) {
		t.Parallel()

		got := mailscout.Dedupe([]string{"sales@b.com", "sales@a.com"})

		assert.Equal(t, []string{"sales@a.com", "sales@b.com"}, got)
	})

	t.Run("prefers clean local part over noisy one", func(t *testing.T) {
		t.Parallel()

		got := mailscout.Dedupe([]string{"john2@acme.com", "sales@acme.com"})

		assert.Equal(t, []string{"sales@acme.com"}, got)
	})

	t.Run("does not treat dots as noise", func(t *testing.T) {
		t.Parallel()

		got := mailscout.Dedupe([]string{"john.doe@acme.com", "sales@acme.com"})

		assert.Equal(t, []string{"john.doe@acme.com", "sales@acme.com"}, got)
	})

	t.Run("keeps two noisy addresses when no clean one exists", func(t *testing.T) {
		t.Parallel()

		got := mailscout.Dedupe([]string{"a1@acme.com", "b2@acme.com"})

		assert.Equal(t, []string{"a1@acme.com", "b2@acme.com"}, got)
	})

	t.Run("applies pairwise rules without regrouping", func(t *testing.T) {
		t.Parallel()

		got := mailscout.Dedupe([]string{"a1@acme.com", "b2@acme.com", "sales@acme.com"})

		assert.Equal(t, []string{"sales@acme.com"}, got)
	})

	t.Run("collapses case variants", func(t *testing.T) {
		t.Parallel()

		got := mailscout.Dedupe([]string{"Info@Acme.com", "info@acme.com"})

		assert.Equal(t, []string{"info@acme.com"}, got)
	})

	t.Run("returns empty for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, mailscout.Dedupe(nil))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		input := []string{
			"892-0300info@digitalbytes.tv",
			"info@digitalbytes.tv",
			"project.info@acme.com",
			"info@acme.com",
			"john.doe@acme.com",
			"x9@other.org",
			"y8@other.org",
		}

		once := mailscout.Dedupe(input)
		twice := mailscout.Dedupe(once)

		assert.Equal(t, once, twice)
	})
}
