package apotheek_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/semdegroot/apotheek"
)

func TestNormalizeSpace(t *testing.T) {
	t.Parallel()

	t.Run("collapses runs of whitespace and trims", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Neem niet meer dan 4000 mg", apotheek.NormalizeSpace("  Neem\tniet \n meer   dan 4000 mg "))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		once := apotheek.NormalizeSpace("  twee   woorden\n")
		assert.Equal(t, once, apotheek.NormalizeSpace(once))
	})

	t.Run("returns empty string for whitespace-only input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, apotheek.NormalizeSpace(" \t\n "))
	})
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	t.Run("lower-cases after collapsing", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "vind een apotheek", apotheek.NormalizeKey("  Vind  EEN\nApotheek "))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		once := apotheek.NormalizeKey("Vraag het de Webapotheker")
		assert.Equal(t, once, apotheek.NormalizeKey(once))
	})
}
