package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Run("strips bold markers", func(t *testing.T) {
		assert.Equal(t, "the claim is false", CleanText("the **claim** is **false**"))
	})

	t.Run("strips citation markers", func(t *testing.T) {
		assert.Equal(t, "per multiple sources", CleanText("per multiple sources [1][2]"))
	})

	t.Run("trims whitespace", func(t *testing.T) {
		assert.Equal(t, "text", CleanText("  text \n"))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"**bold** with [3] citation  ",
			"plain text",
			"1. Source: **Reuters** [1]\n2. Overall: credible",
			"",
		}
		for _, in := range inputs {
			once := CleanText(in)
			assert.Equal(t, once, CleanText(once))
		}
	})

	t.Run("leaves non-numeric brackets alone", func(t *testing.T) {
		assert.Equal(t, "[citation needed]", CleanText("[citation needed]"))
	})
}
