package ideas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdea(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		idea, err := parseIdea(`{"name":"La Cremosa","description":"Queso y mas queso."}`)
		require.NoError(t, err)
		assert.Equal(t, "La Cremosa", idea.Name)
		assert.Equal(t, "Queso y mas queso.", idea.Description)
	})

	t.Run("markdown fences stripped", func(t *testing.T) {
		idea, err := parseIdea("```json\n{\"name\":\"La Cremosa\",\"description\":\"Queso.\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "La Cremosa", idea.Name)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseIdea("una pizza muy rica")
		assert.ErrorIs(t, err, ErrBadResponse)
	})

	t.Run("missing keys", func(t *testing.T) {
		_, err := parseIdea(`{"name":"La Cremosa"}`)
		assert.ErrorIs(t, err, ErrBadResponse)
	})
}

func TestGenerateRequiresKey(t *testing.T) {
	c := NewClient("")
	_, err := c.GeneratePizzaIdea(context.Background(), []string{"queso"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
