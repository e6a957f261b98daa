package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexdi/studio/modules/website/content"
)

func TestPricingCategories_ParseAndShape(t *testing.T) {
	t.Parallel()

	categories, err := content.PricingCategories()
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	for _, category := range categories {
		assert.NotEmpty(t, category.ID)
		assert.NotEmpty(t, category.Label)
		require.Len(t, category.Tiers, 3, "every service has starter/standard/premium tiers")
		for _, tier := range category.Tiers {
			assert.NotEmpty(t, tier.ID)
			assert.Positive(t, tier.PricePence)
			assert.NotEmpty(t, tier.Includes)
		}
		// Exactly one highlighted tier per category.
		highlighted := 0
		for _, tier := range category.Tiers {
			if tier.Highlight {
				highlighted++
			}
		}
		assert.Equal(t, 1, highlighted, category.ID)
	}
}

func TestPricingTier_PriceLabel(t *testing.T) {
	t.Parallel()

	categories, err := content.PricingCategories()
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	assert.Equal(t, "£15.00", categories[0].Tiers[0].PriceLabel())
}

func TestDesigners_ParseAndUniqueProjects(t *testing.T) {
	t.Parallel()

	designers, err := content.Designers()
	require.NoError(t, err)
	require.NotEmpty(t, designers)

	seen := map[string]bool{}
	for _, designer := range designers {
		assert.NotEmpty(t, designer.ID)
		assert.NotEmpty(t, designer.Projects)
		for _, project := range designer.Projects {
			assert.False(t, seen[project.ID], "duplicate project id %s", project.ID)
			seen[project.ID] = true
			assert.NotEmpty(t, project.Preview)
		}
	}
}

func TestProducts_ParseAndVariants(t *testing.T) {
	t.Parallel()

	products, err := content.Products()
	require.NoError(t, err)
	require.NotEmpty(t, products)

	for _, item := range products {
		assert.NotEmpty(t, item.Slug)
		require.NotEmpty(t, item.Variants, item.Slug)
		assert.Positive(t, item.MinPrice().Amount(), item.Slug)
	}
}
