package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("technology")
	require.NoError(t, err)
	assert.Equal(t, CategoryTechnology, c)

	c, err = ParseCategory("all")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	_, err = ParseCategory("weather")
	assert.Error(t, err)

	_, err = ParseCategory("")
	assert.Error(t, err)
}

func TestCategories_FixedOrder(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 7)
	assert.Equal(t, CategoryGeneral, cats[0])
	assert.Equal(t, CategoryScience, cats[6])
	assert.NotContains(t, cats, CategoryAll)
}

func TestPreferenceProfile_Weight(t *testing.T) {
	empty := PreferenceProfile{}
	assert.Equal(t, 0, empty.TotalClicks())
	assert.Equal(t, 0.0, empty.Weight(CategorySports))

	profile := PreferenceProfile{
		CategoryTechnology: 3,
		CategorySports:     1,
	}
	assert.Equal(t, 4, profile.TotalClicks())
	assert.InDelta(t, 0.75, profile.Weight(CategoryTechnology), 1e-9)
	assert.InDelta(t, 0.25, profile.Weight(CategorySports), 1e-9)
	assert.Equal(t, 0.0, profile.Weight(CategoryHealth))
}

func TestArticle_Displayable(t *testing.T) {
	assert.True(t, Article{Title: "t", ImageURL: "i"}.Displayable())
	assert.False(t, Article{Title: "", ImageURL: "i"}.Displayable())
	assert.False(t, Article{Title: "t", ImageURL: ""}.Displayable())
}
