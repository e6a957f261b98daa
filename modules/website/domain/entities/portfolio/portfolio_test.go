package portfolio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexdi/studio/modules/website/domain/entities/portfolio"
)

func TestServiceFor_ClassifiesByFirstKnownTag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tags []string
		want portfolio.ServiceID
	}{
		{"banner tag", []string{"Banner", "Anime", "Discord"}, portfolio.ServiceBanners},
		{"anime header maps to banners", []string{"Anime Header"}, portfolio.ServiceBanners},
		{"social media maps to banners", []string{"Social Media"}, portfolio.ServiceBanners},
		{"thumbnail", []string{"Thumbnail"}, portfolio.ServiceThumbnails},
		{"twitch emotes", []string{"Twitch Emotes"}, portfolio.ServiceEmotes},
		{"wallpaper singular and plural", []string{"Wallpapers"}, portfolio.ServiceWallpapers},
		{"logo", []string{"Logo"}, portfolio.ServiceLogos},
		{"unknown tags fall through", []string{"Anime banner", "Youtube banner"}, portfolio.ServiceOther},
		{"no tags", nil, portfolio.ServiceOther},
		{"first recognized wins", []string{"Mystery", "Thumbnail", "Banner"}, portfolio.ServiceThumbnails},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := portfolio.ServiceFor(portfolio.Project{ID: "p", Tags: tc.tags})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildCategories_OrderAndGrouping(t *testing.T) {
	t.Parallel()

	designer := portfolio.Designer{
		ID:   "Mix White",
		Name: "Mix White",
		Projects: []portfolio.Project{
			{ID: "1", Tags: []string{"Social Media"}},
			{ID: "2", Tags: []string{"Thumbnail"}},
			{ID: "3", Tags: []string{"Anime Header"}},
			{ID: "4", Tags: []string{"Mystery"}},
			{ID: "5", Tags: []string{"Logo"}},
		},
	}

	categories := portfolio.BuildCategories(designer)
	require.Len(t, categories, 5)

	assert.Equal(t, "all", categories[0].ID)
	assert.Equal(t, "All", categories[0].Label)
	assert.Len(t, categories[0].Projects, 5)

	// Service tabs follow first-encounter order.
	assert.Equal(t, "banners", categories[1].ID)
	assert.Len(t, categories[1].Projects, 2)
	assert.Equal(t, "thumbnails", categories[2].ID)
	assert.Equal(t, "logos", categories[3].ID)

	// "Other Work" always comes last.
	assert.Equal(t, "other", categories[4].ID)
	assert.Equal(t, "Other Work", categories[4].Label)
	assert.Equal(t, "4", categories[4].Projects[0].ID)
}

func TestBuildCategories_EmptyDesigner(t *testing.T) {
	t.Parallel()

	categories := portfolio.BuildCategories(portfolio.Designer{ID: "empty"})
	assert.Empty(t, categories)
}

func TestLightbox_WrapsAround(t *testing.T) {
	t.Parallel()

	items := []portfolio.Project{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	lb, err := portfolio.OpenLightbox(items, 2)
	require.NoError(t, err)
	assert.Equal(t, "c", lb.Current().ID)

	assert.Equal(t, "a", lb.Next().ID, "next from the last item wraps to the first")
	assert.Equal(t, "c", lb.Prev().ID, "prev from the first item wraps to the last")
	assert.Equal(t, "b", lb.Prev().ID)
}

func TestLightbox_SingleItemStaysPut(t *testing.T) {
	t.Parallel()

	lb, err := portfolio.OpenLightbox([]portfolio.Project{{ID: "only"}}, 0)
	require.NoError(t, err)
	assert.Equal(t, "only", lb.Next().ID)
	assert.Equal(t, "only", lb.Prev().ID)
}

func TestLightbox_InvalidIndexFallsBackToStart(t *testing.T) {
	t.Parallel()

	lb, err := portfolio.OpenLightbox([]portfolio.Project{{ID: "a"}, {ID: "b"}}, 99)
	require.NoError(t, err)
	assert.Equal(t, 0, lb.Index())

	_, err = portfolio.OpenLightbox(nil, 0)
	assert.ErrorIs(t, err, portfolio.ErrEmptyGallery)
}

func TestCarousel_JumpClampsOffsetWraps(t *testing.T) {
	t.Parallel()

	c, err := portfolio.NewCarousel(4)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Jump(99))
	assert.Equal(t, 0, c.Jump(-5))

	assert.Equal(t, 3, c.Offset(-1), "wraps backwards")
	assert.Equal(t, 1, c.Offset(2))
	assert.Equal(t, 0, c.Offset(7), "large deltas wrap modulo size")

	_, err = portfolio.NewCarousel(0)
	assert.ErrorIs(t, err, portfolio.ErrEmptyGallery)
}
