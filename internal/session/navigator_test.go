package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrotie/ethio/internal/catalog"
)

func sampleListing(t *testing.T) catalog.Listing {
	t.Helper()
	l, ok := catalog.Default().Find("1")
	require.True(t, ok)
	return l
}

func TestNavigatorStartsOnHome(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, ViewHome, n.Current())
	_, ok := n.Selected()
	assert.False(t, ok)
}

func TestSetViewHasNoHistory(t *testing.T) {
	for _, a := range Views() {
		for _, b := range Views() {
			if a == ViewDetail || b == ViewDetail {
				continue
			}
			n := NewNavigator()
			require.NoError(t, n.SetView(a))
			require.NoError(t, n.SetView(b))
			assert.Equal(t, b, n.Current(), "%s -> %s", a, b)
		}
	}
}

func TestSetViewRejectsDetail(t *testing.T) {
	n := NewNavigator()
	require.NoError(t, n.SetView(ViewJobs))

	err := n.SetView(ViewDetail)
	assert.ErrorIs(t, err, ErrDetailRequiresSelection)
	assert.Equal(t, ViewJobs, n.Current())
}

func TestSetViewRejectsUnknown(t *testing.T) {
	n := NewNavigator()
	for _, v := range []View{View(-1), viewCount, View(42)} {
		err := n.SetView(v)
		assert.ErrorIs(t, err, ErrUnknownView)
		assert.Equal(t, ViewHome, n.Current())
	}
}

func TestBackFromDetailAlwaysLandsHome(t *testing.T) {
	l := sampleListing(t)
	for _, from := range Views() {
		if from == ViewDetail {
			continue
		}
		n := NewNavigator()
		require.NoError(t, n.SetView(from))
		n.SelectListingAndShow(l)
		require.Equal(t, ViewDetail, n.Current())

		n.Back()
		assert.Equal(t, ViewHome, n.Current(), "entered detail from %s", from)
	}
}

func TestBackFromOtherViews(t *testing.T) {
	tests := []struct {
		from View
		want View
	}{
		{ViewPost, ViewHome},
		{ViewHome, ViewHome},
		{ViewJobs, ViewJobs},
		{ViewMessages, ViewMessages},
		{ViewProfile, ViewProfile},
	}
	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			n := NewNavigator()
			require.NoError(t, n.SetView(tt.from))
			n.Back()
			assert.Equal(t, tt.want, n.Current())
		})
	}
}

func TestSelectionRetainedAfterLeavingDetail(t *testing.T) {
	l := sampleListing(t)
	n := NewNavigator()
	n.SelectListingAndShow(l)
	n.Back()

	got, ok := n.Selected()
	require.True(t, ok)
	assert.Equal(t, l.ID, got.ID)

	other, _ := catalog.Default().Find("2")
	n.SelectListingAndShow(other)
	got, _ = n.Selected()
	assert.Equal(t, "2", got.ID)
}

func TestParseView(t *testing.T) {
	for _, v := range Views() {
		got, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	_, err := ParseView("explore")
	assert.ErrorIs(t, err, ErrUnknownView)
}

func TestShowsNavBar(t *testing.T) {
	assert.False(t, ViewDetail.ShowsNavBar())
	assert.False(t, ViewPost.ShowsNavBar())
	assert.True(t, ViewHome.ShowsNavBar())
	assert.True(t, ViewProfile.ShowsNavBar())
}
