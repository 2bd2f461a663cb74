package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `
<html><body>
<p class="text-body-medium-bold pr1 text-heading-large">1,234 profile viewers</p>
<section>
  <div class="profile-view-card">
    <span class="profile-view-card__name">John Doe</span>
    <span class="profile-view-card__headline">Engineer at Acme</span>
    <span class="profile-view-card__company">Acme</span>
    <span class="profile-view-card__timestamp">2h ago</span>
  </div>
  <li class="artdeco-list__item">
    <span class="artdeco-entity-lockup__title">Someone at Google</span>
    <span class="artdeco-entity-lockup__subtitle"></span>
    <span class="artdeco-entity-lockup__metadata">Google</span>
    <span class="member-analytics-addon-summary__list-item-date">1d ago</span>
  </li>
</section>
<section>
  <h2>Viewers you can browse for free</h2>
  <div class="profile-view-card">
    <span class="profile-view-card__name">John Doe</span>
    <span class="profile-view-card__headline">Engineer at Acme</span>
    <span class="profile-view-card__company">Acme</span>
    <span class="profile-view-card__timestamp">2h ago</span>
  </div>
</section>
</body></html>`

func TestParseProfileViews(t *testing.T) {
	result := ParseProfileViews(sampleHTML)

	assert.Equal(t, 1234, result.TotalViewers)

	// 同一访客出现在两个区块，按四元组去重
	require.Len(t, result.Viewers, 2)
	assert.Equal(t, "John Doe", result.Viewers[0].Name)
	assert.Equal(t, "Engineer at Acme", result.Viewers[0].Headline)
	assert.Equal(t, "2h ago", result.Viewers[0].ViewedAgo)
	assert.Equal(t, "Someone at Google", result.Viewers[1].Name)
	assert.Equal(t, "Google", result.Viewers[1].Company)
}

func TestParseProfileViewsEmptyPage(t *testing.T) {
	result := ParseProfileViews("<html><body><p>Nothing here</p></body></html>")
	assert.Equal(t, 0, result.TotalViewers)
	assert.Empty(t, result.Viewers)
}

func TestParseProfileViewsSkipsBlankCards(t *testing.T) {
	html := `<html><body>
	<div class="profile-view-card">
	  <span class="profile-view-card__name"></span>
	  <span class="profile-view-card__headline"></span>
	  <span class="profile-view-card__company"></span>
	</div>
	</body></html>`

	result := ParseProfileViews(html)
	assert.Empty(t, result.Viewers)
}

func TestParseProfileViewsTotalWithoutCards(t *testing.T) {
	html := `<html><body>
	<p class="text-body-medium-bold pr1 text-heading-large">87</p>
	</body></html>`

	result := ParseProfileViews(html)
	assert.Equal(t, 87, result.TotalViewers)
	assert.Empty(t, result.Viewers)
}
