package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracklet-app/tracklet/internal/models"
)

func filterFixture() []models.Application {
	return []models.Application{
		{ID: "1", Company: "Acme Corp", Position: "Backend Engineer", Status: models.StatusApplied},
		{ID: "2", Company: "Globex", Position: "Data Scientist", Status: models.StatusInterviewing},
		{ID: "3", Company: "Initech", Position: "Platform Engineer", Status: models.StatusOffered},
		{ID: "4", Company: "Hooli", Position: "Designer", Status: models.StatusRejected},
	}
}

func TestFilter_EmptyQueryAndAllStatusIsIdentity(t *testing.T) {
	apps := filterFixture()

	assert.Equal(t, apps, Filter(apps, "", StatusAll))
	assert.Equal(t, apps, Filter(apps, "", ""))
}

func TestFilter_MatchesCompanyAndPositionCaseInsensitively(t *testing.T) {
	apps := filterFixture()

	byCompany := Filter(apps, "ACME", StatusAll)
	assert.Len(t, byCompany, 1)
	assert.Equal(t, "1", byCompany[0].ID)

	byPosition := Filter(apps, "engineer", StatusAll)
	assert.Len(t, byPosition, 2)
	assert.Equal(t, "1", byPosition[0].ID)
	assert.Equal(t, "3", byPosition[1].ID)
}

func TestFilter_StatusIsExactMatch(t *testing.T) {
	apps := filterFixture()

	offered := Filter(apps, "", models.StatusOffered)
	assert.Len(t, offered, 1)
	assert.Equal(t, "3", offered[0].ID)

	assert.Empty(t, Filter(apps, "", "offered"), "status match is exact, not case-folded")
}

func TestFilter_CombinesQueryAndStatus(t *testing.T) {
	apps := filterFixture()

	got := Filter(apps, "engineer", models.StatusApplied)
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilter_IsPureAndIdempotent(t *testing.T) {
	apps := filterFixture()
	original := filterFixture()

	first := Filter(apps, "engineer", StatusAll)
	second := Filter(apps, "engineer", StatusAll)

	assert.Equal(t, first, second)
	assert.Equal(t, original, apps, "input snapshot is never modified")

	assert.Equal(t, first, Filter(first, "engineer", StatusAll))
}

func TestFilter_NoMatches(t *testing.T) {
	assert.Empty(t, Filter(filterFixture(), "umbrella", StatusAll))
}
