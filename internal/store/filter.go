package store

import (
	"strings"

	"github.com/tracklet-app/tracklet/internal/models"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Filter narrows a snapshot's applications by a case-insensitive substring
// match on company and position, plus an optional exact status match. It is
// a pure transform: the input slice is never modified, and an empty query
// with status "all" (or "") returns an equal result set.
func Filter(apps []models.Application, query, status string) []models.Application {
	query = strings.ToLower(strings.TrimSpace(query))
	filterStatus := status != "" && status != StatusAll

	out := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if filterStatus && app.Status != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(app.Company), query) &&
			!strings.Contains(strings.ToLower(app.Position), query) {
			continue
		}
		out = append(out, app)
	}
	return out
}
