package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Ghosted"))
	assert.False(t, ValidStatus("applied"), "statuses are case-sensitive")
	assert.False(t, ValidStatus(""))
}

func TestBeforeCreate_AssignsIDOnce(t *testing.T) {
	app := &Application{}
	assert.NoError(t, app.BeforeCreate(&gorm.DB{}))
	assert.NotEmpty(t, app.ID)

	id := app.ID
	assert.NoError(t, app.BeforeCreate(&gorm.DB{}))
	assert.Equal(t, id, app.ID, "an existing id is never replaced")
}
