package project

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestProject_Validate(t *testing.T) {
	assert.NoError(t, Project{Status: StatusActive}.Validate())
	assert.NoError(t, Project{Status: StatusOnHold}.Validate())
	assert.NoError(t, Project{}.Validate())
	assert.ErrorIs(t, Project{Status: "cancelled"}.Validate(), ErrInvalidStatus)
}

func TestOverlapping(t *testing.T) {
	start := date("2024-03-01")
	end := date("2024-04-01")

	projects := []Project{
		{ID: "before", StartDate: date("2024-01-01"), EndDate: date("2024-02-15")},
		{ID: "spanning", StartDate: date("2024-02-01"), EndDate: date("2024-05-01")},
		{ID: "inside", StartDate: date("2024-03-10"), EndDate: date("2024-03-20")},
		{ID: "after", StartDate: date("2024-04-01")},
		{ID: "open-ended", StartDate: date("2024-01-01")},
		{ID: "undated"},
	}

	got := Overlapping(projects, start, end)

	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"spanning", "inside", "open-ended", "undated"}, ids)
}
