package project

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
	StatusOnHold    ProjectStatus = "on_hold"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrInvalidStatus = errors.New("invalid project status")
)

type Project struct {
	ID          string
	Name        string
	Description string
	Budget      decimal.Decimal
	Status      ProjectStatus
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
}

func (p Project) Validate() error {
	switch p.Status {
	case StatusActive, StatusCompleted, StatusOnHold, "":
		return nil
	default:
		return ErrInvalidStatus
	}
}

// Overlapping filters projects whose lifetime intersects [start, endExclusive).
// A project without dates is treated as always running.
func Overlapping(projects []Project, start, endExclusive time.Time) []Project {
	var matched []Project
	for _, p := range projects {
		if !p.StartDate.IsZero() && !p.StartDate.Before(endExclusive) {
			continue
		}
		if !p.EndDate.IsZero() && p.EndDate.Before(start) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}
