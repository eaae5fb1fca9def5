package category

import (
	"errors"
	"time"
)

type CategoryType string

const (
	TypeIncome  CategoryType = "income"
	TypeExpense CategoryType = "expense"
)

var (
	ErrNotFound = errors.New("category not found")
	// ErrTooDeep is returned when a child category is attached to another
	// child. The tree is two levels: parents are aggregation buckets, only
	// children appear on transactions and budgets.
	ErrTooDeep = errors.New("category nesting deeper than two levels is not supported")
)

type Category struct {
	ID   string
	Name string
	// Type is set on top-level categories; children inherit it from their
	// parent and may leave it empty.
	Type       CategoryType
	ParentID   string
	OrderIndex int
	CreatedAt  time.Time
}

// IsParent reports whether the category is a top-level aggregation bucket.
func (c Category) IsParent() bool {
	return c.ParentID == ""
}

// ResolveType returns the category's effective type, following the parent
// link when the child carries none.
func ResolveType(c Category, byID map[string]Category) CategoryType {
	if c.Type != "" {
		return c.Type
	}
	if c.ParentID != "" {
		if parent, ok := byID[c.ParentID]; ok {
			return parent.Type
		}
	}
	return ""
}

// ByID indexes categories for parent lookups and type resolution.
func ByID(categories []Category) map[string]Category {
	m := make(map[string]Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}

// Children returns the child categories of the given parent, preserving order.
func Children(parentID string, categories []Category) []Category {
	var children []Category
	for _, c := range categories {
		if c.ParentID == parentID {
			children = append(children, c)
		}
	}
	return children
}

// Parents returns the top-level categories, preserving order.
func Parents(categories []Category) []Category {
	var parents []Category
	for _, c := range categories {
		if c.IsParent() {
			parents = append(parents, c)
		}
	}
	return parents
}
