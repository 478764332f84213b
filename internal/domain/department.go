package domain

import (
	"strings"
	"time"
)

// Department receives tickets. Name identifies it case-insensitively.
type Department struct {
	Name        string
	Description string
	Contact     string
	CreatedAt   time.Time
}

// Key returns the lookup key for the department.
func (d *Department) Key() string {
	return DepartmentKey(d.Name)
}

// DepartmentKey normalizes a department name for lookups.
func DepartmentKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
