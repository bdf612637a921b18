package repository

import "time"

// Tab represents an open tab row.
type Tab struct {
	ID           string
	URL          string
	Title        string
	IsPrivate    bool
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Visit represents one navigation in the session visit log.
type Visit struct {
	ID        string
	TabID     *string
	URL       string
	Title     string
	IsPrivate bool
	VisitedAt time.Time
}
