package repository

import "context"

// /db-status の中身
type DBStatus struct {
	Database  string `json:"database"`
	User      string `json:"user"`
	Version   string `json:"version"`
	UserCount int64  `json:"user_count"`
}

type StatusRepository interface {
	Status(ctx context.Context) (DBStatus, error)
}
