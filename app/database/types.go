package database

import (
	"time"
)

// SyncRun is one recorded ingestion pass.
type SyncRun struct {
	ID            int64      `json:"id"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
	TotalProducts int        `json:"total_products"`
	Status        string     `json:"status"` // running, success, failed, canceled
}

// FeedResult is one feed's outcome within a run.
type FeedResult struct {
	ID       int64  `json:"id"`
	RunID    int64  `json:"run_id"`
	FeedName string `json:"feed_name"`
	FeedID   string `json:"feed_id"`
	Fetched  int    `json:"fetched"`
	Kept     int    `json:"kept"`
	Error    string `json:"error,omitempty"`
}
