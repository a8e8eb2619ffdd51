package httpapi

import "time"

// jobRun 為一次手動或自動排程的執行紀錄。
type jobRun struct {
	ID             string
	Kind           string
	TriggeredBy    string
	Start          time.Time
	End            time.Time
	Provider       string
	CollectRan     bool
	CollectOK      bool
	CollectErr     string
	Saved          map[string]int
	InsightsSource string
	InsightsErr    string
	DigestSent     bool
	Report         string
	Err            string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type backfillRequest struct {
	Days int `json:"days"`
}
