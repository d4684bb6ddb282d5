package models

// AdminStats сводка для дашборда админки.
type AdminStats struct {
	Clients        int `db:"clients" json:"clients"`
	Professionals  int `db:"professionals" json:"professionals"`
	Reviews        int `db:"reviews" json:"reviews"`
	BlockedReviews int `db:"blocked_reviews" json:"blocked_reviews"`
	OpenReports    int `db:"open_reports" json:"open_reports"`
	OpenInbox      int `db:"open_inbox" json:"open_inbox"`
}
