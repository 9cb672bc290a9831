package contract

// LeaderboardRequest records a finished quiz. Score and Total are stored as
// submitted.
type LeaderboardRequest struct {
	Subject string `json:"subject" validate:"required,max=120"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
}

type LeaderboardEntryResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Subject   string `json:"subject"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	CreatedAt string `json:"created_at"`
	UserName  string `json:"user_name"`
}
