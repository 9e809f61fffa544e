package video

type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	GameID    string `json:"gameId"`
	EmbedURL  string `json:"embedUrl"`
	Uploader  string `json:"uploader,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

const StatusPendingReview = "pending_review"

type Submission struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	VideoID   string `json:"videoId"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

type SubmitVideoRequest struct {
	URL string `json:"url"`
}
