package tip

type TrophyTip struct {
	ID        string `json:"id" bson:"id"`
	UserID    string `json:"userId" bson:"user_id"`
	Username  string `json:"username" bson:"username"`
	Tip       string `json:"tip" bson:"tip"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

type SubmitTipRequest struct {
	Tip string `json:"tip"`
}
