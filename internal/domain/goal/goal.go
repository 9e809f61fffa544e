package goal

type TrophyGoal struct {
	ID          string `json:"id" bson:"id"`
	UserID      string `json:"userId" bson:"user_id"`
	Username    string `json:"username" bson:"username"`
	Goal        string `json:"goal" bson:"goal"`
	IsCompleted bool   `json:"isCompleted" bson:"is_completed"`
	Timestamp   int64  `json:"timestamp" bson:"timestamp"`
}

type AddGoalRequest struct {
	Goal string `json:"goal"`
}
