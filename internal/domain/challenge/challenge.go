package challenge

type Challenge struct {
	ID                string `json:"id" bson:"id"`
	Name              string `json:"name" bson:"name"`
	Description       string `json:"description" bson:"description"`
	BadgeID           string `json:"badgeId" bson:"badge_id"`
	TrophyGoalExample string `json:"trophyGoalExample,omitempty" bson:"trophy_goal_example,omitempty"`
}

// UserChallenge is a catalog challenge instantiated for one user and one week.
type UserChallenge struct {
	Challenge          `bson:",inline"`
	IsCompleted        bool   `json:"isCompleted" bson:"is_completed"`
	IsClaimed          bool   `json:"isClaimed" bson:"is_claimed"`
	CompletedTimestamp int64  `json:"completedTimestamp,omitempty" bson:"completed_timestamp,omitempty"`
	WeekID             string `json:"weekId" bson:"week_id"`
}
