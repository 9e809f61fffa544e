package user

import "trophyseeker/internal/domain/challenge"

type FriendRequestStatus string

const (
	StatusPending  FriendRequestStatus = "pending"
	StatusAccepted FriendRequestStatus = "accepted"
	StatusDeclined FriendRequestStatus = "declined"
)

// FriendUser is the minimal identity kept in friend lists and search results.
type FriendUser struct {
	ID       string `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
}

type FriendRequest struct {
	ID               string              `json:"id" bson:"id"`
	SenderID         string              `json:"senderId" bson:"sender_id"`
	SenderUsername   string              `json:"senderUsername" bson:"sender_username"`
	ReceiverID       string              `json:"receiverId" bson:"receiver_id"`
	ReceiverUsername string              `json:"receiverUsername" bson:"receiver_username"`
	Status           FriendRequestStatus `json:"status" bson:"status"`
	Timestamp        int64               `json:"timestamp" bson:"timestamp"`
}

type GameTrophyCounts struct {
	Platinum int `json:"platinum" bson:"platinum"`
	Gold     int `json:"gold" bson:"gold"`
	Silver   int `json:"silver" bson:"silver"`
	Bronze   int `json:"bronze" bson:"bronze"`
}

func (c GameTrophyCounts) Total() int {
	return c.Platinum + c.Gold + c.Silver + c.Bronze
}

// User is the whole per-user record persisted under the username key.
// A nil collection means the stored record predates that field.
type User struct {
	ID                     string                      `json:"id" bson:"id"`
	Username               string                      `json:"username" bson:"username"`
	FriendRequestsSent     []FriendRequest             `json:"friendRequestsSent" bson:"friend_requests_sent"`
	FriendRequestsReceived []FriendRequest             `json:"friendRequestsReceived" bson:"friend_requests_received"`
	FriendsList            []FriendUser                `json:"friendsList" bson:"friends_list"`
	EarnedBadges           []string                    `json:"earnedBadges" bson:"earned_badges"`
	ActiveChallenges       []challenge.UserChallenge   `json:"activeChallenges" bson:"active_challenges"`
	GameTrophyCounts       map[string]GameTrophyCounts `json:"gameTrophyCounts" bson:"game_trophy_counts"`
	IsPsnConnected         bool                        `json:"isPsnConnected" bson:"is_psn_connected"`
}

// Identity returns the user as it appears in other users' friend lists.
func (u User) Identity() FriendUser {
	return FriendUser{ID: u.ID, Username: u.Username}
}

func (u User) IsFriend(id string) bool {
	for _, f := range u.FriendsList {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (u User) HasPendingSentTo(receiverID string) bool {
	for _, r := range u.FriendRequestsSent {
		if r.ReceiverID == receiverID && r.Status == StatusPending {
			return true
		}
	}
	return false
}

func (u User) HasPendingReceivedFrom(senderID string) bool {
	for _, r := range u.FriendRequestsReceived {
		if r.SenderID == senderID && r.Status == StatusPending {
			return true
		}
	}
	return false
}

func (u User) HasBadge(badgeID string) bool {
	for _, id := range u.EarnedBadges {
		if id == badgeID {
			return true
		}
	}
	return false
}

// Stats is the profile summary shown on stats and compare pages.
type Stats struct {
	TipsCount        int                         `json:"tipsCount"`
	GoalsCompleted   int                         `json:"goalsCompleted"`
	GoalsTotal       int                         `json:"goalsTotal"`
	BadgesEarned     int                         `json:"badgesEarned"`
	GameTrophyCounts map[string]GameTrophyCounts `json:"gameTrophyCounts"`
}
