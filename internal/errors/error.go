package errors

import "errors"

var (
	ErrUserNotFound    = errors.New("user was not found")
	ErrEmptyUsername   = errors.New("username must not be empty")
	ErrSessionNotFound = errors.New("session was not found")
	ErrKeyNotFound     = errors.New("key was not found")
	ErrInternal        = errors.New("internal error")

	ErrFriendRequestExists   = errors.New("friend request already pending or already friends")
	ErrFriendRequestNotFound = errors.New("friend request not found")
	ErrFriendNotFound        = errors.New("friend not found")
	ErrPsnAlreadyConnected   = errors.New("psn account already connected")
	ErrPsnNotConnected       = errors.New("psn account is not connected")

	ErrChallengeNotFound     = errors.New("challenge not found for the current week")
	ErrChallengeNotCompleted = errors.New("challenge is not completed yet")
	ErrBadgeAlreadyClaimed   = errors.New("badge already claimed")
	ErrBadgeNotFound         = errors.New("badge not found")

	ErrEmptyGoal        = errors.New("goal must not be empty")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrEmptyTip         = errors.New("tip must not be empty")
	ErrEmptyVideoLink   = errors.New("video link cannot be empty")
	ErrInvalidVideoLink = errors.New("please enter a valid YouTube video URL")

	ErrGameNotFound       = errors.New("game not found")
	ErrNoOpenGoals        = errors.New("you need to set some uncompleted trophy goals first to generate a roadmap")
	ErrOptimizationGames  = errors.New("select two or three different games to optimize")
	ErrEmptyMessage       = errors.New("message must not be empty")
	ErrGuidanceInput      = errors.New("please select a game and describe your progress")
	ErrCanceled           = errors.New("request canceled")
	ErrNoContent          = errors.New("no content could be generated")
	ErrMalformedGuidance  = errors.New("failed to parse the AI guidance response")
	ErrMissingAPIKey      = errors.New("gemini api key is not set or is still a placeholder")
	ErrUnknownStoreDriver = errors.New("unknown storage driver")
)
