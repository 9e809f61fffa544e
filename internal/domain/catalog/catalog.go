// Package catalog holds the static reference data shared by every user:
// games, badges, weekly challenges, the hunter directory and community videos.
package catalog

import (
	"strings"
	"time"

	"trophyseeker/internal/domain/badge"
	"trophyseeker/internal/domain/challenge"
	"trophyseeker/internal/domain/game"
	"trophyseeker/internal/domain/user"
	"trophyseeker/internal/domain/video"
)

// DirectoryUser is a simulated hunter that can be searched, befriended and compared.
type DirectoryUser struct {
	User  user.FriendUser
	Stats user.Stats
}

// SimulatedSenderUsername is the hunter whose request every new user finds waiting.
const SimulatedSenderUsername = "TrophyTitan"

var Games = []game.Game{
	{ID: "hfw", Name: "Horizon Forbidden West"},
	{ID: "gof", Name: "God of War Ragnarök"},
	{ID: "spm", Name: "Marvel's Spider-Man 2"},
	{ID: "er", Name: "Elden Ring"},
	{ID: "rdr2", Name: "Red Dead Redemption 2"},
	{ID: "tlou2", Name: "The Last of Us Part II"},
	{ID: "ff7r", Name: "Final Fantasy VII Rebirth"},
}

var ChallengeBadges = []badge.Badge{
	{ID: "weekly-challenger", Name: "Weekly Challenger", Icon: "🌟", Description: "Completed a weekly trophy challenge."},
	{ID: "multi-game-master", Name: "Multi-Game Master", Icon: "🎮", Description: "Completed a cross-game challenge."},
	{ID: "speedrun-ace", Name: "Speedrun Ace", Icon: "⏱️", Description: "Completed a time-based challenge."},
	{ID: "community-hero", Name: "Community Hero", Icon: "💖", Description: "Contributed to a community objective."},
}

var Badges = append([]badge.Badge{
	{ID: "master-hunter", Name: "Master Hunter", Icon: "🏅", Description: "Achieved 5+ Platinum Trophies!"},
	{ID: "tip-contributor", Name: "Community Contributor", Icon: "🤝", Description: "Shared 10+ helpful trophy tips."},
	{ID: "speed-runner", Name: "Speed Demon", Icon: "⚡", Description: "Completed a game within its speedrun trophy time."},
	{ID: "collectible-king", Name: "Collectible King", Icon: "👑", Description: "Found all collectibles in three different games."},
	{ID: "storyteller", Name: "Storyteller", Icon: "📖", Description: "Submitted a video guide to the Video Hub."},
	{ID: "first-goal", Name: "Goal Setter", Icon: "🏆", Description: "Set your first trophy goal!"},
}, ChallengeBadges...)

var Challenges = []challenge.Challenge{
	{
		ID:                "challenge-1",
		Name:              "The Relic Hunter",
		Description:       "Find 10 unique collectibles in any single game.",
		BadgeID:           "weekly-challenger",
		TrophyGoalExample: `Find all "Vistas" in Horizon Forbidden West.`,
	},
	{
		ID:                "challenge-2",
		Name:              "Combat Prowess",
		Description:       "Defeat 5 mini-bosses without taking damage in one session.",
		BadgeID:           "weekly-challenger",
		TrophyGoalExample: "Defeat 5 Berserkers in God of War Ragnarök without being hit (easy difficulty allowed).",
	},
	{
		ID:                "challenge-3",
		Name:              "Speed Demon Sprint",
		Description:       "Complete any story mission or side quest in under 15 minutes.",
		BadgeID:           "speedrun-ace",
		TrophyGoalExample: `Complete "Grand Central Station" FNSM request in Spider-Man 2 in under 15 minutes.`,
	},
	{
		ID:                "challenge-4",
		Name:              "The Explorer's Path",
		Description:       "Uncover 5 unexplored map areas across two different games.",
		BadgeID:           "multi-game-master",
		TrophyGoalExample: "Reveal 2 undiscovered regions in Elden Ring and 3 in Horizon Forbidden West.",
	},
	{
		ID:                "challenge-5",
		Name:              "Flawless Victory",
		Description:       "Achieve a flawless victory (no damage taken) against a regular enemy group of 3+ foes.",
		BadgeID:           "weekly-challenger",
		TrophyGoalExample: "Clear an enemy camp in Ghost of Tsushima without taking damage.",
	},
	{
		ID:                "challenge-6",
		Name:              "Community Contributor Bonus",
		Description:       "Submit 3 helpful trophy tips to the community forum.",
		BadgeID:           "community-hero",
		TrophyGoalExample: "Share tips for challenging trophies in Final Fantasy VII Rebirth.",
	},
	{
		ID:                "challenge-7",
		Name:              "Gold Hoarder",
		Description:       "Collect 50,000 in-game currency across any game.",
		BadgeID:           "weekly-challenger",
		TrophyGoalExample: "Farm Glimmer in Destiny 2 or craft valuable items in Red Dead Redemption 2.",
	},
}

var Directory = []DirectoryUser{
	{
		User: user.FriendUser{ID: "dummy_user_1", Username: "PlatinumPro"},
		Stats: user.Stats{
			TipsCount: 15, GoalsCompleted: 8, GoalsTotal: 10, BadgesEarned: 4,
			GameTrophyCounts: map[string]user.GameTrophyCounts{
				"hfw": {Platinum: 1, Gold: 3, Silver: 8, Bronze: 15},
				"gof": {Platinum: 1, Gold: 4, Silver: 10, Bronze: 20},
				"spm": {Platinum: 1, Gold: 5, Silver: 12, Bronze: 25},
				"er":  {Platinum: 0, Gold: 2, Silver: 6, Bronze: 14},
			},
		},
	},
	{
		User: user.FriendUser{ID: "dummy_user_2", Username: SimulatedSenderUsername},
		Stats: user.Stats{
			TipsCount: 20, GoalsCompleted: 12, GoalsTotal: 15, BadgesEarned: 6,
			GameTrophyCounts: map[string]user.GameTrophyCounts{
				"hfw":   {Platinum: 1, Gold: 5, Silver: 12, Bronze: 28},
				"gof":   {Platinum: 1, Gold: 6, Silver: 15, Bronze: 30},
				"rdr2":  {Platinum: 0, Gold: 2, Silver: 7, Bronze: 18},
				"tlou2": {Platinum: 1, Gold: 4, Silver: 9, Bronze: 22},
				"ff7r":  {Platinum: 0, Gold: 3, Silver: 5, Bronze: 11},
			},
		},
	},
	{
		User: user.FriendUser{ID: "dummy_user_3", Username: "HiddenGemHunter"},
		Stats: user.Stats{
			TipsCount: 5, GoalsCompleted: 3, GoalsTotal: 5, BadgesEarned: 2,
			GameTrophyCounts: map[string]user.GameTrophyCounts{
				"spm": {Platinum: 0, Gold: 1, Silver: 4, Bronze: 10},
				"er":  {Platinum: 0, Gold: 0, Silver: 2, Bronze: 8},
				"hfw": {Platinum: 0, Gold: 1, Silver: 3, Bronze: 9},
			},
		},
	},
	{
		User: user.FriendUser{ID: "dummy_user_4", Username: "AchievementAddict"},
		Stats: user.Stats{
			TipsCount: 10, GoalsCompleted: 7, GoalsTotal: 8, BadgesEarned: 3,
			GameTrophyCounts: map[string]user.GameTrophyCounts{
				"gof":  {Platinum: 0, Gold: 3, Silver: 7, Bronze: 14},
				"rdr2": {Platinum: 0, Gold: 1, Silver: 5, Bronze: 12},
				"spm":  {Platinum: 1, Gold: 2, Silver: 4, Bronze: 17},
			},
		},
	},
	{
		User: user.FriendUser{ID: "dummy_user_5", Username: "NoobToPro"},
		Stats: user.Stats{
			TipsCount: 2, GoalsCompleted: 1, GoalsTotal: 3, BadgesEarned: 1,
			GameTrophyCounts: map[string]user.GameTrophyCounts{
				"hfw": {Platinum: 0, Gold: 0, Silver: 1, Bronze: 5},
			},
		},
	},
	{
		User: user.FriendUser{ID: "dummy_user_6", Username: "CompletionistKid"},
		Stats: user.Stats{
			TipsCount: 8, GoalsCompleted: 6, GoalsTotal: 7, BadgesEarned: 3,
			GameTrophyCounts: map[string]user.GameTrophyCounts{
				"ff7r":  {Platinum: 1, Gold: 2, Silver: 6, Bronze: 10},
				"tlou2": {Platinum: 0, Gold: 2, Silver: 5, Bronze: 13},
			},
		},
	},
}

type videoEntry struct {
	video.Video
	age time.Duration
}

const day = 24 * time.Hour

var videos = []videoEntry{
	{video.Video{ID: "vid1", Title: "Horizon Forbidden West - Platinum Trophy Guide Playlist", GameID: "hfw", EmbedURL: "https://www.youtube.com/embed/Qy2LCXdwL4g?list=PLRr5L69yg_kHVWTpULbBzwWvrIffsxqga", Uploader: "PowerPyx"}, 7 * day},
	{video.Video{ID: "vid2", Title: "Road To Platinum | God of War Ragnarok (Trophy Overview)", GameID: "gof", EmbedURL: "https://www.youtube.com/embed/PLKu5GD9C9s", Uploader: "Community Guide"}, 14 * day},
	{video.Video{ID: "vid3", Title: "Marvel's Spider-Man 2 - Trophy Guide Playlist", GameID: "spm", EmbedURL: "https://www.youtube.com/embed/igxfvqtbxJk?list=PLRr5L69yg_kElD-hCCAzHRj8BaQ2aUhf_", Uploader: "PowerPyx"}, 3 * day},
	{video.Video{ID: "vid4", Title: "Elden Ring - Trophy Guide Playlist", GameID: "er", EmbedURL: "https://www.youtube.com/embed/w7yokwV9pdY?list=PLRr5L69yg_kEbLZlu-NZoCVXd472Lt8AE", Uploader: "PowerPyx"}, 20 * day},
	{video.Video{ID: "vid5", Title: "Red Dead Redemption 2 - Trophy Guide Playlist", GameID: "rdr2", EmbedURL: "https://www.youtube.com/embed/b7lEYGUC2so?list=PLRr5L69yg_kEuUIiI4ATYjzsBNsEOqENb", Uploader: "PowerPyx"}, 30 * day},
	{video.Video{ID: "vid6", Title: "The Last of Us Part 2 - Trophy Guide Playlist", GameID: "tlou2", EmbedURL: "https://www.youtube.com/embed/Azm1-przaGk?list=PLRr5L69yg_kEosKKuT7GoYinTxC79AYJ4", Uploader: "PowerPyx"}, 10 * day},
	{video.Video{ID: "vid7", Title: "Final Fantasy VII Rebirth - Trophy Guide Playlist", GameID: "ff7r", EmbedURL: "https://www.youtube.com/embed/0oAiL5fcop8?list=PLRr5L69yg_kGQsW1DoBGK603lkEpetyo6", Uploader: "PowerPyx"}, 5 * day},
}

// Videos returns the community videos with timestamps relative to now.
func Videos(now time.Time) []video.Video {
	out := make([]video.Video, 0, len(videos))
	for _, v := range videos {
		item := v.Video
		item.Timestamp = now.Add(-v.age).UnixMilli()
		out = append(out, item)
	}
	return out
}

func GameByID(id string) (game.Game, bool) {
	for _, g := range Games {
		if g.ID == id {
			return g, true
		}
	}
	return game.Game{}, false
}

func BadgeByID(id string) (badge.Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return badge.Badge{}, false
}

func DirectoryByID(id string) (DirectoryUser, bool) {
	for _, d := range Directory {
		if d.User.ID == id {
			return d, true
		}
	}
	return DirectoryUser{}, false
}

func DirectoryByUsername(username string) (DirectoryUser, bool) {
	for _, d := range Directory {
		if d.User.Username == username {
			return d, true
		}
	}
	return DirectoryUser{}, false
}

// SearchGames filters games by a case-insensitive name substring.
func SearchGames(query string) []game.Game {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]game.Game, 0, len(Games))
	for _, g := range Games {
		if strings.Contains(strings.ToLower(g.Name), q) {
			out = append(out, g)
		}
	}
	return out
}
