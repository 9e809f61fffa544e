package delivery

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"trophyseeker/internal/bootstrap"
	authDelivery "trophyseeker/internal/delivery/auth"
	challengesDelivery "trophyseeker/internal/delivery/challenges"
	friendsDelivery "trophyseeker/internal/delivery/friends"
	goalsDelivery "trophyseeker/internal/delivery/goals"
	guidanceDelivery "trophyseeker/internal/delivery/guidance"
	plannerDelivery "trophyseeker/internal/delivery/planner"
	statsDelivery "trophyseeker/internal/delivery/stats"
	tipsDelivery "trophyseeker/internal/delivery/tips"
	videosDelivery "trophyseeker/internal/delivery/videos"
	"trophyseeker/internal/health"
	ownMiddleware "trophyseeker/internal/middleware"
	"trophyseeker/internal/random"
	"trophyseeker/internal/repository"
	challengesUC "trophyseeker/internal/usecase/challenges"
	friendsUC "trophyseeker/internal/usecase/friends"
	goalsUC "trophyseeker/internal/usecase/goals"
	guidanceUC "trophyseeker/internal/usecase/guidance"
	plannerUC "trophyseeker/internal/usecase/planner"
	"trophyseeker/internal/usecase/profile"
	sessionUC "trophyseeker/internal/usecase/session"
	statsUC "trophyseeker/internal/usecase/stats"
	tipsUC "trophyseeker/internal/usecase/tips"
	videosUC "trophyseeker/internal/usecase/videos"
)

type MainDeliveryHandler struct {
	Health *health.Checker

	session    *sessionUC.SessionUsecase
	auth       *authDelivery.AuthHandler
	friends    *friendsDelivery.FriendsHandler
	challenges *challengesDelivery.ChallengesHandler
	goals      *goalsDelivery.GoalsHandler
	tips       *tipsDelivery.TipsHandler
	videos     *videosDelivery.VideosHandler
	stats      *statsDelivery.StatsHandler
	planner    *plannerDelivery.PlannerHandler
	guidance   *guidanceDelivery.GuidanceHandler
	log        *zap.SugaredLogger
}

// Dependencies carries what the handlers are built from. A nil Generator
// disables the AI endpoints; Rand and Now default to live sources.
type Dependencies struct {
	Store     repository.KeyValueStore
	Generator guidanceUC.Generator
	Rand      *random.Source
	Now       func() time.Time
}

func InitializeDeliveryHandlers(cfg bootstrap.Config, log *zap.SugaredLogger, deps Dependencies) *MainDeliveryHandler {
	if deps.Rand == nil {
		deps.Rand = random.New()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	state := repository.NewUserStateStorage(deps.Store, log)
	profiles := profile.NewManager(state)

	challenges := challengesUC.NewChallengeUsecase(state, profiles, deps.Rand, deps.Now, cfg.WeeklyChallenges, log)
	session := sessionUC.NewSessionUsecase(state, state, profiles, challenges, deps.Rand, deps.Now, cfg.SessionTTL, log)

	return &MainDeliveryHandler{
		Health:     health.NewChecker(deps.Store, log),
		session:    session,
		auth:       authDelivery.NewAuthHandler(session, cfg.SessionTTL, log),
		friends:    friendsDelivery.NewFriendsHandler(friendsUC.NewFriendsUsecase(profiles, deps.Rand, deps.Now, log), log),
		challenges: challengesDelivery.NewChallengesHandler(challenges, log),
		goals:      goalsDelivery.NewGoalsHandler(goalsUC.NewGoalsUsecase(state, profiles, deps.Now), log),
		tips:       tipsDelivery.NewTipsHandler(tipsUC.NewTipsUsecase(state, profiles, deps.Now), log),
		videos:     videosDelivery.NewVideosHandler(videosUC.NewVideosUsecase(state, profiles, deps.Now), log),
		stats:      statsDelivery.NewStatsHandler(statsUC.NewStatsUsecase(profiles, state, deps.Now), log),
		planner:    plannerDelivery.NewPlannerHandler(plannerUC.NewPlannerUsecase(state, deps.Rand), log),
		guidance:   guidanceDelivery.NewGuidanceHandler(guidanceUC.NewGuidanceUsecase(deps.Generator, guidanceUC.NewTracker(), log), log),
		log:        log,
	}
}

func (h *MainDeliveryHandler) Router(r chi.Router, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/login", h.auth.Login)
	r.Get("/health", h.Health.ServeHTTP)
	r.Get("/games", h.guidance.Games)
	r.Get("/videos", h.videos.List)
	r.With(ownMiddleware.OptionalSession(h.session)).Get("/badges", h.challenges.Badges)

	r.Group(func(r chi.Router) {
		r.Use(ownMiddleware.RequireSession(h.session, h.log))

		r.Post("/logout", h.auth.Logout)
		r.Get("/me", h.auth.Me)

		r.Get("/friends", h.friends.Overview)
		r.Get("/friends/search", h.friends.Search)
		r.Post("/friends/requests", h.friends.SendRequest)
		r.Post("/friends/requests/{id}/accept", h.friends.AcceptRequest)
		r.Post("/friends/requests/{id}/decline", h.friends.DeclineRequest)
		r.Delete("/friends/{id}", h.friends.RemoveFriend)
		r.Get("/friends/{id}/compare", h.stats.Compare)
		r.Post("/psn/connect", h.friends.ConnectPsn)
		r.Post("/psn/disconnect", h.friends.DisconnectPsn)

		r.Get("/challenges", h.challenges.List)
		r.Post("/challenges/{id}/complete", h.challenges.Complete)
		r.Post("/challenges/{id}/claim", h.challenges.Claim)
		r.Get("/badges/earned", h.challenges.EarnedBadges)

		r.Get("/goals", h.goals.List)
		r.Post("/goals", h.goals.Add)
		r.Post("/goals/{id}/toggle", h.goals.Toggle)
		r.Get("/tips", h.tips.List)
		r.Post("/tips", h.tips.Submit)
		r.Post("/videos", h.videos.Submit)

		r.Get("/stats", h.stats.Own)
		r.Get("/users/{id}/stats", h.stats.ByUser)
		r.Post("/predict", h.stats.Predict)
		r.Post("/roadmap", h.planner.Roadmap)
		r.Post("/optimize", h.planner.Optimize)

		r.Post("/guidance", h.guidance.GameGuidance)
		r.Get("/chat", h.guidance.Chat)
	})
}
