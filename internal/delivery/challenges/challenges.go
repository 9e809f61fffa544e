package challenges

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	challengesUC "trophyseeker/internal/usecase/challenges"
)

type ChallengesHandler struct {
	challengesUC *challengesUC.ChallengeUsecase
	log          *zap.SugaredLogger
}

func NewChallengesHandler(uc *challengesUC.ChallengeUsecase, log *zap.SugaredLogger) *ChallengesHandler {
	return &ChallengesHandler{challengesUC: uc, log: log}
}

func (c *ChallengesHandler) List(w http.ResponseWriter, r *http.Request) {
	current, err := c.challengesUC.Current(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		common.WriteUsecaseError(w, c.log, "ListChallenges", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, current)
}

func (c *ChallengesHandler) Complete(w http.ResponseWriter, r *http.Request) {
	completed, err := c.challengesUC.Complete(r.Context(), middleware.Username(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteUsecaseError(w, c.log, "CompleteChallenge", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, completed)
}

func (c *ChallengesHandler) Claim(w http.ResponseWriter, r *http.Request) {
	awarded, err := c.challengesUC.Claim(r.Context(), middleware.Username(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteUsecaseError(w, c.log, "ClaimChallenge", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, awarded)
}

func (c *ChallengesHandler) EarnedBadges(w http.ResponseWriter, r *http.Request) {
	earned, err := c.challengesUC.EarnedBadges(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		common.WriteUsecaseError(w, c.log, "EarnedBadges", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, earned)
}

// Badges serves the catalog to everyone; signed-in callers see earned flags.
func (c *ChallengesHandler) Badges(w http.ResponseWriter, r *http.Request) {
	showcase, err := c.challengesUC.Badges(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		common.WriteUsecaseError(w, c.log, "Badges", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, showcase)
}
