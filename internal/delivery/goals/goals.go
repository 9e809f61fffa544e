package goals

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/domain/goal"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	goalsUC "trophyseeker/internal/usecase/goals"
	"trophyseeker/internal/utils"
)

type GoalsHandler struct {
	goalsUC *goalsUC.GoalsUsecase
	log     *zap.SugaredLogger
}

func NewGoalsHandler(uc *goalsUC.GoalsUsecase, log *zap.SugaredLogger) *GoalsHandler {
	return &GoalsHandler{goalsUC: uc, log: log}
}

func (g *GoalsHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := g.goalsUC.List(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		common.WriteUsecaseError(w, g.log, "ListGoals", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, goals)
}

func (g *GoalsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req goal.AddGoalRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		common.WriteDecodeError(w, g.log, "AddGoal", err)
		return
	}
	created, err := g.goalsUC.Add(r.Context(), middleware.Username(r.Context()), req.Goal)
	if err != nil {
		common.WriteUsecaseError(w, g.log, "AddGoal", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, created)
}

func (g *GoalsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	toggled, err := g.goalsUC.Toggle(r.Context(), middleware.Username(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteUsecaseError(w, g.log, "ToggleGoal", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, toggled)
}
