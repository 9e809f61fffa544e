package planner

import (
	"net/http"

	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	plannerUC "trophyseeker/internal/usecase/planner"
	"trophyseeker/internal/utils"
)

type PlannerHandler struct {
	plannerUC *plannerUC.PlannerUsecase
	log       *zap.SugaredLogger
}

type RoadmapRequest struct {
	Focus string `json:"focus" validate:"max=500"`
}

type OptimizeRequest struct {
	GameIDs []string `json:"gameIds" validate:"dive,required"`
}

// MarkdownResponse carries generated markdown content.
type MarkdownResponse struct {
	Markdown string `json:"markdown"`
}

func NewPlannerHandler(uc *plannerUC.PlannerUsecase, log *zap.SugaredLogger) *PlannerHandler {
	return &PlannerHandler{plannerUC: uc, log: log}
}

func (p *PlannerHandler) Roadmap(w http.ResponseWriter, r *http.Request) {
	var req RoadmapRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		common.WriteDecodeError(w, p.log, "Roadmap", err)
		return
	}
	md, err := p.plannerUC.Roadmap(r.Context(), middleware.Username(r.Context()), req.Focus)
	if err != nil {
		common.WriteUsecaseError(w, p.log, "Roadmap", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, MarkdownResponse{Markdown: md})
}

func (p *PlannerHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		common.WriteDecodeError(w, p.log, "Optimize", err)
		return
	}
	md, err := p.plannerUC.CrossGamePlan(req.GameIDs)
	if err != nil {
		common.WriteUsecaseError(w, p.log, "Optimize", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, MarkdownResponse{Markdown: md})
}
