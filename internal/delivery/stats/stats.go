package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	statsUC "trophyseeker/internal/usecase/stats"
	"trophyseeker/internal/utils"
)

type StatsHandler struct {
	statsUC *statsUC.StatsUsecase
	log     *zap.SugaredLogger
}

type PredictRequest struct {
	GameID string `json:"gameId" validate:"required"`
}

func NewStatsHandler(uc *statsUC.StatsUsecase, log *zap.SugaredLogger) *StatsHandler {
	return &StatsHandler{statsUC: uc, log: log}
}

func (s *StatsHandler) Own(w http.ResponseWriter, r *http.Request) {
	s.writeStats(w, r, "")
}

func (s *StatsHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	s.writeStats(w, r, chi.URLParam(r, "id"))
}

func (s *StatsHandler) writeStats(w http.ResponseWriter, r *http.Request, targetID string) {
	st, err := s.statsUC.Stats(r.Context(), middleware.Username(r.Context()), targetID)
	if err != nil {
		common.WriteUsecaseError(w, s.log, "Stats", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, st)
}

func (s *StatsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	cmp, err := s.statsUC.Compare(r.Context(), middleware.Username(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteUsecaseError(w, s.log, "Compare", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, cmp)
}

func (s *StatsHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		common.WriteDecodeError(w, s.log, "Predict", err)
		return
	}
	prediction, err := s.statsUC.Predict(r.Context(), middleware.Username(r.Context()), req.GameID)
	if err != nil {
		common.WriteUsecaseError(w, s.log, "Predict", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, prediction)
}
