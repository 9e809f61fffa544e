package tips

import (
	"net/http"

	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/domain/tip"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	tipsUC "trophyseeker/internal/usecase/tips"
	"trophyseeker/internal/utils"
)

type TipsHandler struct {
	tipsUC *tipsUC.TipsUsecase
	log    *zap.SugaredLogger
}

func NewTipsHandler(uc *tipsUC.TipsUsecase, log *zap.SugaredLogger) *TipsHandler {
	return &TipsHandler{tipsUC: uc, log: log}
}

func (t *TipsHandler) List(w http.ResponseWriter, r *http.Request) {
	tips, err := t.tipsUC.List(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		common.WriteUsecaseError(w, t.log, "ListTips", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, tips)
}

func (t *TipsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req tip.SubmitTipRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		common.WriteDecodeError(w, t.log, "SubmitTip", err)
		return
	}
	created, err := t.tipsUC.Submit(r.Context(), middleware.Username(r.Context()), req.Tip)
	if err != nil {
		common.WriteUsecaseError(w, t.log, "SubmitTip", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, created)
}
