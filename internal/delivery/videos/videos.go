package videos

import (
	"net/http"

	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/domain/video"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	videosUC "trophyseeker/internal/usecase/videos"
	"trophyseeker/internal/utils"
)

type VideosHandler struct {
	videosUC *videosUC.VideosUsecase
	log      *zap.SugaredLogger
}

func NewVideosHandler(uc *videosUC.VideosUsecase, log *zap.SugaredLogger) *VideosHandler {
	return &VideosHandler{videosUC: uc, log: log}
}

// List serves community videos; ?game=<id> narrows to one game.
func (v *VideosHandler) List(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, v.videosUC.List(r.URL.Query().Get("game")))
}

func (v *VideosHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req video.SubmitVideoRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		common.WriteDecodeError(w, v.log, "SubmitVideo", err)
		return
	}
	created, err := v.videosUC.Submit(r.Context(), middleware.Username(r.Context()), req.URL)
	if err != nil {
		common.WriteUsecaseError(w, v.log, "SubmitVideo", err)
		return
	}
	v.log.Infow("video submitted for review", "videoId", created.VideoID)
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, created)
}
