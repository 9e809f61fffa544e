package friends

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	friendsUC "trophyseeker/internal/usecase/friends"
	"trophyseeker/internal/utils"
)

type FriendsHandler struct {
	friendsUC *friendsUC.FriendsUsecase
	log       *zap.SugaredLogger
}

type SendRequestRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
}

type PsnConnectResponse struct {
	FriendsFound int `json:"friendsFound"`
}

func NewFriendsHandler(uc *friendsUC.FriendsUsecase, log *zap.SugaredLogger) *FriendsHandler {
	return &FriendsHandler{friendsUC: uc, log: log}
}

func (f *FriendsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := f.friendsUC.Overview(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		common.WriteUsecaseError(w, f.log, "Overview", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, overview)
}

func (f *FriendsHandler) Search(w http.ResponseWriter, r *http.Request) {
	found, err := f.friendsUC.Search(r.Context(), middleware.Username(r.Context()), r.URL.Query().Get("q"))
	if err != nil {
		common.WriteUsecaseError(w, f.log, "Search", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, found)
}

func (f *FriendsHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	var req SendRequestRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		common.WriteDecodeError(w, f.log, "SendRequest", err)
		return
	}

	sent, err := f.friendsUC.SendRequest(r.Context(), middleware.Username(r.Context()), req.ReceiverID)
	if err != nil {
		common.WriteUsecaseError(w, f.log, "SendRequest", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, sent)
}

func (f *FriendsHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	friend, err := f.friendsUC.AcceptRequest(r.Context(), middleware.Username(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		common.WriteUsecaseError(w, f.log, "AcceptRequest", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, friend)
}

func (f *FriendsHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	if err := f.friendsUC.DeclineRequest(r.Context(), middleware.Username(r.Context()), chi.URLParam(r, "id")); err != nil {
		common.WriteUsecaseError(w, f.log, "DeclineRequest", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

func (f *FriendsHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	if err := f.friendsUC.RemoveFriend(r.Context(), middleware.Username(r.Context()), chi.URLParam(r, "id")); err != nil {
		common.WriteUsecaseError(w, f.log, "RemoveFriend", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

func (f *FriendsHandler) ConnectPsn(w http.ResponseWriter, r *http.Request) {
	found, err := f.friendsUC.ConnectPsn(r.Context(), middleware.Username(r.Context()))
	if err != nil {
		common.WriteUsecaseError(w, f.log, "ConnectPsn", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, PsnConnectResponse{FriendsFound: found})
}

func (f *FriendsHandler) DisconnectPsn(w http.ResponseWriter, r *http.Request) {
	if err := f.friendsUC.DisconnectPsn(r.Context(), middleware.Username(r.Context())); err != nil {
		common.WriteUsecaseError(w, f.log, "DisconnectPsn", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}
