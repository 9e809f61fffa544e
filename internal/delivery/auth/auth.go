package auth

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	sessionUC "trophyseeker/internal/usecase/session"
	"trophyseeker/internal/utils"
)

type AuthHandler struct {
	usecaseHandler *sessionUC.SessionUsecase
	sessionTTL     time.Duration
	log            *zap.SugaredLogger
}

type LoginRequest struct {
	Username string `json:"username" validate:"max=64"`
}

func NewAuthHandler(uc *sessionUC.SessionUsecase, sessionTTL time.Duration, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		usecaseHandler: uc,
		sessionTTL:     sessionTTL,
		log:            log,
	}
}

// Login godoc
// @Summary Sign in
// @Description Signs in by username, creating the account on first login, and sets the sessionID cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Username"
// @Success 200 {object} user.User
// @Failure 400 {object} httpresponse.ErrorResponse
// @Failure 500 {object} httpresponse.ErrorResponse
// @Router /login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginData LoginRequest
	if err := utils.DecodeJSONRequest(r, &loginData); err != nil {
		common.WriteDecodeError(w, a.log, "Login", err)
		return
	}

	sessionID, u, err := a.usecaseHandler.Login(r.Context(), loginData.Username)
	if err != nil {
		common.WriteUsecaseError(w, a.log, "Login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(a.sessionTTL),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	a.log.Infow("user logged in", "username", u.Username)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, u)
}

// Logout godoc
// @Summary Sign out
// @Description Deletes the session behind the sessionID cookie. User data is kept.
// @Tags auth
// @Produce json
// @Success 200 {string} string "OK"
// @Failure 401 {object} httpresponse.ErrorResponse
// @Router /logout [post]
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			a.log.Warn("Logout: no cookie provided")
		}
		httpresponse.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.usecaseHandler.Logout(r.Context(), sessionCookie.Value); err != nil {
		common.WriteUsecaseError(w, a.log, "Logout", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
	})
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}

// Me returns the signed-in user, rehydrated the way a page reload does.
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(middleware.SessionCookie)
	if err != nil {
		httpresponse.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	u, err := a.usecaseHandler.Restore(r.Context(), sessionCookie.Value)
	if err != nil {
		common.WriteUsecaseError(w, a.log, "Me", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, u)
}
