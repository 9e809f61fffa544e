package guidance

import (
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trophyseeker/internal/common"
	"trophyseeker/internal/domain/guidance"
	errs "trophyseeker/internal/errors"
	"trophyseeker/internal/httpresponse"
	"trophyseeker/internal/middleware"
	guidanceUC "trophyseeker/internal/usecase/guidance"
	"trophyseeker/internal/utils"
)

type GuidanceHandler struct {
	guidanceUC *guidanceUC.GuidanceUsecase
	log        *zap.SugaredLogger
	upgrader   websocket.Upgrader
}

func NewGuidanceHandler(uc *guidanceUC.GuidanceUsecase, log *zap.SugaredLogger) *GuidanceHandler {
	return &GuidanceHandler{
		guidanceUC: uc,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  2048,
			WriteBufferSize: 2048,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Games lists catalog games whose name contains ?q=.
func (g *GuidanceHandler) Games(w http.ResponseWriter, r *http.Request) {
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, g.guidanceUC.Games(r.URL.Query().Get("q")))
}

// GameGuidance answers with hints, missables and strategies for a game.
// A request superseded by a newer one from the same user gets 409 {"canceled":true}.
func (g *GuidanceHandler) GameGuidance(w http.ResponseWriter, r *http.Request) {
	var req guidance.GuidanceRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		common.WriteDecodeError(w, g.log, "GameGuidance", err)
		return
	}

	result, err := g.guidanceUC.GameGuidance(r.Context(), middleware.Username(r.Context()), req.GameID, req.Progress)
	if err != nil {
		common.WriteUsecaseError(w, g.log, "GameGuidance", err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, result)
}

type frameWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (f *frameWriter) write(frame guidance.ChatFrame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conn.WriteJSON(frame)
}

// Chat upgrades to a websocket carrying streamed assistant answers.
// Client frames: message{text[,id]} and cancel. Server frames: chunk, done,
// error and canceled, each tagged with the message id.
func (g *GuidanceHandler) Chat(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Errorw("Chat: upgrade error", "error", err)
		return
	}
	defer conn.Close()

	// each socket is its own chat conversation
	conversation := uuid.NewString()
	feature := guidanceUC.ChatFeature(conversation)

	out := &frameWriter{conn: conn}
	var wg sync.WaitGroup
	defer func() {
		g.guidanceUC.Cancel(username, feature)
		wg.Wait()
	}()

	for {
		var frame guidance.ChatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Warnw("Chat: read error", "username", username, "error", err)
			}
			return
		}

		switch frame.Type {
		case guidance.FrameMessage:
			id := frame.ID
			if id == "" {
				id = uuid.NewString()
			}
			// a new message replaces the answer still streaming on this socket
			g.guidanceUC.Cancel(username, feature)
			wg.Wait()
			wg.Add(1)
			go func(id, text string) {
				defer wg.Done()
				g.streamAnswer(r, out, username, conversation, id, text)
			}(id, frame.Text)
		case guidance.FrameCancel:
			g.guidanceUC.Cancel(username, feature)
		default:
			_ = out.write(guidance.ChatFrame{Type: guidance.FrameError, ID: frame.ID, Error: "unknown frame type " + frame.Type})
		}
	}
}

func (g *GuidanceHandler) streamAnswer(r *http.Request, out *frameWriter, username, conversation, id, text string) {
	err := g.guidanceUC.Chat(r.Context(), username, conversation, text, func(chunk string) error {
		return out.write(guidance.ChatFrame{Type: guidance.FrameChunk, ID: id, Text: chunk})
	})

	var reply guidance.ChatFrame
	switch {
	case err == nil:
		reply = guidance.ChatFrame{Type: guidance.FrameDone, ID: id}
	case errors.Is(err, errs.ErrCanceled):
		g.log.Infow("Chat: answer canceled", "username", username, "id", id)
		reply = guidance.ChatFrame{Type: guidance.FrameCanceled, ID: id}
	default:
		g.log.Errorw("Chat: answer failed", "username", username, "id", id, "error", err)
		reply = guidance.ChatFrame{Type: guidance.FrameError, ID: id, Error: err.Error()}
	}
	if err := out.write(reply); err != nil {
		g.log.Warnw("Chat: write reply", "username", username, "error", err)
	}
}
