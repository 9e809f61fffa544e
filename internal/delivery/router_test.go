package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trophyseeker/internal/bootstrap"
	"trophyseeker/internal/domain/badge"
	"trophyseeker/internal/domain/challenge"
	"trophyseeker/internal/domain/guidance"
	"trophyseeker/internal/domain/user"
	"trophyseeker/internal/middleware"
	"trophyseeker/internal/random"
	"trophyseeker/internal/repository"
	friendsUC "trophyseeker/internal/usecase/friends"
	statsUC "trophyseeker/internal/usecase/stats"
)

type scriptedGenerator struct {
	started chan struct{}
}

// StreamText answers "slow" only once canceled; anything else streams two chunks.
func (g *scriptedGenerator) StreamText(ctx context.Context, _, prompt string, onChunk func(string) error) error {
	if prompt == "slow" {
		g.started <- struct{}{}
		<-ctx.Done()
		return ctx.Err()
	}
	for _, c := range []string{"Try the ", "Vistas first."} {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func (g *scriptedGenerator) GenerateJSON(context.Context, guidance.StructuredPrompt) (string, error) {
	return "```json\n{\"hints\":\"Explore\",\"missables\":\"None\",\"strategies\":\"Level up\"}\n```", nil
}

type envelope[T any] struct {
	Status int
	Body   T
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newTestServer(t *testing.T, gen *scriptedGenerator) *testServer {
	t.Helper()
	cfg := bootstrap.Config{SessionTTL: time.Hour, WeeklyChallenges: 3}
	deps := Dependencies{
		Store: repository.NewMapKVStorage(),
		Rand:  random.NewSeeded(11),
		Now:   func() time.Time { return time.Date(2024, 7, 24, 12, 0, 0, 0, time.UTC) },
	}
	if gen != nil {
		deps.Generator = gen
	}
	h := InitializeDeliveryHandlers(cfg, zap.NewNop().Sugar(), deps)
	r := chi.NewRouter()
	h.Router(r, false)
	return &testServer{t: t, handler: r}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if env.Status != rec.Code {
		t.Errorf("envelope status %d differs from HTTP status %d", env.Status, rec.Code)
	}
	return env.Body
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func (s *testServer) login(username string) user.User {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/login", map[string]string{"username": username})
	expectStatus(s.t, rec, http.StatusOK)
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			s.cookie = c
		}
	}
	if s.cookie == nil || s.cookie.Value == "" {
		s.t.Fatal("login did not set the session cookie")
	}
	if !s.cookie.HttpOnly {
		s.t.Error("session cookie is not HttpOnly")
	}
	return decode[user.User](s.t, rec)
}

func TestSessionFlow(t *testing.T) {
	s := newTestServer(t, nil)

	expectStatus(t, s.do(http.MethodGet, "/me", nil), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodPost, "/login", `{"username":"alice","password":"x"}`), http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodPost, "/login", `{"username":"  "}`), http.StatusBadRequest)

	u := s.login("alice")
	if u.Username != "alice" || len(u.FriendRequestsReceived) != 1 {
		t.Fatalf("login user: got %+v", u)
	}

	me := decode[user.User](t, s.do(http.MethodGet, "/me", nil))
	if me.ID != u.ID {
		t.Errorf("/me: got id %q, want %q", me.ID, u.ID)
	}

	expectStatus(t, s.do(http.MethodPost, "/logout", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/me", nil), http.StatusUnauthorized)

	s.cookie = &http.Cookie{Name: middleware.SessionCookie, Value: "forged"}
	expectStatus(t, s.do(http.MethodGet, "/friends", nil), http.StatusUnauthorized)
}

func TestFriendsFlow(t *testing.T) {
	s := newTestServer(t, nil)
	u := s.login("alice")
	requestID := u.FriendRequestsReceived[0].ID

	found := decode[[]user.FriendUser](t, s.do(http.MethodGet, "/friends/search?q=gem", nil))
	if len(found) != 1 || found[0].ID != "dummy_user_3" {
		t.Fatalf("search: got %+v", found)
	}

	rec := s.do(http.MethodPost, "/friends/requests", map[string]string{"receiverId": "dummy_user_3"})
	expectStatus(t, rec, http.StatusCreated)
	expectStatus(t, s.do(http.MethodPost, "/friends/requests", map[string]string{"receiverId": "dummy_user_3"}), http.StatusConflict)
	expectStatus(t, s.do(http.MethodPost, "/friends/requests", map[string]string{}), http.StatusBadRequest)

	expectStatus(t, s.do(http.MethodPost, "/friends/requests/"+requestID+"/accept", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/friends/requests/"+requestID+"/accept", nil), http.StatusNotFound)

	overview := decode[friendsUC.Overview](t, s.do(http.MethodGet, "/friends", nil))
	if len(overview.Friends) != 1 || overview.Friends[0].ID != "dummy_user_2" {
		t.Errorf("friends: got %+v", overview.Friends)
	}
	if len(overview.PendingReceived) != 0 || len(overview.PendingSent) != 1 {
		t.Errorf("pending: got received %d sent %d", len(overview.PendingReceived), len(overview.PendingSent))
	}

	cmp := decode[statsUC.Comparison](t, s.do(http.MethodGet, "/friends/dummy_user_2/compare", nil))
	if cmp.Friend.Username != "TrophyTitan" || len(cmp.Games) != 7 {
		t.Errorf("compare: got %+v", cmp)
	}
	expectStatus(t, s.do(http.MethodGet, "/friends/dummy_user_1/compare", nil), http.StatusNotFound)

	expectStatus(t, s.do(http.MethodPost, "/psn/connect", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/psn/connect", nil), http.StatusConflict)
	expectStatus(t, s.do(http.MethodPost, "/psn/disconnect", nil), http.StatusOK)

	expectStatus(t, s.do(http.MethodDelete, "/friends/dummy_user_2", nil), http.StatusOK)
	expectStatus(t, s.do(http.MethodDelete, "/friends/dummy_user_2", nil), http.StatusNotFound)
}

func TestChallengesFlow(t *testing.T) {
	s := newTestServer(t, nil)

	anonymous := decode[[]badge.Showcase](t, s.do(http.MethodGet, "/badges", nil))
	for _, b := range anonymous {
		if b.Earned {
			t.Fatalf("anonymous badge earned: %s", b.ID)
		}
	}

	s.login("alice")
	current := decode[[]challenge.UserChallenge](t, s.do(http.MethodGet, "/challenges", nil))
	if len(current) != 3 {
		t.Fatalf("challenges: got %d, want 3", len(current))
	}
	id := current[0].ID

	expectStatus(t, s.do(http.MethodPost, "/challenges/"+id+"/claim", nil), http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodPost, "/challenges/"+id+"/complete", nil), http.StatusOK)
	awarded := decode[badge.Badge](t, s.do(http.MethodPost, "/challenges/"+id+"/claim", nil))
	if awarded.ID != current[0].BadgeID {
		t.Errorf("claimed badge: got %q, want %q", awarded.ID, current[0].BadgeID)
	}
	expectStatus(t, s.do(http.MethodPost, "/challenges/"+id+"/claim", nil), http.StatusConflict)
	expectStatus(t, s.do(http.MethodPost, "/challenges/nope/complete", nil), http.StatusNotFound)

	earned := decode[[]badge.Badge](t, s.do(http.MethodGet, "/badges/earned", nil))
	if len(earned) != 1 {
		t.Errorf("earned badges: got %d, want 1", len(earned))
	}
	showcase := decode[[]badge.Showcase](t, s.do(http.MethodGet, "/badges", nil))
	n := 0
	for _, b := range showcase {
		if b.Earned {
			n++
		}
	}
	if n != 1 {
		t.Errorf("showcase earned: got %d, want 1", n)
	}
}

func TestPlanningFlow(t *testing.T) {
	s := newTestServer(t, nil)
	s.login("alice")

	expectStatus(t, s.do(http.MethodPost, "/roadmap", map[string]string{}), http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodPost, "/goals", map[string]string{"goal": "Platinum Elden Ring"}), http.StatusCreated)
	expectStatus(t, s.do(http.MethodPost, "/tips", map[string]string{"tip": "Summon spirit ashes"}), http.StatusCreated)
	expectStatus(t, s.do(http.MethodPost, "/videos", map[string]string{"url": "https://vimeo.com/1"}), http.StatusBadRequest)
	expectStatus(t, s.do(http.MethodPost, "/videos", map[string]string{"url": "https://youtu.be/dQw4w9WgXcQ"}), http.StatusCreated)

	roadmap := decode[map[string]string](t, s.do(http.MethodPost, "/roadmap", map[string]string{"focus": "bosses"}))
	if !strings.Contains(roadmap["markdown"], "Platinum Elden Ring") {
		t.Errorf("roadmap: got %q", roadmap["markdown"])
	}

	plan := s.do(http.MethodPost, "/optimize", map[string][]string{"gameIds": {"er", "gof"}})
	expectStatus(t, plan, http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/optimize", map[string][]string{"gameIds": {"er"}}), http.StatusBadRequest)

	stats := decode[user.Stats](t, s.do(http.MethodGet, "/stats", nil))
	if stats.GoalsTotal != 1 || stats.TipsCount != 1 {
		t.Errorf("stats: got %+v", stats)
	}
	expectStatus(t, s.do(http.MethodGet, "/users/dummy_user_1/stats", nil), http.StatusOK)

	expectStatus(t, s.do(http.MethodPost, "/predict", map[string]string{"gameId": "er"}), http.StatusOK)
	expectStatus(t, s.do(http.MethodPost, "/predict", map[string]string{"gameId": "zelda"}), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodPost, "/predict", map[string]string{}), http.StatusBadRequest)

	videos := decode[[]map[string]any](t, s.do(http.MethodGet, "/videos?game=er", nil))
	if len(videos) != 1 {
		t.Errorf("videos?game=er: got %d, want 1", len(videos))
	}
}

func TestGuidanceEndpoint(t *testing.T) {
	disabled := newTestServer(t, nil)
	disabled.login("alice")
	expectStatus(t, disabled.do(http.MethodPost, "/guidance", map[string]string{"gameId": "er", "progress": "stuck"}), http.StatusServiceUnavailable)

	s := newTestServer(t, &scriptedGenerator{started: make(chan struct{}, 1)})
	s.login("alice")
	got := decode[guidance.GameGuidance](t, s.do(http.MethodPost, "/guidance", map[string]string{"gameId": "er", "progress": "stuck"}))
	if got.Hints != "Explore" || got.Strategies != "Level up" {
		t.Errorf("guidance: got %+v", got)
	}
	expectStatus(t, s.do(http.MethodPost, "/guidance", map[string]string{"gameId": "er"}), http.StatusBadRequest)

	games := decode[[]map[string]string](t, s.do(http.MethodGet, "/games?q=war", nil))
	if len(games) != 1 || games[0]["id"] != "gof" {
		t.Errorf("games: got %+v", games)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(http.MethodGet, "/health", nil)
	expectStatus(t, rec, http.StatusOK)
	if body := decode[map[string]string](t, rec); body["status"] != "SERVING" {
		t.Errorf("health: got %+v", body)
	}
}
