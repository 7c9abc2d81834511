package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/interview-assistant/errors"
	"github.com/johnquangdev/interview-assistant/internal/adapter/repository/memory"
	authMiddleware "github.com/johnquangdev/interview-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/token"
	botUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/bot"
	interviewUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/interview"
	"github.com/johnquangdev/interview-assistant/pkg/config"
	"github.com/johnquangdev/interview-assistant/pkg/jwt"
	"github.com/johnquangdev/interview-assistant/pkg/middleware"
	"github.com/johnquangdev/interview-assistant/pkg/validator"
)

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

type testServer struct {
	e     *echo.Echo
	clock *clock.Mock
	jwt   *jwt.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	clk := clock.NewMock()
	clk.Set(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	jwtManager := jwt.NewManager("test-secret", time.Hour, "interview-assistant")
	logger := zap.NewNop()

	botService := botUsecase.NewBotService(store.Bots(), store.Sessions(), clk, logger)
	interviewService := interviewUsecase.NewInterviewService(
		store.Bots(),
		store.Sessions(),
		store.Participants(),
		token.NewRandomGenerator(token.DefaultSize),
		nil,
		nil,
		clk,
		interviewUsecase.DefaultPolicy(),
		logger,
	)

	e := echo.New()
	e.Validator = validator.New()

	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(
		cfg,
		NewBotHandler(botService, logger),
		NewSessionHandler(interviewService, logger),
		NewInterviewHandler(interviewService, logger),
		authMiddleware.EchoAuth(jwtManager),
		authMiddleware.OptionalEchoAuth(jwtManager),
		middleware.RequireSessionOwner(interviewService),
	).Setup(e)

	return &testServer{e: e, clock: clk, jwt: jwtManager}
}

func (s *testServer) bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(userID, "owner@example.com")
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func botBody() map[string]interface{} {
	return map[string]interface{}{
		"name": "Diet research",
		"research_questions": []map[string]interface{}{
			{"category": "diet", "priority": "high", "questions": []string{"What do you eat?", "Any restrictions?"}},
		},
		"adaptive_behavior": map[string]bool{"response_analysis": true},
	}
}

func (s *testServer) createBot(t *testing.T, owner string) string {
	t.Helper()

	rec, env := s.do(t, http.MethodPost, "/v1/bots", owner, botBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created.ID
}

type createdSession struct {
	ID          string `json:"id"`
	AccessToken string `json:"access_token"`
	Status      string `json:"status"`
}

func (s *testServer) createSession(t *testing.T, owner, botID string, extra map[string]interface{}) createdSession {
	t.Helper()

	body := map[string]interface{}{"bot_id": botID, "title": "Spring study"}
	for k, v := range extra {
		body[k] = v
	}
	rec, env := s.do(t, http.MethodPost, "/v1/sessions", owner, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session createdSession
	require.NoError(t, json.Unmarshal(env.Data, &session))
	return session
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBots(t *testing.T) {
	s := newTestServer(t)
	owner := s.bearer(t, uuid.New())

	rec, _ := s.do(t, http.MethodPost, "/v1/bots", "", botBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	botID := s.createBot(t, owner)

	rec, env := s.do(t, http.MethodGet, "/v1/bots/"+botID, owner, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"tone":"professional"`)

	rec, env = s.do(t, http.MethodGet, "/v1/bots/"+botID, s.bearer(t, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_BOT_NOT_FOUND), env.Code)

	rec, env = s.do(t, http.MethodGet, "/v1/bots", owner, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), botID)
}

func TestCreateBot_Rejections(t *testing.T) {
	s := newTestServer(t)
	owner := s.bearer(t, uuid.New())

	rec, env := s.do(t, http.MethodPost, "/v1/bots", owner, "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_INVALID_PAYLOAD), env.Code)

	body := botBody()
	body["research_questions"] = []map[string]interface{}{
		{"category": "diet", "priority": "urgent", "questions": []string{"Q"}},
	}
	rec, env = s.do(t, http.MethodPost, "/v1/bots", owner, body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_INVALID_CONFIG), env.Code)

	body = botBody()
	body["research_questions"] = []map[string]interface{}{}
	rec, env = s.do(t, http.MethodPost, "/v1/bots", owner, body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_INVALID_CONFIG), env.Code)
}

func TestInterviewFlow(t *testing.T) {
	s := newTestServer(t)
	owner := s.bearer(t, uuid.New())
	botID := s.createBot(t, owner)
	session := s.createSession(t, owner, botID, nil)
	require.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "ACTIVE", session.Status)

	// Preview never leaks the token
	rec, env := s.do(t, http.MethodGet, "/v1/interview/"+session.AccessToken, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), session.AccessToken)
	assert.Contains(t, string(env.Data), `"total_questions":2`)

	rec, env = s.do(t, http.MethodPost, "/v1/interview/"+session.AccessToken+"/join", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), session.AccessToken)

	var joined struct {
		ParticipantSessionID string `json:"participant_session_id"`
		Question             struct {
			Text string `json:"text"`
		} `json:"question"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &joined))
	assert.Equal(t, "What do you eat?", joined.Question.Text)

	rec, env = s.do(t, http.MethodPost, "/v1/interview/"+session.AccessToken+"/join", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_SESSION_FULL), env.Code)

	submit := func(index int, text string) (*httptest.ResponseRecorder, envelope) {
		return s.do(t, http.MethodPost, "/v1/interview/responses", "", map[string]interface{}{
			"participant_session_id": joined.ParticipantSessionID,
			"question_index":         index,
			"response":               text,
		})
	}

	rec, env = submit(1, "skipping ahead")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_SEQUENCE_MISMATCH), env.Code)

	rec, env = submit(0, "   ")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_INVALID_CONFIG), env.Code)

	rec, env = submit(0, "vegetables")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"next_question_index":1`)
	assert.Contains(t, string(env.Data), `"analysis_unavailable":true`)

	rec, env = s.do(t, http.MethodGet, "/v1/interview/participants/"+joined.ParticipantSessionID+"/progress", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"progress":0.5`)

	rec, env = submit(1, "none")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"completed":true`)

	rec, env = submit(2, "extra")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_PARTICIPANT_COMPLETED), env.Code)

	rec, env = s.do(t, http.MethodPost, "/v1/interview/"+session.AccessToken+"/join", "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_SESSION_ALREADY_COMPLETED), env.Code)

	rec, env = s.do(t, http.MethodGet, "/v1/sessions/"+session.ID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"COMPLETED"`)
	assert.Contains(t, string(env.Data), joined.ParticipantSessionID)
}

func TestJoin_Expired(t *testing.T) {
	s := newTestServer(t)
	owner := s.bearer(t, uuid.New())
	botID := s.createBot(t, owner)
	session := s.createSession(t, owner, botID, map[string]interface{}{"expires_in": 1})

	s.clock.Add(2 * time.Hour)

	rec, env := s.do(t, http.MethodPost, "/v1/interview/"+session.AccessToken+"/join", "", nil)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_SESSION_EXPIRED), env.Code)

	rec, env = s.do(t, http.MethodGet, "/v1/interview/"+session.AccessToken, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"status":"EXPIRED"`)
}

func TestSessions_OwnerScoping(t *testing.T) {
	s := newTestServer(t)
	owner := s.bearer(t, uuid.New())
	stranger := s.bearer(t, uuid.New())
	botID := s.createBot(t, owner)

	rec, env := s.do(t, http.MethodPost, "/v1/sessions", stranger, map[string]interface{}{"bot_id": botID, "title": "Mine now"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_BOT_NOT_FOUND), env.Code)

	session := s.createSession(t, owner, botID, nil)

	rec, _ = s.do(t, http.MethodGet, "/v1/sessions/"+session.ID, stranger, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/v1/sessions/not-a-uuid", owner, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/v1/sessions", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), session.ID)
	assert.Contains(t, string(env.Data), `"total_items":1`)

	rec, env = s.do(t, http.MethodGet, "/v1/sessions", stranger, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), session.ID)
}

func TestCreateSession_Rejections(t *testing.T) {
	s := newTestServer(t)
	owner := s.bearer(t, uuid.New())
	botID := s.createBot(t, owner)

	tests := []struct {
		name string
		body map[string]interface{}
		code int
	}{
		{"expiry too long", map[string]interface{}{"bot_id": botID, "title": "t", "expires_in": 169}, http.StatusUnprocessableEntity},
		{"no seats", map[string]interface{}{"bot_id": botID, "title": "t", "max_participants": 0}, http.StatusUnprocessableEntity},
		{"blank title", map[string]interface{}{"bot_id": botID, "title": "  "}, http.StatusUnprocessableEntity},
		{"bad bot id", map[string]interface{}{"bot_id": "nope", "title": "t"}, http.StatusUnprocessableEntity},
		{"unknown bot", map[string]interface{}{"bot_id": uuid.NewString(), "title": "t"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := s.do(t, http.MethodPost, "/v1/sessions", owner, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestInterview_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/v1/interview/unknown-token", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_SESSION_NOT_FOUND), env.Code)

	rec, env = s.do(t, http.MethodPost, "/v1/interview/unknown-token/join", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_SESSION_NOT_FOUND), env.Code)

	rec, env = s.do(t, http.MethodGet, "/v1/interview/participants/"+uuid.NewString()+"/progress", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_PARTICIPANT_NOT_FOUND), env.Code)

	rec, _ = s.do(t, http.MethodGet, "/v1/interview/participants/nope/progress", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/v1/interview/responses", "", map[string]interface{}{
		"participant_session_id": uuid.NewString(),
		"question_index":         0,
		"response":               "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_PARTICIPANT_NOT_FOUND), env.Code)

	assert.False(t, strings.Contains(rec.Body.String(), "access_token"))
}
