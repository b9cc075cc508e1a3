package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/genrequiz/internal/db"
	"github.com/vytor/genrequiz/internal/metrics"
	"github.com/vytor/genrequiz/internal/models"
	"github.com/vytor/genrequiz/internal/repository/sqlite"
	"github.com/vytor/genrequiz/internal/services"
	"github.com/vytor/genrequiz/internal/testutil"
)

type APISuite struct {
	suite.Suite
	db      *db.DB
	server  *Server
	handler http.Handler
}

func (s *APISuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	m := metrics.New()
	sessionRepo := sqlite.NewSessionRepository(s.db.DB)
	questionRepo := sqlite.NewQuestionRepository(s.db.DB)

	s.server = &Server{
		DB:              s.db,
		QuestionService: services.NewQuestionService(questionRepo),
		SessionService:  services.NewSessionService(sessionRepo, questionRepo, 20, m),
		AnswerService:   services.NewAnswerService(sessionRepo, questionRepo, m),
		ResultsService:  services.NewResultsService(sessionRepo),
		Metrics:         m,
	}
	s.handler = s.server.Routes()
}

func (s *APISuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *APISuite) do(method, path, learner string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if learner != "" {
		req.Header.Set(learnerHeader, learner)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *APISuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body errorBody
	s.decode(rec, &body)
	return body.Error.Code
}

func (s *APISuite) startSession(learner string, count int) sessionResponse {
	rec := s.do(http.MethodPost, "/sessions", learner, map[string]int{"requested_count": count})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var resp sessionResponse
	s.decode(rec, &resp)
	return resp
}

func sessionPath(id int64, suffix string) string {
	return "/sessions/" + strconv.FormatInt(id, 10) + suffix
}

func (s *APISuite) TestHealthAndReady() {
	s.Assert().Equal(http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)

	rec := s.do(http.MethodGet, "/ready", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(rec.Body.String(), `"questions":15`)
}

func (s *APISuite) TestReadyFailsOnEmptyBank() {
	testutil.ClearQuestions(s.T(), s.db)

	rec := s.do(http.MethodGet, "/ready", "", nil)
	s.Assert().Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *APISuite) TestSessionsRequireLearner() {
	rec := s.do(http.MethodPost, "/sessions", "", map[string]int{"requested_count": 1})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("BAD_REQUEST", s.errorCode(rec))
}

func (s *APISuite) TestStartSessionValidation() {
	rec := s.do(http.MethodPost, "/sessions", "ana", map[string]int{"requested_count": 0})
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
	s.Assert().Equal("VALIDATION_ERROR", s.errorCode(rec))

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"requested_count":`))
	req.Header.Set(learnerHeader, "ana")
	bad := httptest.NewRecorder()
	s.handler.ServeHTTP(bad, req)
	s.Assert().Equal(http.StatusBadRequest, bad.Code)
}

func (s *APISuite) TestFullDrill() {
	session := s.startSession("ana", 2)
	s.Assert().Equal(models.SessionActive, session.Status)
	s.Assert().False(session.Complete)

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodGet, sessionPath(session.ID, "/next"), "ana", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		var q models.PublicQuestion
		s.decode(rec, &q)
		s.Require().NotEmpty(q.ID)
		s.Assert().NotContains(rec.Body.String(), "gender")

		rec = s.do(http.MethodPost, sessionPath(session.ID, "/answers"), "ana", map[string]any{
			"question_id":        q.ID,
			"gender":             "masculine",
			"hints_used":         0,
			"time_taken_seconds": 2.5,
		})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		var result models.AnswerResult
		s.decode(rec, &result)
		s.Assert().Equal(i+1, result.AnsweredCount)
		s.Assert().Equal(i == 1, result.Complete)
	}

	rec := s.do(http.MethodGet, sessionPath(session.ID, "/next"), "ana", nil)
	s.Assert().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, sessionPath(session.ID, ""), "ana", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var got sessionResponse
	s.decode(rec, &got)
	s.Assert().True(got.Complete)
	s.Assert().Equal(models.SessionCompleted, got.Status)

	rec = s.do(http.MethodGet, sessionPath(session.ID, "/results"), "ana", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var summary models.SessionSummary
	s.decode(rec, &summary)
	s.Assert().Equal(2, summary.TotalAttempts)
	s.Assert().Equal(20, summary.MaxPossiblePoints)
	s.Assert().Equal(3, summary.AverageTimeSeconds)
}

func (s *APISuite) TestSubmitConflicts() {
	session := s.startSession("ana", 1)
	answer := map[string]any{"question_id": "chat", "gender": "masculine", "hints_used": 0, "time_taken_seconds": 1}

	rec := s.do(http.MethodPost, sessionPath(session.ID, "/answers"), "ana", answer)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, sessionPath(session.ID, "/answers"), "ana", answer)
	s.Assert().Equal(http.StatusConflict, rec.Code)
	s.Assert().Equal("DUPLICATE_SUBMISSION", s.errorCode(rec))

	answer["question_id"] = "maison"
	rec = s.do(http.MethodPost, sessionPath(session.ID, "/answers"), "ana", answer)
	s.Assert().Equal(http.StatusConflict, rec.Code)
	s.Assert().Equal("SESSION_COMPLETED", s.errorCode(rec))
}

func (s *APISuite) TestForeignSessionIsNotFound() {
	session := s.startSession("ana", 3)

	rec := s.do(http.MethodGet, sessionPath(session.ID, ""), "ben", nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
	s.Assert().Equal("NOT_FOUND", s.errorCode(rec))

	rec = s.do(http.MethodGet, "/sessions/abc", "ana", nil)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestListSessions() {
	s.startSession("ana", 1)
	s.startSession("ana", 2)
	s.startSession("ben", 2)

	rec := s.do(http.MethodGet, "/sessions?status=active", "ana", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var body struct {
		Sessions []models.Session `json:"sessions"`
	}
	s.decode(rec, &body)
	s.Assert().Len(body.Sessions, 2)
}

func (s *APISuite) TestQuestionEndpoints() {
	rec := s.do(http.MethodGet, "/questions?gender=feminine&limit=3", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list questionListResponse
	s.decode(rec, &list)
	s.Assert().Len(list.Questions, 3)
	s.Assert().Greater(list.Total, 3)

	rec = s.do(http.MethodGet, "/questions/maison", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(rec.Body.String(), `"gender":"feminine"`)

	rec = s.do(http.MethodGet, "/questions/maison/hints", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().NotContains(rec.Body.String(), "feminine")

	rec = s.do(http.MethodGet, "/questions/licorne", "", nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/questions?difficulty=x", "", nil)
	s.Assert().Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestSubmitRateLimited() {
	s.server.SubmitLimiter = NewLearnerLimiter(0.001, 1)
	s.handler = s.server.Routes()
	session := s.startSession("ana", 5)

	rec := s.do(http.MethodPost, sessionPath(session.ID, "/answers"), "ana", map[string]any{"question_id": "chat", "gender": "masculine"})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, sessionPath(session.ID, "/answers"), "ana", map[string]any{"question_id": "maison", "gender": "feminine"})
	s.Assert().Equal(http.StatusTooManyRequests, rec.Code)
	s.Assert().Equal("RATE_LIMITED", s.errorCode(rec))

	// Other learners have their own bucket.
	other := s.startSession("ben", 1)
	rec = s.do(http.MethodPost, sessionPath(other.ID, "/answers"), "ben", map[string]any{"question_id": "chat", "gender": "masculine"})
	s.Assert().Equal(http.StatusOK, rec.Code)
}

func (s *APISuite) TestMetricsEndpoint() {
	s.startSession("ana", 1)

	rec := s.do(http.MethodGet, "/metrics", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Assert().Contains(body, "genrequiz_sessions_started_total 1")
	s.Assert().Contains(body, `http_requests_total{endpoint="/sessions`)
	s.Assert().Contains(body, `method="POST",status="201"} 1`)
}

func (s *APISuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/nowhere", "", nil)
	s.Assert().Equal(http.StatusNotFound, rec.Code)
	s.Assert().Equal("NOT_FOUND", s.errorCode(rec))
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
