package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdesk/internal/llm"
	"github.com/abhisek/quizdesk/internal/questiongen"
	"github.com/abhisek/quizdesk/internal/submission"
	"github.com/abhisek/quizdesk/internal/taxonomy"
	"github.com/abhisek/quizdesk/internal/wizard"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type recordingAppender struct {
	mu   sync.Mutex
	rows [][]string
	err  error
}

func (r *recordingAppender) AppendRow(_ context.Context, row []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, row)
	return nil
}

func testTaxonomy() *taxonomy.Taxonomy {
	return taxonomy.New([]taxonomy.Grade{{
		Name: "3학년",
		Subjects: []taxonomy.Subject{{
			Name: "수학",
			Categories: []taxonomy.Category{{
				Name:      "수와 연산",
				Standards: []string{"세 자리 수의 덧셈", "곱셈"},
			}},
		}},
	}})
}

type harness struct {
	engine   *gin.Engine
	provider *llm.MockProvider
	rows     *recordingAppender
	srv      *Server
}

func newHarness(t *testing.T, responses ...llm.MockResponse) *harness {
	t.Helper()
	provider := llm.NewMockProvider(responses...)
	rows := &recordingAppender{}
	srv := New(Deps{
		Taxonomy:   testTaxonomy(),
		Generator:  questiongen.New(provider, questiongen.DefaultConfig()),
		Submitter:  submission.NewHandler(rows),
		SessionTTL: time.Hour,
	})
	engine := gin.New()
	srv.Register(engine)
	return &harness{engine: engine, provider: provider, rows: rows, srv: srv}
}

func (h *harness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (h *harness) newSession(t *testing.T) string {
	t.Helper()
	w := h.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeSession(t, w)
	require.NotEmpty(t, resp.ID)
	assert.Equal(t, wizard.StepGrade, resp.View.Step)
	assert.Equal(t, []string{"3학년"}, resp.View.Options)
	return resp.ID
}

func (h *harness) advance(t *testing.T, id, value string) SessionResponse {
	t.Helper()
	w := h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/advance", AdvanceRequest{Value: value})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeSession(t, w)
}

func TestAssistedFlowAndSubmit(t *testing.T) {
	h := newHarness(t, llm.MockResponse{Text: "  문제: 234 + 158은?  "})
	id := h.newSession(t)

	h.advance(t, id, "3학년")
	h.advance(t, id, "수학")
	v := h.advance(t, id, "수와 연산").View
	assert.Equal(t, []string{"세 자리 수의 덧셈", "곱셈"}, v.Options)

	v = h.advance(t, id, "세 자리 수의 덧셈").View
	assert.Equal(t, wizard.StepReview, v.Step)
	assert.Equal(t, "문제: 234 + 158은?", v.Generated)
	assert.False(t, v.Busy)
	assert.Equal(t, 1, h.provider.CallCount())

	w := h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/place", PlaceRequest{Slot: 2})
	require.Equal(t, http.StatusOK, w.Code)
	v = decodeSession(t, w).View
	assert.Equal(t, [3]string{"", "문제: 234 + 158은?", ""}, v.Questions)
	assert.Equal(t, wizard.StepStandard, v.Step)
	assert.Empty(t, v.Selections.Standard)

	// Submitting with slots missing reports the fields and writes nothing.
	w = h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, []string{"question1", "question3", "activity_code"}, errResp.Details)
	assert.Empty(t, h.rows.rows)

	w = h.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/draft", DraftRequest{
		Questions:    [3]string{"Q1", v.Questions[1], "Q3"},
		ImageURLs:    [3]string{"", "http://img/2.png", ""},
		ActivityCode: " ACT-7 ",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, h.rows.rows, 1)
	row := h.rows.rows[0]
	assert.Len(t, row, 9)
	assert.Equal(t, "ACT-7", row[1])
	assert.Equal(t, "문제: 234 + 158은?", row[4])
	assert.Equal(t, "http://img/2.png", row[5])
}

func TestAdvance_Validation(t *testing.T) {
	h := newHarness(t)
	id := h.newSession(t)

	w := h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/advance", AdvanceRequest{Value: "9학년"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	v := h.advance(t, id, "").View
	assert.Equal(t, wizard.StepGrade, v.Step)

	w = h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/advance", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerationFailure_StaysOnReview(t *testing.T) {
	h := newHarness(t,
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Text: "다시 만든 문제"},
	)
	id := h.newSession(t)
	h.advance(t, id, "3학년")
	h.advance(t, id, "수학")
	h.advance(t, id, "수와 연산")
	v := h.advance(t, id, "곱셈").View

	assert.Equal(t, wizard.StepReview, v.Step)
	assert.Empty(t, v.Generated)
	assert.NotEmpty(t, v.Error)

	w := h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/place", PlaceRequest{Slot: 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	v = decodeSession(t, w).View
	assert.Equal(t, "다시 만든 문제", v.Generated)
	assert.Empty(t, v.Error)
}

func TestRetreatAndPlaceSlotRange(t *testing.T) {
	h := newHarness(t, llm.MockResponse{Text: "Q"})
	id := h.newSession(t)
	h.advance(t, id, "3학년")
	h.advance(t, id, "수학")
	h.advance(t, id, "수와 연산")
	h.advance(t, id, "곱셈")

	w := h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/place", PlaceRequest{Slot: 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/retreat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	v := decodeSession(t, w).View
	assert.Equal(t, wizard.StepStandard, v.Step)
	assert.Empty(t, v.Generated)
	assert.Empty(t, v.Selections.Standard)
	assert.Equal(t, "수와 연산", v.Selections.Category)
}

func TestSubmit_StorageFailure(t *testing.T) {
	h := newHarness(t)
	h.rows.err = errors.New("sheet unavailable")
	id := h.newSession(t)

	w := h.do(t, http.MethodPut, "/api/v1/sessions/"+id+"/draft", DraftRequest{
		Questions:    [3]string{"a", "b", "c"},
		ActivityCode: "X",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestUnknownAndDeletedSession(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodGet, "/api/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	id := h.newSession(t)
	w = h.do(t, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = h.do(t, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionsAreIndependent(t *testing.T) {
	h := newHarness(t)
	a := h.newSession(t)
	b := h.newSession(t)

	h.advance(t, a, "3학년")

	w := h.do(t, http.MethodGet, "/api/v1/sessions/"+b, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, wizard.StepGrade, decodeSession(t, w).View.Step)
}

func TestBusySessionConflicts(t *testing.T) {
	h := newHarness(t)
	id := h.newSession(t)

	e, ok := h.srv.reg.get(id)
	require.True(t, ok)
	e.mu.Lock()
	defer e.mu.Unlock()

	w := h.do(t, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStandards(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodGet, "/api/v1/standards", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var grades []GradeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grades))
	require.Len(t, grades, 1)
	assert.Equal(t, "3학년", grades[0].Grade)
	assert.Equal(t, []string{"세 자리 수의 덧셈", "곱셈"}, grades[0].Subjects[0].Categories[0].Standards)
}

func TestStandards_Unavailable(t *testing.T) {
	srv := New(Deps{TaxonomyErr: errors.New("standards file missing")})
	engine := gin.New()
	srv.Register(engine)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/standards", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Manual entry still works without a taxonomy.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.View.CanGenerate)
	assert.Empty(t, resp.View.Options)
}

func TestCreateSession_CanGenerate(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.View.CanGenerate)

	// A taxonomy alone is not enough: without a generator the view must say so.
	srv := New(Deps{Taxonomy: testTaxonomy(), SessionTTL: time.Hour})
	engine := gin.New()
	srv.Register(engine)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	resp = SessionResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.View.CanGenerate)
	assert.Equal(t, []string{"3학년"}, resp.View.Options)
}

func TestRegistrySweep(t *testing.T) {
	r := newRegistry(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	old, _ := r.create()
	now = now.Add(2 * time.Minute)
	fresh, _ := r.create()

	assert.Equal(t, 1, r.sweep())
	_, ok := r.get(old)
	assert.False(t, ok)
	_, ok = r.get(fresh)
	assert.True(t, ok)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w := h.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}
