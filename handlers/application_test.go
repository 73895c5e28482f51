package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AESiR-0/mad-labs-2/logger"
	"github.com/AESiR-0/mad-labs-2/sheets"
	"github.com/AESiR-0/mad-labs-2/submission"
	"github.com/AESiR-0/mad-labs-2/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, store *sheets.MemoryStore) *gin.Engine {
	t.Helper()
	log := logger.NewTestLogger(t)
	now := func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.Local) }
	svc := submission.NewService(store, log, submission.WithClock(now))
	return NewRouter(NewApplicationHandler(svc, log), NewHealthHandler(nil), log)
}

func post(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/submit-application", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSubmitApplication_Kid(t *testing.T) {
	store := sheets.NewMemoryStore()
	router := newTestRouter(t, store)

	w := post(t, router, `{"kidData":{"name":"Ava","email":"a@x.com","phone":"1234567","age":"12","city":"Pune","curious":"robots"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"success": true}, decode(t, w))
	assert.Equal(t, [][]string{
		{"Ava", "a@x.com", "1234567", "12", "Pune", "robots", "October 19, 2026"},
	}, store.Rows("Kids"))
}

func TestSubmitApplication_EmptyBody(t *testing.T) {
	store := sheets.NewMemoryStore()
	router := newTestRouter(t, store)

	w := post(t, router, `{}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]interface{}{"error": SubmitFailedMessage}, decode(t, w))
	assert.Zero(t, store.AppendCalls())
}

func TestSubmitApplication_MalformedJSON(t *testing.T) {
	store := sheets.NewMemoryStore()
	router := newTestRouter(t, store)

	w := post(t, router, `{"kidData":`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, SubmitFailedMessage, decode(t, w)["error"])
	assert.Zero(t, store.AppendCalls())
}

func TestSubmitApplication_KidAndParent(t *testing.T) {
	store := sheets.NewMemoryStore()
	router := newTestRouter(t, store)

	w := post(t, router, `{
		"kidData":{"name":"Ava","email":"a@x.com","phone":"1234567","age":"12","city":"Pune","curious":"robots"},
		"parentData":{"parentName":"Raj","parentEmail":"r@x.com","parentPhone":"9876543","parentCity":"Pune","kidName":"Ava","kidAge":"12","parentCurious":"space"}
	}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.Rows("Kids"), 1)
	assert.Len(t, store.Rows("Parents"), 1)
}

func TestSubmitApplication_PersistenceFailure(t *testing.T) {
	store := sheets.NewMemoryStore()
	store.AppendErr["Mentors"] = context.DeadlineExceeded
	router := newTestRouter(t, store)

	w := post(t, router, `{"mentorData":{"name":"Mo","email":"m@x.com"}}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]interface{}{"error": SubmitFailedMessage}, decode(t, w))
}

func TestSubmitApplication_DuplicateAppendsTwice(t *testing.T) {
	store := sheets.NewMemoryStore()
	router := newTestRouter(t, store)
	body := `{"kidData":{"name":"Ava","email":"a@x.com","phone":"1234567","age":"12","city":"Pune","curious":"robots"}}`

	require.Equal(t, http.StatusOK, post(t, router, body).Code)
	require.Equal(t, http.StatusOK, post(t, router, body).Code)
	assert.Len(t, store.Rows("Kids"), 2)
}

func TestSubmitApplication_WrongMethod(t *testing.T) {
	router := newTestRouter(t, sheets.NewMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/submit-application", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	log := logger.NewTestLogger(t)
	svc := submission.NewService(sheets.NewMemoryStore(), log)

	router := NewRouter(NewApplicationHandler(svc, log), NewHealthHandler(nil), log)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "disabled", decode(t, w)["details"].(map[string]interface{})["redis"])

	mr := miniredis.RunT(t)
	redis, err := utils.NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	defer redis.Close()

	router = NewRouter(NewApplicationHandler(svc, log), NewHealthHandler(redis), log)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "available", decode(t, w)["details"].(map[string]interface{})["redis"])

	mr.SetError("LOADING")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decode(t, w)["status"])
}
