package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/refdesk/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/services"
)

const testPassword = "s3cret"

type testEnv struct {
	server  *Server
	ask     *mockAskService
	ingest  *mockIngestService
	library *memory.Library
	sources *memory.SourceStore
	corpus  *memory.CorpusStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		ask:     &mockAskService{},
		ingest:  &mockIngestService{},
		library: memory.NewLibrary(),
		sources: memory.NewSourceStore(),
		corpus:  memory.NewCorpusStore(),
	}

	ports := &Ports{
		Ask:     env.ask,
		Search:  services.NewSearchService(env.corpus, services.NewRetriever(nil, 0), 0),
		Ingest:  env.ingest,
		Library: services.NewLibraryService(env.library),
		Source:  services.NewSourceService(env.sources),
	}

	server, err := NewServer(ports, Config{AdminPassword: testPassword, Version: "test"})
	require.NoError(t, err)
	env.server = server
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/admin/login", map[string]string{"password": testPassword}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	msg, _ := resp["error"].(string)
	return msg
}

func TestNewServer_RequiresAsk(t *testing.T) {
	_, err := NewServer(&Ports{}, Config{})
	assert.ErrorIs(t, err, ErrMissingAskService)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"refdesk","version":"test"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(HeaderRequestID))
}

func TestRequestID_Echoed(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rr := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(HeaderRequestID))
}

func TestAsk_StreamsEvents(t *testing.T) {
	env := newTestEnv(t)
	env.ask.events = []domain.StreamEvent{
		domain.TextEvent("Aspirin "),
		domain.TextEvent("reduces fever."),
		domain.DoneEvent(),
		domain.TextEvent("never sent"),
	}

	rr := env.do(t, http.MethodPost, "/ask", map[string]any{
		"question": "What reduces fever?",
		"history": []map[string]string{
			{"role": "user", "content": "hi"},
			{"role": "assistant", "content": "hello"},
		},
	}, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t,
		"data: {\"text\":\"Aspirin \"}\n\n"+
			"data: {\"text\":\"reduces fever.\"}\n\n"+
			"data: {\"done\":true}\n\n",
		rr.Body.String())

	assert.Equal(t, "What reduces fever?", env.ask.last.Text)
	assert.Equal(t, []domain.ConversationTurn{
		{Role: domain.RoleUser, Text: "hi"},
		{Role: domain.RoleAssistant, Text: "hello"},
	}, env.ask.last.History)
}

func TestAsk_ErrorEventEndsStream(t *testing.T) {
	env := newTestEnv(t)
	env.ask.events = []domain.StreamEvent{
		domain.TextEvent("a"),
		domain.ErrorEvent(errBoom),
	}

	rr := env.do(t, http.MethodPost, "/ask", map[string]any{"question": "q"}, "")
	assert.Equal(t, "data: {\"text\":\"a\"}\n\ndata: {\"error\":\"boom\"}\n\n", rr.Body.String())
}

func TestAsk_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		askErr     error
		wantStatus int
		wantError  string
	}{
		{"missing question", map[string]any{}, nil, http.StatusBadRequest, msgNoQuestion},
		{"invalid json", "{", nil, http.StatusBadRequest, "Invalid request body"},
		{"empty corpus", map[string]any{"question": "q"}, domain.ErrNoReferenceMaterial, http.StatusBadRequest, msgNoMaterial},
		{"no llm", map[string]any{"question": "q"}, domain.ErrLLMUnavailable, http.StatusInternalServerError, msgLLMUnavailable},
		{
			"bad history role",
			map[string]any{"question": "q", "history": []map[string]string{{"role": "system", "content": "x"}}},
			nil, http.StatusBadRequest, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.ask.err = tt.askErr

			rr := env.do(t, http.MethodPost, "/ask", tt.body, "")
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rr))
			}
		})
	}
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	c := domain.NewCorpus()
	c.Put("doc1", "\n--- Page 1 ---\nAspirin reduces fever.")
	require.NoError(t, env.corpus.ReplaceAll(context.Background(), c))

	rr := env.do(t, http.MethodGet, "/search?q=FEVER", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, []domain.SearchHit{{Document: "doc1", Page: "1", Excerpt: "Aspirin reduces fever."}}, resp.Hits)

	rr = env.do(t, http.MethodGet, "/search?q=x&limit=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/admin/login", map[string]string{"password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid password", decodeError(t, rr))

	token := env.login(t)
	rr = env.do(t, http.MethodGet, "/admin/files", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPost, "/admin/logout", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = env.do(t, http.MethodGet, "/admin/files", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminLogin_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server, err := NewServer(&Ports{Ask: &mockAskService{}}, Config{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"password":""}`))
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/admin/files"},
		{http.MethodPost, "/admin/upload"},
		{http.MethodDelete, "/admin/delete/a.pdf"},
		{http.MethodGet, "/admin/sources"},
		{http.MethodPost, "/admin/ingest"},
	} {
		rr := env.do(t, route.method, route.path, nil, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, route.path)
	}
}

func uploadRequest(t *testing.T, filename string, content []byte, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "-" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadListDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rr := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rr, uploadRequest(t, "guide.pdf", []byte("%PDF-1.4 test"), token))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"filename":"guide.pdf"}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/admin/files", nil, token)
	var files struct {
		Files []domain.LibraryFile `json:"files"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &files))
	require.Len(t, files.Files, 1)
	assert.Equal(t, "guide.pdf", files.Files[0].Name)
	assert.Equal(t, int64(len("%PDF-1.4 test")), files.Files[0].Size)

	rr = env.do(t, http.MethodDelete, "/admin/delete/guide.pdf", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodDelete, "/admin/delete/guide.pdf", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, msgFileNotFound, decodeError(t, rr))
}

func TestUpload_Rejections(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	tests := []struct {
		name      string
		filename  string
		content   []byte
		wantError string
	}{
		{"no file", "-", nil, msgNoFile},
		{"wrong extension", "notes.txt", []byte("%PDF-1.4"), msgInvalidFileType},
		{"not a pdf", "fake.pdf", []byte("hello"), msgInvalidFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			env.server.Handler().ServeHTTP(rr, uploadRequest(t, tt.filename, tt.content, token))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.wantError, decodeError(t, rr))
		})
	}
}

func TestSources(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	src := map[string]string{"name": "Guide", "link": "https://example.com/guide.pdf"}
	rr := env.do(t, http.MethodPost, "/admin/sources", src, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = env.do(t, http.MethodPost, "/admin/sources", src, token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, http.MethodPost, "/admin/sources", map[string]string{"name": "x", "link": "ftp://x"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, "/admin/sources", nil, token)
	assert.JSONEq(t, `{"sources":[{"name":"Guide","link":"https://example.com/guide.pdf"}]}`, rr.Body.String())

	rr = env.do(t, http.MethodDelete, "/admin/sources/Guide", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = env.do(t, http.MethodDelete, "/admin/sources/Guide", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestIngest(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	env.ingest.report = domain.IngestReport{Documents: 2, Skipped: 1, Errors: []string{"bad.pdf: extraction failed"}}
	env.ingest.docs = []string{"a.pdf", "b.pdf"}

	rr := env.do(t, http.MethodPost, "/admin/ingest", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"documents":2,"skipped":1,"errors":["bad.pdf: extraction failed"]}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/admin/documents", nil, token)
	assert.JSONEq(t, `{"documents":["a.pdf","b.pdf"]}`, rr.Body.String())

	env.ingest.err = domain.ErrIngestInProgress
	rr = env.do(t, http.MethodPost, "/admin/ingest", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	env.ingest.err = errBoom
	rr = env.do(t, http.MethodPost, "/admin/ingest", nil, token)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for header, want := range map[string]string{
		"Bearer abc":  "abc",
		"bearer  abc": "abc",
		"Basic abc":   "",
		"abc":         "",
		"":            "",
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", header)
		assert.Equal(t, want, bearerToken(c), header)
	}
}

func runServer(t *testing.T, ctx context.Context, addr string) error {
	t.Helper()
	env := newTestEnv(t)
	env.server.cfg.Addr = addr

	done := make(chan error, 1)
	go func() { done <- env.server.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runServer(t, ctx, "127.0.0.1:0")

	assert.NoError(t, err)
}

func TestRun_ReturnsListenErrorWithoutCancel(t *testing.T) {
	err := runServer(t, context.Background(), "127.0.0.1:-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, http.ErrServerClosed)
}
