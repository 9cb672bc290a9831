package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"noteshare/cmd/internal/domain/sqlite"
	"noteshare/cmd/internal/domain/sqlite/repository"
	"noteshare/cmd/internal/http/handler"
	"noteshare/cmd/internal/infrastructure/storage"
	"noteshare/cmd/internal/service"
	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/validators"

	"github.com/labstack/echo/v4"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	dir := t.TempDir()

	db, err := sqlite.Init(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	files, err := storage.NewLocalStore(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	validate := validators.New()
	tokens := utils.NewTokenManager("test-secret", 0)
	noteRepo := repository.NewNoteRepository(db)

	routes := &Routes{
		Notes:       handler.NewNoteDefault(service.NewNoteService(noteRepo, repository.NewSocialRepository(db), files, validate, 0)),
		Users:       handler.NewUserDefault(service.NewUserService(repository.NewUserRepository(db), noteRepo, tokens, validate)),
		Leaderboard: handler.NewLeaderboardDefault(service.NewLeaderboardService(repository.NewLeaderboardRepository(db), validate)),
		Quiz:        handler.NewQuizDefault(service.NewQuizService(nil, validate)),
	}
	return New(Options{BodyLimit: "1M", Tokens: tokens}, routes)
}

func do(t *testing.T, e *echo.Echo, method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, e *echo.Echo, method, target, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	return do(t, e, method, target, token, body, echo.MIMEApplicationJSON)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
}

type noteBody struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Downloads   int64    `json:"downloads"`
	AvgRating   *float64 `json:"avg_rating"`
	RatingCount int64    `json:"rating_count"`
	LikeCount   int64    `json:"like_count"`
	FilePath    string   `json:"file_path"`
	Comments    []struct {
		Content  string `json:"content"`
		UserName string `json:"user_name"`
	} `json:"comments"`
}

func register(t *testing.T, e *echo.Echo, email, name string) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/api/register", "", map[string]any{
		"email": email, "password": "secret123", "name": name, "college": "X Institute",
	})
	expectStatus(t, rec, http.StatusOK)
	return decode[authBody](t, rec).Token
}

func uploadNote(t *testing.T, e *echo.Echo, token string, fields map[string]string, withFile bool) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if withFile {
		part, _ := w.CreateFormFile("file", "calc.pdf")
		_, _ = part.Write([]byte("%PDF-1.4 calculus"))
	}
	_ = w.Close()
	return do(t, e, http.MethodPost, "/api/notes", token, &body, w.FormDataContentType())
}

func listIDs(t *testing.T, e *echo.Echo, query url.Values) []int64 {
	t.Helper()
	rec := do(t, e, http.MethodGet, "/api/notes?"+query.Encode(), "", nil, "")
	expectStatus(t, rec, http.StatusOK)

	var ids []int64
	for _, n := range decode[[]noteBody](t, rec) {
		ids = append(ids, n.ID)
	}
	return ids
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestNoteSharingScenario(t *testing.T) {
	e := newTestServer(t)
	tokenA := register(t, e, "a@x.edu", "A")
	tokenB := register(t, e, "b@x.edu", "B")

	rec := uploadNote(t, e, tokenA, map[string]string{
		"title": "Calc Notes", "course": "BTech", "subject": "Engineering Mathematics", "semester": "3",
	}, true)
	expectStatus(t, rec, http.StatusOK)
	noteID := decode[struct{ ID int64 }](t, rec).ID
	notePath := fmt.Sprintf("/api/notes/%d", noteID)

	expectStatus(t, doJSON(t, e, http.MethodPost, notePath+"/rate", tokenB, map[string]int{"rating": 4}), http.StatusOK)
	expectStatus(t, doJSON(t, e, http.MethodPost, notePath+"/rate", tokenB, map[string]int{"rating": 5}), http.StatusOK)

	like := doJSON(t, e, http.MethodPost, notePath+"/like", tokenB, nil)
	if !decode[struct{ Liked bool }](t, like).Liked {
		t.Fatalf("expected first like to report liked=true")
	}
	note := decode[noteBody](t, do(t, e, http.MethodGet, notePath, "", nil, ""))
	if note.LikeCount != 1 {
		t.Fatalf("expected like_count=1, got %d", note.LikeCount)
	}
	unlike := doJSON(t, e, http.MethodPost, notePath+"/like", tokenB, nil)
	if decode[struct{ Liked bool }](t, unlike).Liked {
		t.Fatalf("expected second like to report liked=false")
	}

	for i := 0; i < 2; i++ {
		dl := do(t, e, http.MethodGet, notePath+"/download", "", nil, "")
		expectStatus(t, dl, http.StatusOK)
		if dl.Body.String() != "%PDF-1.4 calculus" {
			t.Fatalf("unexpected download body %q", dl.Body.String())
		}
		if cd := dl.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, `filename="Calc Notes.pdf"`) {
			t.Fatalf("unexpected content disposition %q", cd)
		}
	}

	expectStatus(t, doJSON(t, e, http.MethodPost, notePath+"/comment", tokenB, map[string]string{"content": "thanks!"}), http.StatusOK)

	rec = do(t, e, http.MethodGet, notePath, "", nil, "")
	expectStatus(t, rec, http.StatusOK)
	note = decode[noteBody](t, rec)
	if note.AvgRating == nil || *note.AvgRating != 5 || note.RatingCount != 1 {
		t.Fatalf("expected avg_rating=5 rating_count=1, got %+v", note)
	}
	if note.LikeCount != 0 || note.Downloads != 2 {
		t.Fatalf("expected like_count=0 downloads=2, got %+v", note)
	}
	if len(note.Comments) != 1 || note.Comments[0].UserName != "B" {
		t.Fatalf("unexpected comments: %+v", note.Comments)
	}

	if ids := listIDs(t, e, url.Values{"subject": {"Engineering Mathematics"}}); !contains(ids, noteID) {
		t.Fatalf("subject filter missed the note: %v", ids)
	}
	if ids := listIDs(t, e, url.Values{"search": {"calc"}}); !contains(ids, noteID) {
		t.Fatalf("search missed the note: %v", ids)
	}
	if ids := listIDs(t, e, url.Values{"search": {"biology"}}); contains(ids, noteID) {
		t.Fatalf("search matched unrelated query: %v", ids)
	}

	upload := do(t, e, http.MethodGet, "/uploads/"+note.FilePath, "", nil, "")
	expectStatus(t, upload, http.StatusOK)

	profile := decode[struct {
		Notes []noteBody `json:"notes"`
	}](t, do(t, e, http.MethodGet, "/api/profile", tokenA, nil, ""))
	if len(profile.Notes) != 1 || profile.Notes[0].ID != noteID {
		t.Fatalf("unexpected profile notes: %+v", profile.Notes)
	}
}

func TestAuthStatusCodes(t *testing.T) {
	e := newTestServer(t)
	register(t, e, "a@x.edu", "A")

	expectStatus(t, do(t, e, http.MethodGet, "/api/profile", "", nil, ""), http.StatusUnauthorized)
	expectStatus(t, do(t, e, http.MethodGet, "/api/profile", "tampered", nil, ""), http.StatusForbidden)

	dup := doJSON(t, e, http.MethodPost, "/api/register", "", map[string]string{"email": "a@x.edu", "password": "secret123", "name": "A"})
	expectStatus(t, dup, http.StatusBadRequest)
	if decode[map[string]string](t, dup)["error"] != "Email already exists" {
		t.Fatalf("unexpected duplicate body %s", dup.Body.String())
	}

	bad := doJSON(t, e, http.MethodPost, "/api/login", "", map[string]string{"email": "a@x.edu", "password": "nope-nope"})
	expectStatus(t, bad, http.StatusUnauthorized)

	ok := doJSON(t, e, http.MethodPost, "/api/login", "", map[string]string{"email": "a@x.edu", "password": "secret123"})
	expectStatus(t, ok, http.StatusOK)
	if body := decode[authBody](t, ok); body.Token == "" || body.User.Name != "A" {
		t.Fatalf("unexpected login body %s", ok.Body.String())
	}
}

func TestNoteErrors(t *testing.T) {
	e := newTestServer(t)
	token := register(t, e, "a@x.edu", "A")

	rec := uploadNote(t, e, token, map[string]string{"title": "T", "course": "C", "subject": "S"}, false)
	expectStatus(t, rec, http.StatusBadRequest)
	if decode[map[string]string](t, rec)["error"] != "File required" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	expectStatus(t, uploadNote(t, e, "", map[string]string{"title": "T"}, true), http.StatusUnauthorized)
	expectStatus(t, do(t, e, http.MethodGet, "/api/notes/999", "", nil, ""), http.StatusNotFound)
	expectStatus(t, do(t, e, http.MethodGet, "/api/notes/abc", "", nil, ""), http.StatusBadRequest)
	expectStatus(t, do(t, e, http.MethodGet, "/api/notes/999/download", "", nil, ""), http.StatusNotFound)
	expectStatus(t, doJSON(t, e, http.MethodPost, "/api/notes/999/rate", token, map[string]int{"rating": 3}), http.StatusNotFound)
	expectStatus(t, do(t, e, http.MethodGet, "/api/notes?semester=x", "", nil, ""), http.StatusBadRequest)
}

func TestLeaderboardAndExtras(t *testing.T) {
	e := newTestServer(t)
	token := register(t, e, "a@x.edu", "A")

	expectStatus(t, doJSON(t, e, http.MethodPost, "/api/leaderboard", "", map[string]any{"subject": "Physics", "score": 1, "total": 10}), http.StatusUnauthorized)
	for _, score := range []int{6, 9} {
		rec := doJSON(t, e, http.MethodPost, "/api/leaderboard", token, map[string]any{"subject": "Physics", "score": score, "total": 10})
		expectStatus(t, rec, http.StatusOK)
	}

	// Attempts are stored as submitted, even a negative score.
	expectStatus(t, doJSON(t, e, http.MethodPost, "/api/leaderboard", token, map[string]any{"subject": "Chemistry", "score": -1, "total": 10}), http.StatusOK)
	chem := decode[[]struct {
		Score int `json:"score"`
		Total int `json:"total"`
	}](t, do(t, e, http.MethodGet, "/api/leaderboard?subject=Chemistry", "", nil, ""))
	if len(chem) != 1 || chem[0].Score != -1 || chem[0].Total != 10 {
		t.Fatalf("expected the negative score to be stored, got %+v", chem)
	}

	rows := decode[[]struct {
		Score    int    `json:"score"`
		UserName string `json:"user_name"`
	}](t, do(t, e, http.MethodGet, "/api/leaderboard?subject=Physics", "", nil, ""))
	if len(rows) != 2 || rows[0].Score != 9 || rows[0].UserName != "A" {
		t.Fatalf("unexpected leaderboard %+v", rows)
	}

	quote := decode[map[string]string](t, do(t, e, http.MethodGet, "/api/motivation", "", nil, ""))
	if quote["quote"] != service.FallbackQuote {
		t.Fatalf("expected fallback quote, got %v", quote)
	}

	expectStatus(t, doJSON(t, e, http.MethodPost, "/api/quiz", token, map[string]string{"subject": "Physics"}), http.StatusBadGateway)
	expectStatus(t, do(t, e, http.MethodGet, "/api/catalog", "", nil, ""), http.StatusOK)

	health := do(t, e, http.MethodGet, "/health", "", nil, "")
	if health.Code != http.StatusOK || health.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", health.Code, health.Body.String())
	}
}
