package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/http/middleware"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/models"
	"github.com/gimhantharuke456/policeappbackend/internal/adapters/storage"
	"github.com/gimhantharuke456/policeappbackend/internal/config"
	"github.com/gimhantharuke456/policeappbackend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testSecret   = "test-secret-0123456789abcdef012345"
	testAdminKey = "admin-key"
)

type testServer struct {
	app       *fiber.App
	db        *gorm.DB
	tracksDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	uploadDir := t.TempDir()
	tracksDir := t.TempDir()
	cfg := &config.Config{
		AppMode:   "dev",
		Database:  config.DatabaseConfig{QueryTimeout: time.Second},
		JWT:       config.JWTConfig{Secret: testSecret},
		Auth:      config.AuthConfig{BcryptCost: bcrypt.MinCost, HashConcurrency: 2},
		Admin:     config.AdminConfig{APIKey: testAdminKey},
		RateLimit: config.RateLimitConfig{},
		Upload:    config.UploadConfig{Dir: uploadDir, MaxBytes: 1 << 20},
		Storage: config.StorageConfig{
			Backend:      "local",
			TracksDir:    tracksDir,
			TracksPrefix: "voicerecords",
		},
	}

	uploads, err := storage.NewLocalStore(uploadDir, "/uploads")
	require.NoError(t, err)
	tracks, err := storage.NewLocalStore(tracksDir, storage.LocalTracksURL)
	require.NoError(t, err)

	db := testutil.NewDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	middleware.Setup(app, cfg)
	Setup(app, db, cfg, Stores{Uploads: uploads, Tracks: tracks})

	return &testServer{app: app, db: db, tracksDir: tracksDir}
}

type result struct {
	code   int
	header http.Header
	body   map[string]interface{}
	raw    []byte
}

func (r result) data() map[string]interface{} {
	d, _ := r.body["data"].(map[string]interface{})
	return d
}

func (s *testServer) do(t *testing.T, req *http.Request) result {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	res := result{code: resp.StatusCode, header: resp.Header, raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &res.body), string(raw))
	}
	return res
}

func (s *testServer) send(t *testing.T, method, path string, body interface{}, headers ...string) result {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return s.do(t, req)
}

func (s *testServer) allow(t *testing.T, svcs ...string) {
	t.Helper()
	for _, svc := range svcs {
		require.NoError(t, s.db.Create(&models.RosterEntry{OfficerSVC: svc, IsActive: true}).Error)
	}
}

func registration(svc string) map[string]string {
	return map[string]string{
		"fullName":      "Officer " + svc,
		"officerSVC":    svc,
		"officerRank":   "Sergeant",
		"policeStation": "Galle",
		"Password":      "s3cret-pass",
	}
}

func (s *testServer) register(t *testing.T, svc string) string {
	t.Helper()
	s.allow(t, svc)
	res := s.send(t, http.MethodPost, "/registration", registration(svc))
	require.Equal(t, http.StatusCreated, res.code, string(res.raw))
	token, _ := res.data()["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func violationForm(name, passport string) map[string]interface{} {
	return map[string]interface{}{
		"formData": map[string]interface{}{
			"tourist":   map[string]string{"name": name, "passport": passport, "country": "Germany", "id": "T-" + passport},
			"violation": map[string]string{"type": "Littering", "date": "2026-10-01", "time": "10:30", "location": "Unawatuna Beach", "fine": "5000"},
			"officer":   map[string]string{"id": "SVC-1", "name": "Officer SVC-1"},
			"timestamp": "2026-10-01T10:31:00Z",
		},
	}
}

func TestRegistrationFlow(t *testing.T) {
	s := newTestServer(t)

	res := s.send(t, http.MethodPost, "/registration", registration("SVC-9"))
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, false, res.body["status"])

	// unlisted numbers get the roster error even without a password
	blank := registration("NOPE")
	blank["Password"] = ""
	res = s.send(t, http.MethodPost, "/registration", blank)
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, "service number is not authorized for registration", res.body["error"])

	s.allow(t, "SVC-1")
	res = s.send(t, http.MethodPost, "/registration", registration("SVC-1"))
	require.Equal(t, http.StatusCreated, res.code, string(res.raw))
	assert.Equal(t, true, res.body["status"])
	assert.Equal(t, "SVC-1", res.data()["officerSVC"])
	assert.Equal(t, "Galle", res.data()["policeStation"])
	assert.NotEmpty(t, res.data()["token"])
	assert.Equal(t, "no-store, no-cache, must-revalidate", res.header.Get("Cache-Control"))

	res = s.send(t, http.MethodPost, "/registration", registration("SVC-1"))
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, "User already exists", res.body["error"])

	missing := registration("SVC-1")
	delete(missing, "officerRank")
	res = s.send(t, http.MethodPost, "/registration", missing)
	assert.Equal(t, http.StatusBadRequest, res.code)
}

func TestLoginDoesNotRevealAccounts(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "SVC-1")

	wrong := s.send(t, http.MethodPost, "/login", map[string]string{"officerSVC": "SVC-1", "Password": "nope-nope"})
	unknown := s.send(t, http.MethodPost, "/login", map[string]string{"officerSVC": "SVC-404", "Password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, wrong.code)
	assert.Equal(t, http.StatusUnauthorized, unknown.code)
	assert.Equal(t, wrong.body["error"], unknown.body["error"])

	res := s.send(t, http.MethodPost, "/login", map[string]string{"officerSVC": "SVC-1"})
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodPost, "/login", map[string]string{"officerSVC": "SVC-1", "Password": "s3cret-pass"})
	require.Equal(t, http.StatusCreated, res.code)
	assert.NotEmpty(t, res.data()["token"])
}

func TestVerify(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "SVC-1")

	res := s.send(t, http.MethodPost, "/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = s.send(t, http.MethodPost, "/verify", nil, "Authorization", "Token "+token)
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodPost, "/verify", nil, "Authorization", "Bearer "+token+"x")
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = s.send(t, http.MethodPost, "/verify", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusCreated, res.code)
	assert.Equal(t, "SVC-1", res.data()["officerSVC"])
	assert.Equal(t, "Officer SVC-1", res.data()["fullName"])

	require.NoError(t, s.db.Where("officer_svc = ?", "SVC-1").Delete(&models.Officer{}).Error)
	res = s.send(t, http.MethodPost, "/verify", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, res.code)
	assert.Equal(t, "No User Found", res.body["error"])
}

func TestUpdateProfileAndGetProfile(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "SVC-1")

	res := s.send(t, http.MethodPost, "/profile", map[string]string{
		"officerSVC":    "SVC-1",
		"contactNumber": "0771234567",
		"fullName":      "",
	})
	require.Equal(t, http.StatusOK, res.code, string(res.raw))
	assert.Equal(t, "Officer SVC-1", res.data()["fullName"])

	res = s.send(t, http.MethodGet, "/profile/SVC-1", nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "0771234567", res.data()["contactNumber"])
	assert.Equal(t, "Sergeant", res.data()["officerRank"])
	assert.NotContains(t, string(res.raw), "s3cret-pass")

	res = s.send(t, http.MethodGet, "/svc/SVC-1", nil)
	assert.Equal(t, http.StatusOK, res.code)

	res = s.send(t, http.MethodPost, "/profile", map[string]string{"officerSVC": "SVC-404", "fullName": "X"})
	assert.Equal(t, http.StatusNotFound, res.code)

	res = s.send(t, http.MethodPost, "/profile", map[string]string{"fullName": "X"})
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodGet, "/profile/SVC-404", nil)
	assert.Equal(t, http.StatusNotFound, res.code)
}

func TestListUsersPagination(t *testing.T) {
	s := newTestServer(t)
	for i := 0; i < 15; i++ {
		require.NoError(t, s.db.Create(&models.Officer{
			FullName:      fmt.Sprintf("Officer %02d", i),
			OfficerSVC:    fmt.Sprintf("SVC-%02d", i),
			OfficerRank:   "Constable",
			PoliceStation: "Kandy",
			Password:      "hash",
		}).Error)
	}

	res := s.send(t, http.MethodGet, "/users?limit=100", nil)
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodGet, "/users?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodGet, "/users?limit=4&page=4611686018427387905", nil)
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Equal(t, "page must be a positive integer", res.body["error"])

	res = s.send(t, http.MethodGet, "/users?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, res.code, string(res.raw))
	users, _ := res.data()["users"].([]interface{})
	assert.Len(t, users, 5)
	page, _ := res.data()["pagination"].(map[string]interface{})
	assert.Equal(t, float64(15), page["totalUsers"])
	assert.Equal(t, float64(2), page["totalPages"])
	assert.Equal(t, false, page["hasNextPage"])
	assert.Equal(t, true, page["hasPrevPage"])
}

func TestViolationLifecycle(t *testing.T) {
	s := newTestServer(t)

	res := s.send(t, http.MethodPost, "/violations/violation", violationForm("Anna Schmidt", "P123"))
	require.Equal(t, http.StatusCreated, res.code, string(res.raw))
	created := res.data()
	id, _ := created["_id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "pending", created["status"])
	assert.Regexp(t, regexp.MustCompile(`^VIO-\d{8}-\d{4}$`), created["referenceNumber"])
	assert.NotContains(t, created, "payment")

	res = s.send(t, http.MethodPost, "/violations/violation", violationForm("Ben Okafor", "P456"))
	require.Equal(t, http.StatusCreated, res.code)

	res = s.send(t, http.MethodPost, "/violations/violation", map[string]interface{}{"formData": map[string]interface{}{}})
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodPost, "/violations/getviolation", map[string]string{"tourist.name": "schmidt"})
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, float64(1), res.body["total"])

	res = s.send(t, http.MethodPost, "/violations/getviolation", map[string]string{})
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, float64(2), res.body["total"])

	res = s.send(t, http.MethodPost, "/violations/getviolation", map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodGet, "/violations/violation/"+id, nil)
	require.Equal(t, http.StatusOK, res.code)
	violation, _ := res.body["violation"].(map[string]interface{})
	assert.Equal(t, id, violation["_id"])

	res = s.send(t, http.MethodGet, "/violations/violation/missing", nil)
	assert.Equal(t, http.StatusNotFound, res.code)

	res = s.send(t, http.MethodPost, "/violations/officer", map[string]string{"officerId": "SVC-1"})
	require.Equal(t, http.StatusOK, res.code)
	assert.Len(t, res.body["violations"], 2)

	res = s.send(t, http.MethodGet, "/violations/tourist?passport=P456", nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Len(t, res.body["violations"], 1)

	res = s.send(t, http.MethodGet, "/violations/tourist", nil)
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodPost, "/violations/status", map[string]interface{}{
		"violationId":    id,
		"status":         "paid",
		"paymentDetails": map[string]string{"amount": "5000", "method": "cash", "receipt": "R-1"},
	})
	require.Equal(t, http.StatusOK, res.code, string(res.raw))
	assert.Equal(t, "Violation status updated to paid successfully", res.body["message"])
	payment, _ := res.data()["payment"].(map[string]interface{})
	assert.Equal(t, "5000", payment["amount"])
	assert.NotEmpty(t, payment["date"])

	res = s.send(t, http.MethodPost, "/violations/status", map[string]interface{}{"violationId": id, "status": "nope"})
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodPost, "/violations/status", map[string]interface{}{"violationId": "missing", "status": "paid"})
	assert.Equal(t, http.StatusNotFound, res.code)
}

func TestAdminRoster(t *testing.T) {
	s := newTestServer(t)
	body := map[string]interface{}{
		"entries": []map[string]string{{"officerSVC": "SVC-1"}, {"officerSVC": "SVC-2", "policeStation": "Ella"}},
	}

	res := s.send(t, http.MethodPost, "/admin/roster", body)
	assert.Equal(t, http.StatusForbidden, res.code)

	res = s.send(t, http.MethodPost, "/admin/roster", body, middleware.AdminKeyHeader, "wrong")
	assert.Equal(t, http.StatusForbidden, res.code)

	res = s.send(t, http.MethodPost, "/admin/roster", body, middleware.AdminKeyHeader, testAdminKey)
	require.Equal(t, http.StatusCreated, res.code, string(res.raw))
	assert.Equal(t, float64(2), res.data()["inserted"])

	res = s.send(t, http.MethodPost, "/admin/roster", body, middleware.AdminKeyHeader, testAdminKey)
	require.Equal(t, http.StatusCreated, res.code)
	assert.Equal(t, float64(0), res.data()["inserted"])
	assert.Equal(t, float64(2), res.data()["skipped"])

	res = s.send(t, http.MethodGet, "/admin/roster?limit=10", nil, middleware.AdminKeyHeader, testAdminKey)
	require.Equal(t, http.StatusOK, res.code)
	assert.Len(t, res.data()["entries"], 2)

	res = s.send(t, http.MethodPost, "/registration", registration("SVC-2"))
	require.Equal(t, http.StatusCreated, res.code)

	res = s.send(t, http.MethodPost, "/admin/roster/SVC-1/deactivate", nil, middleware.AdminKeyHeader, testAdminKey)
	require.Equal(t, http.StatusOK, res.code)
	res = s.send(t, http.MethodPost, "/registration", registration("SVC-1"))
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.send(t, http.MethodPost, "/admin/roster/SVC-404/deactivate", nil, middleware.AdminKeyHeader, testAdminKey)
	assert.Equal(t, http.StatusNotFound, res.code)
}

func pictureRequest(t *testing.T, token string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("profilepicture", "me.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/profile/picture", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestUploadProfilePicture(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "SVC-1")
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	res := s.do(t, pictureRequest(t, "", png))
	assert.Equal(t, http.StatusUnauthorized, res.code)

	res = s.do(t, pictureRequest(t, token, []byte("plain text, not an image")))
	assert.Equal(t, http.StatusBadRequest, res.code)

	res = s.do(t, pictureRequest(t, token, png))
	require.Equal(t, http.StatusOK, res.code, string(res.raw))
	ref, _ := res.data()["profilePicture"].(string)
	assert.Regexp(t, `^/uploads/profiles/[0-9a-f-]{36}\.png$`, ref)

	res = s.send(t, http.MethodGet, "/profile/SVC-1", nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, ref, res.data()["profilePicture"])

	res = s.send(t, http.MethodGet, ref, nil)
	assert.Equal(t, http.StatusOK, res.code)
}

func TestTracks(t *testing.T) {
	s := newTestServer(t)
	dir := filepath.Join(s.tracksDir, "voicerecords", "warnings")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "intro.mp3"), []byte("ID3"), 0o644))

	res := s.send(t, http.MethodGet, "/tracks", nil)
	require.Equal(t, http.StatusOK, res.code, string(res.raw))
	assert.Equal(t, []interface{}{"warnings"}, res.body["folders"])

	res = s.send(t, http.MethodGet, "/tracks/warnings", nil)
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "public, max-age=60", res.header.Get("Cache-Control"))
	tracks, _ := res.body["tracks"].([]interface{})
	require.Len(t, tracks, 1)
	track, _ := tracks[0].(map[string]interface{})
	assert.Equal(t, "intro.mp3", track["name"])
	assert.Equal(t, "/media/voicerecords/warnings/intro.mp3", track["url"])

	res = s.send(t, http.MethodGet, "/media/voicerecords/warnings/intro.mp3", nil)
	assert.Equal(t, http.StatusOK, res.code)
	assert.Empty(t, res.header.Get("Cache-Control"))
}

func TestHealthAndInternalErrors(t *testing.T) {
	s := newTestServer(t)

	res := s.send(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, res.code)
	checks, _ := res.body["checks"].(map[string]interface{})
	assert.Equal(t, "healthy", checks["database"])

	res = s.send(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, res.code)

	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	res = s.send(t, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusInternalServerError, res.code)
	assert.Equal(t, "Internal Server Error", res.body["error"])

	res = s.send(t, http.MethodGet, "/health", nil)
	checks, _ = res.body["checks"].(map[string]interface{})
	assert.Equal(t, "unhealthy", checks["database"])
}
