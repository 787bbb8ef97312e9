package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/config"
	"github.com/sednex/community-backend/internal/database"
	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStore struct {
	mu    sync.Mutex
	count int
}

func (f *fakeStore) Upload(_ context.Context, folder string, header *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	return fmt.Sprintf("https://cdn.test/%s/%d-%s", folder, f.count, header.Filename), nil
}

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	db       *gorm.DB
	verifier *services.LocalVerifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(sqlite.Open(":memory:"), logger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	verifier := services.NewLocalVerifier("routes-secret", "routes-test")
	router := gin.New()
	SetupRoutes(router, db, &config.Config{CORSAllowedOrigins: []string{"*"}}, verifier, &fakeStore{})

	return &testServer{t: t, router: router, db: db, verifier: verifier}
}

// login signs subject in through the API and returns a bearer token.
func (s *testServer) login(subject, role string) string {
	s.t.Helper()
	token, err := s.verifier.Issue(services.VerifiedToken{Subject: subject, Name: subject, Email: subject + "@example.com"}, time.Hour)
	require.NoError(s.t, err)

	w := s.do(http.MethodPost, "/api/auth/login", "", jsonBody(s.t, map[string]any{"token": token}), "application/json")
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	if role != types.RoleUser {
		require.NoError(s.t, s.db.Model(&models.User{}).Where("subject_id = ?", subject).Update("role", role).Error)
	}
	return token
}

func (s *testServer) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) json(method, path, token string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		body = jsonBody(s.t, payload)
	}
	return s.do(method, path, token, body, "application/json")
}

func jsonBody(t *testing.T, payload any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func productForm(t *testing.T, values map[string][]string, files ...string) (io.Reader, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, list := range values {
		for _, value := range list {
			require.NoError(t, writer.WriteField(key, value))
		}
	}
	for _, name := range files {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/login", "", bytes.NewBufferString("{"), "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication failed", decode(t, w)["message"])

	w = s.json(http.MethodPost, "/api/auth/login", "", map[string]any{"token": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestProtectedRoutesAnswerWithBareMessage(t *testing.T) {
	s := newTestServer(t)

	w := s.json(http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, map[string]any{"message": "Unauthorized"}, decode(t, w))

	stranger, err := s.verifier.Issue(services.VerifiedToken{Subject: "never-logged-in"}, time.Hour)
	require.NoError(t, err)
	w = s.json(http.MethodGet, "/api/posts", stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, map[string]any{"message": "User not registered"}, decode(t, w))

	user := s.login("plain-user", types.RoleUser)
	w = s.json(http.MethodGet, "/api/admin/dashboard", user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, map[string]any{"message": "Admin access only"}, decode(t, w))
}

func TestMeReturnsProfile(t *testing.T) {
	s := newTestServer(t)
	token := s.login("someone", types.RoleUser)

	w := s.json(http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "someone", user["firebaseUid"])
	assert.Equal(t, "user", user["role"])
}

func TestStoreOutageDuringAuthIsInternal(t *testing.T) {
	srv := newTestServer(t)
	token := srv.login("uid-outage", types.RoleUser)

	sqlDB, err := srv.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := srv.do(http.MethodGet, "/api/users/me", token, nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"message": "Authentication unavailable"}, decode(t, w))
}

func TestProductFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin-1", types.RoleAdmin)
	user := s.login("user-1", types.RoleUser)

	w := s.json(http.MethodPost, "/api/categories", admin, map[string]any{"name": "Lighting"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	lampForm := func() (io.Reader, string) {
		return productForm(t, map[string][]string{
			"name":                     {"Desk Lamp"},
			"price":                    {"80"},
			"discountPrice":            {"60"},
			"category":                 {"lighting"},
			"badges[0]":                {"new"},
			"specifications[0][key]":   {"power"},
			"specifications[0][value]": {"40W"},
			"colorVariants":            {"Black", "White"},
			"existingImages":           {"https://cdn.test/existing.png"},
		}, "front.png", "side.jpg")
	}

	body, contentType := lampForm()
	w = s.do(http.MethodPost, "/api/products", user, body, contentType)
	require.Equal(t, http.StatusForbidden, w.Code)

	body, contentType = lampForm()
	w = s.do(http.MethodPost, "/api/products", admin, body, contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)
	assert.Equal(t, "Product created successfully", created["message"])
	product := created["product"].(map[string]any)
	id := product["id"].(string)
	assert.Equal(t, "desk-lamp", product["slug"])
	assert.Equal(t, []any{"new"}, product["badges"])
	assert.Len(t, product["images"], 3)
	assert.Len(t, product["colorVariants"], 2)
	assert.Equal(t, "Lighting", product["category"].(map[string]any)["name"])

	w = s.json(http.MethodGet, "/api/products?badge=new&category=lighting", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = s.json(http.MethodPatch, "/api/products/"+id+"/love", user, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode(t, w)
	assert.Equal(t, true, first["loved"])
	assert.Equal(t, float64(1), first["loveCount"])

	w = s.json(http.MethodGet, "/api/products/desk-lamp", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["isLoved"])

	w = s.json(http.MethodGet, "/api/products/desk-lamp", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["isLoved"])

	w = s.json(http.MethodPatch, "/api/products/"+id+"/love", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	second := decode(t, w)
	assert.Equal(t, false, second["loved"])
	assert.Equal(t, float64(0), second["loveCount"])

	w = s.json(http.MethodPost, "/api/products/"+id+"/review", user, map[string]any{"rating": 4, "comment": "bright"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reviewed := decode(t, w)["product"].(map[string]any)
	assert.Equal(t, map[string]any{"average": float64(4), "totalReviews": float64(1)}, reviewed["ratings"])

	w = s.json(http.MethodPut, "/api/products/"+id, admin, map[string]any{"price": 50})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Discount price cannot exceed price", decode(t, w)["message"])

	w = s.json(http.MethodDelete, "/api/products/"+id, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.json(http.MethodGet, "/api/products/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductUploadLimit(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin-1", types.RoleAdmin)

	body, contentType := productForm(t, map[string][]string{"name": {"Too Many"}, "price": {"1"}}, "1.png", "2.png", "3.png", "4.png")
	w := s.do(http.MethodPost, "/api/products", admin, body, contentType)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You can upload up to 3 images per product", decode(t, w)["message"])
}

func TestPostAndCommentFlow(t *testing.T) {
	s := newTestServer(t)
	author := s.login("author", types.RoleUser)
	other := s.login("other", types.RoleUser)

	w := s.json(http.MethodPost, "/api/posts", author, map[string]any{"description": "Sunset", "category": "travel"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	postID := decode(t, w)["post"].(map[string]any)["id"].(string)

	w = s.json(http.MethodPatch, "/api/posts/"+postID, other, map[string]any{"description": "mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not allowed to edit this post", decode(t, w)["message"])

	w = s.json(http.MethodPatch, "/api/posts/"+postID+"/love", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	loved := decode(t, w)
	assert.Equal(t, "Post loved", loved["message"])
	assert.Equal(t, float64(1), loved["loveCount"])

	w = s.json(http.MethodPost, "/api/posts/comment/"+postID, other, map[string]any{"content": "Lovely"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	commentID := decode(t, w)["comment"].(map[string]any)["id"].(string)

	w = s.json(http.MethodPost, "/api/posts/comment/"+postID, author, map[string]any{"content": "Thanks", "parentCommentId": commentID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.json(http.MethodGet, "/api/posts/comment/"+postID, other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["comments"], 1)

	w = s.json(http.MethodGet, "/api/posts/comment/replies/"+commentID, other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["replies"], 1)

	w = s.json(http.MethodGet, "/api/posts/"+postID, author, nil)
	require.Equal(t, http.StatusOK, w.Code)
	post := decode(t, w)["post"].(map[string]any)
	assert.Equal(t, float64(2), post["commentsCount"])
	assert.Equal(t, "Sunset", post["description"])

	w = s.json(http.MethodGet, "/api/posts/category/travel", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["totalPosts"])
}

func TestSavedArticlesRoute(t *testing.T) {
	s := newTestServer(t)
	author := s.login("writer", types.RoleUser)
	reader := s.login("reader", types.RoleUser)

	w := s.json(http.MethodPost, "/api/articles", author, map[string]any{"category": "food", "title": "Bread", "description": "Sourdough"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	articleID := decode(t, w)["article"].(map[string]any)["id"].(string)

	w = s.json(http.MethodPost, "/api/articles/"+articleID+"/save", reader, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, decode(t, w)["saved"])

	w = s.json(http.MethodGet, "/api/articles/saved", reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = s.json(http.MethodPost, "/api/articles/"+articleID+"/save", reader, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["saved"])

	w = s.json(http.MethodDelete, "/api/articles/"+articleID, author, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAboutRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin-1", types.RoleAdmin)
	user := s.login("user-1", types.RoleUser)

	w := s.json(http.MethodGet, "/api/about/terms", user, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	terms := map[string]any{"title": "Terms", "content": "Be kind", "version": "1"}
	w = s.json(http.MethodPost, "/api/about/terms", user, terms)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.json(http.MethodPost, "/api/about/terms", admin, terms)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.json(http.MethodPost, "/api/about/terms", admin, terms)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.json(http.MethodGet, "/api/about/terms", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)["terms"].(map[string]any)
	assert.Equal(t, "Be kind", view["content"])
	assert.Contains(t, view, "lastUpdated")
	assert.NotContains(t, view, "id")

	w = s.json(http.MethodPost, "/api/about/faq", admin, map[string]any{"question": "Open?", "answer": "Yes"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.json(http.MethodGet, "/api/about/faq", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])
}

func TestTouristRoutes(t *testing.T) {
	s := newTestServer(t)
	user := s.login("traveller", types.RoleUser)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "Lighthouse"))
	require.NoError(t, writer.WriteField("description", "On the cliff"))
	part, err := writer.CreateFormFile("image", "light.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := s.do(http.MethodPost, "/api/tourist", user, body, writer.FormDataContentType())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	spot := decode(t, w)["spot"].(map[string]any)
	assert.Contains(t, spot["image"], services.FolderTouristSpots)

	w = s.json(http.MethodGet, "/api/tourist", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["spots"], 1)
}

func TestAdminDashboard(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin-1", types.RoleAdmin)
	s.login("user-1", types.RoleUser)

	w := s.json(http.MethodGet, "/api/admin/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["totalUsers"])
}
