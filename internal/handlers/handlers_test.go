package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zerix-app/zerix/cmd/server"
	"github.com/zerix-app/zerix/internal/database"
	"github.com/zerix-app/zerix/internal/handlers"
	"github.com/zerix-app/zerix/internal/models"
	"github.com/zerix-app/zerix/internal/uploads"
	"github.com/zerix-app/zerix/pkg/session"
)

type testApp struct {
	router *gin.Engine
	db     *database.Database
}

// newTestApp builds the real route table over an in-memory database,
// an in-memory session store and a temp upload dir.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Post{}, &models.Message{}))

	db := database.NewDatabase(gdb)
	sessions := session.NewMemoryStore()
	log := zerolog.Nop()

	uploadStore, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)

	authH := handlers.NewAuthHandler(db, sessions, log)
	postH := handlers.NewPostHandler(db, uploadStore, log)
	chatH := handlers.NewChatHandler(db, handlers.DefaultHistoryLimit, log)

	router := gin.New()
	server.APIEndpoints(router, authH, postH, chatH, sessions, uploadStore.Dir())

	return &testApp{router: router, db: db}
}

func (a *testApp) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) register(t *testing.T, username, email, password string) uint {
	t.Helper()

	w := a.doJSON(t, http.MethodPost, "/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		UserID uint `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.UserID
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()

	w := a.doJSON(t, http.MethodPost, "/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testApp) signUp(t *testing.T, username, email, password string) (uint, string) {
	t.Helper()

	id := a.register(t, username, email, password)
	return id, a.login(t, email, password)
}

func (a *testApp) createPost(t *testing.T, token, text string, image []byte, imageName string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", text))
	if image != nil {
		fw, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/post/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type feedEntry struct {
	ID       uint    `json:"id"`
	Text     string  `json:"text"`
	Image    *string `json:"image"`
	Username string  `json:"username"`
}

func (a *testApp) feed(t *testing.T, path, token string) []feedEntry {
	t.Helper()

	w := a.doJSON(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Posts []feedEntry `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Posts
}

type threadEntry struct {
	ID       uint   `json:"id"`
	FromUser uint   `json:"from_user"`
	ToUser   uint   `json:"to_user"`
	Text     string `json:"text"`
	Sender   struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"sender"`
}

func (a *testApp) thread(t *testing.T, token string, otherID uint) []threadEntry {
	t.Helper()

	w := a.doJSON(t, http.MethodGet, fmt.Sprintf("/chat/%d", otherID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Messages []threadEntry `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Messages
}
