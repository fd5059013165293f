package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"huddle/backend/internal/database"
	"huddle/backend/internal/handler"
	"huddle/backend/internal/service"
	"huddle/backend/internal/session"
	"huddle/backend/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewStore(client, time.Hour)
	tokens := jwt.NewManager("test-secret", time.Hour)

	h := handler.New(
		service.NewUserService(db),
		service.NewFriendshipService(db),
		service.NewPostService(db),
		service.NewMessageService(db),
		service.NewMoodService(db),
		service.NewCallService(db),
		sessions,
		tokens,
		zap.NewNop(),
	)

	router := gin.New()
	h.RegisterRoutes(router)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

// register creates an account and returns its token.
func register(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w := do(t, router, http.MethodPost, "/users", "", gin.H{"username": username, "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", username, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// befriend runs the full request/accept handshake between two tokens.
func befriend(t *testing.T, router *gin.Engine, fromToken, fromName, toToken, toName string) {
	t.Helper()
	w := do(t, router, http.MethodPost, "/friend/requests/"+toName, fromToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(t, router, http.MethodPut, "/friend/accept/"+fromName, toToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/friends", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, http.MethodGet, "/friends", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionReflectsLoginAndLogout(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var anon struct {
		Username *string `json:"username"`
	}
	decode(t, w, &anon)
	assert.Nil(t, anon.Username)

	token := register(t, router, "alice")

	w = do(t, router, http.MethodGet, "/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var current struct {
		Username *string `json:"username"`
	}
	decode(t, w, &current)
	require.NotNil(t, current.Username)
	assert.Equal(t, "alice", *current.Username)

	// Logout revokes the token for good.
	w = do(t, router, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/friends", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Login issues a fresh working token.
	w = do(t, router, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPeerActionsRequireFriendship(t *testing.T) {
	router := newTestRouter(t)
	carolToken := register(t, router, "carol")
	register(t, router, "dave")

	w := do(t, router, http.MethodPost, "/messages", carolToken, gin.H{"recipient": "dave", "content": "hi"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "carol")
	assert.Contains(t, w.Body.String(), "dave")

	w = do(t, router, http.MethodPost, "/moods", carolToken, gin.H{"recipient": "dave", "mood": "🙂"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, router, http.MethodPost, "/calls", carolToken, gin.H{"recipient": "dave"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unknown peers are a 404, not a 403.
	w = do(t, router, http.MethodPost, "/messages", carolToken, gin.H{"recipient": "nobody", "content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFriendAndCallScenario(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := register(t, router, "alice")
	bobToken := register(t, router, "bob")

	// alice requests, bob sees it incoming and accepts.
	w := do(t, router, http.MethodPost, "/friend/requests/bob", aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/friend/requests", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var requests struct {
		Incoming []string `json:"incoming"`
		Outgoing []string `json:"outgoing"`
	}
	decode(t, w, &requests)
	assert.Equal(t, []string{"alice"}, requests.Incoming)
	assert.Empty(t, requests.Outgoing)

	w = do(t, router, http.MethodPut, "/friend/accept/alice", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Both sides list the other as a friend.
	for token, expected := range map[string]string{aliceToken: "bob", bobToken: "alice"} {
		w = do(t, router, http.MethodGet, "/friends", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var friends []string
		decode(t, w, &friends)
		assert.Equal(t, []string{expected}, friends)
	}

	// alice rings bob.
	w = do(t, router, http.MethodPost, "/calls", aliceToken, gin.H{"recipient": "bob"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/calls/status", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Status string `json:"status"`
		Caller string `json:"caller"`
		Role   string `json:"role"`
	}
	decode(t, w, &status)
	assert.Equal(t, "pending", status.Status)
	assert.Equal(t, "alice", status.Caller)
	assert.Equal(t, "recipient", status.Role)

	// bob answers; both sides see an active call.
	w = do(t, router, http.MethodPut, "/calls/accept", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, token := range []string{aliceToken, bobToken} {
		w = do(t, router, http.MethodGet, "/calls/status", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &status)
		assert.Equal(t, "active", status.Status)
	}

	// bob hangs up; both sides report no call.
	w = do(t, router, http.MethodPut, "/calls/end", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, token := range []string{aliceToken, bobToken} {
		w = do(t, router, http.MethodGet, "/calls/status", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &status)
		assert.Equal(t, "none", status.Status)
	}

	// Ending again fails: nobody is in a call.
	w = do(t, router, http.MethodPut, "/calls/end", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelfCallRejected(t *testing.T) {
	router := newTestRouter(t)
	token := register(t, router, "alice")

	w := do(t, router, http.MethodPost, "/calls", token, gin.H{"recipient": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessagingFlow(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := register(t, router, "alice")
	bobToken := register(t, router, "bob")
	befriend(t, router, aliceToken, "alice", bobToken, "bob")

	w := do(t, router, http.MethodPost, "/messages", aliceToken, gin.H{"recipient": "bob", "content": "hi bob"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, router, http.MethodPost, "/messages", bobToken, gin.H{"recipient": "alice", "content": "hi alice"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/messages/bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var transcript []struct {
		Sender  string `json:"sender"`
		Content string `json:"content"`
	}
	decode(t, w, &transcript)
	require.Len(t, transcript, 2)

	w = do(t, router, http.MethodGet, "/messages", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var inbox []struct {
		ID      string `json:"id"`
		Sender  string `json:"sender"`
		Content string `json:"content"`
	}
	decode(t, w, &inbox)
	require.Len(t, inbox, 1)
	assert.Equal(t, "alice", inbox[0].Sender)

	w = do(t, router, http.MethodDelete, "/messages/"+inbox[0].ID, bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMoodExchange(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := register(t, router, "alice")
	bobToken := register(t, router, "bob")
	befriend(t, router, aliceToken, "alice", bobToken, "bob")

	w := do(t, router, http.MethodPost, "/moods", aliceToken, gin.H{"recipient": "bob", "mood": "🙂"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodPost, "/moods", aliceToken, gin.H{"recipient": "bob", "mood": "not an emoji"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodGet, "/moods/alice", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var moods struct {
		Mine   *string `json:"mine"`
		Theirs *string `json:"theirs"`
	}
	decode(t, w, &moods)
	assert.Nil(t, moods.Mine)
	require.NotNil(t, moods.Theirs)
	assert.Equal(t, "🙂", *moods.Theirs)

	w = do(t, router, http.MethodDelete, "/moods?recipient=bob", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodDelete, "/moods?recipient=bob", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostOwnership(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := register(t, router, "alice")
	bobToken := register(t, router, "bob")

	w := do(t, router, http.MethodPost, "/posts", aliceToken, gin.H{"content": "hello", "background_color": "#fff"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID     string `json:"id"`
		Author string `json:"author"`
	}
	decode(t, w, &post)
	assert.Equal(t, "alice", post.Author)

	w = do(t, router, http.MethodPatch, "/posts/"+post.ID, bobToken, gin.H{"content": "hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, router, http.MethodPatch, "/posts/"+post.ID, aliceToken, gin.H{"content": "edited"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/posts?author=alice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Data []struct {
			Content string `json:"content"`
		} `json:"data"`
	}
	decode(t, w, &page)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "edited", page.Data[0].Content)

	w = do(t, router, http.MethodDelete, "/posts/"+post.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, router, http.MethodDelete, "/posts/"+post.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUsernameChangeAndDelete(t *testing.T) {
	router := newTestRouter(t)
	token := register(t, router, "alice")
	register(t, router, "bob")

	w := do(t, router, http.MethodPatch, "/users/username", token, gin.H{"username": "bob"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPatch, "/users/username", token, gin.H{"username": "alice2"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/users/alice2", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodGet, "/users/alice", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodDelete, "/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The session died with the account.
	w = do(t, router, http.MethodGet, "/friends", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, router, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var usernames []string
	decode(t, w, &usernames)
	assert.Equal(t, []string{"bob"}, usernames)
}
