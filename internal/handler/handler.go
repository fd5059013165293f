package handler

import (
	"huddle/backend/internal/auth"
	"huddle/backend/internal/service"
	"huddle/backend/internal/session"
	"huddle/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler carries the service dependencies for every endpoint. Constructed
// once in main (or in tests with in-memory stores) instead of reaching for
// package-level singletons.
type Handler struct {
	users    *service.UserService
	friends  *service.FriendshipService
	posts    *service.PostService
	messages *service.MessageService
	moods    *service.MoodService
	calls    *service.CallService
	sessions *session.Store
	tokens   *jwt.Manager
	log      *zap.Logger
}

func New(
	users *service.UserService,
	friends *service.FriendshipService,
	posts *service.PostService,
	messages *service.MessageService,
	moods *service.MoodService,
	calls *service.CallService,
	sessions *session.Store,
	tokens *jwt.Manager,
	log *zap.Logger,
) *Handler {
	return &Handler{
		users:    users,
		friends:  friends,
		posts:    posts,
		messages: messages,
		moods:    moods,
		calls:    calls,
		sessions: sessions,
		tokens:   tokens,
		log:      log,
	}
}

// RegisterRoutes wires every endpoint onto the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	authRequired := auth.Middleware(h.tokens, h.sessions)
	authOptional := auth.OptionalMiddleware(h.tokens, h.sessions)

	router.GET("/session", authOptional, h.GetSession)
	router.POST("/login", h.Login)
	router.POST("/logout", authRequired, h.Logout)

	router.GET("/users", h.ListUsers)
	router.GET("/users/:username", h.GetUser)
	router.POST("/users", h.Register)
	router.PATCH("/users/username", authRequired, h.UpdateUsername)
	router.PATCH("/users/password", authRequired, h.UpdatePassword)
	router.DELETE("/users", authRequired, h.DeleteUser)

	router.GET("/posts", h.ListPosts)
	router.POST("/posts", authRequired, h.CreatePost)
	router.PATCH("/posts/:id", authRequired, h.UpdatePost)
	router.DELETE("/posts/:id", authRequired, h.DeletePost)

	router.GET("/friends", authRequired, h.ListFriends)
	router.DELETE("/friends/:friend", authRequired, h.RemoveFriend)
	router.GET("/friend/requests", authRequired, h.ListFriendRequests)
	router.POST("/friend/requests/:to", authRequired, h.SendFriendRequest)
	router.DELETE("/friend/requests/:to", authRequired, h.CancelFriendRequest)
	router.PUT("/friend/accept/:from", authRequired, h.AcceptFriendRequest)
	router.PUT("/friend/reject/:from", authRequired, h.RejectFriendRequest)

	router.POST("/messages", authRequired, h.SendMessage)
	router.GET("/messages", authRequired, h.GetInbox)
	router.GET("/messages/:correspondent", authRequired, h.GetTranscript)
	router.DELETE("/messages/:id", authRequired, h.DeleteMessage)

	router.POST("/moods", authRequired, h.SetMood)
	router.GET("/moods/:recipient", authRequired, h.GetMoods)
	router.DELETE("/moods", authRequired, h.RemoveMood)

	router.POST("/calls", authRequired, h.StartCall)
	router.PUT("/calls/accept", authRequired, h.AcceptCall)
	router.PUT("/calls/end", authRequired, h.EndCall)
	router.GET("/calls/status", authRequired, h.GetCallStatus)
}
