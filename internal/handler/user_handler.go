package handler

import (
	"net/http"

	"huddle/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required,min=4" example:"password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UpdateUsernameInput defines the structure for a username change.
type UpdateUsernameInput struct {
	Username string `json:"username" binding:"required" example:"alice2"`
}

// UpdatePasswordInput defines the structure for a password change.
type UpdatePasswordInput struct {
	Password string `json:"password" binding:"required,min=4" example:"hunter22"`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	Username string `json:"username" example:"alice"`
	JoinedAt string `json:"joined_at" example:"2026-01-02T15:04:05Z"`
}

func newPublicUserResponse(user models.User) PublicUserResponse {
	return PublicUserResponse{
		Username: user.Username,
		JoinedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// endregion

// region --- Auth Handlers ---

// Register godoc
// @Summary      Register a new user
// @Description  Creates a new account and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "...", "username": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /users [post]
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.openSession(c, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "username": user.Username})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates a user and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "...", "username": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.openSession(c, user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "username": user.Username})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the current session; the token stops working.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "Logged out"}"
// @Failure      401  {object}  ErrorResponse
// @Router       /logout [post]
func (h *Handler) Logout(c *gin.Context) {
	sessionID, _ := c.Get("sessionID")
	if err := h.sessions.Revoke(c.Request.Context(), sessionID.(string)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetSession godoc
// @Summary      Current session
// @Description  Reports who is logged in on this token, or null.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string "{"username": "alice"} or {"username": null}"
// @Router       /session [get]
func (h *Handler) GetSession(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"username": nil})
		return
	}

	user, err := h.users.ByID(c.Request.Context(), userID)
	if err != nil {
		// Account deleted while the session was live.
		c.JSON(http.StatusOK, gin.H{"username": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// openSession registers a new session and issues its token.
func (h *Handler) openSession(c *gin.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := h.sessions.Create(c.Request.Context(), sessionID, userID); err != nil {
		return "", err
	}
	return h.tokens.Generate(userID, sessionID)
}

// endregion

// region --- User Handlers ---

// ListUsers godoc
// @Summary      List users
// @Description  Returns every registered username.
// @Tags         users
// @Produce      json
// @Success      200  {array}   string
// @Router       /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	usernames, err := h.users.ListUsernames(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if usernames == nil {
		usernames = []string{}
	}
	c.JSON(http.StatusOK, usernames)
}

// GetUser godoc
// @Summary      Get user by username
// @Description  Retrieves the public profile for a specific user.
// @Tags         users
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  PublicUserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{username} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newPublicUserResponse(*user))
}

// UpdateUsername godoc
// @Summary      Change username
// @Description  Renames the authenticated user's account.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateUsernameInput true "New username"
// @Success      200  {object}  map[string]string "{"message": "Username updated"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Username taken"
// @Router       /users/username [patch]
func (h *Handler) UpdateUsername(c *gin.Context) {
	var input UpdateUsernameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateUsername(c.Request.Context(), currentUserID(c), input.Username); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Username updated"})
}

// UpdatePassword godoc
// @Summary      Change password
// @Description  Replaces the authenticated user's password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdatePasswordInput true "New password"
// @Success      200  {object}  map[string]string "{"message": "Password updated"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/password [patch]
func (h *Handler) UpdatePassword(c *gin.Context) {
	var input UpdatePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), currentUserID(c), input.Password); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteUser godoc
// @Summary      Delete account
// @Description  Deletes the authenticated user's account and ends the session.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "Account deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Router       /users [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), currentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}

	sessionID, _ := c.Get("sessionID")
	if err := h.sessions.Revoke(c.Request.Context(), sessionID.(string)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// endregion
