package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SetMoodInput defines the structure for sharing a mood with a friend.
type SetMoodInput struct {
	Recipient string `json:"recipient" binding:"required" example:"bob"`
	Mood      string `json:"mood" binding:"required" example:"🙂"`
}

// MoodsResponse holds both directions of a mood exchange; a side that has
// not set a mood is null.
type MoodsResponse struct {
	Mine   *string `json:"mine"`
	Theirs *string `json:"theirs"`
}

// endregion

// SetMood godoc
// @Summary      Set mood
// @Description  Shares a single-emoji mood with a friend; re-setting overwrites.
// @Tags         moods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SetMoodInput true "Mood"
// @Success      200  {object}  map[string]string "{"message": "Mood set"}"
// @Failure      400  {object}  ErrorResponse "Not a single emoji"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends"
// @Failure      404  {object}  ErrorResponse "Recipient not found"
// @Router       /moods [post]
func (h *Handler) SetMood(c *gin.Context) {
	var input SetMoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	me, err := h.users.ByID(ctx, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	recipient, err := h.users.ByUsername(ctx, input.Recipient)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.AssertFriends(ctx, me.ID, recipient.ID, me.Username, recipient.Username); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.moods.Set(ctx, me.ID, recipient.ID, input.Mood); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mood set"})
}

// GetMoods godoc
// @Summary      Get moods
// @Description  Returns both directions of the mood exchange with a friend.
// @Tags         moods
// @Produce      json
// @Security     BearerAuth
// @Param        recipient  path  string  true  "Friend's username"
// @Success      200  {object}  MoodsResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /moods/{recipient} [get]
func (h *Handler) GetMoods(c *gin.Context) {
	ctx := c.Request.Context()
	me, err := h.users.ByID(ctx, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	other, err := h.users.ByUsername(ctx, c.Param("recipient"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.AssertFriends(ctx, me.ID, other.ID, me.Username, other.Username); err != nil {
		h.fail(c, err)
		return
	}

	mine, theirs, err := h.moods.Both(ctx, me.ID, other.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MoodsResponse{Mine: mine, Theirs: theirs})
}

// RemoveMood godoc
// @Summary      Remove mood
// @Description  Stops sharing a mood with the named friend.
// @Tags         moods
// @Produce      json
// @Security     BearerAuth
// @Param        recipient  query  string  true  "Friend's username"
// @Success      200  {object}  map[string]string "{"message": "Mood removed"}"
// @Failure      400  {object}  ErrorResponse "Missing recipient"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No mood set"
// @Router       /moods [delete]
func (h *Handler) RemoveMood(c *gin.Context) {
	recipientName := c.Query("recipient")
	if recipientName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A 'recipient' query parameter is required"})
		return
	}

	ctx := c.Request.Context()
	recipient, err := h.users.ByUsername(ctx, recipientName)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.moods.Remove(ctx, currentUserID(c), recipient.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mood removed"})
}
