package handler

import (
	"net/http"

	"huddle/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SendMessageInput defines the structure for sending a direct message.
type SendMessageInput struct {
	Recipient string `json:"recipient" binding:"required" example:"bob"`
	Content   string `json:"content" binding:"required" example:"hey!"`
}

// MessageResponse defines the structure for a message in API responses.
type MessageResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient,omitempty"`
	Content   string `json:"content"`
	SentAt    string `json:"sent_at"`
}

func newMessageResponse(message models.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		Sender:    message.Sender.Username,
		Recipient: message.Recipient.Username,
		Content:   message.Content,
		SentAt:    message.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// endregion

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Sends a message to a friend.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendMessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Empty content"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends"
// @Failure      404  {object}  ErrorResponse "Recipient not found"
// @Router       /messages [post]
func (h *Handler) SendMessage(c *gin.Context) {
	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	sender, err := h.users.ByID(ctx, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	recipient, err := h.users.ByUsername(ctx, input.Recipient)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.AssertFriends(ctx, sender.ID, recipient.ID, sender.Username, recipient.Username); err != nil {
		h.fail(c, err)
		return
	}

	message, err := h.messages.Send(ctx, sender.ID, recipient.ID, input.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	message.Sender = *sender
	message.Recipient = *recipient

	c.JSON(http.StatusCreated, newMessageResponse(*message))
}

// GetInbox godoc
// @Summary      Inbox
// @Description  Returns messages addressed to the authenticated user, newest first.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /messages [get]
func (h *Handler) GetInbox(c *gin.Context) {
	messages, err := h.messages.Inbox(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	responses := []MessageResponse{}
	for _, message := range messages {
		r := newMessageResponse(message)
		r.Recipient = "" // implicit: it's the caller's inbox
		responses = append(responses, r)
	}
	c.JSON(http.StatusOK, responses)
}

// GetTranscript godoc
// @Summary      Conversation transcript
// @Description  Returns all messages between the authenticated user and a friend, oldest first.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        correspondent  path  string  true  "Friend's username"
// @Success      200  {array}   MessageResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /messages/{correspondent} [get]
func (h *Handler) GetTranscript(c *gin.Context) {
	ctx := c.Request.Context()
	me, err := h.users.ByID(ctx, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	other, err := h.users.ByUsername(ctx, c.Param("correspondent"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.AssertFriends(ctx, me.ID, other.ID, me.Username, other.Username); err != nil {
		h.fail(c, err)
		return
	}

	messages, err := h.messages.Transcript(ctx, me.ID, other.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses := []MessageResponse{}
	for _, message := range messages {
		responses = append(responses, newMessageResponse(message))
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Description  Removes a message by its id.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Message ID"
// @Success      200  {object}  map[string]string "{"message": "Message deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Message not found"
// @Router       /messages/{id} [delete]
func (h *Handler) DeleteMessage(c *gin.Context) {
	if err := h.messages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
