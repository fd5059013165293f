package handler

import (
	"net/http"

	"huddle/backend/internal/apperr"
	"huddle/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// StartCallInput defines the structure for starting a call.
type StartCallInput struct {
	Recipient string `json:"recipient" binding:"required" example:"bob"`
}

// CallStatusResponse describes the caller's view of the call state machine.
// Status is "none", "pending", or "active"; Role says which side of the call
// the authenticated user is on.
type CallStatusResponse struct {
	Status    string `json:"status" example:"pending"`
	CallID    string `json:"call_id,omitempty"`
	Caller    string `json:"caller,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Role      string `json:"role,omitempty" example:"recipient"`
}

func newCallStatusResponse(call *models.Call, viewerID string) CallStatusResponse {
	if call == nil {
		return CallStatusResponse{Status: "none"}
	}

	role := "caller"
	if call.RecipientID == viewerID {
		role = "recipient"
	}
	return CallStatusResponse{
		Status:    string(call.Status),
		CallID:    call.ID,
		Caller:    call.Caller.Username,
		Recipient: call.Recipient.Username,
		Role:      role,
	}
}

// endregion

// StartCall godoc
// @Summary      Start a call
// @Description  Rings a friend. Fails if either party is already in a call.
// @Tags         calls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body StartCallInput true "Recipient"
// @Success      201  {object}  CallStatusResponse
// @Failure      400  {object}  ErrorResponse "Self-call"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not friends"
// @Failure      404  {object}  ErrorResponse "Recipient not found"
// @Failure      409  {object}  ErrorResponse "Already in a call"
// @Router       /calls [post]
func (h *Handler) StartCall(c *gin.Context) {
	var input StartCallInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	caller, err := h.users.ByID(ctx, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	recipient, err := h.users.ByUsername(ctx, input.Recipient)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Skip the friendship gate for self-calls so they surface as 400 from the
	// call service rather than 403.
	if caller.ID != recipient.ID {
		if err := h.friends.AssertFriends(ctx, caller.ID, recipient.ID, caller.Username, recipient.Username); err != nil {
			h.fail(c, err)
			return
		}
	}

	call, err := h.calls.Start(ctx, caller.ID, recipient.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	call.Caller = *caller
	call.Recipient = *recipient

	c.JSON(http.StatusCreated, newCallStatusResponse(call, caller.ID))
}

// AcceptCall godoc
// @Summary      Accept a call
// @Description  Answers the incoming call addressed to the authenticated user.
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  CallStatusResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No incoming call"
// @Router       /calls/accept [put]
func (h *Handler) AcceptCall(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	call, err := h.calls.Accept(ctx, userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Reload with both parties for the response.
	current, err := h.calls.ActiveFor(ctx, userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if current == nil {
		current = call
	}
	c.JSON(http.StatusOK, newCallStatusResponse(current, userID))
}

// EndCall godoc
// @Summary      End a call
// @Description  Hangs up the authenticated user's current call. Either party may end it.
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "Call ended"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not in a call"
// @Router       /calls/end [put]
func (h *Handler) EndCall(c *gin.Context) {
	ctx := c.Request.Context()

	call, err := h.calls.ActiveFor(ctx, currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if call == nil {
		h.fail(c, apperr.NotFound("you are not in a call"))
		return
	}

	if err := h.calls.End(ctx, call.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Call ended"})
}

// GetCallStatus godoc
// @Summary      Call status
// @Description  Polls the authenticated user's current call state.
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  CallStatusResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /calls/status [get]
func (h *Handler) GetCallStatus(c *gin.Context) {
	userID := currentUserID(c)
	call, err := h.calls.ActiveFor(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newCallStatusResponse(call, userID))
}
