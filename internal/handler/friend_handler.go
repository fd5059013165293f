package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FriendRequestsResponse lists pending requests by the other party's
// username.
type FriendRequestsResponse struct {
	Incoming []string `json:"incoming"`
	Outgoing []string `json:"outgoing"`
}

// ListFriends godoc
// @Summary      List friends
// @Description  Returns the usernames of the authenticated user's friends.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   string
// @Failure      401  {object}  ErrorResponse
// @Router       /friends [get]
func (h *Handler) ListFriends(c *gin.Context) {
	friends, err := h.friends.Friends(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	usernames := []string{}
	for _, friend := range friends {
		usernames = append(usernames, friend.Username)
	}
	c.JSON(http.StatusOK, usernames)
}

// RemoveFriend godoc
// @Summary      Remove friend
// @Description  Deletes the friendship with the named user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        friend  path  string  true  "Friend's username"
// @Success      200  {object}  map[string]string "{"message": "Friend removed"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No such friendship"
// @Router       /friends/{friend} [delete]
func (h *Handler) RemoveFriend(c *gin.Context) {
	friend, err := h.users.ByUsername(c.Request.Context(), c.Param("friend"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.RemoveFriend(c.Request.Context(), currentUserID(c), friend.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// ListFriendRequests godoc
// @Summary      List friend requests
// @Description  Returns pending requests involving the authenticated user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  FriendRequestsResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /friend/requests [get]
func (h *Handler) ListFriendRequests(c *gin.Context) {
	incoming, outgoing, err := h.friends.Requests(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response := FriendRequestsResponse{Incoming: []string{}, Outgoing: []string{}}
	for _, r := range incoming {
		response.Incoming = append(response.Incoming, r.FromUser.Username)
	}
	for _, r := range outgoing {
		response.Outgoing = append(response.Outgoing, r.ToUser.Username)
	}
	c.JSON(http.StatusOK, response)
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to the named user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        to  path  string  true  "Recipient's username"
// @Success      201  {object}  map[string]string "{"message": "Request sent"}"
// @Failure      400  {object}  ErrorResponse "Request to self"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Relation already exists"
// @Router       /friend/requests/{to} [post]
func (h *Handler) SendFriendRequest(c *gin.Context) {
	to, err := h.users.ByUsername(c.Request.Context(), c.Param("to"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.SendRequest(c.Request.Context(), currentUserID(c), to.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request sent"})
}

// CancelFriendRequest godoc
// @Summary      Cancel friend request
// @Description  Withdraws a pending request the authenticated user sent.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        to  path  string  true  "Recipient's username"
// @Success      200  {object}  map[string]string "{"message": "Request cancelled"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No pending request"
// @Router       /friend/requests/{to} [delete]
func (h *Handler) CancelFriendRequest(c *gin.Context) {
	to, err := h.users.ByUsername(c.Request.Context(), c.Param("to"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.CancelRequest(c.Request.Context(), currentUserID(c), to.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// AcceptFriendRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending request from the named user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        from  path  string  true  "Requester's username"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No pending request"
// @Router       /friend/accept/{from} [put]
func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	from, err := h.users.ByUsername(c.Request.Context(), c.Param("from"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.AcceptRequest(c.Request.Context(), from.ID, currentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// RejectFriendRequest godoc
// @Summary      Reject friend request
// @Description  Rejects a pending request from the named user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        from  path  string  true  "Requester's username"
// @Success      200  {object}  map[string]string "{"message": "Request rejected"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No pending request"
// @Router       /friend/reject/{from} [put]
func (h *Handler) RejectFriendRequest(c *gin.Context) {
	from, err := h.users.ByUsername(c.Request.Context(), c.Param("from"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.friends.RejectRequest(c.Request.Context(), from.ID, currentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request rejected"})
}
