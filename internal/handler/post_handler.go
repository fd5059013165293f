package handler

import (
	"net/http"

	"huddle/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// PostInput defines the structure for creating or updating a post.
type PostInput struct {
	Content         string  `json:"content" binding:"required"`
	BackgroundColor *string `json:"background_color"`
}

// PostResponse defines the structure for a post in API responses.
type PostResponse struct {
	ID              string  `json:"id"`
	Author          string  `json:"author"`
	Content         string  `json:"content"`
	BackgroundColor *string `json:"background_color,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

func newPostResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:              post.ID,
		Author:          post.Author.Username,
		Content:         post.Content,
		BackgroundColor: post.BackgroundColor,
		CreatedAt:       post.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:       post.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// endregion

// ListPosts godoc
// @Summary      List posts
// @Description  Returns posts newest first, optionally filtered by author.
// @Tags         posts
// @Produce      json
// @Param        author  query  string  false  "Filter by author username"
// @Param        page    query  int     false  "Page number" default(1)
// @Param        limit   query  int     false  "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      404  {object}  ErrorResponse "Author not found"
// @Router       /posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	page, limit := pageParams(c)

	var authorID string
	if author := c.Query("author"); author != "" {
		user, err := h.users.ByUsername(c.Request.Context(), author)
		if err != nil {
			h.fail(c, err)
			return
		}
		authorID = user.ID
	}

	posts, total, err := h.posts.List(c.Request.Context(), authorID, page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	responses := []PostResponse{}
	for _, post := range posts {
		responses = append(responses, newPostResponse(post))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(responses, total, page, limit))
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post owned by the authenticated user.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post content"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	post, err := h.posts.Create(c.Request.Context(), userID, input.Content, input.BackgroundColor)
	if err != nil {
		h.fail(c, err)
		return
	}

	author, err := h.users.ByID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	post.Author = *author

	c.JSON(http.StatusCreated, newPostResponse(*post))
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Edits a post; only its author may.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string    true  "Post ID"
// @Param        input body  PostInput true  "New content"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id} [patch]
func (h *Handler) UpdatePost(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	post, err := h.posts.Update(c.Request.Context(), c.Param("id"), userID, input.Content, input.BackgroundColor)
	if err != nil {
		h.fail(c, err)
		return
	}

	author, err := h.users.ByID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	post.Author = *author

	c.JSON(http.StatusOK, newPostResponse(*post))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post; only its author may.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Post deleted"}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
