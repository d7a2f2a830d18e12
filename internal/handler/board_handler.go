package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/metrics"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/response"
)

type BoardHandler struct {
	repo    repository.BoardRepositoryInterface
	metrics *metrics.Metrics
}

func NewBoardHandler(repo repository.BoardRepositoryInterface, m *metrics.Metrics) *BoardHandler {
	registerValidation()
	return &BoardHandler{repo: repo, metrics: m}
}

type BoardListQuery struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
}

type CreatePostRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	Content    string `json:"content" binding:"required"`
	Category   string `json:"category" binding:"required,max=50,ne=all"`
	AuthorName string `json:"author_name" binding:"required,max=100"`
	AuthorID   string `json:"author_id" binding:"required"`
	IsUrgent   bool   `json:"is_urgent"`
}

type UpdatePostRequest struct {
	ID       uint    `json:"id" binding:"required"`
	AuthorID string  `json:"author_id" binding:"required"`
	Title    *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content  *string `json:"content" binding:"omitempty,min=1"`
	Category *string `json:"category" binding:"omitempty,min=1,max=50,ne=all"`
	IsUrgent *bool   `json:"is_urgent"`
}

type DeletePostRequest struct {
	ID       uint   `json:"id" binding:"required"`
	AuthorID string `json:"author_id" binding:"required"`
}

type ToggleLikeRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// LikeResponse is the body returned by the like toggle.
type LikeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Liked      bool   `json:"liked"`
	LikesCount int    `json:"likes_count"`
}

type CreateCommentRequest struct {
	Content    string `json:"content" binding:"required"`
	AuthorName string `json:"author_name" binding:"required,max=100"`
	AuthorID   string `json:"author_id" binding:"required"`
}

type DeleteCommentRequest struct {
	AuthorID string `json:"author_id" binding:"required"`
}

// List godoc
// @Summary      List board posts
// @Description  Paginated, newest first. Search matches title or content case-insensitively.
// @Tags         board
// @Produce      json
// @Param        category query string false "Category; all or empty for every category"
// @Param        search   query string false "Substring to search for"
// @Param        page     query int    false "Page number" default(1)
// @Param        limit    query int    false "Page size (max 100)" default(10)
// @Success      200 {object} response.Envelope{data=[]model.BoardPostSummary}
// @Failure      400 {object} response.Envelope
// @Failure      500 {object} response.Envelope
// @Router       /board [get]
func (h *BoardHandler) List(c *gin.Context) {
	var q BoardListQuery
	if !bindQuery(c, &q) {
		return
	}

	filter := repository.BoardFilter{
		Category: q.Category,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	}.Normalize()

	posts, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, posts, response.NewPagination(filter.Page, filter.Limit, total))
}

// Create godoc
// @Summary      Create a board post
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        request body CreatePostRequest true "New post"
// @Success      201 {object} response.Envelope{data=model.BoardPost}
// @Failure      400 {object} response.Envelope
// @Router       /board [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post := &model.BoardPost{
		Title:      req.Title,
		Content:    req.Content,
		Category:   req.Category,
		AuthorName: req.AuthorName,
		AuthorID:   req.AuthorID,
		IsUrgent:   req.IsUrgent,
	}
	if err := h.repo.Create(c.Request.Context(), post); err != nil {
		response.Fail(c, err)
		return
	}

	h.metrics.IncrementPostCreated()
	response.Created(c, "post created", post)
}

// Update godoc
// @Summary      Edit a board post
// @Description  Only the author may edit; a different author_id gets 403
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        request body UpdatePostRequest true "Post id, author and fields to change"
// @Success      200 {object} response.Envelope{data=model.BoardPost}
// @Failure      400 {object} response.Envelope
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /board [put]
func (h *BoardHandler) Update(c *gin.Context) {
	var req UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.repo.Update(c.Request.Context(), req.ID, req.AuthorID, repository.PostPatch{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		IsUrgent: req.IsUrgent,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "post updated", post)
}

// Delete godoc
// @Summary      Delete a board post
// @Description  Only the author may delete; likes and comments go with the post
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        request body DeletePostRequest true "Post id and author"
// @Success      200 {object} response.Envelope
// @Failure      403 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /board [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	var req DeletePostRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), req.ID, req.AuthorID); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "post deleted", nil)
}

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        postId  path int               true "Post ID"
// @Param        request body ToggleLikeRequest true "Liking user"
// @Success      200 {object} LikeResponse
// @Failure      404 {object} response.Envelope
// @Router       /board/like/{postId} [post]
func (h *BoardHandler) ToggleLike(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	var req ToggleLikeRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.repo.ToggleLike(c.Request.Context(), postID, req.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	h.metrics.RecordLikeToggle(res.Liked)
	msg := "like removed"
	if res.Liked {
		msg = "post liked"
	}
	c.JSON(http.StatusOK, LikeResponse{Success: true, Message: msg, Liked: res.Liked, LikesCount: res.LikesCount})
}

// IncrementView godoc
// @Summary      Count a post view
// @Tags         board
// @Produce      json
// @Param        postId path int true "Post ID"
// @Success      200 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /board/view/{postId} [put]
func (h *BoardHandler) IncrementView(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	views, err := h.repo.IncrementViews(c.Request.Context(), postID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "", gin.H{"views_count": views})
}

func (h *BoardHandler) ListComments(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	comments, err := h.repo.ListComments(c.Request.Context(), postID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "", comments)
}

func (h *BoardHandler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment := &model.BoardComment{
		PostID:     postID,
		Content:    req.Content,
		AuthorName: req.AuthorName,
		AuthorID:   req.AuthorID,
	}
	if err := h.repo.AddComment(c.Request.Context(), comment); err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "comment added", comment)
}

// DeleteComment removes a comment; only its author may do so.
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	postID, ok := pathID(c, "postId")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	var req DeleteCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.repo.DeleteComment(c.Request.Context(), postID, commentID, req.AuthorID); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "comment deleted", nil)
}
