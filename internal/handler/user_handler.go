package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/response"
)

type UserHandler struct {
	repo repository.UserRepositoryInterface
}

func NewUserHandler(repo repository.UserRepositoryInterface) *UserHandler {
	registerValidation()
	return &UserHandler{repo: repo}
}

type sessionRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// Session records the user named by an identity-provider ID token. The token's
// claims are trusted as-is; they only populate the profile.
func (h *UserHandler) Session(c *gin.Context) {
	var req sessionRequest
	if !bindJSON(c, &req) {
		return
	}

	identity, err := auth.ParseIdentityToken(req.Credential)
	if err != nil {
		response.Fail(c, response.Invalid("credential", err.Error()))
		return
	}

	user := &model.User{
		ID:    identity.Subject,
		Name:  identity.Name,
		Email: identity.Email,
	}
	if identity.Picture != "" {
		user.PictureURL = &identity.Picture
	}

	stored, err := h.repo.Upsert(c.Request.Context(), user)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, "signed in", stored)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	if user == nil {
		response.Fail(c, repository.ErrUserNotFound)
		return
	}
	response.OK(c, "", user)
}
