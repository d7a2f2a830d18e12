package response

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      Kind        `json:"error,omitempty"`
	Details    string      `json:"details,omitempty"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(page, limit int, total int64) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Paginated(c *gin.Context, data interface{}, p *Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: p})
}

// Fail maps err to its error kind and writes the error envelope. The error is
// also attached to the context so the request logger reports it.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	appErr := FromError(err)
	c.AbortWithStatusJSON(appErr.Kind.Status(), Envelope{
		Success: false,
		Message: appErr.Message,
		Error:   appErr.Kind,
		Details: appErr.Details(),
	})
}
