package repository

import "errors"

// Common repository errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrPostNotFound    = errors.New("board post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrUserNotFound    = errors.New("user not found")
)
