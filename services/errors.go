package services

import "errors"

// Common errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrSubtaskNotFound     = errors.New("subtask not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidOperation    = errors.New("invalid bulk operation")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrInvalidToken        = errors.New("invalid token")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrResourceExists      = errors.New("resource already exists")
	ErrInternal            = errors.New("internal server error")
	ErrWebSocketConnection = errors.New("websocket connection error")
)
