package services

import "errors"

// Common errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrNoteNotFound        = errors.New("note not found")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidToken        = errors.New("invalid token")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrLocalStorage        = errors.New("local storage error")
	ErrRemoteWrite         = errors.New("remote write failed")
	ErrRemoteSubscription  = errors.New("remote subscription failed")
	ErrWebSocketConnection = errors.New("websocket connection error")
)
