package server

import (
	json "github.com/goccy/go-json"
)

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeCommand  MessageType = "command"
	MessageTypeState    MessageType = "state"
	MessageTypeFinished MessageType = "finished"
	MessageTypeError    MessageType = "error"
)

// Error codes sent in ErrorMessage.Code
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeLoadFailed   = "load_failed"
	ErrCodeSessionEnded = "session_ended"
)

// BaseMessage is the base structure for all outgoing messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

// inboundMessage keeps the payload raw until the type is known
type inboundMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CommandMessage is one line of player input
type CommandMessage struct {
	Text string `json:"text"`
}

// FinishedMessage reports the end of a won game
type FinishedMessage struct {
	Score int    `json:"score"`
	Saved bool   `json:"saved"`
	Error string `json:"error,omitempty"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
