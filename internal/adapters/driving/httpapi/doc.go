// Package httpapi is the HTTP driving adapter: a gin router exposing the
// chat pipeline and conversation history, with CORS, request-logging and
// per-client rate-limit middleware.
//
// The adapter owns transport concerns only; all routing decisions live
// in internal/core/services behind the driving.ChatService port.
package httpapi
