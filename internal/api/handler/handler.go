package handler

import (
	"fourkara/backend/internal/chathub"
	"fourkara/backend/internal/storage"
)

// Handler bundles the dependencies of the HTTP and websocket endpoints.
type Handler struct {
	Storage   storage.Storage
	Hub       *chathub.Hub
	JWTSecret string
}

func NewHandler(s storage.Storage, hub *chathub.Hub, jwtSecret string) *Handler {
	return &Handler{Storage: s, Hub: hub, JWTSecret: jwtSecret}
}
