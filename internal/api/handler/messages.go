package handler

import (
	"errors"
	"net/http"

	"fourkara/backend/internal/api/middleware"
	"fourkara/backend/internal/chathub"
	"fourkara/backend/internal/models"
	"fourkara/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type messageRequest struct {
	Message string `json:"message" binding:"required"`
}

// ListMessages returns a job's full conversation, oldest first. Only the
// two conversation participants may read it.
func (h *Handler) ListMessages(c *gin.Context) {
	userID := middleware.MustUserID(c)

	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	job, err := h.Storage.GetJob(jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		}
		return
	}
	if !chathub.IsParticipant(job, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this conversation"})
		return
	}

	messages, err := h.Storage.AllMessages(jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	out := make([]models.MessageData, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		out = append(out, models.NewMessageData(m, m.Sender.DisplayName()))
	}
	c.JSON(http.StatusOK, out)
}

// CreateMessage appends a message over HTTP instead of the chat socket.
// The receiver is derived from the job's current accepted-bid state, the
// same rule the socket path uses. Messages created here are not pushed to
// connected sockets; clients polling this API see them on the next list.
func (h *Handler) CreateMessage(c *gin.Context) {
	userID := middleware.MustUserID(c)

	jobID, err := parseIDParam(c, "job_id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	job, err := h.Storage.GetJob(jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job"})
		}
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message body is required"})
		return
	}

	receiverID, err := chathub.DeriveReceiver(job, userID)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this conversation"})
		return
	}

	msg := models.Message{
		JobID:      jobID,
		SenderID:   userID,
		ReceiverID: receiverID,
		Body:       req.Message,
	}
	if err := h.Storage.SaveMessage(&msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	sender, err := h.Storage.GetUserByID(userID)
	senderName := ""
	if err == nil {
		senderName = sender.DisplayName()
	}
	c.JSON(http.StatusCreated, models.NewMessageData(&msg, senderName))
}
