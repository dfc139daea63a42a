package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"fourkara/backend/internal/chathub"
	"fourkara/backend/internal/config"
	"fourkara/backend/internal/models"
	"fourkara/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeChat is the websocket endpoint for a job conversation. The chat
// token travels as a query parameter because the browser websocket API
// cannot set headers on the upgrade request.
//
// Admission is resolved entirely here, before the upgrade: an anonymous
// or unauthorized caller never joins a group and never receives a frame.
// The job state is fetched fresh on every attempt, so a connection made
// right after bid acceptance is admitted.
func (h *Handler) ServeChat(c *gin.Context) {
	jobID64, err := strconv.ParseUint(c.Param("job_id"), 10, 64)
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	jobID := uint(jobID64)

	user, err := h.Storage.ResolveChatToken(c.Query("token"))
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if user == nil {
		// Missing or unknown token: anonymous, always rejected.
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	job, err := h.Storage.GetJob(jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}
	if !chathub.IsParticipant(job, user.ID) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	history := h.historyFrame(jobID)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	log.Printf("chat socket connected: user %d on job %d", user.ID, jobID)

	client := &chathub.WebSocketClient{
		UserID: user.ID,
		JobID:  jobID,
		Conn:   conn,
		Hub:    h.Hub,
		Send:   make(chan models.Frame, config.SendBufferSize),
	}

	// History goes into the send buffer before the group join, so the
	// replay is the first frame on the wire and live broadcasts follow.
	// A message persisted between the RecentMessages fetch and the join
	// below lands in neither the replay nor a broadcast.
	client.Send <- history
	h.Hub.Join(client)
	client.Run()
}

// historyFrame builds the replay of the most recent messages,
// oldest-first. A lookup failure degrades to an empty replay rather than
// failing the connection.
func (h *Handler) historyFrame(jobID uint) models.Frame {
	messages, err := h.Storage.RecentMessages(jobID, config.HistoryReplayLimit)
	if err != nil {
		log.Printf("WARNING: history replay for job %d unavailable: %v", jobID, err)
		return models.NewHistoryFrame(nil)
	}

	data := make([]models.MessageData, 0, len(messages))
	for i := range messages {
		m := &messages[i]
		data = append(data, models.NewMessageData(m, m.Sender.DisplayName()))
	}
	return models.NewHistoryFrame(data)
}
