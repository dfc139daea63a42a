package handler

import (
	"errors"
	"net/http"
	"strconv"

	"fourkara/backend/internal/api/middleware"
	"fourkara/backend/internal/models"
	"fourkara/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type bidRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Details string  `json:"details"`
}

// CreateBid lets a professional bid on an open job.
func (h *Handler) CreateBid(c *gin.Context) {
	userID := middleware.MustUserID(c)
	user, err := h.Storage.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if !user.IsPro {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only professionals can bid"})
		return
	}

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

	var req bidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid := models.Bid{
		JobID:   job.ID,
		ProID:   user.ID,
		Amount:  req.Amount,
		Details: req.Details,
	}
	if err := h.Storage.CreateBid(&bid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bid"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      bid.ID,
		"job":     bid.JobID,
		"pro":     bid.ProID,
		"amount":  bid.Amount,
		"details": bid.Details,
	})
}

// AcceptBid is the one HTTP trigger that changes conversation
// eligibility: on success the job is closed, the bid becomes the accepted
// bid, and the two parties may open the job's chat from that moment.
// Accepting a bid on an already-closed job is a benign no-op that reports
// the current state.
func (h *Handler) AcceptBid(c *gin.Context) {
	userID := middleware.MustUserID(c)

	bidID, err := parseIDParam(c, "bid_id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bid not found"})
		return
	}

	job, err := h.Storage.AcceptBid(bidID, userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bid not found"})
		case errors.Is(err, storage.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the job's customer can accept a bid"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept bid"})
		}
		return
	}

	c.JSON(http.StatusOK, jobSummary(job))
}

// jobSummary is the authoritative job state returned by accept-bid and
// the job detail endpoint.
func jobSummary(job *models.Job) gin.H {
	out := gin.H{
		"id":           job.ID,
		"title":        job.Title,
		"description":  job.Description,
		"customer":     job.CustomerID,
		"is_completed": job.IsCompleted,
		"created_at":   job.CreatedAt,
	}
	if job.AcceptedBid != nil {
		out["accepted_bid"] = gin.H{
			"id":     job.AcceptedBid.ID,
			"pro":    job.AcceptedBid.ProID,
			"amount": job.AcceptedBid.Amount,
		}
	}
	return out
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(id), err
}
