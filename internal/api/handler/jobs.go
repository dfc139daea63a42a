package handler

import (
	"errors"
	"net/http"

	"fourkara/backend/internal/api/middleware"
	"fourkara/backend/internal/models"
	"fourkara/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type jobRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description" binding:"required"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
}

// CreateJob posts a new job for the authenticated customer.
func (h *Handler) CreateJob(c *gin.Context) {
	userID := middleware.MustUserID(c)

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := models.Job{
		CustomerID:    userID,
		Title:         req.Title,
		Description:   req.Description,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
	}
	if err := h.Storage.CreateJob(&job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, jobSummary(&job))
}

// ListOpenJobs lists incomplete jobs for professionals to browse.
func (h *Handler) ListOpenJobs(c *gin.Context) {
	userID := middleware.MustUserID(c)
	user, err := h.Storage.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if !user.IsPro {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only professionals can browse jobs"})
		return
	}

	jobs, err := h.Storage.OpenJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, summarizeJobs(jobs))
}

// JobDetail returns one job with its accepted-bid state.
func (h *Handler) JobDetail(c *gin.Context) {
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
	c.JSON(http.StatusOK, jobSummary(job))
}

// MyJobs lists the jobs the authenticated customer has posted.
func (h *Handler) MyJobs(c *gin.Context) {
	jobs, err := h.Storage.JobsForCustomer(middleware.MustUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}
	c.JSON(http.StatusOK, summarizeJobs(jobs))
}

// MyWork lists the jobs whose accepted bid belongs to the authenticated
// professional.
func (h *Handler) MyWork(c *gin.Context) {
	jobs, err := h.Storage.JobsForPro(middleware.MustUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list work"})
		return
	}
	c.JSON(http.StatusOK, summarizeJobs(jobs))
}

func summarizeJobs(jobs []models.Job) []gin.H {
	out := make([]gin.H, 0, len(jobs))
	for i := range jobs {
		out = append(out, jobSummary(&jobs[i]))
	}
	return out
}
