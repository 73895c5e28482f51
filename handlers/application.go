package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/AESiR-0/mad-labs-2/logger"
	"github.com/AESiR-0/mad-labs-2/models"
	"github.com/AESiR-0/mad-labs-2/submission"
	"github.com/gin-gonic/gin"
)

// SubmitFailedMessage is the only error body the endpoint returns.
const SubmitFailedMessage = "Failed to submit application"

type Submitter interface {
	Submit(ctx context.Context, req *models.ApplicationRequest) error
}

type ApplicationHandler struct {
	service Submitter
	logger  logger.Logger
}

func NewApplicationHandler(service Submitter, log logger.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		service: service,
		logger:  log,
	}
}

// SubmitApplication handles POST /api/submit-application. Every failure,
// client or server side, maps to the same 500 body.
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req models.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, err, "invalid request body")
		return
	}

	if err := h.service.Submit(c.Request.Context(), &req); err != nil {
		if errors.Is(err, submission.ErrNoApplicationData) {
			h.fail(c, err, "no application data")
			return
		}
		h.fail(c, err, "error submitting application")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ApplicationHandler) fail(c *gin.Context, err error, msg string) {
	h.logger.Error(msg, map[string]interface{}{"error": err.Error()})
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": SubmitFailedMessage})
}
