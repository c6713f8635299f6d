package handlers

import (
	"fmt"
	"net/http"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/logger"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/notification"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/services"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type LoanApplicationHandler struct {
	applications store.LoanApplicationsRepo
	notifier     services.ApplicantNotifier
	fee          float64
}

func NewLoanApplicationHandler(applications store.LoanApplicationsRepo, notifier services.ApplicantNotifier, fee float64) *LoanApplicationHandler {
	return &LoanApplicationHandler{
		applications: applications,
		notifier:     notifier,
		fee:          fee,
	}
}

// ListOwn returns the caller's applications. OwnerOrSelf has already pinned
// the email parameter to the authenticated principal.
func (h *LoanApplicationHandler) ListOwn(c *gin.Context) {
	applications, err := h.applications.List(c.Request.Context(), bson.M{"email": c.Query("email")})
	if err != nil {
		_ = c.Error(err)
		return
	}
	if applications == nil {
		applications = []models.LoanApplication{}
	}
	c.JSON(http.StatusOK, applications)
}

func (h *LoanApplicationHandler) ListByStatus(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("loanStatus"); status != "" {
		filter["loanStatus"] = status
	}

	applications, err := h.applications.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if applications == nil {
		applications = []models.LoanApplication{}
	}
	c.JSON(http.StatusOK, applications)
}

func (h *LoanApplicationHandler) Create(c *gin.Context) {
	var body models.CreateApplicationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	application, err := h.applications.Create(c.Request.Context(), body, h.fee)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *LoanApplicationHandler) UpdateStatus(c *gin.Context) {
	var body models.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.applications.UpdateStatus(ctx, id, body.Status); err != nil {
		_ = c.Error(err)
		return
	}

	if h.notifier != nil {
		if application, err := h.applications.GetByID(ctx, id); err == nil {
			detail := fmt.Sprintf("Your application is now %s", body.Status)
			if nerr := h.notifier.NotifyApplicant(ctx, application.Email, application.TrackingID, notification.EventStatusChanged, detail); nerr != nil {
				logger.Error(ctx, "Failed to notify applicant %v: %v", application.Email, nerr)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "application status updated"})
}

func (h *LoanApplicationHandler) Delete(c *gin.Context) {
	if err := h.applications.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application deleted"})
}
