package handlers

import (
	"net/http"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const recentLoansLimit = 6

type LoanHandler struct {
	loans store.LoansRepo
}

func NewLoanHandler(loans store.LoansRepo) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// AllLoans lists the loans flagged for the home page.
func (h *LoanHandler) AllLoans(c *gin.Context) {
	loans, err := h.loans.List(c.Request.Context(), bson.M{"showOnHome": true})
	if err != nil {
		_ = c.Error(err)
		return
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	c.JSON(http.StatusOK, loans)
}

// AllLoansAdmin lists every loan, optionally scoped to one creator.
func (h *LoanHandler) AllLoansAdmin(c *gin.Context) {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter["createdBy"] = email
	}

	loans, err := h.loans.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	c.JSON(http.StatusOK, loans)
}

// SixLoans returns the six most recently listed home-visible loans.
func (h *LoanHandler) SixLoans(c *gin.Context) {
	loans, err := h.loans.ListRecent(c.Request.Context(), bson.M{"showOnHome": true}, recentLoansLimit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) GetLoan(c *gin.Context) {
	loan, err := h.loans.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var body models.CreateLoanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	loan, err := h.loans.Create(c.Request.Context(), body, c.Query("email"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// UpdateLoan merges the supplied fields into the stored document. This is
// the single update route; visibility toggles go through the same path.
func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	var body models.UpdateLoanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	fields := bson.M{}
	if body.Title != nil {
		fields["title"] = *body.Title
	}
	if body.Description != nil {
		fields["description"] = *body.Description
	}
	if body.Amount != nil {
		fields["amount"] = *body.Amount
	}
	if body.InterestRate != nil {
		fields["interestRate"] = *body.InterestRate
	}
	if body.TermMonths != nil {
		fields["termMonths"] = *body.TermMonths
	}
	if body.Category != nil {
		fields["category"] = *body.Category
	}
	if body.ImageURL != nil {
		fields["imageUrl"] = *body.ImageURL
	}
	if body.ShowOnHome != nil {
		fields["showOnHome"] = *body.ShowOnHome
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
		return
	}

	if err := h.loans.UpdateByID(c.Request.Context(), c.Param("id"), fields); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "loan updated"})
}

func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	if err := h.loans.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "loan deleted"})
}
