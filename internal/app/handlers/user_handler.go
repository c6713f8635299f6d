package handlers

import (
	"net/http"

	"github.com/samfisher58/LoanLink-server-side/internal/pkg/models"
	"github.com/samfisher58/LoanLink-server-side/internal/pkg/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type UserHandler struct {
	users store.UsersRepo
}

func NewUserHandler(users store.UsersRepo) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers a user on first sign-in. Repeat calls for the same email
// are no-ops reported as such, never duplicates.
func (h *UserHandler) Create(c *gin.Context) {
	var body models.CreateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, created, err := h.users.Create(c.Request.Context(), body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists", "user": user})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) List(c *gin.Context) {
	filter := bson.M{}
	if email := c.Query("email"); email != "" {
		filter["email"] = email
	}

	users, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetRole answers role lookups by email; accounts without a User record
// default to Borrower.
func (h *UserHandler) GetRole(c *gin.Context) {
	email := c.Param("id")
	role, err := h.users.GetRoleByEmail(c.Request.Context(), email)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var body models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), body.Role); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user role updated"})
}
