package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"

	"wallet-api/internal/domain"
	"wallet-api/internal/request"
	"wallet-api/internal/service"
)

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type UserResponse struct {
	UserName  string `json:"userName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ID        string `json:"id"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		UserName:  user.UserName,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ID:        user.ID,
	}
}

func invalidInput(c *gin.Context, message string, err error) {
	var detail any = err.Error()
	var fields validation.Errors
	if errors.As(err, &fields) {
		detail = fields
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": message, "error": detail})
}

func (h *Handler) signup(c *gin.Context) {
	var req request.Signup
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid input", err)
		return
	}
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		invalidInput(c, "Invalid input", err)
		return
	}

	token, err := h.users.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already taken"})
			return
		}
		h.internalError(c, "signup", err)
		return
	}

	c.JSON(http.StatusCreated, tokenResponse{Message: "User created successfully", Token: token})
}

func (h *Handler) signin(c *gin.Context) {
	var req request.Signin
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Incorrect username or password", err)
		return
	}
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		invalidInput(c, "Incorrect username or password", err)
		return
	}

	token, err := h.users.Signin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect username or password"})
			return
		}
		h.internalError(c, "signin", err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Message: "Login successful", Token: token})
}

func (h *Handler) update(c *gin.Context) {
	var req request.Update
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Incorrect inputs", err)
		return
	}
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		invalidInput(c, "Incorrect inputs", err)
		return
	}

	if err := h.users.Update(c.Request.Context(), c.GetString(userIDKey), req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User is not registered"})
			return
		}
		h.internalError(c, "update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Update successfully"})
}

func (h *Handler) bulk(c *gin.Context) {
	users, err := h.users.Search(c.Request.Context(), c.Query("filter"))
	if err != nil {
		h.internalError(c, "bulk", err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No users found"})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}
