package handler

import (
	"log"

	"lekturai/dto"
	"lekturai/model"
	"lekturai/usecase"
	"lekturai/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Users *usecase.UserService
}

func NewAuthHandler(users *usecase.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid registration payload")
		return
	}
	if err := utils.Validate.Struct(&req); err != nil {
		utils.BadRequest(c, "Invalid registration data")
		return
	}

	user := &model.User{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
		City:        req.City,
		School:      req.School,
		ClassName:   req.ClassName,
	}

	userID, err := h.Users.Register(c.Request.Context(), user, req.Password)
	if err != nil {
		if err.Error() == "email already registered" {
			utils.Conflict(c, "Email already registered")
			return
		}
		log.Printf("Error registering user: %v", err)
		utils.InternalError(c, "Failed to register user")
		return
	}

	utils.Created(c, gin.H{"user_id": userID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid login payload")
		return
	}
	if err := utils.Validate.Struct(&req); err != nil {
		utils.BadRequest(c, "Email and password are required")
		return
	}

	token, user, err := h.Users.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent())
	if err != nil {
		if err.Error() == "invalid credentials" {
			utils.Unauthorized(c, "Invalid email or password")
			return
		}
		log.Printf("Error logging in %s: %v", req.Email, err)
		utils.ServiceUnavailable(c, "Failed to log in")
		return
	}

	utils.Success(c, dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.UserID,
	})
}
