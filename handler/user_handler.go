package handler

import (
	"log"

	"lekturai/dto"
	"lekturai/usecase"
	"lekturai/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type UserHandler struct {
	Users *usecase.UserService
}

func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	user, err := h.Users.UserRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to fetch profile")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid profile payload")
		return
	}
	if err := utils.Validate.Struct(&req); err != nil {
		utils.BadRequest(c, "Invalid profile data")
		return
	}

	fields := bson.M{}
	if req.DisplayName != "" {
		fields["display_name"] = req.DisplayName
	}
	if req.City != "" {
		fields["city"] = req.City
	}
	if req.School != "" {
		fields["school"] = req.School
	}
	if req.ClassName != "" {
		fields["class_name"] = req.ClassName
	}
	if req.NotificationFrequency != "" {
		fields["notification_frequency"] = req.NotificationFrequency
	}
	if len(fields) == 0 {
		utils.BadRequest(c, "Nothing to update")
		return
	}

	if err := h.Users.UpdateProfile(c.Request.Context(), userID.(string), fields); err != nil {
		if err.Error() == "user not found" {
			utils.NotFound(c, "User not found")
			return
		}
		log.Printf("Error updating user %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to update profile")
		return
	}

	utils.Success(c, gin.H{"message": "Profile updated"})
}

// DeleteAccount removes the user and cascades into the stats, daily window
// and history records.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	if err := h.Users.Delete(c.Request.Context(), userID.(string)); err != nil {
		log.Printf("Error deleting user %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to delete account")
		return
	}

	utils.Success(c, gin.H{"message": "Account deleted"})
}
