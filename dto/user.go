package dto

type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,password"`
	City        string `json:"city"`
	School      string `json:"school"`
	ClassName   string `json:"class_name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
}

// UpdateProfileRequest carries the merge-patch fields a user may edit.
// Empty fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName           string `json:"display_name,omitempty"`
	City                  string `json:"city,omitempty"`
	School                string `json:"school,omitempty"`
	ClassName             string `json:"class_name,omitempty"`
	NotificationFrequency string `json:"notification_frequency,omitempty" validate:"omitempty,oneof=daily weekly off"`
}
