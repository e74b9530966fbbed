package model

import "time"

type User struct {
	UserID                string    `bson:"user_id" json:"user_id"`                                             // Unique ID number
	DisplayName           string    `bson:"display_name" json:"display_name" validate:"required,min=2,max=50"` // Name shown in the app
	Email                 string    `bson:"email" json:"email" validate:"required,email"`                      // Email field
	Password              string    `bson:"password" json:"-" validate:"required,min=6"`                       // Hashed password field
	City                  string    `bson:"city" json:"city"`                                                  // City of the user's school
	School                string    `bson:"school" json:"school"`                                              // School name
	ClassName             string    `bson:"class_name" json:"class_name"`                                      // Class within the school, e.g. "3A"
	NotificationFrequency string    `bson:"notification_frequency" json:"notification_frequency"`              // daily / weekly / off
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`                                        // Time created for account life
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`                                        // Last profile change
	LastLoginAt           time.Time `bson:"lastLoginAt" json:"lastLoginAt"`                                    // Last successful login
	LastDevice            string    `bson:"last_device,omitempty" json:"last_device,omitempty"`                // Parsed from the login User-Agent
}
