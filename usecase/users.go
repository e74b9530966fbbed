package usecase

import (
	"context"
	"errors"

	"lekturai/model"
	"lekturai/repository"
	"lekturai/services"
	"lekturai/utils"

	"github.com/mileusna/useragent"
	"go.mongodb.org/mongo-driver/bson"
)

// UserService handles accounts and their cascade into the stats records.
type UserService struct {
	UserRepo    *repository.UserRepo
	Stats       *AllTimeStatsService
	Daily       *DailyWindowService
	HistoryRepo *repository.HistoryRepo
}

// Register creates the account with a hashed password and a fresh ID.
func (svc *UserService) Register(ctx context.Context, user *model.User, plainPassword string) (string, error) {
	existing, err := svc.UserRepo.FindUserByEmail(ctx, user.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errors.New("email already registered")
	}

	hashed, err := services.HashPassword(plainPassword)
	if err != nil {
		return "", err
	}

	user.UserID = utils.GenerateUserID()
	user.Password = hashed
	if user.NotificationFrequency == "" {
		user.NotificationFrequency = "daily"
	}

	if _, err := svc.UserRepo.AddUser(ctx, user); err != nil {
		return "", err
	}

	return user.UserID, nil
}

// Login verifies the credentials, stamps the login with the parsed client
// device, and returns a signed access token.
func (svc *UserService) Login(ctx context.Context, email, password, userAgent string) (token string, user *model.User, err error) {
	user, err = svc.UserRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !services.ComparePasswords(user.Password, password) {
		return "", nil, errors.New("invalid credentials")
	}

	device := "unknown"
	if userAgent != "" {
		ua := useragent.Parse(userAgent)
		device = ua.Name
		if ua.OS != "" {
			device += " / " + ua.OS
		}
	}

	if err := svc.UserRepo.RecordLogin(ctx, user.UserID, device); err != nil {
		return "", nil, err
	}

	token, err = services.GenerateJWT(user.UserID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// UpdateProfile applies a merge patch to the profile fields.
func (svc *UserService) UpdateProfile(ctx context.Context, userID string, fields bson.M) error {
	modified, err := svc.UserRepo.UpdateUserFields(ctx, userID, fields)
	if err != nil {
		return err
	}
	if modified == 0 {
		return errors.New("user not found")
	}
	return nil
}

// Delete removes the account and everything hanging off it: the all-time
// stats record, the daily window and the history.
func (svc *UserService) Delete(ctx context.Context, userID string) error {
	if _, err := svc.UserRepo.DeleteUserByID(ctx, userID); err != nil {
		return err
	}
	if err := svc.Stats.Delete(ctx, userID); err != nil {
		return err
	}
	if err := svc.Daily.DeleteAll(ctx, userID); err != nil {
		return err
	}
	if _, err := svc.HistoryRepo.DeleteUserEntries(ctx, userID); err != nil {
		return err
	}
	return nil
}
