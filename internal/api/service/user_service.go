package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"todovault/todo-service/internal/api/auth"
	"todovault/todo-service/internal/api/models"
	"todovault/todo-service/internal/api/repository"
	"todovault/todo-service/internal/api/response"
)

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

type userService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenService) UserService {
	return &userService{userRepo: userRepo, tokens: tokens}
}

// Register handles user registration. Username and email are checked
// before the insert; the UNIQUE constraints remain as the second line of
// defense against a concurrent duplicate registration.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, response.NewUsernameExists(req.Username)
	}

	existing, err = s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, response.NewEmailExists(req.Email)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates the user and returns a signed access token. Missing
// user and wrong password collapse into one message; a disabled account is
// reported separately, as the upstream behavior does.
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", response.NewAuthentication("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", response.NewAuthentication("Invalid username or password")
	}

	if !user.IsActive {
		return "", response.NewAuthentication("Account is disabled")
	}

	return s.tokens.Issue(user.ID, user.Username)
}

// Get returns a single user record.
func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, response.NewHTTPError(404, "User not found")
	}
	return user, nil
}

// List returns all user records.
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListUsers(ctx)
}

// ChangePassword verifies the current password before replacing the hash.
func (s *userService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return response.NewHTTPError(404, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return response.NewHTTPError(400, "Current password is incorrect")
	}

	return s.userRepo.UpdatePassword(ctx, userID, newPassword)
}
