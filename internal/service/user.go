package service

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

const minPasswordLen = 6

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserService handles account registration, login and profile updates for
// campus users.
type UserService struct {
	store storage.Storage
}

func NewUserService(store storage.Storage) *UserService {
	return &UserService{store: store}
}

// Register creates a new user account with a bcrypt-hashed password.
func (s *UserService) Register(req RegisterUserRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLen)
	}
	existing, err := s.store.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("email %s is already registered", email)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Password:  string(hash),
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns the account.
func (s *UserService) Login(email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return user, nil
}

func (s *UserService) GetByID(userID uint) (*models.User, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}
	return user, nil
}

func (s *UserService) List() ([]models.User, error) {
	return s.store.ListUsers()
}

// UpdateProfile changes the user's display fields. Empty inputs leave the
// current value in place.
func (s *UserService) UpdateProfile(userID uint, name, phone, profileImage string) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		user.Phone = phone
	}
	if profileImage = strings.TrimSpace(profileImage); profileImage != "" {
		user.ProfileImage = profileImage
	}
	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *UserService) ChangePassword(userID uint, current, next string) error {
	user, err := s.GetByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return apperr.Unauthorized("current password is incorrect")
	}
	if len(next) < minPasswordLen {
		return apperr.Validation("password must be at least %d characters", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	return s.store.SaveUser(user)
}

// Delete removes an account (admin tooling).
func (s *UserService) Delete(userID uint) error {
	if _, err := s.GetByID(userID); err != nil {
		return err
	}
	return s.store.DeleteUser(userID)
}
