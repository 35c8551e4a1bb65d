package service

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Harukino1/ReturnHub/internal/apperr"
	"github.com/Harukino1/ReturnHub/internal/models"
	"github.com/Harukino1/ReturnHub/internal/storage"
)

type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// StaffService manages staff accounts. Creation and deletion are admin
// operations; login accepts either the staff name or email.
type StaffService struct {
	store storage.Storage
}

func NewStaffService(store storage.Storage) *StaffService {
	return &StaffService{store: store}
}

// Login verifies staff credentials against email or account name.
func (s *StaffService) Login(username, password string) (*models.Staff, error) {
	staff, err := s.store.GetStaffByEmailOrName(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperr.Unauthorized("invalid staff credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)) != nil {
		return nil, apperr.Unauthorized("invalid staff credentials")
	}
	return staff, nil
}

// Create adds a staff account.
func (s *StaffService) Create(req CreateStaffRequest) (*models.Staff, error) {
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
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleAdmin && role != models.RoleStaff {
		return nil, apperr.Validation("role must be %q or %q", models.RoleAdmin, models.RoleStaff)
	}
	existing, err := s.store.GetStaffByEmailOrName(email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = s.store.GetStaffByEmailOrName(name)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, apperr.Validation("a staff account with that name or email already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	staff := &models.Staff{
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateStaff(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *StaffService) GetByID(staffID uint) (*models.Staff, error) {
	staff, err := s.store.GetStaffByID(staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperr.NotFound("staff %d not found", staffID)
	}
	return staff, nil
}

func (s *StaffService) List() ([]models.Staff, error) {
	return s.store.ListStaff()
}

// UpdateProfile changes the staff member's display fields.
func (s *StaffService) UpdateProfile(staffID uint, name, email, profileImage string) (*models.Staff, error) {
	staff, err := s.GetByID(staffID)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		staff.Name = name
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		if !emailPattern.MatchString(email) {
			return nil, apperr.Validation("a valid email is required")
		}
		staff.Email = email
	}
	if profileImage = strings.TrimSpace(profileImage); profileImage != "" {
		staff.ProfileImage = profileImage
	}
	if err := s.store.SaveStaff(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// SetRole promotes or demotes a staff account (admin only).
func (s *StaffService) SetRole(staffID uint, role string) (*models.Staff, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != models.RoleAdmin && role != models.RoleStaff {
		return nil, apperr.Validation("role must be %q or %q", models.RoleAdmin, models.RoleStaff)
	}
	staff, err := s.GetByID(staffID)
	if err != nil {
		return nil, err
	}
	staff.Role = role
	if err := s.store.SaveStaff(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// ResetPassword sets a new password without checking the old one (admin
// tooling).
func (s *StaffService) ResetPassword(staffID uint, password string) error {
	if len(password) < minPasswordLen {
		return apperr.Validation("password must be at least %d characters", minPasswordLen)
	}
	staff, err := s.GetByID(staffID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	staff.Password = string(hash)
	return s.store.SaveStaff(staff)
}

func (s *StaffService) Delete(staffID uint) error {
	if _, err := s.GetByID(staffID); err != nil {
		return err
	}
	return s.store.DeleteStaff(staffID)
}

// EnsureAdmin seeds a default admin account when none exists, returning it.
// Used by the admin CLI and first-boot setup.
func (s *StaffService) EnsureAdmin(name, email, password string) (*models.Staff, error) {
	existing, err := s.store.GetStaffByEmailOrName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.Create(CreateStaffRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
}
