package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/grimoire/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserLoadFailed     = errors.New("load user failed")
	ErrUserUpdateFailed   = errors.New("update user failed")
	ErrAuthEmailExists    = errors.New("auth email exists")
	ErrInvalidPhase       = errors.New("invalid phase")
	ErrProfileNameTooLong = errors.New("profile name too long")
	ErrPasswordHashFailed = errors.New("password hash failed")
	ErrUserCreateFailed   = errors.New("create user failed")
)

const maxProfileNameLength = 64

type AuthUserRepository interface {
	FindByEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	EmailInUse(email string) (bool, error)
	Create(user *models.User) error
	UpdateProfileFields(userID uint, updates map[string]any) error
	SetPasswordHash(userID uint, passwordHash string) error
}

// ProfileUpdate carries the optional fields of a profile patch.
type ProfileUpdate struct {
	Savings      *float64
	CurrentPhase *string
	Name         *string
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords both yield ErrAuthCredentialsInvalid.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByEmail(email)
	if err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) Profile(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (service *AuthService) UpdateProfile(userID uint, update ProfileUpdate) (models.User, error) {
	updates := map[string]any{}
	if update.Savings != nil {
		updates["savings"] = *update.Savings
	}
	if update.CurrentPhase != nil && strings.TrimSpace(*update.CurrentPhase) != "" {
		phase := strings.TrimSpace(*update.CurrentPhase)
		if !models.IsValidPhase(phase) {
			return models.User{}, ErrInvalidPhase
		}
		updates["current_phase"] = phase
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		name := strings.TrimSpace(*update.Name)
		if utf8.RuneCountInString(name) > maxProfileNameLength {
			return models.User{}, ErrProfileNameTooLong
		}
		updates["name"] = name
	}

	if len(updates) > 0 {
		if err := service.users.UpdateProfileFields(userID, updates); err != nil {
			return models.User{}, ErrUserUpdateFailed
		}
	}
	return service.Profile(userID)
}

// CreateUser provisions an account with a bcrypt-hashed password.
func (service *AuthService) CreateUser(emailRaw string, password string, name string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthEmailInvalid
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.EmailInUse(email)
	if err != nil {
		return models.User{}, ErrUserLoadFailed
	}
	if exists {
		return models.User{}, ErrAuthEmailExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, ErrPasswordHashFailed
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		CurrentPhase: models.PhaseMonth1,
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		if utf8.RuneCountInString(trimmed) > maxProfileNameLength {
			return models.User{}, ErrProfileNameTooLong
		}
		user.Name = &trimmed
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrUserCreateFailed
	}
	return user, nil
}

func (service *AuthService) SetPassword(emailRaw string, password string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthEmailInvalid
	}

	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByEmail(email)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, ErrPasswordHashFailed
	}
	if err := service.users.SetPasswordHash(user.ID, string(passwordHash)); err != nil {
		return models.User{}, ErrUserUpdateFailed
	}
	user.PasswordHash = string(passwordHash)
	return user, nil
}
