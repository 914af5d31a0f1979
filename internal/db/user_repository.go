package db

import (
	"github.com/terraincognita07/grimoire/internal/models"
	"gorm.io/gorm"
)

// UserRepository matches emails case-insensitively; callers pass them
// already lowercased.
type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func emailEquals(email string) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		return query.Where("lower(trim(email)) = ?", email)
	}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	user := models.User{}
	err := repo.database.Where("id = ?", userID).Take(&user).Error
	return user, err
}

func (repo *UserRepository) FindByEmail(email string) (models.User, error) {
	user := models.User{}
	err := repo.database.Scopes(emailEquals(email)).Take(&user).Error
	return user, err
}

func (repo *UserRepository) EmailInUse(email string) (bool, error) {
	var owners int64
	err := repo.database.Model(&models.User{}).Scopes(emailEquals(email)).Limit(1).Count(&owners).Error
	return owners > 0, err
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// UpdateProfileFields writes only name, savings and current_phase.
func (repo *UserRepository) UpdateProfileFields(userID uint, fields map[string]any) error {
	return repo.database.Model(&models.User{ID: userID}).
		Select("name", "savings", "current_phase").
		Updates(fields).Error
}

func (repo *UserRepository) SetPasswordHash(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{ID: userID}).Update("password_hash", passwordHash).Error
}
