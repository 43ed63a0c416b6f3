package repository

import (
	"context"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Repository[models.User]
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepo struct {
	*Base[models.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{Base: NewBase[models.User](db)}
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](r.DB(ctx).Where("email = ?", email))
}
