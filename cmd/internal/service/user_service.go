package service

import (
	"errors"
	"orbit/cmd/internal/domain/entity"
	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"
	"orbit/cmd/internal/utils/uid"
	"strings"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	FindBySub(sub string) (*entity.User, error)
	Create(user *entity.User) error
	Save(user *entity.User) error
	SaveInTx(user *entity.User, beforeCommit func() error) error
	DeleteWithData(userID int64) error
}

type DefaultUserService struct {
	UserRepo UserRepository
}

func NewUserService(userRepo UserRepository) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo}
}

// ResolveUser maps a verified token to its user row, creating the row the
// first time the subject is seen.
func (u *DefaultUserService) ResolveUser(token *utils.TokenData) (*entity.User, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindBySub(token.Sub)
	if err != nil {
		log.Errorf("failed to fetch user by sub: %v", err)
		return nil, apierror.InternalServerError
	}

	if user != nil {
		return user, nil
	}

	email := strings.ToLower(strings.TrimSpace(token.Email))
	if email == "" {
		return nil, apierror.InvalidAuthTokenError
	}

	now := utils.NowUTC()
	user = &entity.User{
		ID:            uid.Generate(),
		SubUUID:       token.Sub,
		Email:         email,
		Name:          token.Name,
		Image:         token.Picture,
		EmailVerified: token.EmailVerified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = u.UserRepo.Create(user)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return u.resolveConflict(token, email)
	}

	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}

	log.Infof("created user %d for subject %s", user.ID, token.Sub)
	return user, nil
}

// resolveConflict handles a lost creation race, or an email that belongs
// to an older identity of the same person (the IdP account was recreated).
func (u *DefaultUserService) resolveConflict(token *utils.TokenData, email string) (*entity.User, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindBySub(token.Sub)
	if err != nil {
		log.Errorf("failed to fetch user by sub: %v", err)
		return nil, apierror.InternalServerError
	}

	if user != nil {
		return user, nil
	}

	if !token.EmailVerified {
		return nil, apierror.IDPExistingEmailError
	}

	user, err = u.UserRepo.FindByEmail(email)
	if err != nil || user == nil {
		log.Errorf("failed to fetch conflicting user by email: %v", err)
		return nil, apierror.InternalServerError
	}

	log.Warnf("rebinding user %d from subject %s to %s", user.ID, user.SubUUID, token.Sub)
	user.SubUUID = token.Sub
	user.EmailVerified = true
	user.UpdatedAt = utils.NowUTC()
	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to rebind user: %v", err)
		return nil, apierror.InternalServerError
	}
	return user, nil
}
