package service

import (
	"errors"
	"time"

	"patch_backend/internal/config"
	"patch_backend/internal/model"
	"patch_backend/internal/repository"
	"patch_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 注册。手机号入库前先规范化，用户名和手机号都要求唯一。
func (s *AuthService) Register(user *model.User) error {
	phone, err := util.NormalizePhone(user.PhoneNumber)
	if err != nil {
		return err
	}
	user.PhoneNumber = phone

	if _, err := s.UserRepo.FindByUsername(user.Username); err == nil {
		return util.ErrUsernameTaken
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return err
	}

	if _, err := s.UserRepo.FindByPhone(user.PhoneNumber); err == nil {
		return util.ErrPhoneRegistered
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return err
	}

	if err := util.ValidateLinks(user.Links); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	if user.DiscoveryRadius == 0 {
		user.DiscoveryRadius = s.Cfg.Discovery.DefaultRadiusMiles
	}
	if user.HasLocation() {
		now := time.Now()
		user.LastLocationUpdate = &now
	}

	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	user.Password = ""
	return token, user, nil
}
