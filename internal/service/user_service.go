package service

import (
	"time"

	"patch_backend/internal/config"
	"patch_backend/internal/model"
	"patch_backend/internal/repository"
	"patch_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *UserService) Profile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// UpdateProfileInput 资料更新，nil 字段不改
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Password  *string
	Interests *model.StringList
	School    *string
	Hometown  *string
	Job       *string
	Links     *model.SocialLinks
}

func (s *UserService) UpdateProfile(userID uint, in UpdateProfileInput) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Interests != nil {
		user.Interests = *in.Interests
	}
	if in.School != nil {
		user.School = *in.School
	}
	if in.Hometown != nil {
		user.Hometown = *in.Hometown
	}
	if in.Job != nil {
		user.Job = *in.Job
	}
	if in.Links != nil {
		if err := util.ValidateLinks(*in.Links); err != nil {
			return nil, err
		}
		user.Links = *in.Links
	}
	if in.Password != nil && *in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// UpdateLocation 定位更新，last-write-wins，按账号节流
func (s *UserService) UpdateLocation(userID uint, lat, lng float64) error {
	minInterval := time.Duration(s.Cfg.Discovery.LocationMinInterval) * time.Second
	return s.UserRepo.UpdateLocation(userID, lat, lng, minInterval)
}

// UpdateRadius 发现半径，夹到 [0, max]
func (s *UserService) UpdateRadius(userID uint, radius float64) (float64, error) {
	radius = util.ClampRadius(radius, s.Cfg.Discovery.MaxRadiusMiles)
	if err := s.UserRepo.UpdateRadius(userID, radius); err != nil {
		return 0, err
	}
	return radius, nil
}

func (s *UserService) Search(query string) ([]model.User, error) {
	users, err := s.UserRepo.Search(query, 10)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// ContactMatch contacts/check 的单条结果
type ContactMatch struct {
	IsRegistered bool   `json:"isRegistered"`
	ID           uint   `json:"id,omitempty"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
}

// CheckContacts 返回规范化号码到注册状态的映射，非法号码跳过
func (s *UserService) CheckContacts(rawPhones []string) (map[string]ContactMatch, error) {
	phones := util.NormalizePhones(rawPhones)
	users, err := s.UserRepo.FindByPhones(phones)
	if err != nil {
		return nil, err
	}
	return contactMatches(phones, users), nil
}

func contactMatches(phones []string, users []model.User) map[string]ContactMatch {
	result := make(map[string]ContactMatch, len(phones))
	for _, u := range users {
		result[u.PhoneNumber] = ContactMatch{
			IsRegistered: true,
			ID:           u.ID,
			Username:     u.Username,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
		}
	}
	for _, phone := range phones {
		if _, ok := result[phone]; !ok {
			result[phone] = ContactMatch{IsRegistered: false}
		}
	}
	return result
}
