package repository

import (
	"errors"
	"time"

	"patch_backend/internal/model"
	"patch_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create 插入新用户。注册时的唯一性预检查是 check-then-insert，
// 并发下撞唯一索引由这里兜底翻译成冲突而不是500。
func (r *UserRepository) Create(user *model.User) error {
	err := r.DB.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrAccountExists
	}
	return err
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByIDs(ids []uint) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByPhone(phone string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("phone_number = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhones 联系人索引：一次 IN 查询批量解析，未注册的号码不出现在结果里
func (r *UserRepository) FindByPhones(phones []string) ([]model.User, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.DB.Where("phone_number IN ?", phones).Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// UpdateLocation 定位更新，last-write-wins。
// 节流状态存在账号行上，检查和更新在同一条件 UPDATE 里完成。
func (r *UserRepository) UpdateLocation(userID uint, lat, lng float64, minInterval time.Duration) error {
	now := time.Now()
	res := r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Where("last_location_update IS NULL OR last_location_update <= ?", now.Add(-minInterval)).
		Updates(map[string]interface{}{
			"latitude":             lat,
			"longitude":            lng,
			"last_location_update": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.DB.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return util.ErrUserNotFound
		}
		return util.ErrLocationThrottled
	}
	return nil
}

func (r *UserRepository) UpdateRadius(userID uint, radius float64) error {
	res := r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("discovery_radius", radius)
	if res.Error != nil {
		return res.Error
	}
	// 0行要区分用户不存在和值未变化（重复提交相同半径是合法的幂等请求）
	if res.RowsAffected == 0 {
		var count int64
		if err := r.DB.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return util.ErrUserNotFound
		}
	}
	return nil
}

// Search 按用户名/姓名模糊搜索
func (r *UserRepository) Search(query string, limit int) ([]model.User, error) {
	var users []model.User
	searchTerm := "%" + query + "%"
	err := r.DB.
		Where("username LIKE ? OR first_name LIKE ? OR last_name LIKE ?", searchTerm, searchTerm, searchTerm).
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) TouchLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).Error
}
