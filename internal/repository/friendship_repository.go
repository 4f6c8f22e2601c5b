package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"patch_backend/internal/model"
	"patch_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFriendshipRepository(db *gorm.DB, rdb *redis.Client) *FriendshipRepository {
	return &FriendshipRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

// Create 创建申请边。事务内复查两个方向，唯一索引兜底并发下的重复写入：
// 两个并发的相同申请恰好一个成功、一个 Conflict。
func (r *FriendshipRepository) Create(edge *model.Friendship) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Friendship{}).
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				edge.UserID, edge.FriendID, edge.FriendID, edge.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrFriendshipExists
		}
		return tx.Create(edge).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrFriendshipExists
	}
	return err
}

func (r *FriendshipRepository) ByID(id uint) (*model.Friendship, error) {
	var edge model.Friendship
	err := r.DB.First(&edge, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// Between 任意方向查一条边
func (r *FriendshipRepository) Between(a, b uint) (*model.Friendship, error) {
	var edge model.Friendship
	err := r.DB.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", a, b, b, a).
		First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrFriendshipNotFound
	}
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *FriendshipRepository) SetAccepted(id uint) error {
	err := r.DB.Model(&model.Friendship{}).Where("id = ?", id).Update("is_accepted", true).Error
	if err == nil {
		r.invalidateCacheByEdgeID(id)
	}
	return err
}

// Delete 物理删除边（拒绝或删好友），之后同一对可以重新申请
func (r *FriendshipRepository) Delete(id uint) error {
	edge, err := r.ByID(id)
	if err != nil {
		return err
	}
	if err := r.DB.Delete(&model.Friendship{}, id).Error; err != nil {
		return err
	}
	r.invalidateCache(edge.UserID, edge.FriendID)
	return nil
}

func (r *FriendshipRepository) PendingIncoming(userID uint) ([]model.Friendship, error) {
	var edges []model.Friendship
	err := r.DB.Where("friend_id = ? AND is_accepted = ?", userID, false).Find(&edges).Error
	return edges, err
}

// FriendIDs 已接受的好友 ID，两个方向都算
func (r *FriendshipRepository) FriendIDs(userID uint) ([]uint, error) {
	var edges []model.Friendship
	err := r.DB.
		Where("(user_id = ? OR friend_id = ?) AND is_accepted = ?", userID, userID, true).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		if e.UserID == userID {
			ids = append(ids, e.FriendID)
		} else {
			ids = append(ids, e.UserID)
		}
	}
	return ids, nil
}

// FriendIDsCached 好友 ID 列表（带 Redis 集合缓存）
func (r *FriendshipRepository) FriendIDsCached(userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.FriendIDs(userID)
	}

	key := friendCacheKey(userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		return parseCachedIDs(cached), nil
	}

	// 缓存失效，回源数据库
	ids, err := r.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else {
		// 防止缓存穿透：占位值 + 短过期
		r.Redis.SAdd(r.ctx, key, 0)
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, nil
}

// RelationStates 批量查询 userID 与一组候选账号的关系状态，一次 SQL。
// 没有边的候选归为 none。
func (r *FriendshipRepository) RelationStates(userID uint, otherIDs []uint) (map[uint]model.RelationState, error) {
	states := make(map[uint]model.RelationState, len(otherIDs))
	for _, id := range otherIDs {
		states[id] = model.RelationNone
	}
	if len(otherIDs) == 0 {
		return states, nil
	}

	var edges []model.Friendship
	err := r.DB.
		Where("(user_id = ? AND friend_id IN ?) OR (friend_id = ? AND user_id IN ?)",
			userID, otherIDs, userID, otherIDs).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}

	for i := range edges {
		e := &edges[i]
		other := e.FriendID
		if other == userID {
			other = e.UserID
		}
		states[other] = e.StateFor(userID)
	}
	return states, nil
}

func friendCacheKey(userID uint) string {
	return fmt.Sprintf("patch:relation:friends:%d", userID)
}

// parseCachedIDs 解析缓存集合里的成员。
// 非数字成员和 0 占位符（穿透保护写入的）都跳过。
func parseCachedIDs(members []string) []uint {
	ids := make([]uint, 0, len(members))
	for _, s := range members {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

func (r *FriendshipRepository) invalidateCache(userID, friendID uint) {
	if r.Redis == nil {
		return
	}
	r.Redis.Del(r.ctx, friendCacheKey(userID))
	r.Redis.Del(r.ctx, friendCacheKey(friendID))
}

func (r *FriendshipRepository) invalidateCacheByEdgeID(id uint) {
	edge, err := r.ByID(id)
	if err != nil {
		return
	}
	r.invalidateCache(edge.UserID, edge.FriendID)
}
