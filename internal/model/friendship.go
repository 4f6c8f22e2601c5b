package model

import "time"

// Friendship 好友关系表
// 有向边 user_id -> friend_id，同一有序对至多一条记录。
// is_accepted=false 表示待处理申请，拒绝即物理删除该行（可重新申请），
// 所以这张表不走软删除。
type Friendship struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"uniqueIndex:idx_friendships_pair;not null" json:"userId"`
	FriendID   uint      `gorm:"uniqueIndex:idx_friendships_pair;not null" json:"friendId"`
	IsAccepted bool      `gorm:"default:false" json:"isAccepted"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// RelationState 两个账号之间的关系状态（以查询方为第一视角）
type RelationState string

const (
	RelationNone            RelationState = "none"
	RelationPendingOutgoing RelationState = "pending_outgoing" // 我发出的申请待处理
	RelationPendingIncoming RelationState = "pending_incoming" // 对方发来的申请待处理
	RelationFriends         RelationState = "friends"
)

// StateFor 以 userID 的视角对一条边做归类
func (f *Friendship) StateFor(userID uint) RelationState {
	if f.IsAccepted {
		return RelationFriends
	}
	if f.UserID == userID {
		return RelationPendingOutgoing
	}
	return RelationPendingIncoming
}
