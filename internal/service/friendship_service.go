package service

import (
	"errors"

	"patch_backend/internal/model"
	"patch_backend/internal/util"
)

// friendshipStore 好友边的存储面，由 repository.FriendshipRepository 实现
type friendshipStore interface {
	Create(edge *model.Friendship) error
	ByID(id uint) (*model.Friendship, error)
	Between(a, b uint) (*model.Friendship, error)
	SetAccepted(id uint) error
	Delete(id uint) error
	PendingIncoming(userID uint) ([]model.Friendship, error)
	FriendIDsCached(userID uint) ([]uint, error)
}

// userReader 好友模块需要的用户只读面，由 repository.UserRepository 实现
type userReader interface {
	FindByID(id uint) (*model.User, error)
	FindByIDs(ids []uint) ([]model.User, error)
}

type FriendshipService struct {
	Friendships friendshipStore
	Users       userReader
}

func NewFriendshipService(friendships friendshipStore, users userReader) *FriendshipService {
	return &FriendshipService{
		Friendships: friendships,
		Users:       users,
	}
}

// Request 发起好友申请。
// 任一方向已有边（无论待处理还是已接受）都算冲突。
func (s *FriendshipService) Request(senderID, receiverID uint) error {
	if senderID == receiverID {
		return util.ErrSelfFriend
	}
	if _, err := s.Users.FindByID(receiverID); err != nil {
		return err
	}
	return s.Friendships.Create(&model.Friendship{
		UserID:   senderID,
		FriendID: receiverID,
	})
}

// Respond 接受或拒绝申请。只有边的接收方能处理，
// 已接受的边不可再处理；拒绝直接删边，之后可重新申请。
func (s *FriendshipService) Respond(edgeID, receiverID uint, accept bool) error {
	edge, err := s.Friendships.ByID(edgeID)
	if err != nil {
		return err
	}
	if edge.FriendID != receiverID || edge.IsAccepted {
		return util.ErrRequestNotFound
	}
	if accept {
		return s.Friendships.SetAccepted(edge.ID)
	}
	return s.Friendships.Delete(edge.ID)
}

// Remove 删除好友关系（任意方向的边）
func (s *FriendshipService) Remove(userID, friendID uint) error {
	edge, err := s.Friendships.Between(userID, friendID)
	if err != nil {
		return err
	}
	return s.Friendships.Delete(edge.ID)
}

func (s *FriendshipService) Friends(userID uint) ([]model.User, error) {
	ids, err := s.Friendships.FriendIDsCached(userID)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// PendingRequest 待处理申请及其发起人
type PendingRequest struct {
	RequestID uint       `json:"requestId"`
	Sender    model.User `json:"sender"`
}

func (s *FriendshipService) PendingRequests(userID uint) ([]PendingRequest, error) {
	edges, err := s.Friendships.PendingIncoming(userID)
	if err != nil {
		return nil, err
	}
	senderIDs := make([]uint, 0, len(edges))
	for _, e := range edges {
		senderIDs = append(senderIDs, e.UserID)
	}
	senders, err := s.Users.FindByIDs(senderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(senders))
	for _, u := range senders {
		u.Password = ""
		byID[u.ID] = u
	}

	out := make([]PendingRequest, 0, len(edges))
	for _, e := range edges {
		sender, ok := byID[e.UserID]
		if !ok {
			continue
		}
		out = append(out, PendingRequest{RequestID: e.ID, Sender: sender})
	}
	return out, nil
}

// RelationState 查询两个账号之间的关系状态
func (s *FriendshipService) RelationState(userID, otherID uint) (model.RelationState, error) {
	edge, err := s.Friendships.Between(userID, otherID)
	if errors.Is(err, util.ErrFriendshipNotFound) {
		return model.RelationNone, nil
	}
	if err != nil {
		return model.RelationNone, err
	}
	return edge.StateFor(userID), nil
}
