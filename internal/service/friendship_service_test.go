package service

import (
	"errors"
	"testing"

	"patch_backend/internal/model"
	"patch_backend/internal/util"
)

// fakeFriendships 内存好友边存储，行为与仓储层约定一致
type fakeFriendships struct {
	nextID uint
	edges  map[uint]*model.Friendship
}

func newFakeFriendships() *fakeFriendships {
	return &fakeFriendships{nextID: 1, edges: make(map[uint]*model.Friendship)}
}

func (f *fakeFriendships) Create(edge *model.Friendship) error {
	for _, e := range f.edges {
		if (e.UserID == edge.UserID && e.FriendID == edge.FriendID) ||
			(e.UserID == edge.FriendID && e.FriendID == edge.UserID) {
			return util.ErrFriendshipExists
		}
	}
	edge.ID = f.nextID
	f.nextID++
	cp := *edge
	f.edges[edge.ID] = &cp
	return nil
}

func (f *fakeFriendships) ByID(id uint) (*model.Friendship, error) {
	e, ok := f.edges[id]
	if !ok {
		return nil, util.ErrRequestNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeFriendships) Between(a, b uint) (*model.Friendship, error) {
	for _, e := range f.edges {
		if (e.UserID == a && e.FriendID == b) || (e.UserID == b && e.FriendID == a) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, util.ErrFriendshipNotFound
}

func (f *fakeFriendships) SetAccepted(id uint) error {
	e, ok := f.edges[id]
	if !ok {
		return util.ErrRequestNotFound
	}
	e.IsAccepted = true
	return nil
}

func (f *fakeFriendships) Delete(id uint) error {
	if _, ok := f.edges[id]; !ok {
		return util.ErrFriendshipNotFound
	}
	delete(f.edges, id)
	return nil
}

func (f *fakeFriendships) PendingIncoming(userID uint) ([]model.Friendship, error) {
	var out []model.Friendship
	for _, e := range f.edges {
		if e.FriendID == userID && !e.IsAccepted {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeFriendships) FriendIDsCached(userID uint) ([]uint, error) {
	var out []uint
	for _, e := range f.edges {
		if !e.IsAccepted {
			continue
		}
		if e.UserID == userID {
			out = append(out, e.FriendID)
		} else if e.FriendID == userID {
			out = append(out, e.UserID)
		}
	}
	return out, nil
}

func newTestFriendship(userIDs ...uint) (*FriendshipService, *fakeFriendships) {
	var users []model.User
	for _, id := range userIDs {
		users = append(users, unlocated(id, "", ""))
	}
	store := newFakeFriendships()
	return NewFriendshipService(store, &fakeAccounts{users: users}), store
}

func TestRequestSelf(t *testing.T) {
	s, _ := newTestFriendship(1)
	if err := s.Request(1, 1); !errors.Is(err, util.ErrSelfFriend) {
		t.Fatalf("err = %v, want ErrSelfFriend", err)
	}
}

func TestRequestUnknownReceiver(t *testing.T) {
	s, _ := newTestFriendship(1)
	if err := s.Request(1, 99); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

// 任一方向已有边时重复申请必须冲突
func TestRequestConflicts(t *testing.T) {
	s, _ := newTestFriendship(1, 2)
	if err := s.Request(1, 2); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := s.Request(1, 2); !errors.Is(err, util.ErrFriendshipExists) {
		t.Errorf("same direction: err = %v, want ErrFriendshipExists", err)
	}
	if err := s.Request(2, 1); !errors.Is(err, util.ErrFriendshipExists) {
		t.Errorf("opposite direction: err = %v, want ErrFriendshipExists", err)
	}
}

func TestRespondAccept(t *testing.T) {
	s, store := newTestFriendship(1, 2)
	if err := s.Request(1, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	pending, err := s.PendingRequests(2)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Sender.ID != 1 {
		t.Fatalf("pending = %+v, want one request from user 1", pending)
	}

	if err := s.Respond(pending[0].RequestID, 2, true); err != nil {
		t.Fatalf("respond: %v", err)
	}

	// 接受后双方都能在好友列表里看到对方
	for viewer, want := range map[uint]uint{1: 2, 2: 1} {
		friends, err := s.Friends(viewer)
		if err != nil {
			t.Fatalf("friends(%d): %v", viewer, err)
		}
		if len(friends) != 1 || friends[0].ID != want {
			t.Errorf("friends(%d) = %+v, want user %d", viewer, friends, want)
		}
	}

	state, err := s.RelationState(1, 2)
	if err != nil || state != model.RelationFriends {
		t.Errorf("state = %q (%v), want friends", state, err)
	}
	if _, ok := store.edges[pending[0].RequestID]; !ok {
		t.Error("edge disappeared after accept")
	}
}

// 拒绝删边，之后可以重新申请
func TestRespondRejectAllowsRetry(t *testing.T) {
	s, _ := newTestFriendship(1, 2)
	if err := s.Request(1, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	pending, _ := s.PendingRequests(2)
	if err := s.Respond(pending[0].RequestID, 2, false); err != nil {
		t.Fatalf("reject: %v", err)
	}

	state, err := s.RelationState(1, 2)
	if err != nil || state != model.RelationNone {
		t.Fatalf("state after reject = %q (%v), want none", state, err)
	}
	if err := s.Request(1, 2); err != nil {
		t.Errorf("re-request after reject: %v, want nil", err)
	}
}

func TestRespondWrongReceiver(t *testing.T) {
	s, _ := newTestFriendship(1, 2, 3)
	if err := s.Request(1, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	pending, _ := s.PendingRequests(2)

	// 发起方和无关第三方都不能处理这条申请
	for _, responder := range []uint{1, 3} {
		if err := s.Respond(pending[0].RequestID, responder, true); !errors.Is(err, util.ErrRequestNotFound) {
			t.Errorf("respond by %d: err = %v, want ErrRequestNotFound", responder, err)
		}
	}
}

func TestRespondAcceptedEdge(t *testing.T) {
	s, _ := newTestFriendship(1, 2)
	if err := s.Request(1, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	pending, _ := s.PendingRequests(2)
	if err := s.Respond(pending[0].RequestID, 2, true); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := s.Respond(pending[0].RequestID, 2, false); !errors.Is(err, util.ErrRequestNotFound) {
		t.Errorf("respond on accepted edge: err = %v, want ErrRequestNotFound", err)
	}
}

func TestRemoveFriend(t *testing.T) {
	s, _ := newTestFriendship(1, 2)
	if err := s.Request(1, 2); err != nil {
		t.Fatalf("request: %v", err)
	}
	pending, _ := s.PendingRequests(2)
	if err := s.Respond(pending[0].RequestID, 2, true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// 边是 1->2，接收方也能删
	if err := s.Remove(2, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	friends, _ := s.Friends(1)
	if len(friends) != 0 {
		t.Errorf("friends after remove = %+v, want empty", friends)
	}
	if err := s.Remove(2, 1); !errors.Is(err, util.ErrFriendshipNotFound) {
		t.Errorf("second remove: err = %v, want ErrFriendshipNotFound", err)
	}
}

func TestRelationStatePerViewer(t *testing.T) {
	s, _ := newTestFriendship(1, 2)
	if err := s.Request(1, 2); err != nil {
		t.Fatalf("request: %v", err)
	}

	tests := []struct {
		viewer, other uint
		want          model.RelationState
	}{
		{1, 2, model.RelationPendingOutgoing},
		{2, 1, model.RelationPendingIncoming},
		{1, 3, model.RelationNone},
	}
	for _, tt := range tests {
		got, err := s.RelationState(tt.viewer, tt.other)
		if err != nil {
			t.Fatalf("RelationState(%d,%d): %v", tt.viewer, tt.other, err)
		}
		if got != tt.want {
			t.Errorf("RelationState(%d,%d) = %q, want %q", tt.viewer, tt.other, got, tt.want)
		}
	}
}
