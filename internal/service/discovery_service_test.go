package service

import (
	"errors"
	"math/rand"
	"os"
	"testing"

	"patch_backend/internal/config"
	"patch_backend/internal/model"
	"patch_backend/internal/util"
	"patch_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// fakeAccounts 内存账号源
type fakeAccounts struct {
	users []model.User
}

func (f *fakeAccounts) FindByID(id uint) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (f *fakeAccounts) FindByPhones(phones []string) ([]model.User, error) {
	set := make(map[string]bool, len(phones))
	for _, p := range phones {
		set[p] = true
	}
	var out []model.User
	for _, u := range f.users {
		if set[u.PhoneNumber] {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeAccounts) FindByIDs(ids []uint) ([]model.User, error) {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	var out []model.User
	for _, u := range f.users {
		if set[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeRelations 固定关系状态表，缺省 none
type fakeRelations struct {
	states map[uint]model.RelationState
}

func (f *fakeRelations) RelationStates(userID uint, otherIDs []uint) (map[uint]model.RelationState, error) {
	out := make(map[uint]model.RelationState, len(otherIDs))
	for _, id := range otherIDs {
		if s, ok := f.states[id]; ok {
			out[id] = s
		} else {
			out[id] = model.RelationNone
		}
	}
	return out, nil
}

func ptr(v float64) *float64 { return &v }

func testConfig() *config.Config {
	return &config.Config{
		Discovery: config.DiscoveryConfig{
			DefaultRadiusMiles: 10,
			MaxRadiusMiles:     50,
			MutualSampleSize:   1,
		},
	}
}

func located(id uint, username, phone string, lat, lng float64) model.User {
	u := model.User{Username: username, PhoneNumber: phone, Latitude: ptr(lat), Longitude: ptr(lng), DiscoveryRadius: 10}
	u.ID = id
	return u
}

func unlocated(id uint, username, phone string) model.User {
	u := model.User{Username: username, PhoneNumber: phone, DiscoveryRadius: 10}
	u.ID = id
	return u
}

func newTestDiscovery(accounts *fakeAccounts, relations *fakeRelations) *DiscoveryService {
	s := NewDiscoveryService(accounts, relations, testConfig())
	s.rng = rand.New(rand.NewSource(42))
	return s
}

func TestNearbyMutualsLocationRequired(t *testing.T) {
	accounts := &fakeAccounts{users: []model.User{
		unlocated(1, "requester", "+13015550100"),
	}}
	s := newTestDiscovery(accounts, &fakeRelations{})

	_, err := s.NearbyMutuals(1, []string{"301-555-0101"})
	if !errors.Is(err, util.ErrLocationRequired) {
		t.Fatalf("err = %v, want ErrLocationRequired", err)
	}
}

func TestNearbyMutualsUnknownRequester(t *testing.T) {
	s := newTestDiscovery(&fakeAccounts{}, &fakeRelations{})
	if _, err := s.NearbyMutuals(99, nil); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

// 对应核心场景：
// 请求方在 (37,-122)，半径10英里；A 距离约0.9英里、无关系，应返回；
// B 距离约69英里，应排除；C 与 A 同距但已是好友，应排除。
func TestNearbyMutualsScenario(t *testing.T) {
	accounts := &fakeAccounts{users: []model.User{
		located(1, "requester", "+13015550100", 37.0, -122.0),
		located(2, "alice", "+13015550101", 37.01, -122.01),
		located(3, "bob", "+13015550102", 38.0, -122.0),
		located(4, "carol", "+13015550103", 37.01, -122.01),
	}}
	relations := &fakeRelations{states: map[uint]model.RelationState{
		4: model.RelationFriends,
	}}
	s := newTestDiscovery(accounts, relations)

	got, err := s.NearbyMutuals(1, []string{
		"301-555-0101", "(301) 555-0102", "+13015550103",
	})
	if err != nil {
		t.Fatalf("NearbyMutuals error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(got), got)
	}
	c := got[0]
	if c.User.ID != 2 {
		t.Errorf("candidate = %d, want 2 (alice)", c.User.ID)
	}
	if c.DistanceMiles <= 0 || c.DistanceMiles > 1.0 {
		t.Errorf("distance = %f, want ~0.9", c.DistanceMiles)
	}
	// bob 和 carol 都是已注册的通讯录联系人，对 alice 来说是共同联系人
	if c.MutualCount != 2 {
		t.Errorf("mutual count = %d, want 2", c.MutualCount)
	}
	if len(c.MutualSample) != 1 {
		t.Errorf("sample size = %d, want 1", len(c.MutualSample))
	}
	for _, m := range c.MutualSample {
		if m.ID == 1 || m.ID == 2 {
			t.Errorf("sample contains requester or candidate: %+v", m)
		}
	}
}

func TestNearbyMutualsExcludesSelf(t *testing.T) {
	accounts := &fakeAccounts{users: []model.User{
		located(1, "requester", "+13015550100", 37.0, -122.0),
		located(2, "alice", "+13015550101", 37.0, -122.0),
	}}
	s := newTestDiscovery(accounts, &fakeRelations{})

	got, err := s.NearbyMutuals(1, []string{"+13015550100", "+13015550101"})
	if err != nil {
		t.Fatalf("NearbyMutuals error: %v", err)
	}
	for _, c := range got {
		if c.User.ID == 1 {
			t.Errorf("result contains requester: %+v", c)
		}
	}
	if len(got) != 1 {
		t.Errorf("got %d candidates, want 1", len(got))
	}
}

func TestNearbyMutualsExcludesPendingBothDirections(t *testing.T) {
	accounts := &fakeAccounts{users: []model.User{
		located(1, "requester", "+13015550100", 37.0, -122.0),
		located(2, "outgoing", "+13015550101", 37.0, -122.0),
		located(3, "incoming", "+13015550102", 37.0, -122.0),
		located(4, "fresh", "+13015550103", 37.0, -122.0),
	}}
	relations := &fakeRelations{states: map[uint]model.RelationState{
		2: model.RelationPendingOutgoing,
		3: model.RelationPendingIncoming,
	}}
	s := newTestDiscovery(accounts, relations)

	got, err := s.NearbyMutuals(1, []string{"+13015550101", "+13015550102", "+13015550103"})
	if err != nil {
		t.Fatalf("NearbyMutuals error: %v", err)
	}
	if len(got) != 1 || got[0].User.ID != 4 {
		t.Fatalf("got %+v, want only user 4", got)
	}
}

func TestNearbyMutualsExcludesUnlocatedCandidates(t *testing.T) {
	accounts := &fakeAccounts{users: []model.User{
		located(1, "requester", "+13015550100", 37.0, -122.0),
		unlocated(2, "nowhere", "+13015550101"),
	}}
	s := newTestDiscovery(accounts, &fakeRelations{})

	got, err := s.NearbyMutuals(1, []string{"+13015550101"})
	if err != nil {
		t.Fatalf("NearbyMutuals error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %+v, want empty", got)
	}
}

// 用请求方自己的半径过滤，而不是候选人的
func TestNearbyMutualsUsesRequesterRadius(t *testing.T) {
	requester := located(1, "requester", "+13015550100", 37.0, -122.0)
	requester.DiscoveryRadius = 1

	candidate := located(2, "faraway", "+13015550101", 37.05, -122.0) // 约3.5英里
	candidate.DiscoveryRadius = 50

	accounts := &fakeAccounts{users: []model.User{requester, candidate}}
	s := newTestDiscovery(accounts, &fakeRelations{})

	got, err := s.NearbyMutuals(1, []string{"+13015550101"})
	if err != nil {
		t.Fatalf("NearbyMutuals error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %+v, want empty: candidate outside requester radius", got)
	}
}

func TestNearbyMutualsOrdering(t *testing.T) {
	accounts := &fakeAccounts{users: []model.User{
		located(1, "requester", "+13015550100", 37.0, -122.0),
		located(5, "far", "+13015550105", 37.05, -122.0),   // 约3.5英里
		located(3, "near", "+13015550103", 37.01, -122.0),  // 约0.7英里
		located(4, "near2", "+13015550104", 37.01, -122.0), // 与 near 同距，ID 较大
	}}
	s := newTestDiscovery(accounts, &fakeRelations{})

	got, err := s.NearbyMutuals(1, []string{"+13015550103", "+13015550104", "+13015550105"})
	if err != nil {
		t.Fatalf("NearbyMutuals error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3", len(got))
	}
	// 所有候选共同联系人数相同（都是其余两个已注册联系人），
	// 按距离升序、同距按ID升序
	wantOrder := []uint{3, 4, 5}
	for i, want := range wantOrder {
		if got[i].User.ID != want {
			t.Errorf("position %d = user %d, want %d", i, got[i].User.ID, want)
		}
	}
}

func TestNearbyMutualsEmptyAndMalformedContacts(t *testing.T) {
	accounts := &fakeAccounts{users: []model.User{
		located(1, "requester", "+13015550100", 37.0, -122.0),
	}}
	s := newTestDiscovery(accounts, &fakeRelations{})

	for _, contacts := range [][]string{nil, {}, {"garbage", ""}} {
		got, err := s.NearbyMutuals(1, contacts)
		if err != nil {
			t.Fatalf("NearbyMutuals(%v) error: %v", contacts, err)
		}
		if len(got) != 0 {
			t.Fatalf("NearbyMutuals(%v) = %+v, want empty list", contacts, got)
		}
	}
}
