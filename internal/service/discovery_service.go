package service

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"patch_backend/internal/config"
	"patch_backend/internal/model"
	"patch_backend/internal/util"
	"patch_backend/pkg/logger"
	"patch_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// accountSource 发现功能需要的账号只读面，由 repository.UserRepository 实现
type accountSource interface {
	FindByID(id uint) (*model.User, error)
	FindByPhones(phones []string) ([]model.User, error)
}

// relationSource 批量关系状态查询，由 repository.FriendshipRepository 实现
type relationSource interface {
	RelationStates(userID uint, otherIDs []uint) (map[uint]model.RelationState, error)
}

// MutualContact 共同联系人的展示身份
type MutualContact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Candidate 一次发现查询的单个候选结果
type Candidate struct {
	User          model.User      `json:"user"`
	DistanceMiles float64         `json:"distanceMiles"`
	MutualCount   int             `json:"mutualCount"`
	MutualSample  []MutualContact `json:"mutualSample"`
}

// DiscoveryService 附近好友发现：
// 联系人规范化 -> 账号解析 -> 关系过滤 -> 距离过滤 -> 共同联系人计数 -> 排序。
// 全程只读，可与其它查询并发执行。
type DiscoveryService struct {
	accounts  accountSource
	relations relationSource
	cfg       *config.Config

	mu  sync.Mutex
	rng *rand.Rand
}

func NewDiscoveryService(accounts accountSource, relations relationSource, cfg *config.Config) *DiscoveryService {
	return &DiscoveryService{
		accounts:  accounts,
		relations: relations,
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NearbyMutuals 附近的潜在好友。
// 要求请求方已有定位；结果只含与请求方没有任何关系（无好友、无双向待处理申请）、
// 在请求方半径内且自身有定位的注册联系人，按共同联系人数降序、
// 距离升序、ID 升序排列。空结果是正常返回，不是错误。
func (s *DiscoveryService) NearbyMutuals(requesterID uint, rawPhones []string) ([]Candidate, error) {
	requester, err := s.accounts.FindByID(requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.HasLocation() {
		return nil, util.ErrLocationRequired
	}

	// 规范化并去重，坏号码静默跳过，不让单条脏数据拖垮整个查询
	phones := util.NormalizePhones(rawPhones)

	resolvedUsers, err := s.accounts.FindByPhones(phones)
	if err != nil {
		return nil, err
	}

	// 请求方自己的号码出现在通讯录里是常态，直接剔除
	resolved := make([]model.User, 0, len(resolvedUsers))
	for _, u := range resolvedUsers {
		if u.ID != requesterID {
			resolved = append(resolved, u)
		}
	}
	monitoring.DiscoveryCandidates.WithLabelValues("resolved").Observe(float64(len(resolved)))

	ids := make([]uint, 0, len(resolved))
	for _, u := range resolved {
		ids = append(ids, u.ID)
	}
	states, err := s.relations.RelationStates(requesterID, ids)
	if err != nil {
		return nil, err
	}

	// 只有 none 状态的候选可见：已是好友或任一方向有待处理申请的都不再推荐
	eligible := make([]model.User, 0, len(resolved))
	for _, u := range resolved {
		if states[u.ID] == model.RelationNone {
			eligible = append(eligible, u)
		}
	}
	monitoring.DiscoveryCandidates.WithLabelValues("eligible").Observe(float64(len(eligible)))

	// 距离过滤用请求方的半径；任一方缺定位按不匹配处理（fail closed）
	radius := requester.DiscoveryRadius
	candidates := make([]Candidate, 0, len(eligible))
	for _, u := range eligible {
		if !u.HasLocation() {
			continue
		}
		dist := util.HaversineMiles(*requester.Latitude, *requester.Longitude, *u.Latitude, *u.Longitude)
		if dist > radius {
			continue
		}
		u.Password = ""
		candidates = append(candidates, Candidate{User: u, DistanceMiles: dist})
	}
	monitoring.DiscoveryCandidates.WithLabelValues("nearby").Observe(float64(len(candidates)))

	for i := range candidates {
		candidates[i].MutualCount, candidates[i].MutualSample = s.mutuals(requesterID, candidates[i].User.ID, resolved)
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.MutualCount != b.MutualCount {
			return a.MutualCount > b.MutualCount
		}
		if a.DistanceMiles != b.DistanceMiles {
			return a.DistanceMiles < b.DistanceMiles
		}
		return a.User.ID < b.User.ID
	})

	logger.Log.Debug("discovery query",
		zap.Uint("requester", requesterID),
		zap.Int("contacts", len(rawPhones)),
		zap.Int("resolved", len(resolved)),
		zap.Int("returned", len(candidates)),
	)
	return candidates, nil
}

// mutuals 共同联系人计数与展示样本。
// 这里的“共同联系人”是请求方通讯录里已注册、且不是请求方
// 和候选人本身的账号——系统拿不到候选人的通讯录，
// 这是刻意的近似而不是真正的双向交集。
func (s *DiscoveryService) mutuals(requesterID, candidateID uint, resolved []model.User) (int, []MutualContact) {
	pool := make([]MutualContact, 0, len(resolved))
	for _, u := range resolved {
		if u.ID == requesterID || u.ID == candidateID {
			continue
		}
		pool = append(pool, MutualContact{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	if len(pool) == 0 {
		return 0, nil
	}

	// 随机挑展示样本，给客户端一点变化
	size := s.cfg.Discovery.MutualSampleSize
	if size > len(pool) {
		size = len(pool)
	}
	s.mu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.mu.Unlock()

	sample := make([]MutualContact, size)
	copy(sample, pool[:size])
	return len(pool), sample
}
