// Package cache is the read-through response cache keyed by the request
// parameters. Entries are immutable once written and expire by TTL only.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-tour-chapters/internal/types"
)

// DefaultTTL keeps generated tours for a week.
const DefaultTTL = 7 * 24 * time.Hour

var _ Store = (*MemoryStore)(nil)

// Store is the injected cache surface. Get reports a miss for absent and
// stale entries alike; Set overwrites unconditionally.
type Store interface {
	Get(key string) (*types.TourResponse, bool)
	Set(key string, response *types.TourResponse)
}

type entry struct {
	payload   *types.TourResponse
	createdAt time.Time
}

// MemoryStore keeps entries in an in-process go-cache map. The clock is
// injectable so staleness is testable without waiting out the TTL.
type MemoryStore struct {
	entries *gocache.Cache
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: gocache.New(ttl, ttl/2),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(key string) (*types.TourResponse, bool) {
	value, ok := s.entries.Get(key)
	if !ok {
		return nil, false
	}
	e := value.(entry)
	if s.now().Sub(e.createdAt) >= s.ttl {
		s.entries.Delete(key)
		return nil, false
	}
	return e.payload, true
}

func (s *MemoryStore) Set(key string, response *types.TourResponse) {
	// go-cache's janitor evicts by wall clock; Get additionally checks the
	// injectable clock so staleness stays testable.
	s.entries.Set(key, entry{payload: response, createdAt: s.now()}, s.ttl)
}

// Key derives a deterministic cache key from everything that changes the
// generated tour.
func Key(placeName, language string, profile types.VisitorProfile, visitDurationMinutes int) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%d|%d",
		strings.ToLower(strings.TrimSpace(placeName)),
		strings.ToLower(language),
		strings.Join(profile.Interests, ","),
		profile.AgeGroup,
		profile.KnowledgeLevel,
		profile.TourDurationMinutes,
		visitDurationMinutes,
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
