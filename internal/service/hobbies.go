package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

const (
	randomPickCount = 3
	randomPickTTL   = 10 * time.Minute
)

var defaultHobbies = []string{
	"Art", "Baking", "Badminton", "Chess",
	"Climbing", "Cooking", "Cycling",
	"Dancing", "Fishing", "Football",
	"Gardening", "Guitar", "Knitting",
	"Piano", "Photography", "Pottery",
	"Swimming", "Table Tennis", "Traveling",
	"Volleyball", "Woodworking", "Yoga",
}

// HobbiesService serves the hobby catalogue: the fixed defaults, user-added
// custom hobbies, and the rotating random picks for the home carousel.
type HobbiesService struct {
	state repository.StateRepository
	now   func() time.Time
}

// NewHobbiesService constructs a HobbiesService.
func NewHobbiesService(state repository.StateRepository) *HobbiesService {
	return &HobbiesService{state: state, now: time.Now}
}

// All returns the default hobbies followed by any custom additions.
func (s *HobbiesService) All(ctx context.Context) ([]string, error) {
	custom, err := s.custom(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]string, 0, len(defaultHobbies)+len(custom))
	all = append(all, defaultHobbies...)
	all = append(all, custom...)
	return all, nil
}

// AddCustom appends a hobby to the custom list unless already present.
func (s *HobbiesService) AddCustom(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ValidationError{Message: "hobby name is required"}
	}

	custom, err := s.custom(ctx)
	if err != nil {
		return false, err
	}
	for _, existing := range custom {
		if strings.EqualFold(existing, name) {
			return false, nil
		}
	}

	custom = append(custom, name)
	encoded, err := json.Marshal(custom)
	if err != nil {
		return false, fmt.Errorf("encode custom hobbies: %w", err)
	}
	if err := s.state.Set(ctx, keyCustomHobbies, string(encoded)); err != nil {
		return false, err
	}
	return true, nil
}

type randomPickCache struct {
	Hobbies   []string `json:"hobbies"`
	Timestamp int64    `json:"timestamp"`
}

// RandomPicks returns three distinct hobbies. The pick is cached with a
// timestamp and only refreshed once it is older than ten minutes.
func (s *HobbiesService) RandomPicks(ctx context.Context) ([]string, error) {
	now := s.now()

	if raw, ok, err := s.state.Get(ctx, keyRandomHobbies); err != nil {
		return nil, err
	} else if ok {
		var cached randomPickCache
		if json.Unmarshal([]byte(raw), &cached) == nil &&
			len(cached.Hobbies) > 0 &&
			now.UnixMilli()-cached.Timestamp < randomPickTTL.Milliseconds() {
			return cached.Hobbies, nil
		}
	}

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	pool := make([]string, len(all))
	copy(pool, all)
	picks := make([]string, 0, randomPickCount)
	for len(picks) < randomPickCount && len(pool) > 0 {
		idx := rand.Intn(len(pool))
		picks = append(picks, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}

	encoded, err := json.Marshal(randomPickCache{Hobbies: picks, Timestamp: now.UnixMilli()})
	if err != nil {
		return nil, fmt.Errorf("encode random picks: %w", err)
	}
	if err := s.state.Set(ctx, keyRandomHobbies, string(encoded)); err != nil {
		return nil, err
	}

	return picks, nil
}

func (s *HobbiesService) custom(ctx context.Context) ([]string, error) {
	raw, ok, err := s.state.Get(ctx, keyCustomHobbies)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var custom []string
	if err := json.Unmarshal([]byte(raw), &custom); err != nil {
		return nil, nil
	}
	return custom, nil
}
