package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/uta-tic/tutoring-api/internal/models"
)

const (
	cacheKeyUserMetrics     = "stats:users"
	cacheKeyTutoringMetrics = "stats:tutoring"
	cacheKeyTeacherRatings  = "stats:teacher_ratings"
)

type statsUserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type statsTutoringLister interface {
	List(ctx context.Context) ([]models.TutoringRequest, error)
}

// StatsService derives aggregate metrics from the collections. Results are
// cached briefly so dashboard polling does not rescan the store every tick.
type StatsService struct {
	users    statsUserLister
	requests statsTutoringLister
	cache    *CacheService
	ttl      time.Duration
	logger   *zap.Logger
}

// NewStatsService constructs a StatsService instance.
func NewStatsService(users statsUserLister, requests statsTutoringLister, cache *CacheService, ttl time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &StatsService{users: users, requests: requests, cache: cache, ttl: ttl, logger: logger}
}

// UserMetrics aggregates the users collection.
func (s *StatsService) UserMetrics(ctx context.Context) (*models.UserMetrics, error) {
	var cached models.UserMetrics
	if hit, _ := s.cache.Get(ctx, cacheKeyUserMetrics, &cached); hit {
		return &cached, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	metrics := models.UserMetrics{
		ByRole:      make(map[models.Role]int),
		ByCareer:    make(map[string]int),
		GeneratedAt: time.Now().UTC(),
	}
	for _, u := range users {
		metrics.Total++
		if u.Active {
			metrics.Active++
		} else {
			metrics.Inactive++
		}
		for _, r := range u.Roles {
			metrics.ByRole[r]++
		}
		if u.Career != "" {
			metrics.ByCareer[u.Career]++
		}
	}

	if err := s.cache.Set(ctx, cacheKeyUserMetrics, metrics, s.ttl); err != nil {
		s.logger.Warn("failed to cache user metrics", zap.Error(err))
	}
	return &metrics, nil
}

// TutoringMetrics aggregates the tutoring-request collection.
func (s *StatsService) TutoringMetrics(ctx context.Context) (*models.TutoringMetrics, error) {
	var cached models.TutoringMetrics
	if hit, _ := s.cache.Get(ctx, cacheKeyTutoringMetrics, &cached); hit {
		return &cached, nil
	}

	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}

	metrics := models.TutoringMetrics{
		ByStatus:    make(map[models.RequestStatus]int),
		GeneratedAt: time.Now().UTC(),
	}
	for _, r := range requests {
		metrics.Total++
		metrics.ByStatus[r.Status]++
		if r.Rating != nil {
			metrics.Rated++
		}
	}

	if err := s.cache.Set(ctx, cacheKeyTutoringMetrics, metrics, s.ttl); err != nil {
		s.logger.Warn("failed to cache tutoring metrics", zap.Error(err))
	}
	return &metrics, nil
}

// TeacherRatings derives each teacher's rating average over finalized rated
// sessions, sorted best first.
func (s *StatsService) TeacherRatings(ctx context.Context) ([]models.TeacherRating, error) {
	var cached []models.TeacherRating
	if hit, _ := s.cache.Get(ctx, cacheKeyTeacherRatings, &cached); hit {
		return cached, nil
	}

	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct {
		count int
		sum   int
	}
	perTeacher := make(map[string]*acc)
	for _, r := range requests {
		if r.Status != models.RequestFinalized || r.Rating == nil {
			continue
		}
		a := perTeacher[r.TeacherID]
		if a == nil {
			a = &acc{}
			perTeacher[r.TeacherID] = a
		}
		a.count++
		a.sum += *r.Rating
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName()
	}

	ratings := make([]models.TeacherRating, 0, len(perTeacher))
	for teacherID, a := range perTeacher {
		name, ok := names[teacherID]
		if !ok {
			name = "Unknown"
		}
		ratings = append(ratings, models.TeacherRating{
			TeacherID:    teacherID,
			TeacherName:  name,
			RatedCount:   a.count,
			AverageScore: float64(a.sum) / float64(a.count),
		})
	}
	sort.Slice(ratings, func(i, j int) bool {
		if ratings[i].AverageScore != ratings[j].AverageScore {
			return ratings[i].AverageScore > ratings[j].AverageScore
		}
		return ratings[i].TeacherID < ratings[j].TeacherID
	})

	if err := s.cache.Set(ctx, cacheKeyTeacherRatings, ratings, s.ttl); err != nil {
		s.logger.Warn("failed to cache teacher ratings", zap.Error(err))
	}
	return ratings, nil
}

// Invalidate drops every cached stats entry. Called after bulk mutations.
func (s *StatsService) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "stats:*"); err != nil {
		s.logger.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}
