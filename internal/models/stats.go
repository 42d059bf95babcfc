package models

import "time"

// UserMetrics aggregates the current users collection.
type UserMetrics struct {
	Total       int            `json:"total"`
	Active      int            `json:"active"`
	Inactive    int            `json:"inactive"`
	ByRole      map[Role]int   `json:"by_role"`
	ByCareer    map[string]int `json:"by_career"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// TutoringMetrics aggregates the tutoring-request collection.
type TutoringMetrics struct {
	Total       int                   `json:"total"`
	ByStatus    map[RequestStatus]int `json:"by_status"`
	Rated       int                   `json:"rated"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// SystemMetrics is a lightweight runtime snapshot for the admin dashboard.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	StoreOpCount             uint64    `json:"store_op_count"`
	AverageStoreOpDurationMs float64   `json:"average_store_op_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// TeacherRating is the derived rating average for one teacher over finalized,
// rated sessions.
type TeacherRating struct {
	TeacherID    string  `json:"teacher_id"`
	TeacherName  string  `json:"teacher_name"`
	RatedCount   int     `json:"rated_count"`
	AverageScore float64 `json:"average_score"`
}
