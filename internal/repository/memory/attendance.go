package memory

import (
	"context"
	"sort"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	db *DB
}

func NewAttendanceRepository(db *DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Get implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Get(ctx context.Context, key attendance.Key) (attendance.Record, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.attendance[key]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, key attendance.Key, fn func(existing *attendance.Record) (attendance.Record, error)) (attendance.Record, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var existing *attendance.Record
	if rec, ok := r.db.attendance[key]; ok {
		existing = &rec
	}

	next, err := fn(existing)
	if err != nil {
		return attendance.Record{}, err
	}

	// the key, not the returned record, decides the slot
	next.UserID = key.UserID
	if existing != nil {
		next.ID = existing.ID
	} else if next.ID == "" {
		next.ID = newID()
	}

	r.db.attendance[key] = next
	return next, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	result := make([]attendance.Record, 0)
	for _, rec := range r.db.attendance {
		if filter.Matches(rec) {
			result = append(result, rec)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}
