// Package memory holds the process-wide data set. Nothing is persisted: the
// data lives for the lifetime of the process and starts from the seed.
package memory

import (
	"sync"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/attendance"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/auth"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

// DB is shared by every repository in this package. A single lock guards all
// collections so that cross-collection reads see one consistent state.
type DB struct {
	mu sync.RWMutex

	users      map[string]user.User
	userOrder  []string
	sessions   map[string]auth.Session
	attendance map[attendance.Key]attendance.Record
	// append-only, in submission order
	requests     []leave.LeaveRequest
	requestIndex map[string]int
}

func NewDB() *DB {
	return &DB{
		users:        make(map[string]user.User),
		sessions:     make(map[string]auth.Session),
		attendance:   make(map[attendance.Key]attendance.Record),
		requestIndex: make(map[string]int),
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
