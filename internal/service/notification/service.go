package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ghiras-nahda/hris-backend-go/internal/domain/leave"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/notification"
	"github.com/ghiras-nahda/hris-backend-go/internal/domain/user"
	"github.com/ghiras-nahda/hris-backend-go/internal/pkg/sse"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 1
	QueueSize   int // default: 256
}

type service struct {
	userRepo user.UserRepository
	hub      *sse.Hub
	config   Config

	queue  chan notification.Notification
	wg     sync.WaitGroup
	stopCh chan struct{}
	once   sync.Once
}

// NewNotificationService creates a notification service with background
// workers that push events to the hub.
func NewNotificationService(userRepo user.UserRepository, hub *sse.Hub, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		userRepo: userRepo,
		hub:      hub,
		config:   cfg,
		queue:    make(chan notification.Notification, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case n := <-s.queue:
			s.deliver(n)
		case <-s.stopCh:
			// drain whatever is already queued
			for {
				select {
				case n := <-s.queue:
					s.deliver(n)
				default:
					slog.Debug("notification worker stopped", "worker", id)
					return
				}
			}
		}
	}
}

func (s *service) deliver(n notification.Notification) {
	if s.hub.SubscriberCount(n.RecipientID) == 0 {
		slog.Debug("notification dropped, recipient has no open stream", "type", n.Type, "recipient_id", n.RecipientID)
		return
	}
	delivered := s.hub.Publish(n.RecipientID, sse.Event{
		UserID: n.RecipientID,
		Event:  string(n.Type),
		Data:   n,
	})
	slog.Debug("notification published", "type", n.Type, "recipient_id", n.RecipientID, "streams", delivered)
}

func (s *service) enqueue(n notification.Notification) {
	select {
	case s.queue <- n:
	default:
		slog.Warn("notification queue full, dropping event", "type", n.Type, "recipient_id", n.RecipientID)
	}
}

// LeaveSubmitted notifies every account the request is routed to plus all administrators.
func (s *service) LeaveSubmitted(ctx context.Context, request leave.LeaveRequest) {
	recipients, err := s.reviewers(ctx, request.TargetManagerEmail)
	if err != nil {
		slog.Error("failed to resolve leave reviewers", "request_id", request.ID, "error", err)
		return
	}

	now := time.Now()
	for _, recipientID := range recipients {
		if recipientID == request.UserID {
			continue
		}
		s.enqueue(notification.Notification{
			RecipientID: recipientID,
			Type:        notification.TypeLeaveSubmitted,
			Title:       "New leave request",
			Message:     fmt.Sprintf("%s requested %s for %d day(s)", request.UserName, request.Type.Label(), request.Duration),
			Data:        map[string]interface{}{"request": leave.NewLeaveRequestResponse(request)},
			CreatedAt:   now,
		})
	}
}

// LeaveResolved notifies the requester of the decision.
func (s *service) LeaveResolved(ctx context.Context, request leave.LeaveRequest) {
	title := "Leave request approved"
	if request.Status == leave.LeaveRequestStatusRejected {
		title = "Leave request rejected"
	}

	s.enqueue(notification.Notification{
		RecipientID: request.UserID,
		Type:        notification.TypeLeaveResolved,
		Title:       title,
		Message:     fmt.Sprintf("Your %s request from %s to %s was %s", request.Type.Label(), request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"), request.Status),
		Data:        map[string]interface{}{"request": leave.NewLeaveRequestResponse(request)},
		CreatedAt:   time.Now(),
	})
}

func (s *service) reviewers(ctx context.Context, targetEmail string) ([]string, error) {
	users, err := s.userRepo.List(ctx, user.UserFilter{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	ids := make([]string, 0)
	add := func(u user.User) {
		if !seen[u.ID] {
			seen[u.ID] = true
			ids = append(ids, u.ID)
		}
	}

	if target := strings.TrimSpace(targetEmail); target != "" {
		routed, err := s.userRepo.ListByEmail(ctx, target)
		if err != nil {
			return nil, err
		}
		for _, u := range routed {
			add(u)
		}
	}
	for _, u := range users {
		if u.IsAdmin() {
			add(u)
		}
	}
	return ids, nil
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.Notification, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.Notification, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				n, ok := event.Data.(notification.Notification)
				if !ok {
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop gracefully stops the notification service
func (s *service) Stop() {
	s.once.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
