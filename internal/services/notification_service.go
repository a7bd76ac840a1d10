package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/kenancosic/eRents-sub000/internal/models"
	"github.com/kenancosic/eRents-sub000/internal/repositories"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notifier is the notification contract consumed by the contract monitor.
// Delivery transport (push, email, in-app feed) is upstream's concern.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, notificationType string, referenceID *uuid.UUID) error
}

// NotificationService persists notifications and publishes them to a Redis
// channel so connected clients pick them up in real time. Publish failures
// are logged, not fatal: the stored row is the source of truth.
type NotificationService interface {
	Notifier
	ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationService struct {
	notificationsRepo repositories.NotificationsRepository
	redisClient       *redis.Client
}

func NewNotificationService(notificationsRepo repositories.NotificationsRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		notificationsRepo: notificationsRepo,
		redisClient:       redisClient,
	}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, title, message, notificationType string, referenceID *uuid.UUID) error {
	notification := &models.Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        notificationType,
		ReferenceID: referenceID,
		CreatedAt:   time.Now(),
	}

	if err := s.notificationsRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("store notification for user %s: %w", userID, err)
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(notification)
		if err != nil {
			log.Printf("notification publish: marshal failed: %v", err)
			return nil
		}
		channel := fmt.Sprintf("notifications:%s", userID)
		if err := s.redisClient.Publish(ctx, channel, payload).Err(); err != nil {
			log.Printf("notification publish to %s failed: %v", channel, err)
		}
	}
	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.notificationsRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.notificationsRepo.MarkRead(ctx, userID, notificationID)
}
