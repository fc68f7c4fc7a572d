package service

import (
	"context"

	"clubsphere-backend/internal/domain"
	"clubsphere-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) List(ctx context.Context, sess *domain.Session) ([]domain.Notification, error) {
	if !sess.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return s.noteRepo.ListByUser(ctx, sess.UserID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, sess *domain.Session, notificationID int32) error {
	if !sess.Valid() {
		return domain.ErrUnauthorized
	}
	return s.noteRepo.MarkAsRead(ctx, notificationID, sess.UserID)
}
