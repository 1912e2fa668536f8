package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/pkg/notifier"
	"safedrop/storage"
)

type ComplaintService interface {
	File(ctx context.Context, profileID string, orderID *string, subject, body string) (*models.Complaint, error)
	Mine(ctx context.Context, profileID string) ([]*models.Complaint, error)
}

type complaintService struct {
	complaints storage.IComplaintStorage
	notify     notifier.INotifier
	log        logger.ILogger
}

func NewComplaintService(stg storage.IStorage, notify notifier.INotifier, log logger.ILogger) ComplaintService {
	return &complaintService{
		complaints: stg.Complaint(),
		notify:     notify,
		log:        log,
	}
}

func (s *complaintService) File(ctx context.Context, profileID string, orderID *string, subject, body string) (*models.Complaint, error) {
	c := &models.Complaint{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		OrderID:   orderID,
		Subject:   strings.TrimSpace(subject),
		Body:      strings.TrimSpace(body),
		Status:    models.ComplaintPending,
	}
	c, err := s.complaints.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.notify.ComplaintFiled(c)
	return c, nil
}

func (s *complaintService) Mine(ctx context.Context, profileID string) ([]*models.Complaint, error) {
	return s.complaints.GetByProfile(ctx, profileID)
}
