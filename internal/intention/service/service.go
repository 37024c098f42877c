package service

import (
	"context"
	"strings"
	"time"

	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/common/logger"
	"github.com/kariua-parish/parish-site/internal/common/validation"
	"github.com/kariua-parish/parish-site/internal/intention/domain"
	"github.com/kariua-parish/parish-site/internal/intention/repository"
	"github.com/kariua-parish/parish-site/internal/notify"
)

type SubmitInput struct {
	Name      string `json:"name" validate:"required,notblank,max=100"`
	Intention string `json:"intention" validate:"required,notblank,max=2000"`
}

type SubmitResult struct {
	Intention    domain.PrayerIntention
	Notification notify.Result
}

type IntentionService struct {
	repo      repository.Repository
	relay     notify.Relay
	validator *validation.Validator
	location  *time.Location
	log       *logger.Logger
}

func NewIntentionService(
	repo repository.Repository,
	relay notify.Relay,
	validator *validation.Validator,
	location *time.Location,
	log *logger.Logger,
) *IntentionService {
	if location == nil {
		location = time.UTC
	}
	return &IntentionService{
		repo:      repo,
		relay:     relay,
		validator: validator,
		location:  location,
		log:       log,
	}
}

func (s *IntentionService) List(ctx context.Context) ([]domain.PrayerIntention, error) {
	intentions, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_intentions_failed",
		}).Errorf("list prayer intentions failed: %v", err)
		return nil, commonerrors.ErrFetchFailed.WithCause(err)
	}
	return intentions, nil
}

// Submit validates and stores an intention, then forwards it to the relay.
// Once the record is stored the call succeeds whatever the relay reports.
func (s *IntentionService) Submit(ctx context.Context, input SubmitInput) (SubmitResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Intention = strings.TrimSpace(input.Intention)

	if err := s.validator.Struct(input); err != nil {
		recordSubmission(outcomeRejected)
		s.log.WithFields(ctx, logger.Fields{
			"action":  "submit_intention_rejected",
			"details": validation.FieldDetails(err),
		}).Warn("prayer intention rejected")
		return SubmitResult{}, err
	}

	intention, err := s.repo.Create(ctx, domain.NewIntention{Name: input.Name, Intention: input.Intention})
	if err != nil {
		recordSubmission(outcomePersistFailed)
		s.log.WithFields(ctx, logger.Fields{
			"action": "submit_intention_persist_failed",
		}).Errorf("storage error creating prayer intention: %v", err)
		return SubmitResult{}, commonerrors.ErrPersistenceFailed.WithCause(err)
	}

	// The record is stored; a client hanging up must not cancel the notification.
	notifyCtx := context.WithoutCancel(ctx)
	result := notify.Deliver(notifyCtx, s.relay, notify.FormatIntentionMessage(intention, s.location))
	s.logNotification(ctx, intention, result)

	if result.Delivered {
		recordSubmission(outcomeNotified)
	} else {
		recordSubmission(outcomePersisted)
	}

	return SubmitResult{Intention: intention, Notification: result}, nil
}

func (s *IntentionService) logNotification(ctx context.Context, intention domain.PrayerIntention, result notify.Result) {
	entry := s.log.WithFields(ctx, logger.Fields{
		"intention_id": string(intention.ID),
		"action":       "notify_intention",
	})

	switch {
	case result.Delivered:
		recordNotification(notificationDelivered)
		entry.Info("prayer intention forwarded")
	case result.Err == nil:
		recordNotification(notificationSkipped)
		entry.Warn("no relay configured, prayer intention saved without notification")
	case isConfigurationMissing(result.Err):
		recordNotification(notificationUnconfigured)
		entry.Warnf("failed to send notification, but prayer saved: %v", result.Err)
	default:
		recordNotification(notificationFailed)
		entry.Errorf("failed to send notification, but prayer saved: %v", result.Err)
	}
}
