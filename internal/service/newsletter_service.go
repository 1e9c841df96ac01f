package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/repository"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// NewsletterService manages newsletter subscriptions
type NewsletterService struct {
	subscriberRepo repository.SubscriberRepository
	notifier       NotificationSender
	frontendURL    string

	newToken func(n int) (string, error)
}

// NewNewsletterService creates a new NewsletterService. Verification links
// point at frontendURL.
func NewNewsletterService(
	subscriberRepo repository.SubscriberRepository,
	notifier NotificationSender,
	frontendURL string,
) *NewsletterService {
	return &NewsletterService{
		subscriberRepo: subscriberRepo,
		notifier:       notifier,
		frontendURL:    strings.TrimSuffix(frontendURL, "/"),
		newToken:       utils.RandomToken,
	}
}

// Subscribe adds email to the newsletter. created is true only when a new
// subscriber row was stored; resubscribing and repeated subscriptions are not
// creations.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (result *models.SubscribeResult, created bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" || !utils.IsValidEmail(email) {
		return nil, false, utils.NewBadRequestError(constants.MsgInvalidSubscriberEmail)
	}

	existing, err := s.subscriberRepo.GetByEmail(ctx, email)
	if err != nil && !utils.IsNotFoundError(err) {
		return nil, false, subscribeFailed(err)
	}

	if existing != nil {
		if existing.Subscribed {
			return &models.SubscribeResult{Message: constants.MsgAlreadySubscribed, AlreadySubscribed: true}, false, nil
		}

		if err := s.subscriberRepo.Resubscribe(ctx, email); err != nil {
			return nil, false, subscribeFailed(err)
		}
		s.welcome(ctx, email, "")
		log.Info().Str("email", utils.MaskEmail(email)).Msg("Newsletter resubscribed")
		return &models.SubscribeResult{Message: constants.MsgResubscribed}, false, nil
	}

	token, err := s.newToken(constants.SubscriberTokenBytes)
	if err != nil {
		return nil, false, subscribeFailed(err)
	}

	if _, err := s.subscriberRepo.Create(ctx, email, token); err != nil {
		// Lost a race with a concurrent subscribe for the same address.
		if utils.IsDuplicateError(err) {
			return &models.SubscribeResult{Message: constants.MsgAlreadySubscribed, AlreadySubscribed: true}, false, nil
		}
		return nil, false, subscribeFailed(err)
	}

	s.welcome(ctx, email, s.frontendURL+"/verify-subscription/"+token)
	log.Info().Str("email", utils.MaskEmail(email)).Msg("Newsletter subscriber added")

	return &models.SubscribeResult{Message: constants.MsgSubscribed}, true, nil
}

// Unsubscribe marks email as unsubscribed. Unknown addresses succeed silently.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	if err := s.subscriberRepo.Unsubscribe(ctx, strings.TrimSpace(email)); err != nil {
		return utils.New(err, http.StatusInternalServerError, constants.MsgUnsubscribeFailed)
	}
	return nil
}

// Verify confirms the subscription holding token. Tokens are single use.
func (s *NewsletterService) Verify(ctx context.Context, token string) error {
	if token == "" {
		return utils.NewBadRequestError(constants.MsgInvalidVerifyLink)
	}

	subscriber, err := s.subscriberRepo.Verify(ctx, token)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return utils.NewBadRequestError(constants.MsgInvalidVerifyLink)
		}
		return err
	}

	log.Info().Str("email", utils.MaskEmail(subscriber.Email)).Msg("Newsletter subscription verified")
	return nil
}

func (s *NewsletterService) welcome(ctx context.Context, email, verifyURL string) {
	if err := s.notifier.SendNewsletterWelcome(ctx, email, verifyURL); err != nil {
		log.Error().Err(err).Str("email", utils.MaskEmail(email)).Msg("Failed to send newsletter welcome email")
	}
}

func subscribeFailed(err error) error {
	return utils.New(err, http.StatusInternalServerError, constants.MsgSubscribeFailed)
}
