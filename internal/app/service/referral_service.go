package service

import (
	"errors"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

var (
	ErrReferralNotFound = errors.New("referral code not found")
	ErrSelfReferral     = errors.New("cannot apply your own referral code")
)

type ReferralService interface {
	// GetOrCreateForUser returns the user's referral record, creating it on
	// first use. The code is stable for a given user.
	GetOrCreateForUser(userID string) (*model.Referral, error)
	// ApplyCode credits the code's owner for referring userID.
	ApplyCode(userID, code string) (*model.Referral, error)
	List() ([]model.Referral, error)
}

type referralService struct {
	referralRepo repository.ReferralRepository
}

func NewReferralService(referralRepo repository.ReferralRepository) ReferralService {
	return &referralService{referralRepo: referralRepo}
}

func (s *referralService) GetOrCreateForUser(userID string) (*model.Referral, error) {
	return s.referralRepo.EnsureForUser(userID)
}

func (s *referralService) ApplyCode(userID, code string) (*model.Referral, error) {
	referrals, err := s.referralRepo.List()
	if err != nil {
		return nil, err
	}

	for i := range referrals {
		if referrals[i].Code != code {
			continue
		}
		if referrals[i].OwnerUserID == userID {
			return nil, ErrSelfReferral
		}
		if err := s.referralRepo.Increment(referrals[i].ID, 1); err != nil {
			return nil, err
		}
		logger.Info("Referral code applied", map[string]interface{}{
			"code":        code,
			"owner_id":    referrals[i].OwnerUserID,
			"referred_id": userID,
		})
		return s.referralRepo.ByOwner(referrals[i].OwnerUserID)
	}
	return nil, ErrReferralNotFound
}

func (s *referralService) List() ([]model.Referral, error) {
	return s.referralRepo.List()
}
