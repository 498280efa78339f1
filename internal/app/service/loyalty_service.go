package service

import (
	"errors"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

var (
	ErrCardNotFound        = errors.New("loyalty card not found")
	ErrNotEnoughStamps     = errors.New("not enough stamps for this reward")
	ErrCampaignInactive    = errors.New("campaign is not active")
	ErrInvalidStampPayload = errors.New("scanned code is not a stamp code")
)

// ScanResult describes the outcome of a customer scanning a stamp QR code.
type ScanResult struct {
	Campaign *model.Campaign    `json:"campaign"`
	Card     *model.LoyaltyCard `json:"card"`
	Joined   bool               `json:"joined"` // first scan auto-joined the campaign
}

// CardDetails is a loyalty card joined with its campaign for dashboards.
type CardDetails struct {
	Card     model.LoyaltyCard `json:"card"`
	Campaign *model.Campaign   `json:"campaign,omitempty"`
}

// LoyaltyService implements the customer-facing stamp flow: joining
// campaigns, collecting stamps by QR scan, and redeeming rewards.
type LoyaltyService interface {
	JoinCampaign(customerID, campaignID string) (*model.LoyaltyCard, error)
	HandleScan(customerID, payload string) (*ScanResult, error)
	AddStamp(customerID, campaignID string, count int) (*model.LoyaltyCard, error)
	Redeem(customerID, campaignID, rewardID string) (*model.Redemption, error)
	ListCards(customerID string) ([]CardDetails, error)
	ListRedemptions(userID string) ([]model.Redemption, error)
}

type loyaltyService struct {
	cardRepo       repository.LoyaltyCardRepository
	campaignRepo   repository.CampaignRepository
	rewardRepo     repository.RewardRepository
	redemptionRepo repository.RedemptionRepository
	joinRepo       repository.CustomerCampaignRepository
}

func NewLoyaltyService(
	cardRepo repository.LoyaltyCardRepository,
	campaignRepo repository.CampaignRepository,
	rewardRepo repository.RewardRepository,
	redemptionRepo repository.RedemptionRepository,
	joinRepo repository.CustomerCampaignRepository,
) LoyaltyService {
	return &loyaltyService{
		cardRepo:       cardRepo,
		campaignRepo:   campaignRepo,
		rewardRepo:     rewardRepo,
		redemptionRepo: redemptionRepo,
		joinRepo:       joinRepo,
	}
}

// JoinCampaign records membership and returns the customer's card for the
// campaign, creating both on first join. Repeat joins are no-ops.
func (s *loyaltyService) JoinCampaign(customerID, campaignID string) (*model.LoyaltyCard, error) {
	campaign, err := s.campaignRepo.FindByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	if _, err := s.joinRepo.Join(customerID, campaignID); err != nil {
		return nil, err
	}
	return s.cardRepo.GetOrCreate(customerID, campaignID)
}

// HandleScan resolves a scanned payload of the form "stamp:campaign:<slug>"
// to its campaign, auto-joins the customer if needed, and adds one stamp.
func (s *loyaltyService) HandleScan(customerID, payload string) (*ScanResult, error) {
	slug, ok := model.ParseStampPayload(payload)
	if !ok {
		logger.Warn("Rejected scan with unknown payload format", map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, ErrInvalidStampPayload
	}

	campaign, err := s.campaignRepo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if !campaign.Active {
		return nil, ErrCampaignInactive
	}

	joined, err := s.joinRepo.HasJoined(customerID, campaign.ID)
	if err != nil {
		return nil, err
	}
	if !joined {
		if _, err := s.joinRepo.Join(customerID, campaign.ID); err != nil {
			return nil, err
		}
	}

	card, err := s.cardRepo.GetOrCreate(customerID, campaign.ID)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.AddStamp(card.ID, 1); err != nil {
		return nil, err
	}
	card, err = s.cardRepo.FindByID(card.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Stamp collected", map[string]interface{}{
		"customer_id": customerID,
		"campaign_id": campaign.ID,
		"stamps":      card.Stamps,
		"auto_joined": !joined,
	})

	return &ScanResult{
		Campaign: campaign,
		Card:     card,
		Joined:   !joined,
	}, nil
}

// AddStamp grants stamps directly, used by the business admin's manual
// stamping screen. There is no upper bound: stamps past the threshold keep
// accumulating.
func (s *loyaltyService) AddStamp(customerID, campaignID string, count int) (*model.LoyaltyCard, error) {
	campaign, err := s.campaignRepo.FindByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	card, err := s.cardRepo.GetOrCreate(customerID, campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.AddStamp(card.ID, count); err != nil {
		return nil, err
	}
	return s.cardRepo.FindByID(card.ID)
}

// Redeem claims a reward: the card must hold at least the reward's stamp
// threshold. The spent stamps are deducted and an append-only redemption
// record is written.
func (s *loyaltyService) Redeem(customerID, campaignID, rewardID string) (*model.Redemption, error) {
	reward, err := s.rewardRepo.FindByID(rewardID)
	if err != nil {
		return nil, err
	}
	if reward == nil {
		return nil, ErrRewardNotFound
	}

	card, err := s.findCard(customerID, campaignID)
	if err != nil {
		return nil, err
	}
	if card.Stamps < reward.StampsRequired {
		logger.Warn("Redemption rejected: not enough stamps", map[string]interface{}{
			"customer_id": customerID,
			"campaign_id": campaignID,
			"reward_id":   rewardID,
			"stamps":      card.Stamps,
			"required":    reward.StampsRequired,
		})
		return nil, ErrNotEnoughStamps
	}

	if err := s.cardRepo.SetStamps(card.ID, card.Stamps-reward.StampsRequired); err != nil {
		return nil, err
	}

	redemption, err := s.redemptionRepo.Add(model.Redemption{
		UserID:   customerID,
		RewardID: rewardID,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Reward redeemed", map[string]interface{}{
		"customer_id": customerID,
		"reward_id":   rewardID,
		"spent":       reward.StampsRequired,
	})
	return redemption, nil
}

func (s *loyaltyService) ListCards(customerID string) ([]CardDetails, error) {
	cards, err := s.cardRepo.ByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	details := make([]CardDetails, 0, len(cards))
	for _, card := range cards {
		campaign, err := s.campaignRepo.FindByID(card.CampaignID)
		if err != nil {
			return nil, err
		}
		details = append(details, CardDetails{Card: card, Campaign: campaign})
	}
	return details, nil
}

func (s *loyaltyService) ListRedemptions(userID string) ([]model.Redemption, error) {
	return s.redemptionRepo.ByUser(userID)
}

func (s *loyaltyService) findCard(customerID, campaignID string) (*model.LoyaltyCard, error) {
	cards, err := s.cardRepo.ByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if cards[i].CampaignID == campaignID {
			return &cards[i], nil
		}
	}
	return nil, ErrCardNotFound
}
