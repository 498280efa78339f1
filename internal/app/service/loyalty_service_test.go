package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
)

type loyaltyFixture struct {
	svc      LoyaltyService
	campaign *model.Campaign
	reward   *model.Reward
	cards     repository.LoyaltyCardRepository
	joins     repository.CustomerCampaignRepository
	campaigns repository.CampaignRepository
}

func setupLoyalty(t *testing.T) *loyaltyFixture {
	t.Helper()
	store := kv.NewMemoryStore()

	campaignRepo := repository.NewCampaignRepository(store)
	rewardRepo := repository.NewRewardRepository(store)
	cardRepo := repository.NewLoyaltyCardRepository(store)
	redemptionRepo := repository.NewRedemptionRepository(store)
	joinRepo := repository.NewCustomerCampaignRepository(store)

	campaign, err := campaignRepo.Add(model.Campaign{
		Name:           "Coffee Lovers",
		StampsRequired: 10,
		Active:         true,
		OwnerID:        "owner-1",
	})
	require.NoError(t, err)

	reward, err := rewardRepo.Add(model.Reward{
		CampaignID:     campaign.ID,
		Name:           "Free Coffee",
		StampsRequired: 10,
		Active:         true,
	})
	require.NoError(t, err)

	return &loyaltyFixture{
		svc:      NewLoyaltyService(cardRepo, campaignRepo, rewardRepo, redemptionRepo, joinRepo),
		campaign: campaign,
		reward:   reward,
		cards:     cardRepo,
		joins:     joinRepo,
		campaigns: campaignRepo,
	}
}

func TestLoyaltyService_JoinCampaign(t *testing.T) {
	fx := setupLoyalty(t)

	card, err := fx.svc.JoinCampaign("cust-1", fx.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, card.Stamps)

	// Joining again returns the same card
	again, err := fx.svc.JoinCampaign("cust-1", fx.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, again.ID)

	joined, err := fx.joins.HasJoined("cust-1", fx.campaign.ID)
	require.NoError(t, err)
	assert.True(t, joined)

	_, err = fx.svc.JoinCampaign("cust-1", "missing")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestLoyaltyService_HandleScan(t *testing.T) {
	fx := setupLoyalty(t)

	result, err := fx.svc.HandleScan("cust-1", "stamp:campaign:coffee-lovers")
	require.NoError(t, err)
	assert.True(t, result.Joined)
	assert.Equal(t, 1, result.Card.Stamps)
	assert.Equal(t, fx.campaign.ID, result.Campaign.ID)

	// Second scan is not a join, just another stamp
	result, err = fx.svc.HandleScan("cust-1", "stamp:campaign:coffee-lovers")
	require.NoError(t, err)
	assert.False(t, result.Joined)
	assert.Equal(t, 2, result.Card.Stamps)
}

func TestLoyaltyService_HandleScan_Rejections(t *testing.T) {
	fx := setupLoyalty(t)

	_, err := fx.svc.HandleScan("cust-1", "https://example.com/not-a-stamp")
	assert.ErrorIs(t, err, ErrInvalidStampPayload)

	_, err = fx.svc.HandleScan("cust-1", "stamp:campaign:")
	assert.ErrorIs(t, err, ErrInvalidStampPayload)

	_, err = fx.svc.HandleScan("cust-1", "stamp:campaign:no-such-campaign")
	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestLoyaltyService_HandleScan_InactiveCampaign(t *testing.T) {
	fx := setupLoyalty(t)

	err := fx.campaigns.Update(fx.campaign.ID, func(c *model.Campaign) {
		c.Active = false
	})
	require.NoError(t, err)

	_, err = fx.svc.HandleScan("cust-1", "stamp:campaign:coffee-lovers")
	assert.ErrorIs(t, err, ErrCampaignInactive)
}

func TestLoyaltyService_Redeem(t *testing.T) {
	fx := setupLoyalty(t)

	card, err := fx.svc.AddStamp("cust-1", fx.campaign.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, card.Stamps)

	redemption, err := fx.svc.Redeem("cust-1", fx.campaign.ID, fx.reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", redemption.UserID)
	assert.Equal(t, fx.reward.ID, redemption.RewardID)

	// Spent stamps are deducted, the remainder stays
	cards, err := fx.svc.ListCards("cust-1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 2, cards[0].Card.Stamps)

	history, err := fx.svc.ListRedemptions("cust-1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLoyaltyService_Redeem_NotEnoughStamps(t *testing.T) {
	fx := setupLoyalty(t)

	_, err := fx.svc.AddStamp("cust-1", fx.campaign.ID, 3)
	require.NoError(t, err)

	_, err = fx.svc.Redeem("cust-1", fx.campaign.ID, fx.reward.ID)
	assert.ErrorIs(t, err, ErrNotEnoughStamps)

	// Failed redemption leaves the card untouched
	cards, err := fx.svc.ListCards("cust-1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 3, cards[0].Card.Stamps)
}

func TestLoyaltyService_Redeem_UnknownReward(t *testing.T) {
	fx := setupLoyalty(t)

	_, err := fx.svc.AddStamp("cust-1", fx.campaign.ID, 10)
	require.NoError(t, err)

	_, err = fx.svc.Redeem("cust-1", fx.campaign.ID, "missing")
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestLoyaltyService_Redeem_NoCard(t *testing.T) {
	fx := setupLoyalty(t)

	_, err := fx.svc.Redeem("cust-without-card", fx.campaign.ID, fx.reward.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestLoyaltyService_ListCards_IncludesCampaign(t *testing.T) {
	fx := setupLoyalty(t)

	_, err := fx.svc.JoinCampaign("cust-1", fx.campaign.ID)
	require.NoError(t, err)

	cards, err := fx.svc.ListCards("cust-1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.NotNil(t, cards[0].Campaign)
	assert.Equal(t, "Coffee Lovers", cards[0].Campaign.Name)
}
