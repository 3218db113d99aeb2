package game

import (
	"testing"

	"github.com/julianstephens/dayquest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemReward(t *testing.T) {
	e, store := newTestEngine(t)
	user := mustCreateUser(t, e)

	user.Coins = 100
	require.NoError(t, store.SaveUser(user))

	reward, err := e.AddReward("Movie night", "One film, no guilt", 60)
	require.NoError(t, err)

	redemption, err := e.RedeemReward(reward.ID)
	require.NoError(t, err)
	assert.Equal(t, "Movie night", redemption.RewardName)
	assert.Equal(t, 60, redemption.RewardCost)

	got, err := e.User()
	require.NoError(t, err)
	assert.Equal(t, 40, got.Coins)

	events := eventsOfType(t, e, models.EventRewardRedeemed)
	require.Len(t, events, 1)
	assert.Equal(t, -60, events[0].CoinChange)
}

func TestRedeemReward_InsufficientCoins(t *testing.T) {
	e, store := newTestEngine(t)
	user := mustCreateUser(t, e)

	user.Coins = 10
	require.NoError(t, store.SaveUser(user))

	reward, err := e.AddReward("Movie night", "", 60)
	require.NoError(t, err)

	_, err = e.RedeemReward(reward.ID)
	assert.ErrorIs(t, err, ErrInsufficientCoins)

	// Nothing moved.
	got, err := e.User()
	require.NoError(t, err)
	assert.Equal(t, 10, got.Coins)

	redemptions, err := store.GetRedemptions()
	require.NoError(t, err)
	assert.Empty(t, redemptions)
	assert.Empty(t, eventsOfType(t, e, models.EventRewardRedeemed))
}

func TestRedeemReward_Unavailable(t *testing.T) {
	e, store := newTestEngine(t)
	user := mustCreateUser(t, e)

	user.Coins = 100
	require.NoError(t, store.SaveUser(user))

	reward, err := e.AddReward("Movie night", "", 60)
	require.NoError(t, err)
	_, err = e.SetRewardAvailable(reward.ID, false)
	require.NoError(t, err)

	_, err = e.RedeemReward(reward.ID)
	assert.ErrorIs(t, err, ErrRewardUnavailable)
}

func TestRedemptionSnapshotSurvivesCatalogDelete(t *testing.T) {
	e, store := newTestEngine(t)
	user := mustCreateUser(t, e)

	user.Coins = 100
	require.NoError(t, store.SaveUser(user))

	reward, err := e.AddReward("Movie night", "", 60)
	require.NoError(t, err)
	_, err = e.RedeemReward(reward.ID)
	require.NoError(t, err)

	require.NoError(t, e.DeleteReward(reward.ID))

	redemptions, err := store.GetRedemptions()
	require.NoError(t, err)
	require.Len(t, redemptions, 1)
	assert.Equal(t, "Movie night", redemptions[0].RewardName)
	assert.Equal(t, 60, redemptions[0].RewardCost)
}

func TestAddReward_RejectsNonPositiveCost(t *testing.T) {
	e, _ := newTestEngine(t)
	mustCreateUser(t, e)

	_, err := e.AddReward("Free stuff", "", 0)
	assert.Error(t, err)
}
