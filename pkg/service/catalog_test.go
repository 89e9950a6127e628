package service

import (
	"context"
	"database/sql"
	"testing"

	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlans struct {
	plans map[string]models.Plan
}

func newFakePlans(plans ...models.Plan) *fakePlans {
	f := &fakePlans{plans: make(map[string]models.Plan)}
	for _, p := range plans {
		f.plans[p.ID] = p
	}
	return f
}

func (f *fakePlans) ListPlans(context.Context) ([]models.Plan, error) {
	out := []models.Plan{}
	for _, p := range f.plans {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlans) GetPlan(_ context.Context, id string) (models.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return models.Plan{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakePlans) CreatePlan(_ context.Context, p models.Plan) (models.Plan, error) {
	f.plans[p.ID] = p
	return p, nil
}

func (f *fakePlans) UpdatePlan(_ context.Context, p models.Plan) (models.Plan, error) {
	if _, ok := f.plans[p.ID]; !ok {
		return models.Plan{}, sql.ErrNoRows
	}
	f.plans[p.ID] = p
	return p, nil
}

func (f *fakePlans) DeletePlan(_ context.Context, id string) error {
	if _, ok := f.plans[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.plans, id)
	return nil
}

type fakeSignals struct {
	signals map[string]models.Signal
}

func (f *fakeSignals) ListSignals(context.Context) ([]models.Signal, error) {
	return nil, nil
}

func (f *fakeSignals) GetSignal(_ context.Context, id string) (models.Signal, error) {
	s, ok := f.signals[id]
	if !ok {
		return models.Signal{}, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeSignals) CreateSignal(_ context.Context, s models.Signal) (models.Signal, error) {
	f.signals[s.ID] = s
	return s, nil
}

func (f *fakeSignals) UpdateSignal(_ context.Context, s models.Signal) (models.Signal, error) {
	if _, ok := f.signals[s.ID]; !ok {
		return models.Signal{}, sql.ErrNoRows
	}
	f.signals[s.ID] = s
	return s, nil
}

func (f *fakeSignals) DeleteSignal(_ context.Context, id string) error {
	if _, ok := f.signals[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.signals, id)
	return nil
}

// fakeStakes knows a fixed set of coins and rejects the rest like the foreign key does.
type fakeStakes struct {
	coins  map[string]bool
	stakes map[string]models.Staking
}

func (f *fakeStakes) ListStakes(_ context.Context, enabledOnly bool) ([]models.Staking, error) {
	out := []models.Staking{}
	for _, s := range f.stakes {
		if enabledOnly && !s.Enabled {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStakes) GetStake(_ context.Context, id string) (models.Staking, error) {
	s, ok := f.stakes[id]
	if !ok {
		return models.Staking{}, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeStakes) CreateStake(_ context.Context, s models.Staking) (models.Staking, error) {
	if !f.coins[s.CoinID] {
		return models.Staking{}, repository.ErrUnknownCoin
	}
	f.stakes[s.ID] = s
	return s, nil
}

func (f *fakeStakes) UpdateStake(_ context.Context, s models.Staking) (models.Staking, error) {
	if _, ok := f.stakes[s.ID]; !ok {
		return models.Staking{}, sql.ErrNoRows
	}
	if !f.coins[s.CoinID] {
		return models.Staking{}, repository.ErrUnknownCoin
	}
	f.stakes[s.ID] = s
	return s, nil
}

func (f *fakeStakes) DeleteStake(_ context.Context, id string) error {
	if _, ok := f.stakes[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.stakes, id)
	return nil
}

type fakeCopyTraders struct {
	traders map[string]models.CopyTrader
}

func (f *fakeCopyTraders) ListCopyTraders(_ context.Context, enabledOnly bool) ([]models.CopyTrader, error) {
	out := []models.CopyTrader{}
	for _, t := range f.traders {
		if enabledOnly && !t.Enabled {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeCopyTraders) GetCopyTrader(_ context.Context, id string) (models.CopyTrader, error) {
	t, ok := f.traders[id]
	if !ok {
		return models.CopyTrader{}, sql.ErrNoRows
	}
	return t, nil
}

func (f *fakeCopyTraders) CreateCopyTrader(_ context.Context, t models.CopyTrader) (models.CopyTrader, error) {
	f.traders[t.ID] = t
	return t, nil
}

func (f *fakeCopyTraders) UpdateCopyTrader(_ context.Context, t models.CopyTrader) (models.CopyTrader, error) {
	if _, ok := f.traders[t.ID]; !ok {
		return models.CopyTrader{}, sql.ErrNoRows
	}
	f.traders[t.ID] = t
	return t, nil
}

func (f *fakeCopyTraders) DeleteCopyTrader(_ context.Context, id string) error {
	if _, ok := f.traders[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.traders, id)
	return nil
}

func planInput(lo, hi string) models.PlanInput {
	return models.PlanInput{Name: "Starter", MinAmount: dec(lo), MaxAmount: dec(hi), ROI: dec("12"), DurationDays: 30}
}

func TestCreatePlanRejectsInvertedRange(t *testing.T) {
	repo := newFakePlans()
	s := NewPlanService(repo)

	_, err := s.CreatePlan(context.Background(), planInput("500", "100"))
	svcErr := assertKind(t, err, KindInvalid)
	assert.Equal(t, "Validation failed", svcErr.Message)
	require.Len(t, svcErr.Details, 1)
	assert.Equal(t, "maxAmount", svcErr.Details[0].Field)
	assert.Empty(t, repo.plans)

	plan, err := s.CreatePlan(context.Background(), planInput("100", "100"))
	require.NoError(t, err)
	assert.NotEmpty(t, plan.ID)
	assert.Contains(t, repo.plans, plan.ID)
}

func TestPlanNotFound(t *testing.T) {
	repo := newFakePlans(models.Plan{ID: "p1", Name: "Starter"})
	s := NewPlanService(repo)
	ctx := context.Background()

	_, err := s.GetPlan(ctx, "missing")
	svcErr := assertKind(t, err, KindNotFound)
	assert.Equal(t, "plan not found", svcErr.Message)

	_, err = s.UpdatePlan(ctx, "missing", planInput("1", "10"))
	assertKind(t, err, KindNotFound)

	_, err = s.UpdatePlan(ctx, "p1", planInput("10", "1"))
	assertKind(t, err, KindInvalid)
	assert.Equal(t, "Starter", repo.plans["p1"].Name)

	updated, err := s.UpdatePlan(ctx, "p1", planInput("1", "10"))
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.ID)
	assert.True(t, updated.MaxAmount.Equal(dec("10")))

	assertKind(t, s.DeletePlan(ctx, "missing"), KindNotFound)
	require.NoError(t, s.DeletePlan(ctx, "p1"))
}

func TestSignalNotFound(t *testing.T) {
	s := NewSignalService(&fakeSignals{signals: map[string]models.Signal{}})
	ctx := context.Background()
	input := models.SignalInput{Pair: "BTC/USDT", Action: models.SignalBuy, EntryPrice: dec("60000"), TargetPrice: dec("65000"), Status: models.SignalActive}

	_, err := s.GetSignal(ctx, "missing")
	svcErr := assertKind(t, err, KindNotFound)
	assert.Equal(t, "signal not found", svcErr.Message)

	_, err = s.UpdateSignal(ctx, "missing", input)
	assertKind(t, err, KindNotFound)

	created, err := s.CreateSignal(ctx, input)
	require.NoError(t, err)
	got, err := s.GetSignal(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "BTC/USDT", got.Pair)
}

func TestStakeUnknownCoin(t *testing.T) {
	repo := &fakeStakes{coins: map[string]bool{"coin-a": true}, stakes: map[string]models.Staking{}}
	s := NewStakingService(repo)
	ctx := context.Background()
	input := models.StakingInput{CoinID: "coin-x", Title: "Flex", APY: dec("5")}

	_, err := s.CreateStake(ctx, input)
	svcErr := assertKind(t, err, KindInvalid)
	require.Len(t, svcErr.Details, 1)
	assert.Equal(t, "coinId", svcErr.Details[0].Field)
	assert.Equal(t, "coin does not exist", svcErr.Details[0].Message)

	input.CoinID = "coin-a"
	stake, err := s.CreateStake(ctx, input)
	require.NoError(t, err)

	input.CoinID = "coin-x"
	_, err = s.UpdateStake(ctx, stake.ID, input)
	svcErr = assertKind(t, err, KindInvalid)
	assert.Equal(t, "coinId", svcErr.Details[0].Field)

	_, err = s.UpdateStake(ctx, "missing", models.StakingInput{CoinID: "coin-a", Title: "Flex", APY: dec("5")})
	svcErr = assertKind(t, err, KindNotFound)
	assert.Equal(t, "stake not found", svcErr.Message)

	_, err = s.GetStake(ctx, "missing")
	assertKind(t, err, KindNotFound)
}

func TestListStakesEnabledOnly(t *testing.T) {
	repo := &fakeStakes{stakes: map[string]models.Staking{
		"on":  {ID: "on", Enabled: true},
		"off": {ID: "off"},
	}}
	s := NewStakingService(repo)

	public, err := s.ListStakes(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "on", public[0].ID)

	all, err := s.ListStakes(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCopyTraders(t *testing.T) {
	repo := &fakeCopyTraders{traders: map[string]models.CopyTrader{
		"hidden": {ID: "hidden", Name: "Hidden"},
	}}
	s := NewCopyTraderService(repo)
	ctx := context.Background()

	created, err := s.CreateCopyTrader(ctx, models.CopyTraderInput{Name: "Ada", WinRate: dec("71.5"), Enabled: true})
	require.NoError(t, err)

	public, err := s.ListCopyTraders(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, created.ID, public[0].ID)

	all, err := s.ListCopyTraders(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.GetCopyTrader(ctx, "missing")
	svcErr := assertKind(t, err, KindNotFound)
	assert.Equal(t, "copy trader not found", svcErr.Message)

	_, err = s.UpdateCopyTrader(ctx, "missing", models.CopyTraderInput{Name: "Ada"})
	assertKind(t, err, KindNotFound)
	assertKind(t, s.DeleteCopyTrader(ctx, "missing"), KindNotFound)
}
