package service

import (
	"context"

	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type PlanService struct {
	repos repository.Plans
}

func NewPlanService(repos repository.Plans) *PlanService {
	return &PlanService{repos: repos}
}

func planFromInput(id string, input models.PlanInput) (models.Plan, error) {
	if input.MaxAmount.LessThan(input.MinAmount) {
		return models.Plan{}, invalidField("maxAmount", "maxAmount must not be less than minAmount")
	}
	return models.Plan{
		ID:           id,
		Name:         input.Name,
		MinAmount:    input.MinAmount,
		MaxAmount:    input.MaxAmount,
		ROI:          input.ROI,
		DurationDays: input.DurationDays,
		Description:  input.Description,
	}, nil
}

func (s *PlanService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	return s.repos.ListPlans(ctx)
}

func (s *PlanService) GetPlan(ctx context.Context, id string) (models.Plan, error) {
	plan, err := s.repos.GetPlan(ctx, id)
	return plan, notFoundOr(err, "plan")
}

func (s *PlanService) CreatePlan(ctx context.Context, input models.PlanInput) (models.Plan, error) {
	plan, err := planFromInput(uuid.NewString(), input)
	if err != nil {
		return plan, err
	}
	return s.repos.CreatePlan(ctx, plan)
}

func (s *PlanService) UpdatePlan(ctx context.Context, id string, input models.PlanInput) (models.Plan, error) {
	plan, err := planFromInput(id, input)
	if err != nil {
		return plan, err
	}
	updated, err := s.repos.UpdatePlan(ctx, plan)
	return updated, notFoundOr(err, "plan")
}

func (s *PlanService) DeletePlan(ctx context.Context, id string) error {
	return notFoundOr(s.repos.DeletePlan(ctx, id), "plan")
}

type SignalService struct {
	repos repository.Signals
}

func NewSignalService(repos repository.Signals) *SignalService {
	return &SignalService{repos: repos}
}

func signalFromInput(id string, input models.SignalInput) models.Signal {
	return models.Signal{
		ID:          id,
		Pair:        input.Pair,
		Action:      input.Action,
		EntryPrice:  input.EntryPrice,
		TargetPrice: input.TargetPrice,
		StopLoss:    input.StopLoss,
		Status:      input.Status,
		Note:        input.Note,
	}
}

func (s *SignalService) ListSignals(ctx context.Context) ([]models.Signal, error) {
	return s.repos.ListSignals(ctx)
}

func (s *SignalService) GetSignal(ctx context.Context, id string) (models.Signal, error) {
	signal, err := s.repos.GetSignal(ctx, id)
	return signal, notFoundOr(err, "signal")
}

func (s *SignalService) CreateSignal(ctx context.Context, input models.SignalInput) (models.Signal, error) {
	return s.repos.CreateSignal(ctx, signalFromInput(uuid.NewString(), input))
}

func (s *SignalService) UpdateSignal(ctx context.Context, id string, input models.SignalInput) (models.Signal, error) {
	signal, err := s.repos.UpdateSignal(ctx, signalFromInput(id, input))
	return signal, notFoundOr(err, "signal")
}

func (s *SignalService) DeleteSignal(ctx context.Context, id string) error {
	return notFoundOr(s.repos.DeleteSignal(ctx, id), "signal")
}

type StakingService struct {
	repos repository.Stakes
}

func NewStakingService(repos repository.Stakes) *StakingService {
	return &StakingService{repos: repos}
}

func stakeFromInput(id string, input models.StakingInput) models.Staking {
	return models.Staking{
		ID:        id,
		CoinID:    input.CoinID,
		Title:     input.Title,
		APY:       input.APY,
		MinAmount: input.MinAmount,
		LockDays:  input.LockDays,
		Enabled:   input.Enabled,
	}
}

func (s *StakingService) ListStakes(ctx context.Context, enabledOnly bool) ([]models.Staking, error) {
	return s.repos.ListStakes(ctx, enabledOnly)
}

func (s *StakingService) GetStake(ctx context.Context, id string) (models.Staking, error) {
	stake, err := s.repos.GetStake(ctx, id)
	return stake, notFoundOr(err, "stake")
}

func (s *StakingService) CreateStake(ctx context.Context, input models.StakingInput) (models.Staking, error) {
	stake, err := s.repos.CreateStake(ctx, stakeFromInput(uuid.NewString(), input))
	if errors.Is(err, repository.ErrUnknownCoin) {
		return stake, invalidField("coinId", "coin does not exist")
	}
	return stake, err
}

func (s *StakingService) UpdateStake(ctx context.Context, id string, input models.StakingInput) (models.Staking, error) {
	stake, err := s.repos.UpdateStake(ctx, stakeFromInput(id, input))
	if errors.Is(err, repository.ErrUnknownCoin) {
		return stake, invalidField("coinId", "coin does not exist")
	}
	return stake, notFoundOr(err, "stake")
}

func (s *StakingService) DeleteStake(ctx context.Context, id string) error {
	return notFoundOr(s.repos.DeleteStake(ctx, id), "stake")
}

type CopyTraderService struct {
	repos repository.CopyTraders
}

func NewCopyTraderService(repos repository.CopyTraders) *CopyTraderService {
	return &CopyTraderService{repos: repos}
}

func traderFromInput(id string, input models.CopyTraderInput) models.CopyTrader {
	return models.CopyTrader{
		ID:            id,
		Name:          input.Name,
		AvatarURL:     input.AvatarURL,
		WinRate:       input.WinRate,
		ProfitShare:   input.ProfitShare,
		Followers:     input.Followers,
		MinCopyAmount: input.MinCopyAmount,
		Description:   input.Description,
		Enabled:       input.Enabled,
	}
}

func (s *CopyTraderService) ListCopyTraders(ctx context.Context, enabledOnly bool) ([]models.CopyTrader, error) {
	return s.repos.ListCopyTraders(ctx, enabledOnly)
}

func (s *CopyTraderService) GetCopyTrader(ctx context.Context, id string) (models.CopyTrader, error) {
	trader, err := s.repos.GetCopyTrader(ctx, id)
	return trader, notFoundOr(err, "copy trader")
}

func (s *CopyTraderService) CreateCopyTrader(ctx context.Context, input models.CopyTraderInput) (models.CopyTrader, error) {
	return s.repos.CreateCopyTrader(ctx, traderFromInput(uuid.NewString(), input))
}

func (s *CopyTraderService) UpdateCopyTrader(ctx context.Context, id string, input models.CopyTraderInput) (models.CopyTrader, error) {
	trader, err := s.repos.UpdateCopyTrader(ctx, traderFromInput(id, input))
	return trader, notFoundOr(err, "copy trader")
}

func (s *CopyTraderService) DeleteCopyTrader(ctx context.Context, id string) error {
	return notFoundOr(s.repos.DeleteCopyTrader(ctx, id), "copy trader")
}
