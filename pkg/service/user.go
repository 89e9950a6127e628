package service

import (
	"context"
	"strings"

	"exchange_back/internal/wallet"
	"exchange_back/models"
	"exchange_back/pkg/repository"
)

type UsersService struct {
	repos repository.Users
	auth  repository.Authorization
}

func NewUsersService(repos repository.Users, auth repository.Authorization) *UsersService {
	return &UsersService{repos: repos, auth: auth}
}

func (s *UsersService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repos.ListUsers(ctx)
}

func (s *UsersService) UpdateProfile(ctx context.Context, id string, input models.ProfileInput) (models.User, error) {
	address := strings.TrimSpace(input.WalletAddress)
	if address != "" {
		if err := wallet.ValidateAny(address); err != nil {
			return models.User{}, invalidField("walletAddress", "wallet address is not a valid TRON or EVM address")
		}
	}
	user, err := s.repos.UpdateProfile(ctx, id, strings.TrimSpace(input.Name), address)
	return user, notFoundOr(err, "user")
}

func (s *UsersService) ChangePassword(ctx context.Context, id string, input models.PasswordInput) error {
	user, err := s.auth.GetUserByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "user")
	}
	if !checkPassword(user.PasswordHash, input.CurrentPassword) {
		return invalidField("currentPassword", "current password is incorrect")
	}
	hash, err := hashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return notFoundOr(s.repos.UpdatePassword(ctx, id, hash), "user")
}

func (s *UsersService) SubmitKyc(ctx context.Context, id string, input models.KycInput, document string) (models.User, error) {
	user, err := s.auth.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, notFoundOr(err, "user")
	}
	if user.KycStatus == models.KycApproved {
		return models.User{}, conflict("kyc already approved")
	}
	user, err = s.repos.SubmitKyc(ctx, id, input.DocumentType, strings.TrimSpace(input.DocumentNumber), document)
	return user, notFoundOr(err, "user")
}

func (s *UsersService) SetKycStatus(ctx context.Context, id, status string) (models.User, error) {
	user, err := s.repos.SetKycStatus(ctx, id, status)
	return user, notFoundOr(err, "user")
}
