package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"exchange_back/models"
	"exchange_back/pkg/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// maxOTPAttempts wrong guesses burn the current code.
const maxOTPAttempts = 5

// Session is an issued login.
type Session struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	repos    repository.Authorization
	tokens   TokenIssuer
	otps     OTPStore
	notifier Notifier
}

func NewAuthService(repos repository.Authorization, tokens TokenIssuer, otps OTPStore, notifier Notifier) *AuthService {
	return &AuthService{
		repos:    repos,
		tokens:   tokens,
		otps:     otps,
		notifier: notifier,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

var compareHash = bcrypt.CompareHashAndPassword

func checkPassword(hash, password string) bool {
	return compareHash([]byte(hash), []byte(password)) == nil
}

var (
	dummyOnce sync.Once
	dummy     string
)

// dummyHash is compared against when the email is unknown so a miss costs as
// much as a wrong password.
func dummyHash() string {
	dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithError(err).Error("dummy password hash")
			return
		}
		dummy = string(hash)
	})
	return dummy
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account with zero balances for every visible coin and
// mails a verification code. A mail failure does not undo the registration:
// the user can ask for a new code.
func (s *AuthService) Register(ctx context.Context, input models.RegisterInput) (models.User, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.repos.CreateUser(ctx, models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return models.User{}, conflict("email already registered")
	}
	if err != nil {
		return models.User{}, err
	}

	if err := s.sendCode(ctx, user.Email); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("verification code not sent")
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input models.LoginInput) (Session, error) {
	user, err := s.repos.GetUserByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, errNoRows) {
			checkPassword(dummyHash(), input.Password)
			return Session{}, unauthorized("invalid credentials")
		}
		return Session{}, err
	}
	if !checkPassword(user.PasswordHash, input.Password) {
		return Session{}, unauthorized("invalid credentials")
	}
	if !user.EmailVerified {
		return Session{}, forbidden("email not verified")
	}

	signed, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, input models.VerifyOTPInput) error {
	email := normalizeEmail(input.Email)
	user, err := s.repos.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errNoRows) {
			return invalid("invalid or expired code")
		}
		return err
	}
	if user.EmailVerified {
		return nil
	}

	code, ok, err := s.otps.Get(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return invalid("invalid or expired code")
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(input.OTP)) != 1 {
		failures, err := s.otps.Fail(ctx, email)
		if err != nil {
			return err
		}
		if failures >= maxOTPAttempts {
			logrus.WithField("email", email).Warn("verification code burned after repeated failures")
			if err := s.otps.Delete(ctx, email); err != nil {
				return err
			}
		}
		return invalid("invalid or expired code")
	}

	if err := s.repos.SetEmailVerified(ctx, user.ID); err != nil {
		return err
	}
	if err := s.otps.Delete(ctx, email); err != nil {
		logrus.WithError(err).Warn("used verification code not deleted")
	}
	return nil
}

// ResendOTP issues a fresh code. Unknown and already verified addresses succeed
// silently so the response does not reveal whether an account exists.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.repos.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, errNoRows) {
			return nil
		}
		return err
	}
	if user.EmailVerified {
		logrus.WithField("user_id", user.ID).Info("resend requested for verified email")
		return nil
	}
	return s.sendCode(ctx, user.Email)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.repos.GetUserByID(ctx, id)
	return user, notFoundOr(err, "user")
}

func (s *AuthService) sendCode(ctx context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.otps.Save(ctx, email, code); err != nil {
		return err
	}
	return s.notifier.SendOTP(ctx, email, code)
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errors.Wrap(err, "generate code")
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
