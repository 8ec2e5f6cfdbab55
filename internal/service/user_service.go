package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/internal/service/tokens"
	"github.com/fsdevblog/learnmarket/pkg/uow"
)

const (
	DefaultJWTTokenExpire = 15 * 24 * time.Hour
	ActivationExpire      = 5 * time.Minute
	otpDigits             = 6
)

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	hasher         PasswordHasher
	publisher      Publisher
	jwtTokenSecret []byte
	jwtTokenExpire time.Duration
}

func NewUserService(
	u uow.UOW,
	jwtTokenSecret []byte,
	hasher PasswordHasher,
	publisher Publisher,
) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		hasher:         hasher,
		publisher:      publisher,
		jwtTokenSecret: jwtTokenSecret,
		jwtTokenExpire: DefaultJWTTokenExpire,
	}, nil
}

// SetTokenExpire sets the session token lifetime.
func (s *UserService) SetTokenExpire(expire time.Duration) *UserService {
	if expire > 0 {
		s.jwtTokenExpire = expire
	}
	return s
}

type RegisterUserArgs struct {
	Name     string
	Email    string
	Password string
}

// Register starts a registration. The user is not stored until Verify: the pending registration travels
// in the returned activation token and the otp is sent to the email through the broker.
// Returns domain.ErrDuplicateKey if the email is taken.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (string, error) {
	_, findErr := s.userRepo.FindByEmail(ctx, args.Email)
	switch {
	case findErr == nil:
		return "", fmt.Errorf("registering user: %w", domain.ErrDuplicateKey)
	case !errors.Is(findErr, domain.ErrRecordNotFound):
		return "", fmt.Errorf("registering user: %w", findErr)
	}

	passwordHash, hashErr := s.hasher.HashPassword(args.Password)
	if hashErr != nil {
		return "", fmt.Errorf("registering user: %s", hashErr.Error())
	}

	otp, otpErr := generateOTP()
	if otpErr != nil {
		return "", fmt.Errorf("registering user: %s", otpErr.Error())
	}
	otpHash, otpHashErr := s.hasher.HashPassword(otp)
	if otpHashErr != nil {
		return "", fmt.Errorf("registering user: %s", otpHashErr.Error())
	}

	activationToken, tokenErr := tokens.GenerateActivationJWT(tokens.ActivationClaims{
		Name:         args.Name,
		Email:        args.Email,
		PasswordHash: passwordHash,
		OTPHash:      otpHash,
	}, ActivationExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return "", fmt.Errorf("registering user: %s", tokenErr.Error())
	}

	if err := s.sendOTP(ctx, args, otp); err != nil {
		return "", fmt.Errorf("registering user: %w", err)
	}
	return activationToken, nil
}

func (s *UserService) sendOTP(ctx context.Context, args RegisterUserArgs, otp string) error {
	body, marshalErr := json.Marshal(domain.OTPMailEvent{
		Email:     args.Email,
		Name:      args.Name,
		OTP:       otp,
		ExpiresAt: time.Now().Add(ActivationExpire).UTC(),
	})
	if marshalErr != nil {
		return fmt.Errorf("marshal otp mail: %s", marshalErr.Error())
	}
	if err := s.publisher.Publish(ctx, string(domain.EventOTPRequested), body); err != nil {
		return fmt.Errorf("publish otp mail: %w", err)
	}
	return nil
}

type VerifyUserArgs struct {
	OTP             string
	ActivationToken string
}

// Verify completes a registration started by Register. Every new user is a student.
// Errors: domain.ErrInvalidOTP for a wrong code or an invalid/expired token, domain.ErrDuplicateKey if the
// email was registered meanwhile.
func (s *UserService) Verify(ctx context.Context, args VerifyUserArgs) (*domain.User, error) {
	claims, claimsErr := tokens.ValidateActivationJWT(args.ActivationToken, s.jwtTokenSecret)
	if claimsErr != nil {
		return nil, fmt.Errorf("verifying user: %w: %s", domain.ErrInvalidOTP, claimsErr.Error())
	}
	if !s.hasher.ComparePassword(args.OTP, claims.OTPHash) {
		return nil, fmt.Errorf("verifying user: %w", domain.ErrInvalidOTP)
	}

	var user *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		var createErr error
		user, createErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Name:     claims.Name,
			Email:    claims.Email,
			Password: claims.PasswordHash,
			Role:     domain.RoleStudent,
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("verifying user: %w", txErr)
	}
	return user, nil
}

type LoginUserArgs struct {
	Email    string
	Password string
}

// Login returns the user and a session token.
// Errors: domain.ErrRecordNotFound, domain.ErrPasswordMissMatch.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindByEmail(ctx, args.Email)
	if findErr != nil {
		return nil, "", fmt.Errorf("login: %w", findErr)
	}
	if !s.hasher.ComparePassword(args.Password, user.Password) {
		return nil, "", fmt.Errorf("login: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, s.jwtTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("login: %s", tokenErr.Error())
	}
	return user, token, nil
}

// Me returns the current user with the subscription set.
func (s *UserService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	return user, nil
}

func generateOTP() (string, error) {
	maxValue := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, maxValue)
	if err != nil {
		return "", fmt.Errorf("generating otp: %s", err.Error())
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
