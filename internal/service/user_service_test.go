package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/internal/service/mocks"
	"github.com/fsdevblog/learnmarket/internal/service/psswd"
	"github.com/fsdevblog/learnmarket/internal/service/tokens"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	uowmocks "github.com/fsdevblog/learnmarket/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUOW       *uowmocks.MockUOW
	mockUserRepo  *mocks.MockUserRepository
	mockPsswd     *mocks.MockPasswordHasher
	mockPublisher *mocks.MockPublisher
	jwtSecret     []byte
	userService   *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(mockCtrl)
	s.mockPublisher = mocks.NewMockPublisher(mockCtrl)

	s.jwtSecret = []byte("secret")

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	userService, servErr := NewUserService(s.mockUOW, s.jwtSecret, s.mockPsswd, s.mockPublisher)
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) TestLogin() {
	savedEmail := gofakeit.Email()
	argsOk := LoginUserArgs{Email: savedEmail, Password: "<PASSWORD>"}
	argsWrongEmail := LoginUserArgs{Email: "wrong@example.com", Password: "<PASSWORD>"}
	argsWrongPass := LoginUserArgs{Email: savedEmail, Password: "wrong pass"}

	validHashPassword := "hash ok"

	savedUser := domain.User{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Name:      gofakeit.Name(),
		Email:     savedEmail,
		Password:  validHashPassword,
		Role:      domain.RoleStudent,
	}

	s.mockPsswd.EXPECT().ComparePassword(argsOk.Password, validHashPassword).Return(true)
	s.mockPsswd.EXPECT().ComparePassword(argsWrongPass.Password, validHashPassword).Return(false)

	s.mockUserRepo.EXPECT().FindByEmail(gomock.Any(), savedEmail).Return(&savedUser, nil).Times(2)
	s.mockUserRepo.EXPECT().FindByEmail(gomock.Any(), argsWrongEmail.Email).Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name    string
		args    LoginUserArgs
		wantErr error
	}{
		{name: "ok", args: argsOk, wantErr: nil},
		{name: "wrong email", args: argsWrongEmail, wantErr: domain.ErrRecordNotFound},
		{name: "wrong password", args: argsWrongPass, wantErr: domain.ErrPasswordMissMatch},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			user, tokenStr, err := s.userService.Login(s.T().Context(), t.args)
			s.Require().ErrorIs(err, t.wantErr)

			if t.wantErr == nil {
				s.Equal(savedUser.ID, user.ID)
				token, tokenErr := tokens.ValidateUserJWT(tokenStr, s.jwtSecret)
				s.Require().NoError(tokenErr)
				s.Equal(savedUser.ID, token.Claims.(*tokens.UserClaims).ID) //nolint:errcheck
			}
		})
	}
}

func (s *UserServiceTestSuite) TestRegisterDuplicateEmail() {
	email := gofakeit.Email()
	s.mockUserRepo.EXPECT().FindByEmail(gomock.Any(), email).Return(&domain.User{ID: 1, Email: email}, nil)
	s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.userService.Register(s.T().Context(), RegisterUserArgs{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: "<PASSWORD>",
	})
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)
}

func (s *UserServiceTestSuite) TestMe() {
	user := &domain.User{ID: 5, Subscription: []int64{1, 2}}
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), int64(6)).Return(nil, domain.ErrRecordNotFound)

	got, err := s.userService.Me(s.T().Context(), user.ID)
	s.Require().NoError(err)
	s.Equal(user, got)

	_, err = s.userService.Me(s.T().Context(), 6)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

// TestRegisterAndVerify runs the registration against the in-memory store with a real hasher.
func TestRegisterAndVerify(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(mockCtrl)
	store := newMemStore()
	secret := []byte("secret")

	service, err := NewUserService(newMemUOW(store), secret, psswd.New(bcrypt.MinCost), publisher)
	if err != nil {
		t.Fatal(err)
	}

	var mail domain.OTPMailEvent
	publisher.EXPECT().Publish(gomock.Any(), string(domain.EventOTPRequested), gomock.Any()).
		DoAndReturn(func(_ any, _ string, body []byte) error {
			return json.Unmarshal(body, &mail)
		})

	args := RegisterUserArgs{Name: gofakeit.Name(), Email: gofakeit.Email(), Password: "password123"}
	activationToken, err := service.Register(t.Context(), args)
	if err != nil {
		t.Fatal(err)
	}
	if len(mail.OTP) != otpDigits || mail.Email != args.Email {
		t.Fatalf("unexpected otp mail: %+v", mail)
	}
	if len(store.users) != 0 {
		t.Fatal("user must not be stored before verification")
	}

	if _, wrongErr := service.Verify(t.Context(), VerifyUserArgs{
		OTP:             "not-an-otp",
		ActivationToken: activationToken,
	}); !errors.Is(wrongErr, domain.ErrInvalidOTP) {
		t.Fatalf("expected invalid otp, got %v", wrongErr)
	}
	if _, badTokenErr := service.Verify(t.Context(), VerifyUserArgs{
		OTP:             mail.OTP,
		ActivationToken: activationToken + "x",
	}); !errors.Is(badTokenErr, domain.ErrInvalidOTP) {
		t.Fatalf("expected invalid otp, got %v", badTokenErr)
	}

	user, err := service.Verify(t.Context(), VerifyUserArgs{OTP: mail.OTP, ActivationToken: activationToken})
	if err != nil {
		t.Fatal(err)
	}
	if user.Role != domain.RoleStudent || user.Email != args.Email {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, dupErr := service.Verify(t.Context(), VerifyUserArgs{
		OTP:             mail.OTP,
		ActivationToken: activationToken,
	}); !errors.Is(dupErr, domain.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", dupErr)
	}

	logged, token, err := service.Login(t.Context(), LoginUserArgs{Email: args.Email, Password: args.Password})
	if err != nil {
		t.Fatal(err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result: %+v", logged)
	}
}

func TestGenerateOTP(t *testing.T) {
	for range 100 {
		otp, err := generateOTP()
		if err != nil {
			t.Fatal(err)
		}
		if len(otp) != otpDigits {
			t.Fatalf("otp %q has wrong length", otp)
		}
	}
}
