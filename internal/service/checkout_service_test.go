package service

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/repository/repoargs"
	"github.com/fsdevblog/learnmarket/internal/service/mocks"
	"github.com/fsdevblog/learnmarket/pkg/uow"
	uowmocks "github.com/fsdevblog/learnmarket/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceTestSuite struct {
	suite.Suite
	mockUOW        *uowmocks.MockUOW
	mockUserRepo   *mocks.MockUserRepository
	mockCourseRepo *mocks.MockCourseRepository
	mockProvider   *mocks.MockPaymentProvider
	service        *CheckoutService
}

func TestCheckoutServiceSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}

func (s *CheckoutServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(mockCtrl)
	s.mockCourseRepo = mocks.NewMockCourseRepository(mockCtrl)
	s.mockProvider = mocks.NewMockPaymentProvider(mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.CourseRepoName)).
		Return(s.mockCourseRepo, nil).AnyTimes()

	service, err := NewCheckoutService(s.mockUOW, s.mockProvider, "")
	s.Require().NoError(err)
	s.service = service
}

func (s *CheckoutServiceTestSuite) TestCheckout() {
	student := &domain.User{ID: 1, Name: gofakeit.Name(), Role: domain.RoleStudent}
	subscribed := &domain.User{ID: 2, Name: gofakeit.Name(), Role: domain.RoleStudent, Subscription: []int64{10}}
	admin := &domain.User{ID: 3, Name: gofakeit.Name(), Role: domain.RoleAdmin}
	course := &domain.Course{ID: 10, Title: gofakeit.JobTitle(), Price: decimal.NewFromInt(500)}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), student.ID).Return(student, nil).AnyTimes()
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), subscribed.ID).Return(subscribed, nil).AnyTimes()
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), admin.ID).Return(admin, nil).AnyTimes()
	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), int64(404)).Return(nil, domain.ErrRecordNotFound).AnyTimes()
	s.mockCourseRepo.EXPECT().FindByID(gomock.Any(), course.ID).Return(course, nil).AnyTimes()
	s.mockCourseRepo.EXPECT().FindByID(gomock.Any(), int64(404)).Return(nil, domain.ErrRecordNotFound).AnyTimes()

	s.Run("ok", func() {
		var gotArgs domain.CreateOrderArgs
		s.mockProvider.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, args domain.CreateOrderArgs) (*domain.Order, error) {
				gotArgs = args
				return &domain.Order{ID: "order_1", Amount: args.Amount, Currency: args.Currency}, nil
			})

		res, err := s.service.Checkout(s.T().Context(), student.ID, course.ID)
		s.Require().NoError(err)
		s.Equal("order_1", res.Order.ID)
		s.Equal(course, res.Course)
		s.Equal(int64(50000), gotArgs.Amount)
		s.Equal(DefaultCurrency, gotArgs.Currency)
		s.NotEmpty(gotArgs.Receipt)
		s.Equal("1", gotArgs.Notes["user_id"])
		s.Equal("10", gotArgs.Notes["course_id"])
	})

	cases := []struct {
		name     string
		userID   int64
		courseID int64
		wantErr  error
	}{
		{name: "admin", userID: admin.ID, courseID: course.ID, wantErr: domain.ErrAdminPurchase},
		{name: "already subscribed", userID: subscribed.ID, courseID: course.ID, wantErr: domain.ErrAlreadySubscribed},
		{name: "unknown course", userID: student.ID, courseID: 404, wantErr: domain.ErrRecordNotFound},
		{name: "unknown user", userID: 404, courseID: course.ID, wantErr: domain.ErrRecordNotFound},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			s.mockProvider.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)
			res, err := s.service.Checkout(s.T().Context(), t.userID, t.courseID)
			s.Require().ErrorIs(err, t.wantErr)
			s.Nil(res)
		})
	}

	s.Run("gateway failure", func() {
		s.mockProvider.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))
		res, err := s.service.Checkout(s.T().Context(), student.ID, course.ID)
		s.Require().ErrorIs(err, domain.ErrUpstream)
		s.Nil(res)
	})
}

func (s *CheckoutServiceTestSuite) TestMinorUnitsRounding() {
	cases := []struct {
		price string
		want  int64
	}{
		{price: "500", want: 50000},
		{price: "0", want: 0},
		{price: "19.99", want: 1999},
		{price: "0.005", want: 1},
	}
	for _, t := range cases {
		s.Run(t.price, func() {
			c := domain.Course{Price: decimal.RequireFromString(t.price)}
			s.Equal(t.want, c.MinorUnits())
		})
	}
}
