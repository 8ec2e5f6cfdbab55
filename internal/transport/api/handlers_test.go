package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/metrics"
	"github.com/fsdevblog/learnmarket/internal/service"
	"github.com/fsdevblog/learnmarket/internal/service/tokens"
	"github.com/fsdevblog/learnmarket/internal/transport/api/mocks"
	"github.com/fsdevblog/learnmarket/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockUserService     *mocks.MockUserServicer
	mockCourseService   *mocks.MockCourseServicer
	mockCheckoutService *mocks.MockCheckoutServicer
	mockPaymentService  *mocks.MockPaymentServicer
	jwtSecret           []byte

	student domain.User
	admin   domain.User
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	mockCtrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)
	s.mockCourseService = mocks.NewMockCourseServicer(mockCtrl)
	s.mockCheckoutService = mocks.NewMockCheckoutServicer(mockCtrl)
	s.mockPaymentService = mocks.NewMockPaymentServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.student = domain.User{ID: 1, Name: gofakeit.Name(), Email: gofakeit.Email(), Role: domain.RoleStudent}
	s.admin = domain.User{ID: 2, Name: gofakeit.Name(), Email: gofakeit.Email(), Role: domain.RoleAdmin}
	s.mockUserService.EXPECT().Me(gomock.Any(), s.student.ID).Return(&s.student, nil).AnyTimes()
	s.mockUserService.EXPECT().Me(gomock.Any(), s.admin.ID).Return(&s.admin, nil).AnyTimes()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	reg := prometheus.NewRegistry()
	router, err := New(RouterArgs{
		Logger:          logger,
		UserService:     s.mockUserService,
		CourseService:   s.mockCourseService,
		CheckoutService: s.mockCheckoutService,
		PaymentService:  s.mockPaymentService,
		JWTSecretKey:    s.jwtSecret,
		Metrics:         metrics.NewCollector(reg),
		Gatherer:        reg,
	})
	s.Require().NoError(err)
	s.router = router
}

func (s *HandlersTestSuite) token(userID int64) string {
	token, err := tokens.GenerateUserJWT(userID, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}

func (s *HandlersTestSuite) request(method, url string, body any, opts ...func(*testutils.RequestOptions)) *http.Response {
	var reader io.Reader
	if body != nil {
		reader = testutils.JSONBody(body)
	}
	opts = append(opts, testutils.WithJSON())
	return testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   reader,
	}, opts...)
}

func (s *HandlersTestSuite) TestRegister() {
	email := gofakeit.Email()
	s.mockUserService.EXPECT().Register(gomock.Any(), service.RegisterUserArgs{
		Name:     "Alice",
		Email:    email,
		Password: "password123",
	}).Return("activation-token", nil)
	s.mockUserService.EXPECT().Register(gomock.Any(), gomock.Any()).Return("", domain.ErrDuplicateKey)

	resp := s.request(http.MethodPost, RouteGroup+RegisterRoute, gin.H{
		"name": "Alice", "email": email, "password": "password123",
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Message         string `json:"message"`
		ActivationToken string `json:"activationToken"`
	}
	s.Require().NoError(testutils.DecodeBody(resp, &body))
	s.Equal("activation-token", body.ActivationToken)

	resp = s.request(http.MethodPost, RouteGroup+RegisterRoute, gin.H{
		"name": "Bob", "email": gofakeit.Email(), "password": "password123",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	cases := []struct {
		name string
		body gin.H
	}{
		{name: "bad email", body: gin.H{"name": "A", "email": "nope", "password": "password123"}},
		{name: "short password", body: gin.H{"name": "A", "email": gofakeit.Email(), "password": "123"}},
		{
			name: "name over bytes",
			body: gin.H{
				"name":     testutils.GenerateOverBytesUnderRunes(64),
				"email":    gofakeit.Email(),
				"password": "password123",
			},
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			r := s.request(http.MethodPost, RouteGroup+RegisterRoute, t.body)
			defer r.Body.Close()
			s.Equal(http.StatusUnprocessableEntity, r.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestVerify() {
	s.mockUserService.EXPECT().Verify(gomock.Any(), service.VerifyUserArgs{OTP: "123456", ActivationToken: "t"}).
		Return(&s.student, nil)
	s.mockUserService.EXPECT().Verify(gomock.Any(), service.VerifyUserArgs{OTP: "654321", ActivationToken: "t"}).
		Return(nil, domain.ErrInvalidOTP)

	resp := s.request(http.MethodPost, RouteGroup+VerifyRoute, gin.H{"otp": "123456", "activationToken": "t"})
	s.Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodPost, RouteGroup+VerifyRoute, gin.H{"otp": "654321", "activationToken": "t"})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	s.Require().NoError(testutils.DecodeBody(resp, &body))
	s.Equal("Wrong otp", body.Error)
}

func (s *HandlersTestSuite) TestLogin() {
	s.mockUserService.EXPECT().Login(gomock.Any(), service.LoginUserArgs{
		Email: s.student.Email, Password: "password123",
	}).Return(&s.student, "session-token", nil)
	s.mockUserService.EXPECT().Login(gomock.Any(), service.LoginUserArgs{
		Email: s.student.Email, Password: "wrong-password",
	}).Return(nil, "", domain.ErrPasswordMissMatch)

	resp := s.request(http.MethodPost, RouteGroup+LoginRoute, gin.H{
		"email": s.student.Email, "password": "password123",
	})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Bearer session-token", resp.Header.Get("Authorization"))
	var body struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
	s.Require().NoError(testutils.DecodeBody(resp, &body))
	s.Equal("session-token", body.Token)
	s.Equal(s.student.ID, body.User.ID)
	s.Equal([]int64{}, body.User.Subscription)

	resp = s.request(http.MethodPost, RouteGroup+LoginRoute, gin.H{
		"email": s.student.Email, "password": "wrong-password",
	})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodPost, RouteGroup+LoginRoute, gin.H{
		"email": s.student.Email, "password": "password123",
	}, testutils.WithBearer(s.token(s.student.ID)))
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func (s *HandlersTestSuite) TestMe() {
	resp := s.request(http.MethodGet, RouteGroup+MeRoute, nil, testutils.WithBearer(s.token(s.student.ID)))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		User UserResponse `json:"user"`
	}
	s.Require().NoError(testutils.DecodeBody(resp, &body))
	s.Equal(s.student.Email, body.User.Email)

	resp = s.request(http.MethodGet, RouteGroup+MeRoute, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func (s *HandlersTestSuite) TestLectures() {
	lectures := []domain.Lecture{{ID: 5, CourseID: 10, Title: "intro"}}
	s.mockCourseService.EXPECT().Lectures(gomock.Any(), s.student.ID, int64(10)).Return(lectures, nil)
	s.mockCourseService.EXPECT().Lectures(gomock.Any(), s.student.ID, int64(11)).
		Return(nil, fmt.Errorf("course 11 lectures: %w", domain.ErrNotSubscribed))
	s.mockCourseService.EXPECT().Lectures(gomock.Any(), s.student.ID, int64(12)).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{name: "subscribed", url: "/course/lectures/10", wantStatus: http.StatusOK},
		{name: "not subscribed", url: "/course/lectures/11", wantStatus: http.StatusForbidden},
		{name: "unknown course", url: "/course/lectures/12", wantStatus: http.StatusNotFound},
		{name: "bad id", url: "/course/lectures/abc", wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			resp := s.request(http.MethodGet, RouteGroup+t.url, nil, testutils.WithBearer(s.token(s.student.ID)))
			defer resp.Body.Close()
			s.Equal(t.wantStatus, resp.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestMyCourses() {
	s.mockCourseService.EXPECT().MyCourses(gomock.Any(), s.student.ID).
		Return([]domain.Course{{ID: 10, Title: "Go", Price: decimal.NewFromInt(500)}}, nil)

	resp := s.request(http.MethodGet, RouteGroup+MyCoursesRoute, nil, testutils.WithBearer(s.token(s.student.ID)))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Courses []CourseResponse `json:"courses"`
	}
	s.Require().NoError(testutils.DecodeBody(resp, &body))
	s.Require().Len(body.Courses, 1)
	s.InDelta(500, body.Courses[0].Price, 0)
}

func (s *HandlersTestSuite) TestCheckout() {
	course := &domain.Course{ID: 10, Title: "Go", Price: decimal.NewFromInt(500)}
	s.mockCheckoutService.EXPECT().Checkout(gomock.Any(), s.student.ID, int64(10)).Return(&service.CheckoutResult{
		Order:  &domain.Order{ID: "order_1", Entity: "order", Amount: 50000, Currency: "INR", Status: "created"},
		Course: course,
	}, nil)
	s.mockCheckoutService.EXPECT().Checkout(gomock.Any(), s.student.ID, int64(11)).
		Return(nil, domain.ErrAlreadySubscribed)
	s.mockCheckoutService.EXPECT().Checkout(gomock.Any(), s.student.ID, int64(12)).
		Return(nil, fmt.Errorf("checkout: %w: connection refused", domain.ErrUpstream))
	s.mockCheckoutService.EXPECT().Checkout(gomock.Any(), s.admin.ID, gomock.Any()).Times(0)

	resp := s.request(http.MethodPost, RouteGroup+"/course/checkout/10", nil, testutils.WithBearer(s.token(s.student.ID)))
	s.Equal(http.StatusCreated, resp.StatusCode)
	var body struct {
		Order  OrderResponse  `json:"order"`
		Course CourseResponse `json:"course"`
	}
	s.Require().NoError(testutils.DecodeBody(resp, &body))
	s.Equal(int64(50000), body.Order.Amount)
	s.Equal("INR", body.Order.Currency)
	s.Equal(course.ID, body.Course.ID)

	cases := []struct {
		name       string
		url        string
		userID     int64
		wantStatus int
	}{
		{name: "already subscribed", url: "/course/checkout/11", userID: s.student.ID, wantStatus: http.StatusConflict},
		{name: "gateway down", url: "/course/checkout/12", userID: s.student.ID, wantStatus: http.StatusBadGateway},
		{name: "admin", url: "/course/checkout/10", userID: s.admin.ID, wantStatus: http.StatusForbidden},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			r := s.request(http.MethodPost, RouteGroup+t.url, nil, testutils.WithBearer(s.token(t.userID)))
			defer r.Body.Close()
			s.Equal(t.wantStatus, r.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestVerification() {
	claim := domain.PaymentClaim{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}
	claimBody := gin.H{
		"razorpay_order_id":   claim.OrderID,
		"razorpay_payment_id": claim.PaymentID,
		"razorpay_signature":  claim.Signature,
	}

	s.mockPaymentService.EXPECT().VerifyAndEnroll(gomock.Any(), s.student.ID, int64(10), claim).
		Return(&service.Receipt{CourseID: 10, Message: service.PurchaseSuccessMessage}, nil)
	s.mockPaymentService.EXPECT().VerifyAndEnroll(gomock.Any(), s.student.ID, int64(11), claim).
		Return(nil, domain.ErrPaymentVerificationFailed)
	s.mockPaymentService.EXPECT().VerifyAndEnroll(gomock.Any(), s.student.ID, int64(12), claim).
		Return(nil, domain.NewPaymentConflictError(&domain.Payment{UserID: 3, CourseID: 10}))

	resp := s.request(http.MethodPost, RouteGroup+"/course/verification/10", claimBody,
		testutils.WithBearer(s.token(s.student.ID)))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Message string `json:"message"`
	}
	s.Require().NoError(testutils.DecodeBody(resp, &body))
	s.Equal("Course purchased successfully", body.Message)

	cases := []struct {
		name       string
		url        string
		body       any
		token      string
		wantStatus int
	}{
		{
			name:       "bad signature",
			url:        "/course/verification/11",
			body:       claimBody,
			token:      s.token(s.student.ID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "claim reused",
			url:        "/course/verification/12",
			body:       claimBody,
			token:      s.token(s.student.ID),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing signature",
			url:        "/course/verification/10",
			body:       gin.H{"razorpay_order_id": "order_1", "razorpay_payment_id": "pay_1"},
			token:      s.token(s.student.ID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "order id longer than stored",
			url:  "/course/verification/10",
			body: gin.H{
				"razorpay_order_id":   "order_" + strings.Repeat("a", 59),
				"razorpay_payment_id": claim.PaymentID,
				"razorpay_signature":  claim.Signature,
			},
			token:      s.token(s.student.ID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "payment id longer than stored",
			url:  "/course/verification/10",
			body: gin.H{
				"razorpay_order_id":   claim.OrderID,
				"razorpay_payment_id": "pay_" + strings.Repeat("a", 61),
				"razorpay_signature":  claim.Signature,
			},
			token:      s.token(s.student.ID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "malformed order id",
			url:  "/course/verification/10",
			body: gin.H{
				"razorpay_order_id":   "pay_1",
				"razorpay_payment_id": claim.PaymentID,
				"razorpay_signature":  claim.Signature,
			},
			token:      s.token(s.student.ID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "signature longer than stored",
			url:  "/course/verification/10",
			body: gin.H{
				"razorpay_order_id":   claim.OrderID,
				"razorpay_payment_id": claim.PaymentID,
				"razorpay_signature":  strings.Repeat("a", 129),
			},
			token:      s.token(s.student.ID),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not authorized",
			url:        "/course/verification/10",
			body:       claimBody,
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			var opts []func(*testutils.RequestOptions)
			if t.token != "" {
				opts = append(opts, testutils.WithBearer(t.token))
			}
			r := s.request(http.MethodPost, RouteGroup+t.url, t.body, opts...)
			defer r.Body.Close()
			s.Equal(t.wantStatus, r.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestMetricsRoute() {
	s.mockCourseService.EXPECT().MyCourses(gomock.Any(), s.student.ID).Return(nil, nil)
	r := s.request(http.MethodGet, RouteGroup+MyCoursesRoute, nil, testutils.WithBearer(s.token(s.student.ID)))
	r.Body.Close()

	resp := s.request(http.MethodGet, MetricsRoute, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(raw), `route="/api/course/mycourse"`)
}

func (s *HandlersTestSuite) TestAdminStats() {
	s.mockCourseService.EXPECT().Stats(gomock.Any()).
		Return(&domain.Stats{TotalCourses: 3, TotalLectures: 12, TotalUsers: 40}, nil).Times(1)

	resp := s.request(http.MethodGet, RouteGroup+AdminStatsRoute, nil, testutils.WithBearer(s.token(s.admin.ID)))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body struct {
		Stats StatsResponse `json:"stats"`
	}
	s.Require().NoError(testutils.DecodeBody(resp, &body))
	s.Equal(StatsResponse{TotalCourses: 3, TotalLectures: 12, TotalUsers: 40}, body.Stats)

	resp = s.request(http.MethodGet, RouteGroup+AdminStatsRoute, nil, testutils.WithBearer(s.token(s.student.ID)))
	s.Equal(http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = s.request(http.MethodGet, RouteGroup+AdminStatsRoute, nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
