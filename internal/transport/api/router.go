package api

import (
	"fmt"
	"io"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/metrics"
	"github.com/fsdevblog/learnmarket/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup        = "/api"
	RegisterRoute     = "/user/register"
	VerifyRoute       = "/user/verify"
	LoginRoute        = "/user/login"
	MeRoute           = "/user/me"
	MyCoursesRoute    = "/course/mycourse"
	LecturesRoute     = "/course/lectures/:id"
	LectureRoute      = "/course/lecture/:id"
	CheckoutRoute     = "/course/checkout/:id"
	VerificationRoute = "/course/verification/:id"
	AdminStatsRoute   = "/admin/stats"
	MetricsRoute      = "/metrics"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	UserService     UserServicer
	CourseService   CourseServicer
	CheckoutService CheckoutServicer
	PaymentService  PaymentServicer
	JWTSecretKey    []byte
	// Metrics and Gatherer are optional, without them no metrics are recorded or exposed.
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	// Limiter guards the auth and payment routes. FallbackLimiter is used when Limiter fails.
	Limiter         middlewares.Limiter
	FallbackLimiter middlewares.Limiter
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	var recorder PurchaseRecorder
	if args.Metrics != nil {
		r.Use(middlewares.Metrics(args.Metrics))
		recorder = args.Metrics
	}
	r.Use(middlewares.Errors())

	if args.Gatherer != nil {
		r.GET(MetricsRoute, gin.WrapH(metrics.Handler(args.Gatherer)))
	}

	authHandler := NewAuthHandler(args.UserService)
	courseHandler := NewCourseHandler(args.CourseService)
	adminHandler := NewAdminHandler(args.CourseService)
	paymentHandler := NewPaymentHandler(args.CheckoutService, args.PaymentService, recorder)

	limited := func(h ...gin.HandlerFunc) []gin.HandlerFunc { return h }
	if args.Limiter != nil {
		fallback := args.FallbackLimiter
		if fallback == nil {
			fallback = args.Limiter
		}
		rateLimit := middlewares.RateLimit(args.Limiter, fallback, logrusOrDiscard(args.Logger))
		limited = func(h ...gin.HandlerFunc) []gin.HandlerFunc {
			return append([]gin.HandlerFunc{rateLimit}, h...)
		}
	}

	api := r.Group(RouteGroup)

	nonAuth := middlewares.NonAuthRequired(args.JWTSecretKey)
	api.POST(RegisterRoute, limited(nonAuth, authHandler.Register)...)
	api.POST(VerifyRoute, limited(nonAuth, authHandler.Verify)...)
	api.POST(LoginRoute, limited(nonAuth, authHandler.Login)...)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// every route below requires an authorized user.
	api.GET(MeRoute, authHandler.Me)

	api.GET(MyCoursesRoute, courseHandler.MyCourses)
	api.GET(LecturesRoute, courseHandler.Lectures)
	api.GET(LectureRoute, courseHandler.Lecture)

	api.POST(CheckoutRoute, limited(
		middlewares.RequireRole(args.UserService, domain.RoleStudent),
		paymentHandler.Checkout,
	)...)
	api.POST(VerificationRoute, limited(paymentHandler.Verification)...)

	api.GET(AdminStatsRoute, middlewares.RequireRole(args.UserService, domain.RoleAdmin), adminHandler.Stats)
	return r, nil
}

func logrusOrDiscard(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return discard
}
