package service

import (
	"fmt"
	"time"

	"github.com/fsdevblog/learnmarket/pkg/uow"
)

type AppServices struct {
	UserService     *UserService
	CourseService   *CourseService
	CheckoutService *CheckoutService
	PaymentService  *PaymentService
	OutboxService   *OutboxService
}

type FactoryArgs struct {
	JWTSecret      []byte
	JWTTokenExpire time.Duration
	PaymentSecret  []byte
	Currency       string
	Provider       PaymentProvider
	Publisher      Publisher
	Hasher         PasswordHasher
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, args.JWTSecret, args.Hasher, args.Publisher)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}
	userService.SetTokenExpire(args.JWTTokenExpire)

	courseService, courseServiceErr := NewCourseService(unitOfWork)
	if courseServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", courseServiceErr.Error())
	}

	checkoutService, checkoutServiceErr := NewCheckoutService(unitOfWork, args.Provider, args.Currency)
	if checkoutServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", checkoutServiceErr.Error())
	}

	paymentService, paymentServiceErr := NewPaymentService(unitOfWork, args.PaymentSecret)
	if paymentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", paymentServiceErr.Error())
	}

	outboxService, outboxServiceErr := NewOutboxService(unitOfWork, DefaultOutboxMaxAttempts)
	if outboxServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", outboxServiceErr.Error())
	}

	return &AppServices{
		UserService:     userService,
		CourseService:   courseService,
		CheckoutService: checkoutService,
		PaymentService:  paymentService,
		OutboxService:   outboxService,
	}, nil
}
