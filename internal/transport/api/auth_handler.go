package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/service"
	"github.com/fsdevblog/learnmarket/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type UserRegisterParams struct {
	Name     string `binding:"required,min=1,max_bytes=255"  json:"name"`
	Email    string `binding:"required,email,max_bytes=255"  json:"email"`
	Password string `binding:"required,min=6,max_bytes=72"   json:"password"`
}

// bindJSON binds the body and answers 422 on validation errors, 400 on malformed json.
func bindJSON(c *gin.Context, params any) bool {
	if bindErr := c.ShouldBindJSON(params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return false
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

// Register POST RouteGroup + RegisterRoute. Sends the otp and returns the activation token.
func (h *AuthHandler) Register(c *gin.Context) {
	var params UserRegisterParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	activationToken, err := h.userService.Register(ctx, service.RegisterUserArgs{
		Name:     params.Name,
		Email:    params.Email,
		Password: params.Password,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Otp sent to your mail",
		"activationToken": activationToken,
	})
}

type UserVerifyParams struct {
	OTP             string `binding:"required,numeric,len=6" json:"otp"`
	ActivationToken string `binding:"required"               json:"activationToken"`
}

// Verify POST RouteGroup + VerifyRoute. Creates the user registered with Register.
func (h *AuthHandler) Verify(c *gin.Context) {
	var params UserVerifyParams
	if !bindJSON(c, &params) {
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if _, err := h.userService.Verify(ctx, service.VerifyUserArgs{
		OTP:             params.OTP,
		ActivationToken: params.ActivationToken,
	}); err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered"})
}

type UserLoginParams struct {
	Email    string `binding:"required,email,max_bytes=255" json:"email"`
	Password string `binding:"required,min=6,max_bytes=72"  json:"password"`
}

// Login POST RouteGroup + LoginRoute.
func (h *AuthHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.userService.Login(ctx, service.LoginUserArgs{
		Email:    params.Email,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) || errors.Is(err, domain.ErrPasswordMissMatch) {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	c.Header("Authorization", "Bearer "+token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome back " + user.Name,
		"token":   token,
		"user":    newUserResponse(user),
	})
}

// Me GET RouteGroup + MeRoute.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.Me(ctx, middlewares.CurrentUserID(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}
