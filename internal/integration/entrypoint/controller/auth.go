// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/companion/internal/application/usecase/auth"
	"github.com/finance-tracker/companion/internal/domain/entity"
	"github.com/finance-tracker/companion/internal/integration/entrypoint/dto"
)

// AuthController handles session and account endpoints.
type AuthController struct {
	getSessionUseCase    *auth.GetSessionUseCase
	loginUseCase         *auth.LoginUserUseCase
	logoutUseCase        *auth.LogoutUserUseCase
	registerUseCase      *auth.RegisterUserUseCase
	updateProfileUseCase *auth.UpdateProfileUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	getSessionUseCase *auth.GetSessionUseCase,
	loginUseCase *auth.LoginUserUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	registerUseCase *auth.RegisterUserUseCase,
	updateProfileUseCase *auth.UpdateProfileUseCase,
) *AuthController {
	return &AuthController{
		getSessionUseCase:    getSessionUseCase,
		loginUseCase:         loginUseCase,
		logoutUseCase:        logoutUseCase,
		registerUseCase:      registerUseCase,
		updateProfileUseCase: updateProfileUseCase,
	}
}

// Session handles GET /session requests.
func (c *AuthController) Session(ctx *gin.Context) {
	output := c.getSessionUseCase.Execute()

	response := dto.SessionResponse{
		Authenticated: output.Authenticated,
		Loading:       output.Loading,
		ExpiresAt:     output.ExpiresAt,
		Expired:       output.Expired,
	}
	if output.User != nil {
		user := dto.ToUserResponse(*output.User)
		response.User = &user
	}
	ctx.JSON(http.StatusOK, response)
}

// Login handles POST /session/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx)
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	user := dto.ToUserResponse(output.User)
	ctx.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		User:          &user,
		Warning:       warning(output.PersistenceWarning),
	})
}

// Logout handles POST /session/logout requests.
func (c *AuthController) Logout(ctx *gin.Context) {
	output := c.logoutUseCase.Execute(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
		Warning: warning(output.PersistenceWarning),
	})
}

// Register handles POST /users requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx)
		return
	}

	err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Gender:   parseGender(req.Gender),
		Password: req.Password,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MessageResponse{
		Message: "Account created",
	})
}

// UpdateProfile handles PUT /profile requests.
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx)
		return
	}

	output, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), auth.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Gender:   parseGender(req.Gender),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	user := dto.ToUserResponse(output.User)
	ctx.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		User:          &user,
		Warning:       warning(output.PersistenceWarning),
	})
}

func parseGender(raw string) entity.Gender {
	return entity.Gender(strings.ToLower(strings.TrimSpace(raw)))
}
