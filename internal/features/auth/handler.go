package auth

import (
	"errors"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjunms/dailydo/internal/config"
	"github.com/arjunms/dailydo/internal/pkg/response"
	"github.com/arjunms/dailydo/internal/pkg/token"
	apperrors "github.com/arjunms/dailydo/pkg/errors"
)

type Handler struct {
	repo   *Repository
	cfg    *config.Config
	fbAuth *fbauth.Client
}

func NewHandler(repo *Repository, cfg *config.Config, fbAuth *fbauth.Client) *Handler {
	return &Handler{
		repo:   repo,
		cfg:    cfg,
		fbAuth: fbAuth,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Register a new user with email, password and name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateRegister(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to look up user", "DATABASE_ERROR")
		return
	}
	if existing != nil {
		response.Conflict(c, "Email already registered", "EMAIL_TAKEN")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password", "HASH_FAILED")
		return
	}

	user := &User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			response.Conflict(c, "Email already registered", "EMAIL_TAKEN")
			return
		}
		response.InternalServerError(c, "Failed to create user", "DATABASE_ERROR")
		return
	}

	h.respondWithToken(c, user, true)
}

// Login godoc
// @Summary Login user
// @Description Authenticate a user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateLogin(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to look up user", "DATABASE_ERROR")
		return
	}
	if user == nil || user.Password == "" {
		response.Unauthorized(c, "Invalid email or password", "BAD_CREDENTIALS")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid email or password", "BAD_CREDENTIALS")
		return
	}

	h.respondWithToken(c, user, false)
}

// GoogleSignIn godoc
// @Summary Sign in with Google
// @Description Exchange a Google ID token for an API token, creating the user on first sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google ID token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/google [post]
func (h *Handler) GoogleSignIn(c *gin.Context) {
	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	googleUser, err := VerifyGoogleToken(c.Request.Context(), req.GoogleIDToken, h.cfg.GoogleClientID)
	if err != nil {
		response.Unauthorized(c, "Invalid Google token", "INVALID_GOOGLE_TOKEN")
		return
	}

	user, err := h.repo.FindByGoogleID(c.Request.Context(), googleUser.UID)
	if err != nil {
		response.InternalServerError(c, "Failed to look up user", "DATABASE_ERROR")
		return
	}

	if user == nil {
		// Link by email when the account already exists, otherwise create
		user, err = h.repo.FindByEmail(c.Request.Context(), googleUser.Email)
		if err != nil {
			response.InternalServerError(c, "Failed to look up user", "DATABASE_ERROR")
			return
		}

		if user != nil {
			if err := h.repo.Update(c.Request.Context(), user.ID.Hex(), map[string]interface{}{
				"googleId": googleUser.UID,
			}); err != nil {
				response.InternalServerError(c, "Failed to link account", "DATABASE_ERROR")
				return
			}
			user.GoogleID = googleUser.UID
		} else {
			user = &User{
				Email:             googleUser.Email,
				Name:              googleUser.Name,
				GoogleID:          googleUser.UID,
				ProfilePictureURL: googleUser.Picture,
			}
			if err := h.repo.Create(c.Request.Context(), user); err != nil {
				response.InternalServerError(c, "Failed to create user", "DATABASE_ERROR")
				return
			}
		}
	}

	h.respondWithToken(c, user, false)
}

// FirebaseSignIn godoc
// @Summary Sign in with Firebase
// @Description Exchange a Firebase ID token for an API token, creating the user on first sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body FirebaseAuthRequest true "Firebase ID token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /auth/firebase [post]
func (h *Handler) FirebaseSignIn(c *gin.Context) {
	if h.fbAuth == nil {
		response.ServiceUnavailable(c, "Firebase sign-in is not configured", "FIREBASE_DISABLED")
		return
	}

	var req FirebaseAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	fbUser, err := VerifyFirebaseToken(c.Request.Context(), h.fbAuth, req.FirebaseIDToken)
	if err != nil {
		response.Unauthorized(c, "Invalid Firebase token", "INVALID_FIREBASE_TOKEN")
		return
	}

	user, err := h.repo.FindByFirebaseUID(c.Request.Context(), fbUser.UID)
	if err != nil {
		response.InternalServerError(c, "Failed to look up user", "DATABASE_ERROR")
		return
	}

	if user == nil {
		user = &User{
			Email:             fbUser.Email,
			Name:              fbUser.Name,
			FirebaseUID:       fbUser.UID,
			ProfilePictureURL: fbUser.Picture,
		}
		if err := h.repo.Create(c.Request.Context(), user); err != nil {
			response.InternalServerError(c, "Failed to create user", "DATABASE_ERROR")
			return
		}
	}

	h.respondWithToken(c, user, false)
}

// Me godoc
// @Summary Get current user profile
// @Description Get the profile of the currently authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to look up user", "DATABASE_ERROR")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found", "USER_NOT_FOUND")
		return
	}

	response.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Update the authenticated user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} response.SuccessResponse{data=User}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("userID")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateUpdateProfile(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	if err := h.repo.Update(c.Request.Context(), userID, map[string]interface{}{
		"name": req.Name,
	}); err != nil {
		response.InternalServerError(c, "Failed to update profile", "DATABASE_ERROR")
		return
	}

	user, err := h.repo.FindByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		response.InternalServerError(c, "Failed to reload profile", "DATABASE_ERROR")
		return
	}

	response.Success(c, user)
}

func (h *Handler) respondWithToken(c *gin.Context, user *User, created bool) {
	tok, err := token.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token", "TOKEN_FAILED")
		return
	}

	payload := AuthResponse{Token: tok, User: user}
	if created {
		response.Created(c, payload)
		return
	}
	response.Success(c, payload)
}
