package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo profileStore
	hasher      *auth.Hasher
	tokens      *auth.Tokens
}

func newAuthHandler(profileRepo profileStore, hasher *auth.Hasher, tokens *auth.Tokens) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		hasher:      hasher,
		tokens:      tokens,
	}
}

// signup creates a profile with a local credential
// @Summary Sign up
// @Description Creates a profile from email and password and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body signupRequest true "Credentials"
// @Success 201 {object} AuthResponse "Created user and token"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing email/password or password too short"
// @Failure 409 {object} ErrorResponse "Conflict - Email already registered"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /auth/signup [post]
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request signupRequest
		if err := decodeAndValidate(r, &request); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("email", request.Email).Msg("signup")

		existing, err := h.profileRepo.FindByEmail(r.Context(), request.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.InternalMessage, err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, userExistsError())
			return
		}

		digest, err := h.hasher.Hash(request.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.InternalMessage, err))
			return
		}

		name := request.Name
		if name == "" {
			name = strings.Split(request.Email, "@")[0]
		}

		profile := &models.Profile{Email: request.Email, Name: name, Password: &digest}
		if err := h.profileRepo.Add(r.Context(), profile); err != nil {
			// The pre-check lost a race with a concurrent signup
			if errs.IsUniqueConstraintViolationError(err) {
				h.responder.WriteError(w, userExistsError())
				return
			}
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.InternalMessage, err))
			return
		}

		token, err := h.tokens.Issue(profile.ID.String(), profile.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.InternalMessage, err))
			return
		}

		h.logger.Info().Str("userId", profile.ID.String()).Msg("signup successful")
		h.responder.WriteJSONStatus(w, http.StatusCreated, AuthResponse{
			Message: "User created successfully",
			Token:   token,
			User:    userResponse(profile),
		})
	}
}

// signin exchanges email and password for a bearer token
// @Summary Sign in
// @Description Verifies credentials and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body signinRequest true "Credentials"
// @Success 200 {object} AuthResponse "User and token"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing email or password"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid email or password"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /auth/signin [post]
func (h authHandler) signin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request signinRequest
		if err := decodeAndValidate(r, &request); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profileRepo.FindByEmail(r.Context(), request.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.InternalMessage, err))
			return
		}

		// Unknown email, no credential and wrong password all answer the same way
		if profile == nil || !profile.HasPassword() || !h.hasher.Verify(request.Password, *profile.Password) {
			h.logger.Info().Str("email", request.Email).Msg("signin rejected")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, err := h.tokens.Issue(profile.ID.String(), profile.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.InternalMessage, err))
			return
		}

		h.responder.WriteJSON(w, AuthResponse{
			Message: "Signed in successfully",
			Token:   token,
			User:    userResponse(profile),
		})
	}
}

func userExistsError() error {
	return errs.NewConflictError("User with this email already exists")
}

func userResponse(profile *models.Profile) UserResponse {
	return UserResponse{
		ID:    profile.ID.String(),
		Email: profile.Email,
		Name:  profile.Name,
	}
}
