package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo profileStore
}

func newProfileHandler(profileRepo profileStore) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
	}
}

// getProfile returns the portfolio owner's profile
// @Summary Get profile
// @Description Retrieves the first profile with its education, skills and projects (each with skills and links)
// @Tags Profile
// @Produce json
// @Success 200 {object} models.Profile "Expanded profile"
// @Failure 404 {object} ErrorResponse "Not Found - Profile not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to fetch profile"
// @Router /profile [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profileRepo.FindFirst(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("Failed to fetch profile", "profile", err))
			return
		}

		if profile == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Profile not found"))
			return
		}

		profile.Normalize()
		h.responder.WriteJSON(w, profile)
	}
}

// upsertProfile creates or updates the profile identified by email
// @Summary Create or update profile
// @Description Upserts a profile by email and returns it expanded
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body upsertProfileRequest true "Profile data"
// @Success 200 {object} models.Profile "Expanded profile"
// @Failure 400 {object} ErrorResponse "Bad Request - Name and email are required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to save profile"
// @Router /profile [post]
func (h profileHandler) upsertProfile() http.HandlerFunc {
	return withIdentity(h.responder, func(w http.ResponseWriter, r *http.Request, caller Identity) {
		var request upsertProfileRequest
		if err := decodeAndValidate(r, &request); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// TODO: reject callers whose token email differs from request.Email once multi-user profiles exist
		h.logger.Info().
			Str("userId", caller.UserID).
			Str("email", request.Email).
			Msg("upserting profile")

		profile, err := h.profileRepo.UpsertByEmail(r.Context(), request.Name, request.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("Failed to save profile", "profile", err))
			return
		}

		profile.Normalize()
		h.responder.WriteJSON(w, profile)
	})
}
