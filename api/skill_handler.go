package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const topSkillsLimit = 10

type skillHandler struct {
	responder        Responder
	logger           zerolog.Logger
	skillRepo        skillStore
	projectSkillRepo projectSkillStore
}

func newSkillHandler(skillRepo skillStore, projectSkillRepo projectSkillStore) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		skillRepo:        skillRepo,
		projectSkillRepo: projectSkillRepo,
	}
}

// getAllSkills lists every skill
// @Summary Get all skills
// @Description Retrieves all skills in alphabetical order
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill "List of skills"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to fetch skills"
// @Router /skills [get]
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("Failed to fetch skills", "skills", err))
			return
		}

		if skills == nil {
			skills = []*models.Skill{}
		}
		h.responder.WriteJSON(w, skills)
	}
}

// getTopSkills lists the skills used by the most projects
// @Summary Get top skills
// @Description Retrieves at most 10 skills ordered by the number of projects using them
// @Tags Skills
// @Produce json
// @Success 200 {array} models.TopSkill "Skills with their project count"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to fetch top skills"
// @Router /skills/top [get]
func (h skillHandler) getTopSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := h.projectSkillRepo.CountBySkill(r.Context(), topSkillsLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("Failed to fetch top skills", "skills", err))
			return
		}

		ids := make([]uuid.UUID, 0, len(counts))
		for _, count := range counts {
			ids = append(ids, count.SkillID)
		}

		skills, err := h.skillRepo.FindByIDs(r.Context(), ids)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("Failed to fetch top skills", "skills", err))
			return
		}

		h.responder.WriteJSON(w, rankSkills(counts, skills))
	}
}

// rankSkills joins counts to skill details, keeping the order of counts.
// Counts whose skill was not found are dropped.
func rankSkills(counts []models.SkillCount, skills []*models.Skill) []models.TopSkill {
	byID := make(map[uuid.UUID]*models.Skill, len(skills))
	for _, skill := range skills {
		byID[skill.ID] = skill
	}

	ranked := make([]models.TopSkill, 0, len(counts))
	for _, count := range counts {
		skill, ok := byID[count.SkillID]
		if !ok {
			continue
		}
		ranked = append(ranked, models.TopSkill{Skill: *skill, Count: count.Count})
		if len(ranked) == topSkillsLimit {
			break
		}
	}
	return ranked
}
