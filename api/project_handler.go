package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo projectStore
}

func newProjectHandler(projectRepo projectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects retrieves projects, optionally filtered by skill
// @Summary Get all projects
// @Description Retrieves all projects newest first with their skills and links. The skill query parameter keeps only projects using that skill.
// @Tags Projects
// @Produce json
// @Param skill query string false "Exact skill name"
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to fetch projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill := r.URL.Query().Get("skill")

		projects, err := h.projectRepo.FindAll(r.Context(), skill)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("Failed to fetch projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, normalizeProjects(projects))
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project owned by profileId. description defaults to "" and work to "Personal Project".
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createProjectRequest true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Title and profileId are required, or profileId matches no profile"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to create project"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return withIdentity(h.responder, func(w http.ResponseWriter, r *http.Request, caller Identity) {
		var request createProjectRequest
		if err := decodeAndValidate(r, &request); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profileID, err := parseProfileID(request.ProfileID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := &models.Project{
			Title:       request.Title,
			Description: request.Description,
			Work:        request.Work,
			ProfileID:   profileID,
		}
		if project.Work == "" {
			project.Work = models.WorkPersonalProject
		}

		h.logger.Info().Str("userId", caller.UserID).Str("title", project.Title).Msg("creating project")

		if err := h.projectRepo.Add(r.Context(), project); err != nil {
			h.responder.WriteError(w, projectWriteError("Failed to create project", err))
			return
		}

		project.Normalize()
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	})
}

// createProjectFromGithub creates a project and its github link from a repository URL
// @Summary Create project from GitHub
// @Description Derives title and description from the repository URL and stores the project with a github link in one transaction
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body githubProjectRequest true "Repository URL and owner profile"
// @Success 201 {object} models.Project "Created project with its link"
// @Failure 400 {object} ErrorResponse "Bad Request - GitHub URL and profileId are required, or profileId matches no profile"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to create project from GitHub"
// @Router /projects/from-github [post]
func (h projectHandler) createProjectFromGithub() http.HandlerFunc {
	return withIdentity(h.responder, func(w http.ResponseWriter, r *http.Request, caller Identity) {
		var request githubProjectRequest
		if err := decodeAndValidate(r, &request); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profileID, err := parseProfileID(request.ProfileID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		owner, repo := parseGithubURL(request.GithubURL)
		project := &models.Project{
			Title:       repo,
			Description: fmt.Sprintf("GitHub project: %s/%s", owner, repo),
			Work:        models.WorkOpenSource,
			ProfileID:   profileID,
		}
		links := []models.Link{{Type: models.LinkTypeGithub, URL: request.GithubURL}}

		h.logger.Info().Str("userId", caller.UserID).Str("githubUrl", request.GithubURL).Msg("creating project from github")

		if err := h.projectRepo.AddWithLinks(r.Context(), project, links); err != nil {
			h.responder.WriteError(w, projectWriteError("Failed to create project from GitHub", err))
			return
		}

		project.Links = links
		project.Normalize()
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	})
}

// parseGithubURL takes the repository from the last path segment, without a
// trailing .git, and the owner from the segment before it. The URL is not
// validated.
func parseGithubURL(githubURL string) (owner, repo string) {
	parts := strings.Split(githubURL, "/")
	repo = strings.TrimSuffix(parts[len(parts)-1], ".git")
	if len(parts) > 1 {
		owner = parts[len(parts)-2]
	}
	return owner, repo
}

func parseProfileID(raw string) (uuid.UUID, error) {
	profileID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestErrorWithField("profileId must be a valid UUID", "profileId", "")
	}
	return profileID, nil
}

// projectWriteError reports a profileId that matches no profile as a 400 on
// that field. Every other failure keeps the fixed message.
func projectWriteError(message string, err error) error {
	if errs.IsForeignKeyConstraintError(err) {
		return errs.NewBadRequestErrorWithField("profileId does not reference an existing profile", "profileId", "")
	}
	return wrapDatabaseError(message, "project", err)
}

// normalizeProjects makes sure the response is a JSON array with array-valued relations
func normalizeProjects(projects []*models.Project) []*models.Project {
	if projects == nil {
		return []*models.Project{}
	}
	for _, project := range projects {
		project.Normalize()
	}
	return projects
}
