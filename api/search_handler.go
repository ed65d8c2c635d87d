package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const searchLimit = 20

type searchHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo projectStore
	skillRepo   skillStore
}

func newSearchHandler(projectRepo projectStore, skillRepo skillStore) searchHandler {
	logger := log.With().Str("handlerName", "searchHandler").Logger()

	return searchHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
	}
}

// search matches projects and skills against q
// @Summary Search
// @Description Case-insensitive substring search over project title/description and skill name, 20 results each
// @Tags Search
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} SearchResponse "Matching projects and skills"
// @Failure 400 {object} ErrorResponse "Bad Request - Query parameter 'q' is required and must be non-empty"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Failed to perform search"
// @Router /search [get]
func (h searchHandler) search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField(
				"Query parameter 'q' is required and must be non-empty", "q", ""))
			return
		}

		var (
			projects []*models.Project
			skills   []*models.Skill
		)

		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			projects, err = h.projectRepo.Search(ctx, query, searchLimit)
			return err
		})
		g.Go(func() error {
			var err error
			skills, err = h.skillRepo.Search(ctx, query, searchLimit)
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("Failed to perform search", "search", err))
			return
		}

		projects = normalizeProjects(projects)
		if skills == nil {
			skills = []*models.Skill{}
		}

		h.responder.WriteJSON(w, SearchResponse{
			Query:   query,
			Results: SearchResults{Projects: projects, Skills: skills},
			Count:   SearchCount{Projects: len(projects), Skills: len(skills)},
		})
	}
}
