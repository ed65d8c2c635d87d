package api

import "github.com/rpupo63/portfolio-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler  healthHandler
	authHandler    authHandler
	profileHandler profileHandler
	projectHandler projectHandler
	skillHandler   skillHandler
	searchHandler  searchHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal server error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// UserResponse is the public part of a profile returned by the auth routes
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is returned by signup and signin
type AuthResponse struct {
	Message string       `json:"message" example:"Signed in successfully"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status    string `json:"status" example:"OK"`
	Timestamp string `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Uptime    string `json:"uptime,omitempty" example:"1h2m3s"`
}

type SearchResults struct {
	Projects []*models.Project `json:"projects"`
	Skills   []*models.Skill   `json:"skills"`
}

type SearchCount struct {
	Projects int `json:"projects"`
	Skills   int `json:"skills"`
}

// SearchResponse always carries both result sets, empty when nothing matched
type SearchResponse struct {
	Query   string        `json:"query"`
	Results SearchResults `json:"results"`
	Count   SearchCount   `json:"count"`
}
