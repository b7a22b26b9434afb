package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler    projectHandler
	skillHandler      skillHandler
	experienceHandler experienceHandler
	profileHandler    profileHandler
	portfolioHandler  portfolioHandler
	resumeHandler     resumeHandler
	healthHandler     healthHandler
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"` // only outside production
	Error   string `json:"error,omitempty"`   // only outside production
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime,omitempty"`
}
