package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	teamController *controllers.TeamController,
	councilController *controllers.CouncilController,
	userController *controllers.UserController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("POST /events/{eventID}/register", auth(eventController.Register))
	mux.HandleFunc("GET /events/{eventID}/registrations", auth(eventController.ListEventRegistrations))

	// Teams
	mux.HandleFunc("POST /teams", auth(teamController.CreateTeam))
	mux.HandleFunc("GET /teams/{teamID}", auth(teamController.GetTeam))
	mux.HandleFunc("POST /teams/{teamID}/invite", auth(teamController.SendInvite))
	mux.HandleFunc("POST /teams/invite/{inviteID}/respond", auth(teamController.RespondToInvite))

	// Councils
	mux.HandleFunc("GET /councils", councilController.ListCouncils)
	mux.HandleFunc("GET /councils/{councilID}", councilController.GetCouncil)
	mux.HandleFunc("POST /councils/{councilID}/apply", auth(councilController.Apply))

	// Current user
	mux.HandleFunc("GET /users/me", auth(userController.GetMe))
	mux.HandleFunc("PUT /users/me", auth(userController.UpdateMe))
	mux.HandleFunc("GET /users/me/events", auth(userController.ListMyEvents))
	mux.HandleFunc("GET /users/me/teams", auth(userController.ListMyTeams))
	mux.HandleFunc("GET /users/me/applications", auth(userController.ListMyApplications))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
