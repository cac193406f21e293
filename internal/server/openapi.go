package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/milongahq/tangotune/internal/quiz"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps dependency names to their check status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "TangoTune API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Name That Tango Tune game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/session
	postSession, _ := r.NewOperationContext(http.MethodPost, "/api/session")
	postSession.SetSummary("Create play session")
	postSession.SetDescription("Creates a quiz session over the playable catalog. Returns a bearer token.")
	postSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postSession)

	// DELETE /api/session
	deleteSession, _ := r.NewOperationContext(http.MethodDelete, "/api/session")
	deleteSession.SetSummary("End play session")
	deleteSession.SetDescription("Tears the session down and stops its round clock. Requires Bearer token.")
	deleteSession.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteSession)

	// GET /api/session/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/session/state")
	getState.SetSummary("Get session state")
	getState.SetDescription("Returns the current session snapshot. Requires Bearer token.")
	getState.AddRespStructure(quiz.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// POST /api/session/configure
	postConfigure, _ := r.NewOperationContext(http.MethodPost, "/api/session/configure")
	postConfigure.SetSummary("Configure session")
	postConfigure.SetDescription("Fixes time limit, round count, and policies, then readies the first round. Requires Bearer token.")
	postConfigure.AddReqStructure(ConfigureRequest{})
	postConfigure.AddRespStructure(quiz.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	postConfigure.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postConfigure.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postConfigure)

	// POST /api/session/playback
	postPlayback, _ := r.NewOperationContext(http.MethodPost, "/api/session/playback")
	postPlayback.SetSummary("Start playback")
	postPlayback.SetDescription("Waits for browser media readiness, then starts the clip and the score clock. Requires Bearer token.")
	postPlayback.AddRespStructure(quiz.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	postPlayback.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postPlayback.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postPlayback)

	// POST /api/session/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/session/guess")
	postGuess.SetSummary("Submit guess")
	postGuess.SetDescription("Submits one answer option for the playing round. Requires Bearer token.")
	postGuess.AddReqStructure(GuessRequest{})
	postGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postGuess)

	// POST /api/session/advance
	postAdvance, _ := r.NewOperationContext(http.MethodPost, "/api/session/advance")
	postAdvance.SetSummary("Advance to next round")
	postAdvance.SetDescription("Moves past an ended round to the next one, or completes the session. Requires Bearer token.")
	postAdvance.AddRespStructure(quiz.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	postAdvance.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postAdvance.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postAdvance)

	// POST /api/session/media/ready
	postMediaReady, _ := r.NewOperationContext(http.MethodPost, "/api/session/media/ready")
	postMediaReady.SetSummary("Report media ready")
	postMediaReady.SetDescription("Browser reports its audio element has loaded the current clip. Requires Bearer token.")
	postMediaReady.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postMediaReady.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postMediaReady)

	// GET /api/session/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/session/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of state changes, ticks, and media commands. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/session/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/session/ws")
	getWS.SetSummary("WebSocket event stream")
	getWS.SetDescription("Streams the same event feed as SSE over a WebSocket. Pass token as query parameter.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/performers
	listPerformers, _ := r.NewOperationContext(http.MethodGet, "/api/admin/performers")
	listPerformers.SetSummary("List performers")
	listPerformers.SetDescription("Returns all performers with play eligibility. Requires admin_session cookie.")
	listPerformers.AddRespStructure([]PerformerItem{}, openapi.WithHTTPStatus(http.StatusOK))
	listPerformers.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listPerformers)

	// PUT /api/admin/performers/{name}
	updatePerformer, _ := r.NewOperationContext(http.MethodPut, "/api/admin/performers/{name}")
	updatePerformer.SetSummary("Update performer")
	updatePerformer.SetDescription("Sets a performer's active flag and level. Requires admin_session cookie.")
	updatePerformer.AddReqStructure(PerformerUpdateRequest{})
	updatePerformer.AddRespStructure(PerformerItem{}, openapi.WithHTTPStatus(http.StatusOK))
	updatePerformer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updatePerformer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updatePerformer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updatePerformer)

	// GET /api/admin/tracks
	listTracks, _ := r.NewOperationContext(http.MethodGet, "/api/admin/tracks")
	listTracks.SetSummary("List tracks")
	listTracks.SetDescription("Returns the full track catalog. Requires admin_session cookie.")
	listTracks.AddRespStructure([]TrackItem{}, openapi.WithHTTPStatus(http.StatusOK))
	listTracks.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listTracks)

	// POST /api/admin/catalog/import
	importCatalog, _ := r.NewOperationContext(http.MethodPost, "/api/admin/catalog/import")
	importCatalog.SetSummary("Import catalog")
	importCatalog.SetDescription("Normalizes a raw song library against the performer master list and replaces the catalog. Requires admin_session cookie.")
	importCatalog.AddReqStructure(ImportRequest{})
	importCatalog.AddRespStructure(ImportResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	importCatalog.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	importCatalog.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(importCatalog)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
