package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shiroonigami23-ui/disruption-response-platform/internal/catalog"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/config"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/contracts"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/decision"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/httpx"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/impact"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/mq"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/storage"
	"github.com/shiroonigami23-ui/disruption-response-platform/internal/ticket"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("response-api database error: %v", err)
	}
	defer dbPool.Close()

	if err := storage.RunMigrations(ctx, dbPool); err != nil {
		log.Fatalf("response-api migration error: %v", err)
	}

	disruptions := storage.NewDisruptionRepository(dbPool)
	tickets := storage.NewTicketRepository(dbPool)

	cat := catalog.Default()
	analyzer := impact.NewAnalyzer(disruptions, cat)
	engine := decision.NewEngine(cat, analyzer)

	eventWriter := mq.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopicTickets)
	defer eventWriter.Close()

	ticketService := ticket.NewService(tickets, cat, mq.NewTicketEventPublisher(eventWriter))

	api := &apiServer{
		cfg:           cfg,
		disruptions:   disruptions,
		catalog:       cat,
		analyzer:      analyzer,
		engine:        engine,
		ticketService: ticketService,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(15 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "service": "response-api"})
	})

	router.Route("/v1", func(r chi.Router) {
		r.Get("/disruptions", api.listDisruptions)
		r.Post("/disruptions", api.createDisruption)
		r.Get("/disruptions/{id}", api.getDisruption)
		r.Patch("/disruptions/{id}/status", api.updateDisruptionStatus)

		r.Get("/routes", api.listRoutes)
		r.Get("/shipments", api.listShipments)

		r.Get("/impact/{disruptionID}", api.analyzeImpact)
		r.Post("/decisions/{disruptionID}", api.makeDecisions)

		r.Post("/tickets/{disruptionID}", api.createTickets)
		r.Get("/tickets", api.listTickets)
		r.Get("/tickets/{id}", api.getTicket)
		r.Get("/tickets/disruption/{disruptionID}", api.listTicketsByDisruption)
		r.Patch("/tickets/{id}/status", api.updateTicketStatus)
		r.Post("/tickets/{id}/notes", api.addTicketNote)
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("response-api listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("response-api server error: %v", err)
	}
}

type apiServer struct {
	cfg           config.Config
	disruptions   *storage.DisruptionRepository
	catalog       *catalog.Catalog
	analyzer      *impact.Analyzer
	engine        *decision.Engine
	ticketService *ticket.Service
}

func (a *apiServer) listDisruptions(w http.ResponseWriter, r *http.Request) {
	status := contracts.DisruptionStatus(r.URL.Query().Get("status"))
	items, err := a.disruptions.List(r.Context(), status)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *apiServer) createDisruption(w http.ResponseWriter, r *http.Request) {
	var payload contracts.Disruption
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	if strings.TrimSpace(payload.Location) == "" || payload.Type == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": "type and location are required"})
		return
	}

	created, err := a.disruptions.Insert(r.Context(), payload)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (a *apiServer) getDisruption(w http.ResponseWriter, r *http.Request) {
	d, err := a.disruptions.DisruptionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (a *apiServer) updateDisruptionStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status contracts.DisruptionStatus `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	switch payload.Status {
	case contracts.DisruptionActive, contracts.DisruptionMonitoring, contracts.DisruptionResolved:
	default:
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": "unknown disruption status"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := a.disruptions.UpdateStatus(r.Context(), id, payload.Status); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "status": payload.Status})
}

func (a *apiServer) listRoutes(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": a.catalog.Routes()})
}

func (a *apiServer) listShipments(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": a.catalog.Shipments()})
}

func (a *apiServer) analyzeImpact(w http.ResponseWriter, r *http.Request) {
	analysis, err := a.analyzer.Analyze(r.Context(), chi.URLParam(r, "disruptionID"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, analysis)
}

func (a *apiServer) makeDecisions(w http.ResponseWriter, r *http.Request) {
	disruptionID := chi.URLParam(r, "disruptionID")

	var constraints contracts.OperatorConstraints
	if err := httpx.DecodeJSON(r, &constraints); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	disruption, err := a.disruptions.DisruptionByID(r.Context(), disruptionID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	analysis, err := a.analyzer.Analyze(r.Context(), disruptionID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	decisions, err := a.engine.ProcessDecisions(disruptionID, analysis.AffectedShipments, constraints, disruption.EstimatedDurationHours)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": decisions})
}

// createTickets runs the end-to-end flow: impact analysis, decisions, then
// one ticket per decision. Re-running it for the same disruption returns the
// existing tickets.
func (a *apiServer) createTickets(w http.ResponseWriter, r *http.Request) {
	disruptionID := chi.URLParam(r, "disruptionID")

	var constraints contracts.OperatorConstraints
	if err := httpx.DecodeJSON(r, &constraints); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	operatorID := strings.TrimSpace(r.Header.Get("X-Operator-ID"))
	if operatorID == "" {
		operatorID = "unknown"
	}

	disruption, err := a.disruptions.DisruptionByID(r.Context(), disruptionID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	duration := disruption.EstimatedDurationHours
	if duration == 0 {
		duration = a.cfg.DefaultDurationHours
	}

	analysis, err := a.analyzer.Analyze(r.Context(), disruptionID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	decisions, err := a.engine.ProcessDecisions(disruptionID, analysis.AffectedShipments, constraints, duration)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	created := make([]contracts.ActionTicket, 0, len(decisions))
	for _, d := range decisions {
		t, err := a.ticketService.Create(r.Context(), disruptionID, d, operatorID)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		created = append(created, t)
	}

	log.Printf("response-api created %d tickets for disruption %s", len(created), disruptionID)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"items": created})
}

func (a *apiServer) listTickets(w http.ResponseWriter, r *http.Request) {
	items, err := a.ticketService.All(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *apiServer) getTicket(w http.ResponseWriter, r *http.Request) {
	t, err := a.ticketService.ByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (a *apiServer) listTicketsByDisruption(w http.ResponseWriter, r *http.Request) {
	items, err := a.ticketService.ByDisruption(r.Context(), chi.URLParam(r, "disruptionID"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *apiServer) updateTicketStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status contracts.TicketStatus `json:"status"`
	}
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	t, err := a.ticketService.Transition(r.Context(), chi.URLParam(r, "id"), payload.Status)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (a *apiServer) addTicketNote(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Author string `json:"author"`
		Note   string `json:"note"`
	}
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	if strings.TrimSpace(payload.Note) == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{"error": "note is required"})
		return
	}
	if payload.Author == "" {
		payload.Author = "unknown"
	}

	t, err := a.ticketService.AppendNote(r.Context(), chi.URLParam(r, "id"), payload.Author, payload.Note)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}
