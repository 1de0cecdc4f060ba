package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/service"
	"go-ticket-tracker/pkg/apierror"
)

type TicketHandler struct {
	service *service.TicketService
}

func NewTicketHandler(service *service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := parsePositiveInt(query.Get("page"), "page")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := parsePositiveInt(query.Get("limit"), "limit")
	if err != nil {
		writeError(w, err)
		return
	}

	result, filter, err := h.service.List(r.Context(), model.TicketFilter{
		Project: strings.TrimSpace(query.Get("project")),
		User:    strings.TrimSpace(query.Get("user")),
		Status:  strings.ToLower(strings.TrimSpace(query.Get("status"))),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result.Tickets, model.NewMeta(filter.Page, filter.Limit, len(result.Tickets), result.Total))
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, ticket, nil)
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CreateTicketRequest
	if err := decodeJSON(r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	ticket, err := h.service.Create(r.Context(), actor, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, ticket, nil)
}

func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.UpdateTicketRequest
	if err := decodeJSON(r, &payload, false); err != nil {
		writeError(w, err)
		return
	}

	ticket, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, ticket, nil)
}

func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id")}, nil)
}

func parsePositiveInt(raw string, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, apierror.BadRequest(field+" must be a positive integer", raw)
	}
	return v, nil
}
