package transport

import (
	"net/http"
	"strconv"

	"maison-be/internal/activitylog"
	"maison-be/internal/analytics"
	"maison-be/internal/utils"
)

type AdminHandler struct {
	analytics analytics.Repository
	logs      activitylog.Service
}

func NewAdminHandler(analyticsRepo analytics.Repository, logs activitylog.Service) *AdminHandler {
	return &AdminHandler{analytics: analyticsRepo, logs: logs}
}

func (h *AdminHandler) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Summary(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *AdminHandler) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := activitylog.ListFilter{
		Action: q.Get("action"),
	}
	if v := q.Get("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.UserID = &id
		}
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}

	entries, err := h.logs.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, entries)
}
