package stats

import (
	"encoding/json"
	"net/http"
	"strings"

	"campus-dashboard/internal/domain/ownership"
	"campus-dashboard/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/dashboard/stats", func(sr chi.Router) {
		sr.Get("/", getStatsHandler(svc))
		sr.Get("/state", getStateHandler(svc))
	})
}

// stateResponse es el estado publicado del dashboard del actor.
type stateResponse struct {
	State State    `json:"state" enums:"idle,loading,ready,failed"`
	Stats Snapshot `json:"stats"`
}

// getStatsHandler godoc
// @Summary Estadísticas del dashboard de faculty
// @Description Corre un ciclo completo: trae cursos, anuncios y eventos del backend del campus, se queda con los del usuario autenticado y devuelve los conteos. Si alguna colección falla o llega malformada, todos los valores vuelven en 0 (no hay éxito parcial). Autenticación: `X-Debug-User-ID` / `X-Debug-Username` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del usuario"
// @Param X-Debug-Username header string false "Solo en modo dev, username del usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} Snapshot
// @Failure 401 {string} string "unauthorized"
// @Router /me/dashboard/stats [get]
func getStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, svc.ComputeStats(r.Context(), actor))
	}
}

// getStateHandler godoc
// @Summary Estado del último ciclo de estadísticas
// @Description Devuelve el estado publicado (idle, loading, ready, failed) y el snapshot asociado, sin disparar un ciclo nuevo. Mientras un ciclo está en curso el estado es `loading` y los valores están en 0.
// @Tags dashboard
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID del usuario"
// @Param X-Debug-Username header string false "Solo en modo dev, username del usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} stateResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/dashboard/stats/state [get]
func getStateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		st, snap := svc.State(actor)
		writeJSON(w, http.StatusOK, stateResponse{State: st, Stats: snap})
	}
}

func actorFromRequest(r *http.Request) (ownership.Actor, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		return ownership.Actor{}, false
	}
	id := strings.TrimSpace(claims.UserID)
	username := strings.TrimSpace(claims.Username)
	if id == "" && username == "" {
		return ownership.Actor{}, false
	}
	return ownership.Actor{ID: id, Username: username}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
