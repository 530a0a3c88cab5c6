package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"respawn-map-service/internal/adapters/location"
	"respawn-map-service/internal/api/dto"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/platform/obs"
	"respawn-map-service/internal/services"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var errBadCenter = errors.New("lat and lon must be finite numbers")

// Query parameters that make up the page state; anything else is dropped.
var pageParams = []string{
	services.ParamLat,
	services.ParamLon,
	services.ParamRespawnName,
	services.ParamRespawnLat,
	services.ParamRespawnLon,
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps user-facing refusals to client errors and logs the
// rest as internal failures.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinates):
		writeError(w, r, http.StatusBadRequest, domain.ErrInvalidCoordinates.Error())
	case errors.Is(err, domain.ErrIndexOutOfRange):
		writeError(w, r, http.StatusNotFound, domain.ErrIndexOutOfRange.Error())
	case errors.Is(err, domain.ErrLastRespawnPoint):
		writeError(w, r, http.StatusConflict, domain.ErrLastRespawnPoint.Error())
	case errors.Is(err, services.ErrLocateBusy):
		writeError(w, r, http.StatusConflict, services.ErrLocateBusy.Error())
	case errors.Is(err, services.ErrLocateUnsupported):
		writeError(w, r, http.StatusServiceUnavailable, services.ErrLocateUnsupported.Error())
	case errors.Is(err, services.ErrLocationUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, services.ErrLocationUnavailable.Error())
	default:
		log.Error().Err(err).Str("req_id", obs.RequestID(r.Context())).Msg(op + " failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// pageFromRequest rebuilds the client's page address from the public URL and
// the page-state query parameters of r.
func pageFromRequest(publicURL string, r *http.Request) (*location.Page, error) {
	base, err := url.Parse(publicURL)
	if err != nil {
		return nil, fmt.Errorf("parse public url: %w", err)
	}

	in := r.URL.Query()
	q := url.Values{}
	for _, k := range pageParams {
		if v := in.Get(k); v != "" {
			q.Set(k, v)
		}
	}
	base.RawQuery = q.Encode()
	return location.NewPage(base.String())
}

// centerFromRequest reads lat and lon, defaulting to the initial map view
// when both are absent.
func centerFromRequest(r *http.Request) (domain.LatLng, error) {
	q := r.URL.Query()
	rawLat, rawLng := q.Get(services.ParamLat), q.Get(services.ParamLon)
	if rawLat == "" && rawLng == "" {
		return domain.DefaultCenter, nil
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(rawLng), 64)
	c := domain.LatLng{Lat: lat, Lng: lng}
	if errLat != nil || errLng != nil || !c.Valid() {
		return domain.LatLng{}, errBadCenter
	}
	return c, nil
}

func settingsFromRequest(r *http.Request) domain.SettingsInput {
	q := r.URL.Query()
	return domain.SettingsInput{Precision: q.Get("pre"), Exponent: q.Get("exp")}
}

func indexParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "idx"))
}

// formValue renders a JSON number or string as the text a form field holds.
func formValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func toLatLng(c domain.LatLng) dto.LatLng {
	return dto.LatLng{Lat: c.Lat, Lng: c.Lng}
}

func toViewResponse(v domain.View, pageURL string) dto.ViewResponse {
	res := dto.ViewResponse{
		Mode:   string(v.Mode),
		Text:   v.Text,
		Center: toLatLng(v.Center),
		URL:    pageURL,
	}
	if v.Respawn != nil {
		ref := toLatLng(*v.Respawn)
		res.Respawn = &ref
	}
	if v.Delta != nil {
		res.Delta = &dto.DeltaResponse{DY: v.Delta.DY, DX: v.Delta.DX}
		dist := v.DistanceKm
		res.DistanceKm = &dist
	}
	return res
}
