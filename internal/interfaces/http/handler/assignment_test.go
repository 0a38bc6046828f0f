package handler

import (
	"net/http"
	"testing"

	appgeo "github.com/gestor/backend/internal/application/geo"
	"github.com/gestor/backend/internal/domain/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, env *testEnv) appgeo.SessionView {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/v1/geo/assignments", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var view appgeo.SessionView
	decodeData(t, w, &view)
	require.Equal(t, appgeo.SessionIdle, view.State)
	return view
}

func TestAssignmentClickToPlace(t *testing.T) {
	env := newTestEnv(t)
	env.reconcile(t)
	session := openSession(t, env)
	base := "/api/v1/geo/assignments/" + session.ID.String()

	t.Run("click before arming conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, base+"/click", map[string]float64{"lat": -25.54, "lng": -54.58})
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ERR_INVALID_STATE", errorCode(t, w))
	})

	t.Run("arm then click locates with a suggestion", func(t *testing.T) {
		w := env.do(t, http.MethodPost, base+"/arm-click", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var armed appgeo.SessionView
		decodeData(t, w, &armed)
		assert.Equal(t, appgeo.SessionAwaitingClick, armed.State)

		// inside the Centro boundary
		w = env.do(t, http.MethodPost, base+"/click", map[string]float64{"lat": -25.5400, "lng": -54.5820})
		require.Equal(t, http.StatusOK, w.Code)

		var located appgeo.SessionView
		decodeData(t, w, &located)
		assert.Equal(t, appgeo.SessionLocated, located.State)
		require.NotNil(t, located.Point)
		require.NotNil(t, located.Suggestion)
		assert.Equal(t, "R02", located.Suggestion.Code)
		assert.Equal(t, "Centro", located.Suggestion.Name)
	})

	t.Run("confirm with the suggestion creates the point", func(t *testing.T) {
		w := env.do(t, http.MethodPost, base+"/confirm", map[string]any{
			"name":              "Feira da Praça",
			"neighborhood_name": "Centro",
			"use_suggestion":    true,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var point appgeo.MarketPointView
		decodeData(t, w, &point)
		require.NotNil(t, point.RegionID)
		assert.Equal(t, env.regionIDByName(t, "Centro"), *point.RegionID)

		get := env.do(t, http.MethodGet, base, nil)
		var view appgeo.SessionView
		decodeData(t, get, &view)
		assert.Equal(t, appgeo.SessionCommitted, view.State)
	})
}

func TestAssignmentExplicitRegionOverridesSuggestion(t *testing.T) {
	env := newTestEnv(t)
	env.reconcile(t)
	session := openSession(t, env)
	base := "/api/v1/geo/assignments/" + session.ID.String()

	env.do(t, http.MethodPost, base+"/arm-click", nil)
	w := env.do(t, http.MethodPost, base+"/click", map[string]float64{"lat": -25.5400, "lng": -54.5820})
	require.Equal(t, http.StatusOK, w.Code)

	overrideID := env.regionIDByName(t, "Zona Rural")
	w = env.do(t, http.MethodPost, base+"/confirm", map[string]any{
		"name":      "Armazém da Estrada",
		"region_id": overrideID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var point appgeo.MarketPointView
	decodeData(t, w, &point)
	require.NotNil(t, point.RegionID)
	assert.Equal(t, overrideID, *point.RegionID)
}

func TestAssignmentGeocode(t *testing.T) {
	env := newTestEnv(t)
	env.reconcile(t)

	t.Run("success locates the session", func(t *testing.T) {
		session := openSession(t, env)
		base := "/api/v1/geo/assignments/" + session.ID.String()

		env.geocoder.result = &geo.GeocodingResult{
			Coordinate:  geo.Coordinate{Lat: -25.5405, Lng: -54.5818},
			DisplayName: "Avenida Brasil, Centro, Foz do Iguaçu",
		}

		w := env.do(t, http.MethodPost, base+"/geocode", map[string]string{
			"street": "Avenida Brasil",
			"number": "1234",
			"city":   "Foz do Iguaçu",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var view appgeo.SessionView
		decodeData(t, w, &view)
		assert.Equal(t, appgeo.SessionLocated, view.State)
		require.NotNil(t, view.Point)
		assert.Equal(t, "Avenida Brasil, Centro, Foz do Iguaçu", view.DisplayName)
		require.NotNil(t, view.Suggestion)
		assert.Equal(t, "Centro", view.Suggestion.Name)
	})

	t.Run("failure leaves no coordinate", func(t *testing.T) {
		session := openSession(t, env)
		base := "/api/v1/geo/assignments/" + session.ID.String()

		env.geocoder.result = nil
		env.geocoder.err = geo.ErrAddressNotFound

		w := env.do(t, http.MethodPost, base+"/geocode", map[string]string{
			"street": "Rua Inexistente",
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "ERR_GEOCODE_FAILED", errorCode(t, w))

		get := env.do(t, http.MethodGet, base, nil)
		var view appgeo.SessionView
		decodeData(t, get, &view)
		assert.Equal(t, appgeo.SessionLocateFailed, view.State)
		assert.Nil(t, view.Point)

		// confirm in this state conflicts
		confirm := env.do(t, http.MethodPost, base+"/confirm", map[string]any{"name": "Qualquer"})
		assert.Equal(t, http.StatusConflict, confirm.Code)
	})
}

func TestAssignmentClose(t *testing.T) {
	env := newTestEnv(t)
	session := openSession(t, env)
	base := "/api/v1/geo/assignments/" + session.ID.String()

	w := env.do(t, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	get := env.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusNotFound, get.Code)
	assert.Equal(t, "ERR_SESSION_NOT_FOUND", errorCode(t, get))
}

func TestAssignmentUnknownSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/geo/assignments/"+uuid.NewString()+"/arm-click", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_SESSION_NOT_FOUND", errorCode(t, w))
}
