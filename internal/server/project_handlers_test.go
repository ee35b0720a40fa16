package server

import (
	"net/http"
	"testing"

	"verdant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectLifecycle(t *testing.T) {
	s, app, db := newTestServer(t)
	admin := seedAdmin(t, db)
	adminToken := tokenFor(t, s, admin.ID)

	// Create with two images, none marked primary.
	resp, err := app.Test(withSession(jsonRequest(t, http.MethodPost, "/api/projects",
		map[string]any{
			"title":          "Campus Solar Array",
			"summary":        "Rooftop photovoltaics",
			"department":     "Facilities",
			"budget":         250000,
			"co2_saved_tons": 120,
			"images": []map[string]any{
				{"url": "https://cdn.example.com/a.jpg"},
				{"url": "https://cdn.example.com/b.jpg"},
			},
		}), adminToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Project models.Project `json:"project"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "campus-solar-array", created.Project.Slug)
	require.Len(t, created.Project.Images, 2)

	primaries := 0
	for _, img := range created.Project.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries, "exactly one image must be primary")

	// Publish it so the public can see it.
	resp, err = app.Test(withSession(jsonRequest(t, http.MethodPut,
		"/api/projects/"+itoa(created.Project.ID),
		map[string]string{"status": "published"}), adminToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/projects/campus-solar-array", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched struct {
		Project models.Project `json:"project"`
	}
	decodeBody(t, resp, &fetched)
	assert.Equal(t, float64(250000), fetched.Project.Budget)

	// Replace images with a set that double-marks primary.
	resp, err = app.Test(withSession(jsonRequest(t, http.MethodPut,
		"/api/projects/"+itoa(created.Project.ID),
		map[string]any{
			"images": []map[string]any{
				{"url": "https://cdn.example.com/new-1.jpg", "is_primary": true},
				{"url": "https://cdn.example.com/new-2.jpg", "is_primary": true},
			},
		}), adminToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Project models.Project `json:"project"`
	}
	decodeBody(t, resp, &updated)
	require.Len(t, updated.Project.Images, 2)
	primaries = 0
	for _, img := range updated.Project.Images {
		if img.IsPrimary {
			primaries++
			assert.Equal(t, "https://cdn.example.com/new-1.jpg", img.URL)
		}
	}
	assert.Equal(t, 1, primaries)

	// Delete.
	resp, err = app.Test(withSession(jsonRequest(t, http.MethodDelete,
		"/api/projects/"+itoa(created.Project.ID), nil), adminToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/projects/campus-solar-array", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestProjectVisibility(t *testing.T) {
	s, app, db := newTestServer(t)
	admin := seedAdmin(t, db)

	draft := &models.Project{
		Title:    "Stealth Initiative",
		Slug:     "stealth-initiative",
		Status:   models.PostStatusDraft,
		AuthorID: admin.ID,
	}
	require.NoError(t, db.Create(draft).Error)

	// Hidden from the public.
	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/projects/stealth-initiative", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	// Visible to admins.
	resp, err = app.Test(withSession(
		jsonRequest(t, http.MethodGet, "/api/projects/stealth-initiative", nil),
		tokenFor(t, s, admin.ID)))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestProjectValidation(t *testing.T) {
	s, app, db := newTestServer(t)
	admin := seedAdmin(t, db)
	adminToken := tokenFor(t, s, admin.ID)

	resp, err := app.Test(withSession(jsonRequest(t, http.MethodPost, "/api/projects",
		map[string]any{
			"title":  "Negative Budget",
			"budget": -5,
		}), adminToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(withSession(jsonRequest(t, http.MethodPost, "/api/projects",
		map[string]any{"title": "???"}), adminToken))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}
