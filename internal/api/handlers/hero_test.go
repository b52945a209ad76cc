package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/hero-draft-assistant/internal/api/handlers"
	"github.com/dom/hero-draft-assistant/internal/domain"
	"github.com/dom/hero-draft-assistant/internal/service"
	"github.com/dom/hero-draft-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeroHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "new hero with roles",
			body: handlers.CreateHeroRequest{
				Name:    "Bolt Baron",
				Classes: []string{"Warrior"},
				Image:   "https://img.example.com/heroes/bolt.png",
				Roles:   []domain.RoleTag{domain.RoleSlayer},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var view service.HeroView
				testutil.AssertJSONResponse(t, resp, &view)
				assert.Equal(t, "Bolt Baron", view.Name)
				assert.Equal(t, []string{"Warrior"}, view.Classes)
				assert.Equal(t, []domain.RoleTag{domain.RoleSlayer}, view.Roles)
			},
		},
		{
			name:           "duplicate name",
			body:           handlers.CreateHeroRequest{Name: "Bolt Baron"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing name",
			body:           handlers.CreateHeroRequest{Classes: []string{"Mage"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown role",
			body:           handlers.CreateHeroRequest{Name: "Erin", Roles: []domain.RoleTag{"Jungle"}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/heroes"), tt.body)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestHeroHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedHeroes(t, ts, "Zata", "Airi", "Tulen")

	resp, err := http.Get(ts.APIURL("/heroes"))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result handlers.HeroesResponse
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &result)

	require.Len(t, result.Heroes, 3)
	assert.Equal(t, "Airi", result.Heroes[0].Name)
	assert.Equal(t, "Zata", result.Heroes[2].Name)
	assert.Equal(t, []domain.RoleTag{domain.RoleSupport}, result.Heroes[0].Roles)
	assert.Contains(t, result.Roles[domain.RoleMid], "Tulen")
}

func TestHeroHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedHeroes(t, ts, "Tulen")

	tests := []struct {
		name           string
		hero           string
		expectedStatus int
	}{
		{name: "existing hero", hero: "Tulen", expectedStatus: http.StatusOK},
		{name: "unknown hero", hero: "Nobody", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.APIURL("/heroes/" + tt.hero))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusOK {
				var view service.HeroView
				testutil.AssertJSONResponse(t, resp, &view)
				assert.Equal(t, testutil.HeroImageURL("Tulen"), view.Image)
			}
		})
	}
}

func TestHeroHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedHeroes(t, ts, "Tulen", "Zata")

	newName := "Tulen Prime"
	image := "https://img.example.com/custom/tulen.png"
	roles := []domain.RoleTag{domain.RoleMid, domain.RoleSupport}

	resp := testutil.DoJSON(t, http.MethodPut, ts.APIURL("/heroes/Tulen"), service.HeroUpdate{
		Name:  &newName,
		Image: &image,
		Roles: &roles,
	})
	defer resp.Body.Close()

	var view service.HeroView
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	testutil.AssertJSONResponse(t, resp, &view)
	assert.Equal(t, newName, view.Name)
	assert.Equal(t, image, view.Image)
	assert.ElementsMatch(t, roles, view.Roles)

	tests := []struct {
		name           string
		hero           string
		body           service.HeroUpdate
		expectedStatus int
	}{
		{name: "old name is gone", hero: "Tulen", body: service.HeroUpdate{Image: &image}, expectedStatus: http.StatusNotFound},
		{name: "rename onto existing hero", hero: "Zata", body: service.HeroUpdate{Name: &newName}, expectedStatus: http.StatusConflict},
		{name: "bad role", hero: "Zata", body: service.HeroUpdate{Roles: &[]domain.RoleTag{"Jungle"}}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.DoJSON(t, http.MethodPut, ts.APIURL("/heroes/"+tt.hero), tt.body)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestHeroHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.SeedHeroes(t, ts, "Tulen")

	resp := testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/heroes/Tulen"), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/heroes/Tulen"), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.NotContains(t, ts.Services.Catalog.Roles()[domain.RoleMid], "Tulen")
}
