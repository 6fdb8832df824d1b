package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/coverply/warranty-admin/internal/models"
	"github.com/coverply/warranty-admin/internal/repo"
	"github.com/coverply/warranty-admin/internal/service"
	"github.com/coverply/warranty-admin/internal/transport"
)

type testEnv struct {
	T *testing.T
	E *echo.Echo
	H *DefinitionHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.WarrantyDefinition{},
		&models.ProductAssociation{},
		&models.Product{},
		&models.Collection{},
	))

	r := &repo.GormRepo{DB: db}
	svc := &service.DefinitionService{
		Repo:    r,
		Catalog: &service.CatalogService{Repo: r},
	}

	return &testEnv{
		T: t,
		E: echo.New(),
		H: &DefinitionHTTP{Svc: svc},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func validPayload() transport.RawDefinitionInput {
	return transport.RawDefinitionInput{
		Name:            "12mo Electronics",
		DurationMonths:  "12",
		Price:           "9.99",
		PriceType:       "FIXED_AMOUNT",
		AssociationType: "ALL_PRODUCTS",
	}
}

func (env *testEnv) createDefinition(t *testing.T) models.WarrantyDefinition {
	t.Helper()

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/warranties", validPayload())
	require.NoError(t, env.H.CreateDefinition(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var def models.WarrantyDefinition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &def))
	return def
}

func TestCreateDefinition(t *testing.T) {
	env := newTestEnv(t)

	def := env.createDefinition(t)
	require.NotZero(t, def.ID)
	require.Equal(t, "12mo Electronics", def.Name)
	require.EqualValues(t, 999, def.Price)
}

func TestCreateDefinition_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	payload := validPayload()
	payload.Name = ""
	payload.DurationMonths = "zero"

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/warranties", payload)
	require.NoError(t, env.H.CreateDefinition(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp transport.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Fields, "name")
	require.Contains(t, resp.Fields, "duration_months")
}

func TestGetDefinition(t *testing.T) {
	env := newTestEnv(t)
	def := env.createDefinition(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/warranties/"+strconv.Itoa(int(def.ID)), nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(def.ID)))
	require.NoError(t, env.H.GetDefinition(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.WarrantyDefinition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, def.ID, got.ID)
}

func TestGetDefinition_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/warranties/42", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := env.H.GetDefinition(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestPatchDefinition(t *testing.T) {
	env := newTestEnv(t)
	def := env.createDefinition(t)

	payload := validPayload()
	payload.Name = "24mo Electronics"
	payload.DurationMonths = "24"

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/warranties/1", payload)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(def.ID)))
	require.NoError(t, env.H.PatchDefinition(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.WarrantyDefinition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "24mo Electronics", got.Name)
	require.Equal(t, 24, got.DurationMonths)
}

func TestPatchDefinition_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPatch, "/api/v1/warranties/42", validPayload())
	c.SetParamNames("id")
	c.SetParamValues("42")

	err := env.H.PatchDefinition(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteDefinition(t *testing.T) {
	env := newTestEnv(t)
	def := env.createDefinition(t)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/warranties/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(def.ID)))
	require.NoError(t, env.H.DeleteDefinition(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, c2 := env.doJSONRequest(http.MethodDelete, "/api/v1/warranties/1", nil)
	c2.SetParamNames("id")
	c2.SetParamValues(strconv.Itoa(int(def.ID)))

	err := env.H.DeleteDefinition(c2)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestListDefinitions(t *testing.T) {
	env := newTestEnv(t)
	env.createDefinition(t)
	env.createDefinition(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/warranties", nil)
	require.NoError(t, env.H.ListDefinitions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []transport.DefinitionResponse `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, 2, resp.Meta.Total)
	require.Equal(t, 9.99, resp.Data[0].Price)
}

func TestCreateDefinition_BadID(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/warranties/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := env.H.GetDefinition(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	require.Equal(t, http.StatusBadRequest, he.Code)
}
