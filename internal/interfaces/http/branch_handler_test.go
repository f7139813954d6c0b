package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/catalog"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	apphttp "github.com/tu-usuario/retail-pos/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// memBranchRepo repo en memoria para ejercitar el handler de punta a punta
// (handler → caso de uso → repo) sin base de datos.
type memBranchRepo struct {
	branches map[string]entity.Branch
	products map[string]string // productID -> branchID
}

func newMemBranchRepo() *memBranchRepo {
	return &memBranchRepo{
		branches: make(map[string]entity.Branch),
		products: make(map[string]string),
	}
}

func (r *memBranchRepo) Create(b *entity.Branch) error {
	r.branches[b.ID] = *b
	return nil
}

func (r *memBranchRepo) GetByID(id string) (*entity.Branch, error) {
	if b, ok := r.branches[id]; ok {
		out := b
		return &out, nil
	}
	return nil, nil
}

func (r *memBranchRepo) Update(b *entity.Branch) error {
	r.branches[b.ID] = *b
	return nil
}

func (r *memBranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	out := make([]*entity.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		cp := b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memBranchRepo) Delete(id string) error {
	delete(r.branches, id)
	return nil
}

func (r *memBranchRepo) CountProducts(id string) (int64, error) {
	var n int64
	for _, branchID := range r.products {
		if branchID == id {
			n++
		}
	}
	return n, nil
}

// buildBranchApp monta solo las rutas de sucursales sobre el repo dado.
func buildBranchApp(repo *memBranchRepo) *fiber.App {
	app := fiber.New()
	h := apphttp.NewBranchHandler(catalog.NewBranchUseCase(repo))
	g := app.Group("/api/branches")
	g.Post("/", h.Create)
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del handler de sucursales
// ──────────────────────────────────────────────────────────────────────────────

func TestBranchHandler_CreateRetorna201(t *testing.T) {
	app := buildBranchApp(newMemBranchRepo())

	resp := doJSON(t, app, http.MethodPost, "/api/branches/",
		`{"name":"Sucursal Centro","location":"Av. Principal 123","contact_number":"555-0100"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.BranchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.ID, "el servidor asigna el id")
	assert.Equal(t, "Sucursal Centro", body.Name)
	assert.Equal(t, "Av. Principal 123", body.Location)
}

func TestBranchHandler_CreateSinNombreRetorna400(t *testing.T) {
	app := buildBranchApp(newMemBranchRepo())

	resp := doJSON(t, app, http.MethodPost, "/api/branches/", `{"location":"donde sea"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "VALIDATION")
	assert.Contains(t, string(raw), "name", "el error identifica el campo")
}

func TestBranchHandler_GetInexistenteRetorna404(t *testing.T) {
	app := buildBranchApp(newMemBranchRepo())

	resp := doJSON(t, app, http.MethodGet, "/api/branches/no-existe", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

func TestBranchHandler_CicloCompleto(t *testing.T) {
	app := buildBranchApp(newMemBranchRepo())

	// Crear
	resp := doJSON(t, app, http.MethodPost, "/api/branches/", `{"name":"Sucursal Norte"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.BranchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	// Actualizar
	resp = doJSON(t, app, http.MethodPut, "/api/branches/"+created.ID,
		`{"name":"Sucursal Norte Renovada","location":"Calle 2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated dto.BranchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()
	assert.Equal(t, "Sucursal Norte Renovada", updated.Name)

	// Obtener refleja el cambio
	resp = doJSON(t, app, http.MethodGet, "/api/branches/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched dto.BranchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	resp.Body.Close()
	assert.Equal(t, "Sucursal Norte Renovada", fetched.Name)

	// Borrar y verificar el 404 posterior
	resp = doJSON(t, app, http.MethodDelete, "/api/branches/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/branches/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBranchHandler_DeleteConProductosRetorna409(t *testing.T) {
	repo := newMemBranchRepo()
	app := buildBranchApp(repo)

	resp := doJSON(t, app, http.MethodPost, "/api/branches/", `{"name":"Sucursal Sur"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.BranchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	// Sucursal con un producto asignado: la integridad referencial la protege
	repo.products["prod-1"] = created.ID

	resp = doJSON(t, app, http.MethodDelete, "/api/branches/"+created.ID, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "CONFLICT")
}
