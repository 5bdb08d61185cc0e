package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/application/usecase"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
	apphttp "github.com/multisoat/certificados-api/internal/interfaces/http"
	pkgjwt "github.com/multisoat/certificados-api/pkg/jwt"
)

// fakeProveedorRepoHTTP repositorio en memoria para ejercitar las rutas CRUD.
type fakeProveedorRepoHTTP struct {
	filas map[int64]*entity.Proveedor
}

var _ repository.ProveedorRepository = (*fakeProveedorRepoHTTP)(nil)

func (f *fakeProveedorRepoHTTP) Create(_ context.Context, p *entity.Proveedor) error {
	p.ID = int64(len(f.filas) + 1)
	cp := *p
	f.filas[p.ID] = &cp
	return nil
}

func (f *fakeProveedorRepoHTTP) GetByID(_ context.Context, id int64) (*entity.Proveedor, error) {
	p, ok := f.filas[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProveedorRepoHTTP) List(_ context.Context, _ repository.FiltroEntidad, _, _ int) ([]*entity.Proveedor, int, error) {
	out := make([]*entity.Proveedor, 0, len(f.filas))
	for _, p := range f.filas {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeProveedorRepoHTTP) Update(_ context.Context, p *entity.Proveedor) error {
	cp := *p
	f.filas[p.ID] = &cp
	return nil
}

func (f *fakeProveedorRepoHTTP) ExistsByDocumento(_ context.Context, numero string, excludeID *int64) (bool, error) {
	for _, p := range f.filas {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if p.NumeroDocumento == numero {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProveedorRepoHTTP) ExistsByEmail(_ context.Context, email string, excludeID *int64) (bool, error) {
	for _, p := range f.filas {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func seedProveedor(repo *fakeProveedorRepoHTTP, id int64, numeroDocumento, email string) {
	razon := "Aseguradora " + numeroDocumento
	repo.filas[id] = &entity.Proveedor{
		ID:              id,
		TipoDocumento:   entity.DocumentoRUC,
		NumeroDocumento: numeroDocumento,
		RazonSocial:     &razon,
		Email:           email,
		Estado:          entity.EstadoActivo,
	}
}

func buildCRUDApp(repo *fakeProveedorRepoHTTP) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProveedorUC: usecase.NewProveedorUseCase(repo),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func doAuthJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "PROVEEDOR_ADMIN", testIssuer, testExpMin)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) dto.APIResponse {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env dto.APIResponse
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestRouter_PutActualizaProveedor(t *testing.T) {
	repo := &fakeProveedorRepoHTTP{filas: map[int64]*entity.Proveedor{}}
	seedProveedor(repo, 1, "20100070970", "contacto@rimac.pe")
	app := buildCRUDApp(repo)

	resp := doAuthJSON(t, app, http.MethodPut, "/api/proveedores/1", `{"nombre":"Rimac Seguros"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	require.NotNil(t, repo.filas[1].Nombre)
	assert.Equal(t, "Rimac Seguros", *repo.filas[1].Nombre)
}

func TestRouter_PatchSigueDisponibleParaActualizar(t *testing.T) {
	repo := &fakeProveedorRepoHTTP{filas: map[int64]*entity.Proveedor{}}
	seedProveedor(repo, 1, "20100070970", "contacto@rimac.pe")
	app := buildCRUDApp(repo)

	resp := doAuthJSON(t, app, http.MethodPatch, "/api/proveedores/1", `{"nombre":"Rimac Seguros"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_DocumentoDuplicadoResponde400(t *testing.T) {
	repo := &fakeProveedorRepoHTTP{filas: map[int64]*entity.Proveedor{}}
	seedProveedor(repo, 1, "20100070970", "contacto@rimac.pe")
	seedProveedor(repo, 2, "20123456789", "contacto@pacifico.pe")
	app := buildCRUDApp(repo)

	resp := doAuthJSON(t, app, http.MethodPut, "/api/proveedores/1", `{"numero_documento":"20123456789"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "ya existe")
}

func TestRouter_EmailDuplicadoResponde400(t *testing.T) {
	repo := &fakeProveedorRepoHTTP{filas: map[int64]*entity.Proveedor{}}
	seedProveedor(repo, 1, "20100070970", "contacto@rimac.pe")
	seedProveedor(repo, 2, "20123456789", "contacto@pacifico.pe")
	app := buildCRUDApp(repo)

	resp := doAuthJSON(t, app, http.MethodPut, "/api/proveedores/1", `{"email":"contacto@pacifico.pe"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "email")
}
