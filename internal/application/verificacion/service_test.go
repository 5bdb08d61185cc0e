package verificacion

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
	"github.com/multisoat/certificados-api/pkg/logger"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeUsuarios struct {
	porEmail map[string]*entity.Usuario
	porDoc   map[string]*entity.Usuario
	fail     error
}

func (f *fakeUsuarios) GetByID(_ context.Context, id int64) (*entity.Usuario, error) {
	for _, u := range f.porEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsuarios) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.porEmail[email], nil
}

func (f *fakeUsuarios) GetByDocumento(_ context.Context, tipo entity.TipoDocumento, numero string) (*entity.Usuario, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return f.porDoc[string(tipo)+":"+numero], nil
}

func (f *fakeUsuarios) CreatePendiente(_ context.Context, u *entity.Usuario) (int64, error) {
	return 0, fmt.Errorf("no usado")
}

func (f *fakeUsuarios) ExistsByEmail(_ context.Context, email string, _ *int64) (bool, error) {
	if f.fail != nil {
		return false, f.fail
	}
	_, ok := f.porEmail[email]
	return ok, nil
}

func (f *fakeUsuarios) ExistsByDocumento(_ context.Context, tipo entity.TipoDocumento, numero string, _ *int64) (bool, error) {
	if f.fail != nil {
		return false, f.fail
	}
	_, ok := f.porDoc[string(tipo)+":"+numero]
	return ok, nil
}

type fakeUsuarioRoles struct {
	porUsuario map[int64][]entity.RolAsignado
}

func (f *fakeUsuarioRoles) Create(_ context.Context, _ *entity.UsuarioRol) error { return nil }

func (f *fakeUsuarioRoles) ListActivosByUsuario(_ context.Context, idUsuario int64) ([]entity.RolAsignado, error) {
	return f.porUsuario[idUsuario], nil
}

func (f *fakeUsuarioRoles) ExistsActivo(_ context.Context, idUsuario int64, tipo entity.TipoEntidad, idEntidad int64) (bool, error) {
	for _, a := range f.porUsuario[idUsuario] {
		if a.TipoEntidad == tipo && a.IDEntidad == idEntidad {
			return true, nil
		}
	}
	return false, nil
}

type claveResumen struct {
	tipo entity.TipoEntidad
	id   int64
}

type fakeEntidades struct {
	resumenes map[claveResumen]*entity.EntidadResumen
	porDoc    map[string]*entity.EntidadResumen
}

func (f *fakeEntidades) ExistsByNumeroDocumento(_ context.Context, _ entity.TipoEntidad, _ string) (bool, error) {
	return false, nil
}

func (f *fakeEntidades) FindByNumeroDocumento(_ context.Context, _ entity.TipoEntidad, _ string) (*entity.EntidadResumen, error) {
	return nil, nil
}

func (f *fakeEntidades) FindByDocumento(_ context.Context, t entity.TipoEntidad, tipo entity.TipoDocumento, numero string) (*entity.EntidadResumen, error) {
	return f.porDoc[string(t)+":"+string(tipo)+":"+numero], nil
}

func (f *fakeEntidades) GetResumen(_ context.Context, tipo entity.TipoEntidad, id int64) (*entity.EntidadResumen, error) {
	return f.resumenes[claveResumen{tipo, id}], nil
}

func (f *fakeEntidades) Create(_ context.Context, _ *entity.RegistroEntidad) (int64, error) {
	return 0, fmt.Errorf("no usado")
}

func (f *fakeEntidades) UpdateEstado(_ context.Context, _ entity.TipoEntidad, _ int64, _ string, _ entity.Auditoria) error {
	return nil
}

var _ repository.UsuarioRepository = (*fakeUsuarios)(nil)
var _ repository.UsuarioRolRepository = (*fakeUsuarioRoles)(nil)
var _ repository.EntidadRepository = (*fakeEntidades)(nil)

func newService(usuarios *fakeUsuarios, roles *fakeUsuarioRoles, entidades *fakeEntidades) *Service {
	if usuarios.porEmail == nil {
		usuarios.porEmail = map[string]*entity.Usuario{}
	}
	if usuarios.porDoc == nil {
		usuarios.porDoc = map[string]*entity.Usuario{}
	}
	if roles.porUsuario == nil {
		roles.porUsuario = map[int64][]entity.RolAsignado{}
	}
	if entidades.resumenes == nil {
		entidades.resumenes = map[claveResumen]*entity.EntidadResumen{}
	}
	if entidades.porDoc == nil {
		entidades.porDoc = map[string]*entity.EntidadResumen{}
	}
	return New(usuarios, roles, entidades, logger.Nop())
}

// ── CheckEmailAccess ──────────────────────────────────────────────────────────

func TestCheckEmailAccess_EmailInvalido(t *testing.T) {
	svc := newService(&fakeUsuarios{}, &fakeUsuarioRoles{}, &fakeEntidades{})

	info := svc.CheckEmailAccess(context.Background(), "no-es-un-email")

	assert.False(t, info.HasAccess)
	assert.Equal(t, "Email inválido", info.Message)
	assert.NotNil(t, info.Entities)
}

func TestCheckEmailAccess_NoRegistrado(t *testing.T) {
	svc := newService(&fakeUsuarios{}, &fakeUsuarioRoles{}, &fakeEntidades{})

	info := svc.CheckEmailAccess(context.Background(), "nadie@correo.pe")

	assert.False(t, info.HasAccess)
	assert.Nil(t, info.User)
	assert.Equal(t, "Email no registrado en el sistema", info.Message)
}

func TestCheckEmailAccess_UsuarioConEntidadesYRolesAgrupados(t *testing.T) {
	nombre := "Bodega Central"
	usuarios := &fakeUsuarios{porEmail: map[string]*entity.Usuario{
		"duena@correo.pe": {ID: 7, Email: "duena@correo.pe", Estado: entity.UsuarioActivo},
	}}
	roles := &fakeUsuarioRoles{porUsuario: map[int64][]entity.RolAsignado{
		7: {
			{TipoEntidad: entity.EntidadPuntoVenta, IDEntidad: 3, RolCodigo: entity.RolPuntoVentaAdmin},
			{TipoEntidad: entity.EntidadPuntoVenta, IDEntidad: 3, RolCodigo: entity.RolPuntoVentaOperador},
			{TipoEntidad: entity.EntidadProveedor, IDEntidad: 1, RolCodigo: entity.RolProveedorOperador},
		},
	}}
	entidades := &fakeEntidades{resumenes: map[claveResumen]*entity.EntidadResumen{
		{entity.EntidadPuntoVenta, 3}: {ID: 3, Tipo: entity.EntidadPuntoVenta, Nombre: &nombre, Estado: entity.EstadoActivo},
	}}
	svc := newService(usuarios, roles, entidades)

	info := svc.CheckEmailAccess(context.Background(), "DUENA@correo.pe") // se normaliza

	require.True(t, info.HasAccess)
	require.NotNil(t, info.User)
	assert.Equal(t, int64(7), info.User.ID)
	require.Len(t, info.Entities, 2)

	pv := info.Entities[0]
	assert.Equal(t, "punto_venta", pv.EntityType)
	assert.Equal(t, "Bodega Central", pv.EntityName)
	assert.Equal(t, entity.EstadoActivo, pv.Estado)
	assert.Equal(t, []string{entity.RolPuntoVentaAdmin, entity.RolPuntoVentaOperador}, pv.Roles)

	// Entidad sin resumen resoluble queda con estado DESCONOCIDO
	prov := info.Entities[1]
	assert.Equal(t, "proveedor", prov.EntityType)
	assert.Equal(t, "DESCONOCIDO", prov.Estado)

	assert.Equal(t, "Usuario encontrado con 2 entidad(es) asociada(s)", info.Message)
}

func TestCheckEmailAccess_EsIdempotente(t *testing.T) {
	usuarios := &fakeUsuarios{porEmail: map[string]*entity.Usuario{
		"a@correo.pe": {ID: 1, Email: "a@correo.pe"},
	}}
	svc := newService(usuarios, &fakeUsuarioRoles{}, &fakeEntidades{})

	primera := svc.CheckEmailAccess(context.Background(), "a@correo.pe")
	segunda := svc.CheckEmailAccess(context.Background(), "a@correo.pe")

	assert.Equal(t, primera, segunda)
}

func TestCheckEmailAccess_ErrorDeConsultaDegradaASinAcceso(t *testing.T) {
	usuarios := &fakeUsuarios{fail: fmt.Errorf("timeout")}
	svc := newService(usuarios, &fakeUsuarioRoles{}, &fakeEntidades{})

	info := svc.CheckEmailAccess(context.Background(), "a@correo.pe")

	assert.False(t, info.HasAccess)
	assert.Equal(t, "Error interno del sistema", info.Message)
}

// ── CheckDocumentAccess ───────────────────────────────────────────────────────

func TestCheckDocumentAccess_FormatoInvalido(t *testing.T) {
	svc := newService(&fakeUsuarios{}, &fakeUsuarioRoles{}, &fakeEntidades{})

	info := svc.CheckDocumentAccess(context.Background(), entity.DocumentoDNI, "123") // DNI corto

	assert.False(t, info.HasAccess)
	assert.Equal(t, "Documento inválido", info.Message)
}

func TestCheckDocumentAccess_DocumentoConCuenta(t *testing.T) {
	usuarios := &fakeUsuarios{porDoc: map[string]*entity.Usuario{
		"DNI:45678912": {ID: 5, Email: "titular@correo.pe"},
	}}
	svc := newService(usuarios, &fakeUsuarioRoles{}, &fakeEntidades{})

	info := svc.CheckDocumentAccess(context.Background(), entity.DocumentoDNI, "45678912")

	require.True(t, info.HasAccess)
	assert.Equal(t, int64(5), info.User.ID)
}

func TestCheckDocumentAccess_EntidadSinUsuario(t *testing.T) {
	entidades := &fakeEntidades{porDoc: map[string]*entity.EntidadResumen{
		"punto_venta:DNI:45678912": {ID: 3, Tipo: entity.EntidadPuntoVenta},
	}}
	svc := newService(&fakeUsuarios{}, &fakeUsuarioRoles{}, entidades)

	info := svc.CheckDocumentAccess(context.Background(), entity.DocumentoDNI, "45678912")

	assert.False(t, info.HasAccess)
	assert.Equal(t, "Documento registrado en punto_venta pero sin usuario asignado", info.Message)
}

func TestCheckDocumentAccess_NoRegistrado(t *testing.T) {
	svc := newService(&fakeUsuarios{}, &fakeUsuarioRoles{}, &fakeEntidades{})

	info := svc.CheckDocumentAccess(context.Background(), entity.DocumentoRUC, "20123456789")

	assert.False(t, info.HasAccess)
	assert.Equal(t, "Documento no registrado en el sistema", info.Message)
}

// ── Disponibilidad ────────────────────────────────────────────────────────────

func TestIsEmailAvailable(t *testing.T) {
	usuarios := &fakeUsuarios{porEmail: map[string]*entity.Usuario{
		"tomado@correo.pe": {ID: 1},
	}}
	svc := newService(usuarios, &fakeUsuarioRoles{}, &fakeEntidades{})

	assert.False(t, svc.IsEmailAvailable(context.Background(), "tomado@correo.pe", nil))
	assert.True(t, svc.IsEmailAvailable(context.Background(), "libre@correo.pe", nil))
}

func TestIsEmailAvailable_FallaCerrado(t *testing.T) {
	usuarios := &fakeUsuarios{fail: fmt.Errorf("timeout")}
	svc := newService(usuarios, &fakeUsuarioRoles{}, &fakeEntidades{})

	// Ante error de consulta se reporta no disponible
	assert.False(t, svc.IsEmailAvailable(context.Background(), "libre@correo.pe", nil))
}

func TestCheckUserEntityAccess(t *testing.T) {
	roles := &fakeUsuarioRoles{porUsuario: map[int64][]entity.RolAsignado{
		7: {{TipoEntidad: entity.EntidadProveedor, IDEntidad: 1, RolCodigo: entity.RolProveedorAdmin}},
	}}
	svc := newService(&fakeUsuarios{}, roles, &fakeEntidades{})

	assert.True(t, svc.CheckUserEntityAccess(context.Background(), 7, entity.EntidadProveedor, 1))
	assert.False(t, svc.CheckUserEntityAccess(context.Background(), 7, entity.EntidadProveedor, 2))
	assert.False(t, svc.CheckUserEntityAccess(context.Background(), 8, entity.EntidadProveedor, 1))
}
