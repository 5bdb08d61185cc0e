package registro

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
	"github.com/multisoat/certificados-api/pkg/logger"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type claveEntidad struct {
	tipo   entity.TipoEntidad
	numero string
}

type fakeEntidades struct {
	seq      int64
	filas    map[claveEntidad]*entity.EntidadResumen
	estados  map[int64]string
	failNext error
}

func newFakeEntidades() *fakeEntidades {
	return &fakeEntidades{
		filas:   map[claveEntidad]*entity.EntidadResumen{},
		estados: map[int64]string{},
	}
}

func (f *fakeEntidades) ExistsByNumeroDocumento(_ context.Context, tipo entity.TipoEntidad, numero string) (bool, error) {
	_, ok := f.filas[claveEntidad{tipo, numero}]
	return ok, nil
}

func (f *fakeEntidades) FindByNumeroDocumento(_ context.Context, tipo entity.TipoEntidad, numero string) (*entity.EntidadResumen, error) {
	return f.filas[claveEntidad{tipo, numero}], nil
}

func (f *fakeEntidades) FindByDocumento(_ context.Context, tipo entity.TipoEntidad, _ entity.TipoDocumento, numero string) (*entity.EntidadResumen, error) {
	return f.filas[claveEntidad{tipo, numero}], nil
}

func (f *fakeEntidades) GetResumen(_ context.Context, tipo entity.TipoEntidad, id int64) (*entity.EntidadResumen, error) {
	for _, r := range f.filas {
		if r.ID == id && r.Tipo == tipo {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeEntidades) Create(_ context.Context, reg *entity.RegistroEntidad) (int64, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return 0, err
	}
	f.seq++
	f.filas[claveEntidad{reg.Tipo, reg.NumeroDocumento}] = &entity.EntidadResumen{
		ID:          f.seq,
		Tipo:        reg.Tipo,
		Nombre:      reg.Nombre,
		RazonSocial: reg.RazonSocial,
		Email:       reg.Email,
		Estado:      reg.Estado,
	}
	f.estados[f.seq] = reg.Estado
	return f.seq, nil
}

func (f *fakeEntidades) UpdateEstado(_ context.Context, _ entity.TipoEntidad, id int64, estado string, _ entity.Auditoria) error {
	f.estados[id] = estado
	return nil
}

type fakeUsuarios struct {
	seq     int64
	porMail map[string]*entity.Usuario
	fail    error
}

func newFakeUsuarios() *fakeUsuarios {
	return &fakeUsuarios{porMail: map[string]*entity.Usuario{}}
}

func (f *fakeUsuarios) GetByID(_ context.Context, id int64) (*entity.Usuario, error) {
	for _, u := range f.porMail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsuarios) GetByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	return f.porMail[email], nil
}

func (f *fakeUsuarios) GetByDocumento(_ context.Context, _ entity.TipoDocumento, _ string) (*entity.Usuario, error) {
	return nil, nil
}

func (f *fakeUsuarios) CreatePendiente(_ context.Context, u *entity.Usuario) (int64, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	if existente, ok := f.porMail[u.Email]; ok {
		return existente.ID, nil
	}
	f.seq++
	u.ID = f.seq
	f.porMail[u.Email] = u
	return u.ID, nil
}

func (f *fakeUsuarios) ExistsByEmail(_ context.Context, email string, _ *int64) (bool, error) {
	_, ok := f.porMail[email]
	return ok, nil
}

func (f *fakeUsuarios) ExistsByDocumento(_ context.Context, _ entity.TipoDocumento, _ string, _ *int64) (bool, error) {
	return false, nil
}

type fakeRoles struct {
	porCodigo map[string]*entity.Rol
}

func (f *fakeRoles) GetByCodigo(_ context.Context, codigo string) (*entity.Rol, error) {
	return f.porCodigo[codigo], nil
}

type fakeUsuarioRoles struct {
	asignaciones []*entity.UsuarioRol
}

func (f *fakeUsuarioRoles) Create(_ context.Context, ur *entity.UsuarioRol) error {
	ur.ID = int64(len(f.asignaciones) + 1)
	f.asignaciones = append(f.asignaciones, ur)
	return nil
}

func (f *fakeUsuarioRoles) ListActivosByUsuario(_ context.Context, idUsuario int64) ([]entity.RolAsignado, error) {
	var out []entity.RolAsignado
	for _, ur := range f.asignaciones {
		if ur.IDUsuario == idUsuario && ur.Activo {
			out = append(out, entity.RolAsignado{TipoEntidad: ur.TipoEntidad, IDEntidad: ur.IDEntidad})
		}
	}
	return out, nil
}

func (f *fakeUsuarioRoles) ExistsActivo(_ context.Context, idUsuario int64, tipo entity.TipoEntidad, idEntidad int64) (bool, error) {
	for _, ur := range f.asignaciones {
		if ur.IDUsuario == idUsuario && ur.TipoEntidad == tipo && ur.IDEntidad == idEntidad && ur.Activo {
			return true, nil
		}
	}
	return false, nil
}

type parAfiliacion struct {
	pv, prov int64
}

type fakeAfiliaciones struct {
	pares map[parAfiliacion]bool
}

func newFakeAfiliaciones() *fakeAfiliaciones {
	return &fakeAfiliaciones{pares: map[parAfiliacion]bool{}}
}

func (f *fakeAfiliaciones) Exists(_ context.Context, idPV, idProv int64) (bool, error) {
	return f.pares[parAfiliacion{idPV, idProv}], nil
}

func (f *fakeAfiliaciones) Create(_ context.Context, a *entity.Afiliacion) error {
	f.pares[parAfiliacion{a.IDPuntoVenta, a.IDProveedor}] = true
	return nil
}

func (f *fakeAfiliaciones) GetByID(_ context.Context, _ int64) (*entity.Afiliacion, error) {
	return nil, nil
}

func (f *fakeAfiliaciones) List(_ context.Context, _ repository.FiltroAfiliacion, _, _ int) ([]*entity.Afiliacion, int, error) {
	return nil, 0, nil
}

func (f *fakeAfiliaciones) UpdateEstado(_ context.Context, _ int64, _ string, _ entity.Auditoria) error {
	return nil
}

type fakeVerificador struct {
	acceso dto.AccessInfo
}

func (f *fakeVerificador) CheckEmailAccess(_ context.Context, _ string) dto.AccessInfo {
	return f.acceso
}

type fakeExterno struct {
	id *int64
}

func (f *fakeExterno) ResolveExternalReference(_ context.Context, _ entity.TipoDocumento, _ string, supplied *int64) *int64 {
	if supplied != nil {
		return supplied
	}
	return f.id
}

type fakeInvitador struct {
	enviados []string
	fallar   bool
}

func (f *fakeInvitador) Send(_ context.Context, email string, _ entity.TipoEntidad, _ int64) bool {
	if f.fallar {
		return false
	}
	f.enviados = append(f.enviados, email)
	return true
}

// fakeTxRunner pasa los fakes directamente, sin transacción real.
type fakeTxRunner struct {
	entidades    *fakeEntidades
	usuarios     *fakeUsuarios
	roles        *fakeRoles
	usuarioRoles *fakeUsuarioRoles
}

func (f *fakeTxRunner) RunRegistro(_ context.Context, fn func(
	repository.EntidadRepository,
	repository.UsuarioRepository,
	repository.RolRepository,
	repository.UsuarioRolRepository,
) error) error {
	return fn(f.entidades, f.usuarios, f.roles, f.usuarioRoles)
}

// ── Arnés ─────────────────────────────────────────────────────────────────────

type arnes struct {
	svc          *Service
	entidades    *fakeEntidades
	usuarios     *fakeUsuarios
	roles        *fakeRoles
	usuarioRoles *fakeUsuarioRoles
	afiliaciones *fakeAfiliaciones
	verificador  *fakeVerificador
	invitador    *fakeInvitador
}

func newArnes() *arnes {
	entidades := newFakeEntidades()
	usuarios := newFakeUsuarios()
	roles := &fakeRoles{porCodigo: map[string]*entity.Rol{
		entity.RolProveedorAdmin:    {ID: 1, Codigo: entity.RolProveedorAdmin},
		entity.RolDistribuidorAdmin: {ID: 2, Codigo: entity.RolDistribuidorAdmin},
		entity.RolPuntoVentaAdmin:   {ID: 3, Codigo: entity.RolPuntoVentaAdmin},
	}}
	usuarioRoles := &fakeUsuarioRoles{}
	afiliaciones := newFakeAfiliaciones()
	verificador := &fakeVerificador{acceso: dto.AccessInfo{HasAccess: false}}
	invitador := &fakeInvitador{}
	tx := &fakeTxRunner{entidades: entidades, usuarios: usuarios, roles: roles, usuarioRoles: usuarioRoles}

	svc := New(tx, entidades, afiliaciones, verificador, &fakeExterno{}, invitador, logger.Nop())
	return &arnes{
		svc:          svc,
		entidades:    entidades,
		usuarios:     usuarios,
		roles:        roles,
		usuarioRoles: usuarioRoles,
		afiliaciones: afiliaciones,
		verificador:  verificador,
		invitador:    invitador,
	}
}

func requestProveedor() dto.RegistroEntidadRequest {
	return dto.RegistroEntidadRequest{
		RazonSocial:     "Seguros Andinos S.A.C.",
		Email:           "contacto@segurosandinos.pe",
		Telefono:        "987654321",
		TipoDocumento:   "RUC",
		NumeroDocumento: "20123456789",
	}
}

func requestPuntoVenta() dto.RegistroEntidadRequest {
	return dto.RegistroEntidadRequest{
		Nombre:          "Bodega Central",
		Email:           "bodega@correo.pe",
		TipoDocumento:   "DNI",
		NumeroDocumento: "45678912",
	}
}

// ── RegisterEntity ────────────────────────────────────────────────────────────

func TestRegisterEntity_ValidacionAcumulaTodosLosErrores(t *testing.T) {
	a := newArnes()

	result := a.svc.RegisterEntity(context.Background(), entity.EntidadDistribuidor, dto.RegistroEntidadRequest{
		Email: "no-es-email",
	}, dto.AuditContext{})

	assert.False(t, result.Success)
	assert.Equal(t, "Datos de registro inválidos", result.Message)
	// email, documento, proveedor y nombre fallan a la vez
	assert.Len(t, result.Errors, 4)
	assert.False(t, result.EntityCreated)
}

func TestRegisterEntity_SinCuentaCreaPendienteEInvita(t *testing.T) {
	a := newArnes()

	result := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, requestProveedor(), dto.AuditContext{})

	require.True(t, result.Success)
	assert.True(t, result.EntityCreated)
	require.NotNil(t, result.EntityID)
	assert.False(t, result.UserExists)
	assert.True(t, result.InvitationSent)
	assert.Contains(t, result.Message, "Invitación enviada")

	// La entidad queda esperando que el usuario acepte la invitación
	assert.Equal(t, entity.EstadoPendienteUsuario, a.entidades.estados[*result.EntityID])

	// Se creó el placeholder de cuenta
	u := a.usuarios.porMail["contacto@segurosandinos.pe"]
	require.NotNil(t, u)
	assert.Equal(t, entity.UsuarioPendiente, u.Estado)
	require.NotNil(t, result.UserID)
	assert.Equal(t, u.ID, *result.UserID)

	assert.Equal(t, []string{"contacto@segurosandinos.pe"}, a.invitador.enviados)
}

func TestRegisterEntity_ConCuentaVinculaYActiva(t *testing.T) {
	a := newArnes()
	user := &dto.UserInfo{ID: 42, Email: "contacto@segurosandinos.pe"}
	a.verificador.acceso = dto.AccessInfo{HasAccess: true, User: user}

	result := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, requestProveedor(), dto.AuditContext{})

	require.True(t, result.Success)
	assert.True(t, result.UserExists)
	require.NotNil(t, result.UserID)
	assert.Equal(t, int64(42), *result.UserID)
	assert.Contains(t, result.Message, "vinculado con usuario existente")

	// Exactamente una asignación de rol, con el rol por defecto del tipo
	require.Len(t, a.usuarioRoles.asignaciones, 1)
	ur := a.usuarioRoles.asignaciones[0]
	assert.Equal(t, int64(42), ur.IDUsuario)
	assert.Equal(t, int64(1), ur.IDRol) // PROVEEDOR_ADMIN
	assert.Equal(t, entity.EntidadProveedor, ur.TipoEntidad)
	assert.True(t, ur.Activo)

	// La entidad se activa de inmediato, sin invitación
	assert.Equal(t, entity.EstadoActivo, a.entidades.estados[*result.EntityID])
	assert.Empty(t, a.invitador.enviados)
}

func TestRegisterEntity_DocumentoDuplicadoRechazaSinEscribir(t *testing.T) {
	a := newArnes()

	primero := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, requestProveedor(), dto.AuditContext{})
	require.True(t, primero.Success)

	segundo := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, requestProveedor(), dto.AuditContext{})

	assert.False(t, segundo.Success)
	assert.Equal(t, "Ya existe un proveedor con este número de documento", segundo.Message)
	assert.False(t, segundo.EntityCreated)
	assert.Nil(t, segundo.EntityID)
}

func TestRegisterEntity_MismoDocumentoEnOtroTipoNoEsDuplicado(t *testing.T) {
	a := newArnes()

	pv := requestPuntoVenta()
	primero := a.svc.RegisterEntity(context.Background(), entity.EntidadPuntoVenta, pv, dto.AuditContext{})
	require.True(t, primero.Success)

	// El mismo DNI como distribuidor de otro proveedor es legítimo
	idProv := int64(9)
	dist := dto.RegistroEntidadRequest{
		Nombre:          "Distribuciones Sur",
		Email:           "sur@correo.pe",
		TipoDocumento:   pv.TipoDocumento,
		NumeroDocumento: pv.NumeroDocumento,
		IDProveedor:     &idProv,
	}
	segundo := a.svc.RegisterEntity(context.Background(), entity.EntidadDistribuidor, dist, dto.AuditContext{})

	assert.True(t, segundo.Success)
	assert.True(t, segundo.EntityCreated)
}

func TestRegisterEntity_RolAusenteEnCatalogoFallaEstructurado(t *testing.T) {
	a := newArnes()
	delete(a.roles.porCodigo, "PROVEEDOR_ADMIN")
	user := &dto.UserInfo{ID: 42, Email: "contacto@segurosandinos.pe"}
	a.verificador.acceso = dto.AccessInfo{HasAccess: true, User: user}

	result := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, requestProveedor(), dto.AuditContext{})

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "Error interno durante el registro de proveedor")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], domain.ErrRolNotFound.Error())
	assert.Contains(t, result.Errors[0], "PROVEEDOR_ADMIN")
	assert.Empty(t, a.usuarioRoles.asignaciones)
}

func TestRegisterEntity_FalloDeInvitacionNoRevierte(t *testing.T) {
	a := newArnes()
	a.invitador.fallar = true

	result := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, requestProveedor(), dto.AuditContext{})

	require.True(t, result.Success)
	assert.True(t, result.EntityCreated)
	assert.False(t, result.InvitationSent)
	assert.Contains(t, result.Message, "Error enviando invitación")
	// La entidad y el usuario pendiente quedaron persistidos igual
	assert.NotNil(t, result.EntityID)
	assert.NotNil(t, a.usuarios.porMail["contacto@segurosandinos.pe"])
}

func TestRegisterEntity_FalloCreandoUsuarioPendienteNoBloquea(t *testing.T) {
	a := newArnes()
	a.usuarios.fail = fmt.Errorf("deadlock detectado")

	result := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, requestProveedor(), dto.AuditContext{})

	require.True(t, result.Success)
	assert.True(t, result.EntityCreated)
	assert.Nil(t, result.UserID)
	assert.Equal(t, entity.EstadoPendienteUsuario, a.entidades.estados[*result.EntityID])
}

func TestRegisterEntity_ErrorCreandoEntidadDevuelveFalloEstructurado(t *testing.T) {
	a := newArnes()
	a.entidades.failNext = fmt.Errorf("conexión perdida")

	result := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, requestProveedor(), dto.AuditContext{})

	assert.False(t, result.Success)
	assert.Equal(t, "Error interno durante el registro de proveedor", result.Message)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "conexión perdida")
}

func TestRegisterEntity_ReferenciaExternaProvistaSePropaga(t *testing.T) {
	a := newArnes()
	in := requestProveedor()
	id := int64(314)
	in.IDExternoDBData = &id

	result := a.svc.RegisterEntity(context.Background(), entity.EntidadProveedor, in, dto.AuditContext{})

	require.True(t, result.Success)
}

// ── RegisterPuntoVentaWithMultipleProviders ──────────────────────────────────

func TestRegisterPVMultiple_RegistroNuevoConAbanico(t *testing.T) {
	a := newArnes()

	in := dto.RegistroPVMultipleRequest{
		RegistroEntidadRequest: requestPuntoVenta(),
		IDsProveedores:         []int64{10, 20, 30},
	}
	result := a.svc.RegisterPuntoVentaWithMultipleProviders(context.Background(), in, dto.AuditContext{})

	require.True(t, result.Success)
	assert.True(t, result.EntityCreated)
	require.NotNil(t, result.AffiliationCreated)
	assert.True(t, *result.AffiliationCreated)
	assert.Contains(t, result.Message, "3 afiliación(es) creada(s).")

	for _, idProv := range []int64{10, 20, 30} {
		assert.True(t, a.afiliaciones.pares[parAfiliacion{*result.EntityID, idProv}])
	}
}

func TestRegisterPVMultiple_PVExistenteSoloCreaAfiliacionesFaltantes(t *testing.T) {
	a := newArnes()

	// Primer registro deja al PV afiliado al proveedor 10
	primero := a.svc.RegisterPuntoVentaWithMultipleProviders(context.Background(), dto.RegistroPVMultipleRequest{
		RegistroEntidadRequest: requestPuntoVenta(),
		IDsProveedores:         []int64{10},
	}, dto.AuditContext{})
	require.True(t, primero.Success)

	// Segundo registro con {10, 20}: solo 20 es nueva
	segundo := a.svc.RegisterPuntoVentaWithMultipleProviders(context.Background(), dto.RegistroPVMultipleRequest{
		RegistroEntidadRequest: requestPuntoVenta(),
		IDsProveedores:         []int64{10, 20},
	}, dto.AuditContext{})

	require.True(t, segundo.Success)
	assert.False(t, segundo.EntityCreated)
	assert.Equal(t, *primero.EntityID, *segundo.EntityID)
	require.NotNil(t, segundo.AffiliationCreated)
	assert.True(t, *segundo.AffiliationCreated)
	assert.Equal(t, "Punto de venta existente. 1 nueva(s) afiliación(es) creada(s).", segundo.Message)
}

func TestRegisterPVMultiple_TodoDuplicadoReportaCero(t *testing.T) {
	a := newArnes()

	primero := a.svc.RegisterPuntoVentaWithMultipleProviders(context.Background(), dto.RegistroPVMultipleRequest{
		RegistroEntidadRequest: requestPuntoVenta(),
		IDsProveedores:         []int64{10},
	}, dto.AuditContext{})
	require.True(t, primero.Success)

	repetido := a.svc.RegisterPuntoVentaWithMultipleProviders(context.Background(), dto.RegistroPVMultipleRequest{
		RegistroEntidadRequest: requestPuntoVenta(),
		IDsProveedores:         []int64{10},
	}, dto.AuditContext{})

	require.True(t, repetido.Success)
	require.NotNil(t, repetido.AffiliationCreated)
	assert.False(t, *repetido.AffiliationCreated)
	assert.Equal(t, "Punto de venta existente. 0 nueva(s) afiliación(es) creada(s).", repetido.Message)
}

func TestRegisterPVMultiple_ValidacionFallidaNoCreaAfiliaciones(t *testing.T) {
	a := newArnes()

	result := a.svc.RegisterPuntoVentaWithMultipleProviders(context.Background(), dto.RegistroPVMultipleRequest{
		RegistroEntidadRequest: dto.RegistroEntidadRequest{Email: "x"},
		IDsProveedores:         []int64{10},
	}, dto.AuditContext{})

	assert.False(t, result.Success)
	assert.Nil(t, result.AffiliationCreated)
	assert.Empty(t, a.afiliaciones.pares)
}
