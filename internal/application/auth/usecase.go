package auth

import (
	"context"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/multisoat/certificados-api/internal/application/dto"
	"github.com/multisoat/certificados-api/internal/domain"
	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
	"github.com/multisoat/certificados-api/internal/domain/validation"
	"github.com/multisoat/certificados-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación local: login contra el hash de password del usuario.
// El alta de cuentas llega por el flujo de registro e invitación, no por aquí.
type UseCase struct {
	usuarios     repository.UsuarioRepository
	usuarioRoles repository.UsuarioRolRepository
	jwtCfg       JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(usuarios repository.UsuarioRepository, usuarioRoles repository.UsuarioRolRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarios: usuarios, usuarioRoles: usuarioRoles, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Un usuario pendiente (sin password) no puede iniciar sesión.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := validation.NormalizeEmail(in.Email)

	u, err := uc.usuarios.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.PasswordHash == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if u.Estado != entity.UsuarioActivo {
		return nil, domain.ErrForbidden
	}

	rol := uc.rolPrincipal(ctx, u.ID)
	token, err := jwt.Generate(uc.jwtCfg.Secret, subject(u), u.Email, rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toUserInfo(u),
	}, nil
}

// rolPrincipal devuelve el código de la primera asignación activa del usuario.
// Un fallo en la consulta no bloquea el login, solo deja el claim vacío.
func (uc *UseCase) rolPrincipal(ctx context.Context, idUsuario int64) string {
	roles, err := uc.usuarioRoles.ListActivosByUsuario(ctx, idUsuario)
	if err != nil || len(roles) == 0 {
		return ""
	}
	return roles[0].RolCodigo
}

// subject devuelve el identificador del sujeto para el token: el UUID del
// proveedor de identidad si existe, si no el id numérico local.
func subject(u *entity.Usuario) string {
	if u.IDSupabase != nil && *u.IDSupabase != "" {
		return *u.IDSupabase
	}
	return strconv.FormatInt(u.ID, 10)
}

func toUserInfo(u *entity.Usuario) dto.UserInfo {
	info := dto.UserInfo{
		ID:              u.ID,
		IDSupabase:      u.IDSupabase,
		Email:           u.Email,
		Nombre:          u.Nombre,
		NumeroDocumento: u.NumeroDocumento,
		Telefono:        u.Telefono,
		Estado:          u.Estado,
	}
	if u.TipoDocumento != nil {
		td := string(*u.TipoDocumento)
		info.TipoDocumento = &td
	}
	return info
}
