package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/multisoat/certificados-api/internal/domain/entity"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL (usable con pool o tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioCols = `id, id_supabase, email, nombre, tipo_documento, numero_documento, telefono, estado, password_hash, created_by, updated_by, created_at, updated_at`

// GetByID obtiene un usuario por id. nil, nil si no hay fila.
func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioCols + ` FROM usuario WHERE id = $1`
	return r.scanUsuario(ctx, query, id)
}

// GetByEmail obtiene un usuario por email normalizado. nil, nil si no hay fila.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioCols + ` FROM usuario WHERE email = $1`
	return r.scanUsuario(ctx, query, email)
}

// GetByDocumento obtiene un usuario por (tipo_documento, numero_documento). nil, nil si no hay fila.
func (r *UsuarioRepo) GetByDocumento(ctx context.Context, tipo entity.TipoDocumento, numeroDocumento string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioCols + ` FROM usuario WHERE tipo_documento = $1 AND numero_documento = $2`
	return r.scanUsuario(ctx, query, string(tipo), numeroDocumento)
}

// CreatePendiente inserta el placeholder de cuenta. Idempotente por email:
// ON CONFLICT DO NOTHING y, si la fila ya existía, se devuelve su id. Así una
// carrera entre dos registros converge al mismo usuario sin abortar la tx.
func (r *UsuarioRepo) CreatePendiente(ctx context.Context, u *entity.Usuario) (int64, error) {
	query := `
		INSERT INTO usuario (email, nombre, tipo_documento, numero_documento, telefono, estado, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (email) DO NOTHING
		RETURNING id`
	var tipoDoc *string
	if u.TipoDocumento != nil {
		td := string(*u.TipoDocumento)
		tipoDoc = &td
	}
	var id int64
	err := r.q.QueryRow(ctx, query,
		u.Email, u.Nombre, tipoDoc, u.NumeroDocumento, u.Telefono, u.Estado,
		u.CreatedBy, u.UpdatedBy, u.CreatedAt, u.UpdatedAt,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("insert usuario pendiente: %w", err)
	}

	// Conflicto: otra petición ya creó la cuenta, reusar la existente
	existente, err := r.GetByEmail(ctx, u.Email)
	if err != nil {
		return 0, fmt.Errorf("releyendo usuario existente: %w", err)
	}
	if existente == nil {
		return 0, fmt.Errorf("usuario %s en conflicto pero no encontrado", u.Email)
	}
	return existente.ID, nil
}

// ExistsByEmail indica si hay usuario con ese email, opcionalmente excluyendo un id.
func (r *UsuarioRepo) ExistsByEmail(ctx context.Context, email string, excludeID *int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM usuario WHERE email = $1 AND ($2::bigint IS NULL OR id <> $2))`
	var exists bool
	if err := r.q.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists usuario por email: %w", err)
	}
	return exists, nil
}

// ExistsByDocumento indica si hay usuario con ese documento, opcionalmente excluyendo un id.
func (r *UsuarioRepo) ExistsByDocumento(ctx context.Context, tipo entity.TipoDocumento, numeroDocumento string, excludeID *int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM usuario
			WHERE tipo_documento = $1 AND numero_documento = $2 AND ($3::bigint IS NULL OR id <> $3)
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, string(tipo), numeroDocumento, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists usuario por documento: %w", err)
	}
	return exists, nil
}

func (r *UsuarioRepo) scanUsuario(ctx context.Context, query string, args ...any) (*entity.Usuario, error) {
	var u entity.Usuario
	var tipoDoc *string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.IDSupabase, &u.Email, &u.Nombre, &tipoDoc, &u.NumeroDocumento,
		&u.Telefono, &u.Estado, &u.PasswordHash,
		&u.CreatedBy, &u.UpdatedBy, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	if tipoDoc != nil {
		td := entity.TipoDocumento(*tipoDoc)
		u.TipoDocumento = &td
	}
	return &u, nil
}
