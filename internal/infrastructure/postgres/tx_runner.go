package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/multisoat/certificados-api/internal/application/registro"
	"github.com/multisoat/certificados-api/internal/domain/repository"
)

// Ensure TxRunner implements registro.TxRunner.
var _ registro.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistro inicia una transacción, ejecuta fn con los repos del flujo de
// registro atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunRegistro(ctx context.Context, fn func(
	entidades repository.EntidadRepository,
	usuarios repository.UsuarioRepository,
	roles repository.RolRepository,
	usuarioRoles repository.UsuarioRolRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	entidadRepo := NewEntidadRepository(tx)
	usuarioRepo := NewUsuarioRepository(tx)
	rolRepo := NewRolRepository(tx)
	usuarioRolRepo := NewUsuarioRolRepository(tx)

	if err := fn(entidadRepo, usuarioRepo, rolRepo, usuarioRolRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
