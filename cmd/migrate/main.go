// Aplica el esquema de la base de datos y, opcionalmente, corrige datos
// heredados. Se ejecuta aparte del servidor: las rutas de lectura nunca
// mutan datos.
//
// Uso:
//
//	migrate                          aplica el esquema (idempotente)
//	migrate -assign-orphans <id>     además asigna a esa sucursal los
//	                                 productos heredados sin sucursal
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/postgres"
	"github.com/tu-usuario/retail-pos/pkg/config"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

//go:embed migrations/schema.sql
var schemaSQL string

func main() {
	assignOrphans := flag.String("assign-orphans", "", "ID de la sucursal a la que asignar productos heredados sin sucursal")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: cfg.App.Name}).
		Component("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}
	log.Info().Msg("esquema aplicado")

	if *assignOrphans != "" {
		if err := backfillOrphans(ctx, pool, *assignOrphans, log); err != nil {
			log.Fatal().Err(err).Msg("asignar productos huérfanos")
		}
	}
}

// backfillOrphans asigna a la sucursal dada los productos importados de bases
// heredadas donde branch_id era opcional, y luego refuerza NOT NULL.
// Es explícito y auditable: queda en el log cuántas filas se corrigieron.
func backfillOrphans(ctx context.Context, pool *pgxpool.Pool, branchID string, log *logger.Logger) error {
	var exists bool
	err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM branches WHERE id = $1)`, branchID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("verificar sucursal: %w", err)
	}
	if !exists {
		return fmt.Errorf("la sucursal %s no existe", branchID)
	}

	cmd, err := pool.Exec(ctx,
		`UPDATE products SET branch_id = $1, updated_at = now() WHERE branch_id IS NULL`,
		branchID,
	)
	if err != nil {
		return fmt.Errorf("actualizar productos: %w", err)
	}
	log.Info().
		Int64("products", cmd.RowsAffected()).
		Str("branch_id", branchID).
		Msg("productos huérfanos asignados")

	if _, err := pool.Exec(ctx, `ALTER TABLE products ALTER COLUMN branch_id SET NOT NULL`); err != nil {
		return fmt.Errorf("reforzar NOT NULL: %w", err)
	}
	return nil
}
