// Package main provides a CLI tool that creates the database schema and
// optionally seeds demo data.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"uretimtrack/internal/core/id"
	"uretimtrack/internal/infrastructure/storage/postgres"
	"uretimtrack/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := createSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema is up to date")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
		log.Info("demo data seeded")
	}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cat_operations (
		id UUID PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		code TEXT NOT NULL,
		name TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_operations_code
		ON cat_operations (code) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS cat_products (
		id UUID PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT,
		product_type TEXT NOT NULL,
		last_operation_id UUID NOT NULL REFERENCES cat_operations (id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_products_code
		ON cat_products (code) WHERE is_active`,
	`CREATE INDEX IF NOT EXISTS ix_cat_products_code_lower
		ON cat_products (LOWER(code)) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS cat_cycle_times (
		id UUID PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		product_id UUID NOT NULL REFERENCES cat_products (id),
		operation_id UUID NOT NULL REFERENCES cat_operations (id),
		seconds INT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_cycle_times_pair
		ON cat_cycle_times (product_id, operation_id) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS doc_tracking_forms (
		id UUID PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		doc_date TIMESTAMPTZ NOT NULL,
		shift TEXT NOT NULL DEFAULT '',
		line TEXT,
		shift_supervisor TEXT,
		machine TEXT,
		operator_name TEXT,
		section_supervisor TEXT,
		product_code TEXT NOT NULL,
		operation_id UUID NOT NULL REFERENCES cat_operations (id),
		quantity INT NOT NULL DEFAULT 0,
		start_time TIMESTAMPTZ,
		end_time TIMESTAMPTZ,
		operator_efficiency DOUBLE PRECISION,
		machine_efficiency DOUBLE PRECISION,
		casting_defect INT,
		processing_defect INT,
		machine_failure INT,
		setting_machine INT,
		diamond_change INT,
		raw_waiting INT,
		cleaning INT
	)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_tracking_forms_date
		ON doc_tracking_forms (doc_date) WHERE is_active`,
	`CREATE INDEX IF NOT EXISTS ix_doc_tracking_forms_join
		ON doc_tracking_forms (product_code, operation_id) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS doc_packings (
		id UUID PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		doc_date TIMESTAMPTZ NOT NULL,
		shift TEXT,
		supervisor TEXT,
		product_code TEXT NOT NULL,
		quantity INT NOT NULL DEFAULT 0,
		exploded_from TEXT,
		exploding_to TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_packings_date
		ON doc_packings (doc_date) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS doc_orders (
		id UUID PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		doc_date TIMESTAMPTZ NOT NULL,
		document_no TEXT NOT NULL,
		customer TEXT NOT NULL,
		product_code TEXT NOT NULL,
		variants TEXT NOT NULL DEFAULT '',
		order_count INT NOT NULL DEFAULT 0,
		carryover INT NOT NULL DEFAULT 0,
		completed_quantity INT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_orders_product
		ON doc_orders (product_code) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS doc_shipments (
		id UUID PRIMARY KEY,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		doc_date TIMESTAMPTZ NOT NULL,
		disk_count INT,
		kampana_count INT,
		poyra_count INT,
		abroad BOOLEAN NOT NULL DEFAULT FALSE,
		domestic BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_shipments_date
		ON doc_shipments (doc_date) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id UUID PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		action TEXT NOT NULL,
		request_id TEXT NOT NULL DEFAULT '',
		changes JSONB,
		changes_compressed BYTEA,
		compression_algo TEXT NOT NULL DEFAULT 'none',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_sys_audit_entity
		ON sys_audit (entity_type, entity_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL DEFAULT 0
	)`,
}

func createSchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM cat_operations").Scan(&count); err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info("demo data already present, skipping")
		return nil
	}

	castingID := id.New()
	machiningID := id.New()

	operations := []struct {
		id   id.ID
		code string
		name string
	}{
		{castingID, "OP-CAST", "Casting"},
		{machiningID, "OP-MACH", "Final Machining"},
	}
	for _, op := range operations {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_operations (id, code, name) VALUES ($1, $2, $3)
		`, op.id, op.code, op.name)
		if err != nil {
			return fmt.Errorf("insert operation %s: %w", op.code, err)
		}
	}

	products := []struct {
		code        string
		name        string
		productType string
	}{
		{"DSK-001", "Brake Disk 280mm", "Disk"},
		{"DSK-002", "Brake Disk 300mm Vented", "Disk"},
		{"KMP-001", "Brake Drum 200mm", "Kampana"},
		{"PYR-001", "Wheel Hub Front", "Poyra"},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, product_type, last_operation_id)
			VALUES ($1, $2, $3, $4, $5)
		`, id.New(), p.code, p.name, p.productType, machiningID)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.code, err)
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	_, err := pool.Exec(ctx, `
		INSERT INTO doc_tracking_forms (
			id, doc_date, shift, product_code, operation_id, quantity,
			operator_efficiency, machine_efficiency
		) VALUES
			($1, $5, '08-16', 'DSK-001', $6, 120, 0.92, 0.88),
			($2, $5, '08-16', 'KMP-001', $6, 80, 0.85, 0.90),
			($3, $5, '16-24', 'PYR-001', $6, 45, NULL, 0.79),
			($4, $5, '16-24', 'DSK-001', $7, 200, 0.95, 0.91)
	`, id.New(), id.New(), id.New(), id.New(), today, machiningID, castingID)
	if err != nil {
		return fmt.Errorf("insert tracking forms: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO doc_orders (
			id, doc_date, document_no, customer, product_code,
			order_count, carryover, completed_quantity
		) VALUES
			($1, $4, 'ORD-1001', 'Acme Motors', 'DSK-001', 500, 3, 120),
			($2, $4, 'ORD-1002', 'Acme Motors', 'KMP-001', 300, 0, 80),
			($3, $4, 'ORD-1003', 'Volta Trucks', 'PYR-001', 150, 21, 45)
	`, id.New(), id.New(), id.New(), today)
	if err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO doc_shipments (
			id, doc_date, disk_count, kampana_count, poyra_count, abroad, domestic
		) VALUES
			($1, $3, 100, NULL, 20, FALSE, TRUE),
			($2, $3, 50, 30, NULL, TRUE, FALSE)
	`, id.New(), id.New(), today)
	if err != nil {
		return fmt.Errorf("insert shipments: %w", err)
	}

	return nil
}
