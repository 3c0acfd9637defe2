package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL esquema de la aplicación. Idempotente: se aplica en cada
// arranque, igual que hacía la aplicación de escritorio original.
//
// note_number lleva constraint UNIQUE: es el detector de última instancia
// de la carrera de numeración (el caso de uso reintenta al chocar).
// El FK de delivery_notes a customers es RESTRICT: respaldo en base de
// datos de la guarda referencial de borrado de clientes.
//
// Los índices van sobre columnas planas: el cast timestamptz→date depende
// del TimeZone de la sesión (STABLE) y Postgres lo rechaza en una
// expresión de índice (42P17).
const schemaDDL = `
CREATE TABLE IF NOT EXISTS customers (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    address        TEXT NOT NULL DEFAULT '',
    contact_person TEXT NOT NULL DEFAULT '',
    phone          TEXT NOT NULL DEFAULT '',
    email          TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS delivery_notes (
    id             TEXT PRIMARY KEY,
    note_number    TEXT NOT NULL UNIQUE,
    customer_id    TEXT NOT NULL REFERENCES customers(id) ON DELETE RESTRICT,
    issue_date     TIMESTAMPTZ NOT NULL,
    financial_year TEXT NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS delivery_items (
    id               TEXT PRIMARY KEY,
    delivery_note_id TEXT NOT NULL REFERENCES delivery_notes(id) ON DELETE CASCADE,
    line_no          INT NOT NULL,
    item_name        TEXT NOT NULL,
    ordered_qty      BIGINT NOT NULL,
    delivered_qty    BIGINT NOT NULL,
    balance_qty      BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_delivery_notes_customer   ON delivery_notes (customer_id);
CREATE INDEX IF NOT EXISTS idx_delivery_notes_issue_date ON delivery_notes (issue_date);
CREATE INDEX IF NOT EXISTS idx_delivery_items_note       ON delivery_items (delivery_note_id, line_no);
`

// InitSchema crea las tablas e índices si no existen.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("inicializar esquema: %w", err)
	}
	return nil
}
