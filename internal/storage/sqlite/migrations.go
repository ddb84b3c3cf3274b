package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Amounts are stored as
// INTEGER minor units (cents), never REAL.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    amount INTEGER NOT NULL,
    payer_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    settled INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (payer_id) REFERENCES members(id)
);

CREATE TABLE IF NOT EXISTS expense_participants (
    expense_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    PRIMARY KEY (expense_id, member_id),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE,
    FOREIGN KEY (member_id) REFERENCES members(id)
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    from_member_id TEXT NOT NULL,
    to_member_id TEXT NOT NULL,
    amount INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    note TEXT,
    FOREIGN KEY (from_member_id) REFERENCES members(id),
    FOREIGN KEY (to_member_id) REFERENCES members(id)
);

CREATE TABLE IF NOT EXISTS settlement_expenses (
    settlement_id TEXT NOT NULL,
    expense_id TEXT NOT NULL,
    PRIMARY KEY (settlement_id, expense_id),
    FOREIGN KEY (settlement_id) REFERENCES settlements(id) ON DELETE CASCADE,
    FOREIGN KEY (expense_id) REFERENCES expenses(id)
);

CREATE TABLE IF NOT EXISTS chores (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    frequency TEXT NOT NULL,
    assigned_to TEXT NOT NULL,
    last_done INTEGER,
    next_due INTEGER NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (assigned_to) REFERENCES members(id)
);

CREATE INDEX IF NOT EXISTS idx_expenses_settled ON expenses(settled);
CREATE INDEX IF NOT EXISTS idx_expenses_payer_id ON expenses(payer_id);
CREATE INDEX IF NOT EXISTS idx_expense_participants_expense_id ON expense_participants(expense_id);
CREATE INDEX IF NOT EXISTS idx_settlement_expenses_settlement_id ON settlement_expenses(settlement_id);
CREATE INDEX IF NOT EXISTS idx_chores_next_due ON chores(next_due);
CREATE INDEX IF NOT EXISTS idx_chores_assigned_to ON chores(assigned_to);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
