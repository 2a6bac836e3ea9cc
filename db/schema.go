// ABOUTME: Database schema definitions
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	phone TEXT,
	email TEXT,
	company TEXT,
	industry TEXT,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_clients_user_id ON clients(user_id);
CREATE INDEX IF NOT EXISTS idx_clients_name ON clients(name);

CREATE TABLE IF NOT EXISTS prospects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	phone TEXT,
	email TEXT,
	company TEXT,
	status TEXT NOT NULL DEFAULT 'New' CHECK(status IN ('New', 'Contacted', 'Qualified', 'Won')),
	follow_up_date DATETIME,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_prospects_user_id ON prospects(user_id);
CREATE INDEX IF NOT EXISTS idx_prospects_status ON prospects(status);

CREATE TABLE IF NOT EXISTS sales (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id INTEGER NOT NULL,
	sale_date DATETIME NOT NULL,
	amount REAL NOT NULL CHECK(amount > 0),
	product_or_service TEXT NOT NULL,
	FOREIGN KEY (client_id) REFERENCES clients(id)
);

CREATE INDEX IF NOT EXISTS idx_sales_client_id ON sales(client_id);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date DESC);

CREATE TABLE IF NOT EXISTS phone_numbers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	number TEXT NOT NULL,
	last_called_date DATETIME NOT NULL,
	is_prospect INTEGER NOT NULL DEFAULT 0,
	prospect_id INTEGER,
	FOREIGN KEY (user_id) REFERENCES users(id),
	UNIQUE(user_id, number)
);

CREATE INDEX IF NOT EXISTS idx_phone_numbers_user_id ON phone_numbers(user_id);
CREATE INDEX IF NOT EXISTS idx_phone_numbers_last_called ON phone_numbers(last_called_date DESC);

CREATE TABLE IF NOT EXISTS call_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	phone_number_id INTEGER NOT NULL,
	call_date DATETIME NOT NULL,
	feedback TEXT NOT NULL CHECK(feedback IN ('Successful', 'Busy', 'Not Answered', 'DNC', 'Connected-Lead')),
	duration INTEGER NOT NULL DEFAULT 0 CHECK(duration >= 0),
	short_notes TEXT,
	next_follow_up_date DATETIME,
	FOREIGN KEY (phone_number_id) REFERENCES phone_numbers(id)
);

CREATE INDEX IF NOT EXISTS idx_call_logs_phone_number_id ON call_logs(phone_number_id);
CREATE INDEX IF NOT EXISTS idx_call_logs_date ON call_logs(call_date DESC);

CREATE TABLE IF NOT EXISTS follow_ups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_id INTEGER NOT NULL,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('client', 'prospect', 'phoneNumber')),
	follow_up_date DATETIME NOT NULL,
	notes TEXT,
	is_completed INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_follow_ups_entity ON follow_ups(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_follow_ups_pending ON follow_ups(is_completed, follow_up_date);
`

func InitSchema(database *sql.DB) error {
	_, err := database.Exec(schema)
	return err
}
