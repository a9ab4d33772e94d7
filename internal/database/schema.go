package database

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all tables, ordered so foreign keys resolve.
// available_slots and capacity are unsigned so the engine itself refuses
// negative values; the upper bound (available_slots <= capacity) is enforced
// by the repository's conditional updates.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS seasons (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(100) NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		capacity INT UNSIGNED NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		trainer VARCHAR(100) NOT NULL,
		description TEXT NOT NULL,
		available_slots INT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id VARCHAR(100) NOT NULL,
		season_id BIGINT UNSIGNED NOT NULL,
		status ENUM('pending','confirmed','cancelled') NOT NULL DEFAULT 'pending',
		payment_status ENUM('pending','completed','failed') NOT NULL DEFAULT 'pending',
		amount DECIMAL(10,2) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_bookings_user (user_id),
		KEY idx_bookings_season (season_id),
		CONSTRAINT fk_bookings_season FOREIGN KEY (season_id) REFERENCES seasons (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id VARCHAR(100) NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		payment_method ENUM('card','upi','netbanking') NOT NULL,
		card_name VARCHAR(100) NULL,
		card_number VARCHAR(19) NULL,
		expiry VARCHAR(5) NULL,
		cvv VARCHAR(4) NULL,
		upi_id VARCHAR(100) NULL,
		bank VARCHAR(100) NULL,
		status ENUM('pending','completed','failed') NOT NULL DEFAULT 'pending',
		transaction_id VARCHAR(64) NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_payments_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payment_items (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		payment_id BIGINT UNSIGNED NOT NULL,
		item_id VARCHAR(100) NOT NULL,
		name VARCHAR(200) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		quantity INT UNSIGNED NOT NULL,
		image VARCHAR(255) NULL,
		PRIMARY KEY (id),
		CONSTRAINT fk_payment_items_payment FOREIGN KEY (payment_id) REFERENCES payments (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables when they do not exist yet.  It is run once
// at startup so a fresh database is usable without a separate migration step.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
