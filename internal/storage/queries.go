package storage

// SQL statements for the two tables. Kept as constants so the repository
// methods read as plain scans.
const (
	createUser = `INSERT INTO users (username, auth_hash) VALUES (?, ?)`

	getUserAuthHash = `SELECT auth_hash FROM users WHERE username = ?`

	insertRecord = `INSERT INTO financial_records
		(username, entry_date, description, amount_cents, record_type, payment_method, installments, necessity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	listRecords = `SELECT id, username, entry_date, description, amount_cents, record_type, payment_method, installments, necessity
		FROM financial_records
		WHERE username = ?
		ORDER BY id`

	deleteRecord = `DELETE FROM financial_records WHERE id = ?`
)
