package emit

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"payloadgen/pkg/probepayload"
)

const createPayloadTable = `CREATE TABLE IF NOT EXISTS probe_payloads (
	ord INT UNSIGNED NOT NULL PRIMARY KEY,
	ports LONGTEXT NOT NULL,
	payload BLOB NOT NULL
)`

// MariaDBSink stores entries in the probe_payloads table. Each Store replaces
// the whole table inside one transaction.
type MariaDBSink struct {
	db *sql.DB
}

func NewMariaDBSink(dsn string) (*MariaDBSink, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &MariaDBSink{db: db}, nil
}

func (s *MariaDBSink) Close() {
	s.db.Close()
}

func (s *MariaDBSink) String() string {
	return "mariadb table probe_payloads"
}

func (s *MariaDBSink) Store(ctx context.Context, entries []probepayload.Entry) error {
	if _, err := s.db.ExecContext(ctx, createPayloadTable); err != nil {
		return fmt.Errorf("failed to create probe_payloads: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM probe_payloads"); err != nil {
		return fmt.Errorf("failed to clear probe_payloads: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO probe_payloads (ord, ports, payload) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		portsJSON, err := json.Marshal(e.Ports)
		if err != nil {
			return fmt.Errorf("entry %d: failed to encode ports: %w", i, err)
		}
		payload := e.Payload
		if payload == nil {
			payload = []byte{}
		}
		if _, err := stmt.ExecContext(ctx, i, string(portsJSON), payload); err != nil {
			return fmt.Errorf("entry %d: failed to insert: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load reads the stored entries back in their original order.
func (s *MariaDBSink) Load(ctx context.Context) ([]probepayload.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT ports, payload FROM probe_payloads ORDER BY ord ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []probepayload.Entry
	for rows.Next() {
		var portsJSON string
		var payload []byte
		if err := rows.Scan(&portsJSON, &payload); err != nil {
			return nil, err
		}
		ports := probepayload.Ports{}
		if err := json.Unmarshal([]byte(portsJSON), &ports); err != nil {
			return nil, fmt.Errorf("invalid ports column %q: %w", portsJSON, err)
		}
		if payload == nil {
			payload = []byte{}
		}
		entries = append(entries, probepayload.Entry{Ports: ports, Payload: payload})
	}
	return entries, rows.Err()
}
