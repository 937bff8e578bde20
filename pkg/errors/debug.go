package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PGDiagnostics is the driver-neutral subset of a Postgres error report.
type PGDiagnostics struct {
	SQLState   string
	Constraint string
	Table      string
	Column     string
	Detail     string
	Message    string
}

// ErrorDump is an error flattened for structured logs.
type ErrorDump struct {
	Message string
	Code    Code
	Chain   []string
	PG      *PGDiagnostics
}

// Dump walks err and pulls out its typed code and any Postgres diagnostics,
// whichever driver (pgx or lib/pq) produced them.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}
	d := ErrorDump{Message: err.Error(), PG: pgDiagnostics(err)}
	if typed := As(err); typed != nil {
		d.Code = typed.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	return d
}

// Fields renders the dump as log fields. Postgres keys appear only when the
// chain carried a database error.
func (d ErrorDump) Fields() map[string]any {
	fields := map[string]any{
		"error":       d.Message,
		"error_chain": d.Chain,
	}
	if d.Code != "" {
		fields["error_code"] = d.Code
	}
	if d.PG != nil {
		fields["pg_code"] = d.PG.SQLState
		fields["pg_constraint"] = d.PG.Constraint
		fields["pg_table"] = d.PG.Table
		fields["pg_column"] = d.PG.Column
		fields["pg_detail"] = d.PG.Detail
		fields["pg_message"] = d.PG.Message
	}
	return fields
}

func pgDiagnostics(err error) *PGDiagnostics {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PGDiagnostics{
			SQLState:   pgxErr.Code,
			Constraint: pgxErr.ConstraintName,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Detail:     pgxErr.Detail,
			Message:    pgxErr.Message,
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PGDiagnostics{
			SQLState:   string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Detail:     pqErr.Detail,
			Message:    pqErr.Message,
		}
	}
	return nil
}
