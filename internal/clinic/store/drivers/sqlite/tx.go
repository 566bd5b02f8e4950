package sqlite

import (
	"context"
	"database/sql"

	"github.com/openclinic/clinicd/internal/clinic/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits/rollbacks; outer DB stays open

// Ping is a no-op for transactions; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) Clinics() store.Clinics                     { return &clinicsRepo{db: t.tx} }
func (t *txStore) RegistrationCodes() store.RegistrationCodes { return &registrationCodesRepo{db: t.tx} }
func (t *txStore) Memberships() store.Memberships             { return &membershipsRepo{db: t.tx} }
func (t *txStore) Patients() store.Patients                   { return &patientsRepo{db: t.tx} }
func (t *txStore) Visits() store.Visits                       { return &visitsRepo{db: t.tx} }
func (t *txStore) Appointments() store.Appointments           { return &appointmentsRepo{db: t.tx} }
func (t *txStore) FollowUps() store.FollowUps                 { return &followUpsRepo{db: t.tx} }
func (t *txStore) AuditLog() store.AuditLog                   { return &auditLogRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts
