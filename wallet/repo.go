package wallet

import (
	"time"

	"github.com/jmoiron/sqlx"
)

func NewRepo(db *sqlx.DB) *Repo { return &Repo{db: db} }

type Repo struct {
	db *sqlx.DB
}

// Submission is one block submission attempt. Rows are append-only; a
// submitted block cannot be rolled back, so failures are reconciled by
// hand from this log.
type Submission struct {
	ID        uint64
	Time      time.Time
	Account   string
	Kind      string
	Hash      string
	Previous  string
	AmountRaw string // new balance of the block
	Source    string // link field: source hash or destination key
	Ok        bool
	RemoteErr string
}

func (r *Repo) RecordSubmission(s Submission) error {
	_, err := r.db.Exec(`insert into block_log (time, account, kind, hash, previous, amount_raw, source, ok, remote_err)
	values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.Time, s.Account, s.Kind, s.Hash, s.Previous, s.AmountRaw, s.Source, s.Ok, s.RemoteErr)
	return err
}

func (r *Repo) SubmissionsOfAccount(account string, limit int) ([]Submission, error) {
	var items []Submission
	err := r.db.Select(&items, `select * from block_log where account = $1 order by id desc limit $2`, account, limit)
	return items, err
}
