package migrator

import "time"

// Script is one discovered migration file. The filename is its version
// key; scripts apply in lexicographic filename order.
type Script struct {
	Filename string
	Path     string
	SQL      []byte
}

// Row is one ledger entry: a script that has been fully and successfully
// applied. Rows are written exactly once per filename and never updated.
type Row struct {
	ID        int64
	Filename  string
	AppliedAt time.Time
}
