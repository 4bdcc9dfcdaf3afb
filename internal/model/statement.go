package model

import "time"

// StatementEntry is one line parsed from a bank statement export. The
// amount keeps the bank's sign: positive for money in, negative for
// money out. FiTID is the institution's transaction identifier, used
// for import deduplication.
type StatementEntry struct {
	Date        time.Time
	FiTID       string
	Description string
	Amount      Money
}
