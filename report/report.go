// Package report renders a snapshot stream (spec.md §6) as CSV: one row
// per account, in whatever order the Engine's account lister returns
// them.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/darkcodi/txnengine/account"
)

var header = []string{"client", "available", "held", "total", "locked"}

// WriteAccounts renders accounts as a CSV snapshot stream to w: one row
// per account with exactly four fractional digits on every numeric
// field.
func WriteAccounts(w io.Writer, accounts []account.Account) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, acc := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acc.ID()), 10),
			acc.Available().String(),
			acc.Held().String(),
			acc.Total().String(),
			strconv.FormatBool(acc.Locked()),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
