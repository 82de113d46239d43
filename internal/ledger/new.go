package ledger

import (
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/caseclip/internal/logger"
)

// New picks the store from the file extension: .db, .sqlite and .sqlite3 use
// SQLite, anything else the JSON progress file.
func New(path string, log logger.Logger) Ledger {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return newSQLiteLedger(path, log)
	default:
		return newJSONLedger(path, log)
	}
}
