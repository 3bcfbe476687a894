package postgresql

import (
	"strings"

	"github.com/google/uuid"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere in
// the column. Queries using it must declare ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// isUUID reports whether id can address a row. Lookups answer not-found for
// anything else instead of sending it to the server.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
