// Package ids generates opaque identifiers that do not come from the store's
// sequence counters.
package ids

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a random identifier string.
func New() string {
	return uuid.NewString()
}

// DossierRef returns a dossier file reference ("DOS-" + 12 hex chars). Claim
// and contract references come from store counters; dossier references only
// need to be unique, not sequential.
func DossierRef() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "DOS-" + strings.ToUpper(raw[:12])
}
