package pipeline

import (
	"log"
	"strings"

	"tripload/internal/models"
)

// Canonical long-form labels for the store-and-forward flag.
const (
	FlagStored    = "Yes"
	FlagNotStored = "No"
)

// flagLabels maps the single-character source codes to their long forms,
// keyed on the upper-cased trimmed value.
var flagLabels = map[string]string{
	"Y": FlagStored,
	"N": FlagNotStored,
}

// NormalizeFlags canonicalizes the store-and-forward flag in place: trim,
// then map the two recognized codes to their long-form labels. Anything else
// stays as the trimmed value, case untouched; a value outside the vocabulary
// is an observation, not an error. An absent flag becomes the empty string.
func NormalizeFlags(records []*models.TripRecord) {
	unknown := make(map[string]bool)

	for _, record := range records {
		if record.StoreAndFwdFlag == nil {
			empty := ""
			record.StoreAndFwdFlag = &empty
			continue
		}

		trimmed := strings.TrimSpace(*record.StoreAndFwdFlag)
		if label, ok := flagLabels[strings.ToUpper(trimmed)]; ok {
			*record.StoreAndFwdFlag = label
			continue
		}

		if trimmed != "" && !unknown[trimmed] {
			unknown[trimmed] = true
			log.Printf("WARN: unrecognized store_and_fwd_flag value %q, keeping as-is", trimmed)
		}
		*record.StoreAndFwdFlag = trimmed
	}
}
