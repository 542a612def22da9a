package catalog

import (
	"fmt"

	"github.com/kinothek/kinothek/pkg/errors"
)

// CheckVersion decides whether an update claiming a version may proceed
// against the stored one. Only a claim older than the stored version is
// rejected; an equal or newer claim passes, and the store's conditional
// write settles any race that slips through.
func CheckVersion(claimed, stored int) error {
	if claimed < stored {
		return errors.VersionOutdated(fmt.Sprintf("claimed version %d is older than stored version %d", claimed, stored))
	}
	return nil
}
