package partners

import (
	"fmt"
	"strconv"
	"strings"

	"banque-numerique/internal/dates"
	inventory "banque-numerique/internal/inventory/domain"
)

// Donation records an outbound transfer of devices to a structure.
// NomStructure is a denormalized copy taken at donation time for
// display; quantities are not linked to device records.
type Donation struct {
	ID              int64                `json:"id"`
	InterlocuteurID int64                `json:"interlocuteurId"`
	NomStructure    string               `json:"nomStructure"`
	TypeAppareil    inventory.DeviceType `json:"typeAppareil"`
	Quantite        int                  `json:"quantite"`
	DateDon         dates.Date           `json:"dateDon"`
	Description     string               `json:"description,omitempty"`
	NumeroReference string               `json:"numeroReference"`
}

// Validate checks donation invariants.
func (d Donation) Validate() error {
	if d.InterlocuteurID <= 0 {
		return ErrMissingInterlocuteur
	}
	if !d.TypeAppareil.IsValid() {
		return inventory.ErrInvalidDeviceType
	}
	if d.Quantite <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

const donationPrefix = "DON"

// NextDonationReference scans the existing references for the given
// year and returns "DON-<year>-<NNN>" with the max sequence plus one,
// starting at 001 when none exist.
func NextDonationReference(donations []Donation, year int) string {
	prefix := fmt.Sprintf("%s-%d-", donationPrefix, year)
	next := 1
	for _, d := range donations {
		if !strings.HasPrefix(d.NumeroReference, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(d.NumeroReference, prefix))
		if err != nil {
			continue
		}
		if seq+1 > next {
			next = seq + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next)
}
