package mailer

import (
	"errors"
	"fmt"
	"strings"

	inventory "banque-numerique/internal/inventory/domain"
)

// Message is a fully rendered mail: the core builds it, a Channel
// dispatches it. Transport concerns stay outside the core.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ErrMissingRecipient indicates an empty destination address.
var ErrMissingRecipient = errors.New("mailer: missing recipient")

// BuildDeviceReadyMessage renders the "prêt pour livraison" mail for a
// device. Pure: same device and recipient, same message.
func BuildDeviceReadyMessage(device inventory.Device, recipient string) (Message, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return Message{}, ErrMissingRecipient
	}

	kind := "ordinateur"
	label := "PC"
	if device.Type == inventory.DeviceTypeSmartphone {
		kind = "smartphone"
		label = "Smartphone"
	}

	subject := fmt.Sprintf("%s %s %s prêt pour livraison", label, device.Marque, device.Modele)
	body := fmt.Sprintf(`Bonjour,

Votre %s est prêt pour livraison.
Modèle: %s
Marque: %s
Numéro de série: %s
Numéro d'inventaire: %s
État: %s

Cordialement,
L'équipe Banque du Numérique`,
		kind, device.Modele, device.Marque, device.NumeroSerie, device.NumeroInventaire, device.Etat)

	return Message{To: recipient, Subject: subject, Body: body}, nil
}
