package interfaces

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	delivery "banque-numerique/internal/delivery/domain"
)

// BuildDeliveryNotePDF renders the delivery slip for a prepared order.
func BuildDeliveryNotePDF(order *delivery.Order) ([]byte, error) {
	if order == nil {
		return nil, errors.New("delivery note: nil order")
	}
	if order.NumeroBonLivraison == "" {
		return nil, delivery.ErrNotPrepared
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Bon de livraison "+order.NumeroBonLivraison))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr("Banque du Numérique"))
	pdf.Ln(8)

	pdf.Cell(0, 6, tr(fmt.Sprintf("Commande : %s", order.NumeroCommande)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Date commande : %s", order.DateCommande)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Type d'appareil : %s", order.TypeAppareil)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Statut : %s", order.Statut)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, tr("Destinataire"))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(order.NomStructure))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(order.Adresse))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s %s", order.CodePostal, order.Ville)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, tr("Demandeur"))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(order.NomDemandeur))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(order.ContactDemandeur))
	pdf.Ln(5)
	if order.EmailDemandeur != "" {
		pdf.Cell(0, 6, tr(order.EmailDemandeur))
		pdf.Ln(5)
	}
	if order.Note != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 5, tr("Note : "+order.Note), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
