// Package letterpdf renders cover letters as A4 PDF documents.
package letterpdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Contact is the sender block printed at the top of the letter.
type Contact struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// Renderer produces PDF bytes for one cover letter.
type Renderer struct {
	Contact Contact
	Now     func() time.Time
}

// NewRenderer constructs a Renderer with the given sender details.
func NewRenderer(contact Contact) *Renderer {
	return &Renderer{Contact: contact, Now: time.Now}
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func frenchDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// Render lays the letter out: sender block, date, subject, salutation,
// body paragraphs and a closing signature.
func (r *Renderer) Render(letter, company, title string) ([]byte, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, tr(r.Contact.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{r.Contact.Address, r.Contact.Email, r.Contact.Phone} {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.CellFormat(0, 5, tr("Le "+frenchDate(now())), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	subject := fmt.Sprintf("Objet : Candidature au poste de %s - %s", title, company)
	pdf.MultiCell(0, 6, tr(subject), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Madame, Monsieur,"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, para := range strings.Split(letter, "\n\n") {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 6, tr(para), "", "J", false)
		pdf.Ln(3)
	}

	pdf.Ln(4)
	pdf.CellFormat(0, 6, tr("Bien cordialement,"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(r.Contact.Name), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
