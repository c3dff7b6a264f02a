package render

import (
	"bytes"
	"fmt"

	"eduplatform/internal/domain"

	"github.com/go-pdf/fpdf"
)

// CertificatePDF собирает PDF сертификата из уже сохранённой записи.
// Документ полностью восстановим из Certificate — повторный рендер
// даёт тот же макет без повторной проверки условий выдачи.
type CertificatePDF struct{}

func NewCertificatePDF() *CertificatePDF {
	return &CertificatePDF{}
}

func (p *CertificatePDF) Render(cert *domain.Certificate) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate "+cert.ID.String(), false)
	pdf.AddPage()

	w, h := pdf.GetPageSize()

	// Рамка
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(30, 60, 120)
	pdf.Rect(8, 8, w-16, h-16, "D")

	// Заголовок зависит от вида сертификата
	title := "Certificate of Participation"
	if cert.Kind == domain.CertificateKindApproval {
		title = "Certificate of Approval"
	}

	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(30, 60, 120)
	pdf.SetXY(0, 30)
	pdf.CellFormat(w, 14, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(8)
	pdf.CellFormat(w, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(20, 20, 20)
	pdf.Ln(2)
	pdf.CellFormat(w, 12, cert.FullName, "", 1, "C", false, 0, "")

	if cert.NationalID != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(w, 7, fmt.Sprintf("ID: %s", cert.NationalID), "", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(4)
	caption := "participated in the course"
	if cert.Kind == domain.CertificateKindApproval {
		caption = "successfully completed and passed the course"
	}
	pdf.CellFormat(w, 8, caption, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(30, 60, 120)
	pdf.Ln(2)
	pdf.CellFormat(w, 10, cert.CourseName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.Ln(6)
	pdf.CellFormat(w, 6, fmt.Sprintf("Completed on %s", cert.CompletionDate.Format("02.01.2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(w, 6, fmt.Sprintf("Issued on %s", cert.IssuanceDate.Format("02.01.2006")), "", 1, "C", false, 0, "")

	// QR-код с ссылкой проверки в правом нижнем углу
	if len(cert.QRCodeImage) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr-"+cert.ID.String(), opts, bytes.NewReader(cert.QRCodeImage))
		pdf.ImageOptions("qr-"+cert.ID.String(), w-48, h-48, 32, 32, false, opts, 0, "")
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(12, h-18)
	pdf.CellFormat(0, 5, fmt.Sprintf("Verify: %s", cert.VerificationURL), "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
