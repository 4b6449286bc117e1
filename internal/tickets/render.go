package tickets

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

const (
	qrSize     = 256
	qrImage    = "ticket-qr"
	pageMargin = 14.0
)

// QRCode encodes the ticket payload as a PNG with high error correction.
func QRCode(t Ticket) ([]byte, error) {
	png, err := qrcode.Encode(t.Payload(), qrcode.High, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr for %s: %w", t.PNR, err)
	}
	return png, nil
}

// Render draws the A4 e-ticket and returns the PDF bytes.
func Render(t Ticket, generatedAt time.Time) ([]byte, error) {
	qr, err := QRCode(t)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("IRCTC E-Ticket "+t.PNR, false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	width, _ := pdf.GetPageSize()

	// header band
	pdf.SetFillColor(25, 55, 120)
	pdf.Rect(0, 0, width, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(pageMargin, 8)
	pdf.Cell(0, 8, "INDIAN RAILWAYS - IRCTC E-TICKET")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(pageMargin, 18)
	pdf.Cell(100, 6, "Generated on: "+generatedAt.Format("02/01/2006, 15:04:05"))
	pdf.CellFormat(0, 6, "PNR: "+t.PNR, "", 0, "R", false, 0, "")

	qrX := width - pageMargin - 36
	pdf.RegisterImageOptionsReader(qrImage, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	pdf.ImageOptions(qrImage, qrX, 36, 36, 36, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(qrX, 73)
	pdf.CellFormat(36, 4, "Scan to verify ticket", "", 0, "C", false, 0, "")

	tableWidth := qrX - pageMargin - 6
	pdf.SetXY(pageMargin, 36)
	section(pdf, "Journey Details")
	rows := [][2]string{
		{"Train", tr(t.TrainNumber + " — " + t.Train)},
		{"From", t.From},
		{"To", t.To},
		{"Date of Journey", t.Date},
		{"Departure Time", t.Time},
		{"Coach", t.Coach},
		{"Platform", t.Platform},
		{"Status", "CONFIRMED"},
	}
	for i, r := range rows {
		stripe(pdf, i)
		pdf.CellFormat(tableWidth/2, 7, r[0], "", 0, "L", true, 0, "")
		pdf.CellFormat(tableWidth/2, 7, r[1], "", 1, "R", true, 0, "")
	}

	pdf.Ln(6)
	section(pdf, "Passenger Information")
	for i, r := range t.Riders {
		stripe(pdf, i)
		line := fmt.Sprintf("%d. %s  |  Age: %s  |  Gender: %s", i+1, r.Name, r.Age, r.Gender)
		pdf.CellFormat(width-2*pageMargin-40, 8, tr(line), "", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, "Seat: "+r.Seat, "", 1, "R", true, 0, "")
	}

	pdf.Ln(6)
	section(pdf, "Fare Details")
	fares := [][2]string{
		{"Base Fare", fmt.Sprintf("Rs. %d", t.BaseFare)},
		{"GST (5%)", fmt.Sprintf("Rs. %d", t.GST)},
		{"Total Fare", fmt.Sprintf("Rs. %d", t.Total)},
	}
	for i, f := range fares {
		stripe(pdf, i)
		if i == len(fares)-1 {
			pdf.SetFont("Helvetica", "B", 10)
		}
		pdf.CellFormat((width-2*pageMargin)/2, 7, f[0], "", 0, "L", true, 0, "")
		pdf.CellFormat((width-2*pageMargin)/2, 7, f[1], "", 1, "R", true, 0, "")
	}

	pdf.Ln(8)
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(pageMargin, pdf.GetY(), width-pageMargin, pdf.GetY())
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	for _, s := range []string{
		"Please carry a valid government photo ID during travel.",
		"Helpline: 139 | Email: support@irctc2.0.com",
		tr("IRCTC 2.0 — Smart Travel Platform"),
	} {
		pdf.Cell(0, 5, s)
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket %s: %w", t.PNR, err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
}

func stripe(pdf *gofpdf.Fpdf, i int) {
	if i%2 == 0 {
		pdf.SetFillColor(250, 250, 250)
		return
	}
	pdf.SetFillColor(240, 240, 240)
}
