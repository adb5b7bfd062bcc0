package document

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"court-booking/pkg/utils"

	"github.com/phpdave11/gofpdf"
)

type Receipt struct {
	Code            string
	CustomerName    string
	CustomerEmail   string
	FacilityName    string
	FacilityAddress string
	CourtName       string
	Date            time.Time
	StartTime       string
	EndTime         string
	UnitPrice       int64
	DiscountRate    int
	Total           int64
	Status          string
	PaymentStatus   string
	PaymentMethod   string
	PaidAt          *time.Time
	IssuedAt        time.Time
}

// RenderReceipt builds an A5 PDF receipt with the check-in QR code.
// Core PDF fonts are Latin-1 only, so text is written without diacritics.
func RenderReceipt(rc Receipt) ([]byte, error) {
	qr, err := BookingQRCode(rc.Code, 256)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Booking receipt "+rc.Code, false)
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "BOOKING RECEIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, rc.Code, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Customer", rc.CustomerName},
		{"Email", rc.CustomerEmail},
		{"Facility", rc.FacilityName},
		{"Address", rc.FacilityAddress},
		{"Court", rc.CourtName},
		{"Date", rc.Date.Format("02/01/2006")},
		{"Time", rc.StartTime + " - " + rc.EndTime},
		{"Unit price", utils.FormatVND(rc.UnitPrice) + " / hour"},
		{"Discount", strconv.Itoa(rc.DiscountRate) + "%"},
		{"Status", rc.Status},
		{"Payment", rc.PaymentStatus + paymentSuffix(rc.PaymentMethod)},
	}
	if rc.PaidAt != nil {
		rows = append(rows, [2]string{"Paid at", rc.PaidAt.Format("02/01/2006 15:04")})
	}

	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(32, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 7, utils.RemoveAccents(row[1]), "", "L", false)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(32, 9, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(0, 9, utils.FormatVND(rc.Total), "T", 1, "R", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
	pageW, _ := pdf.GetPageSize()
	pdf.ImageOptions("qr", (pageW-40)/2, pdf.GetY()+4, 40, 40, false, opts, 0, "")

	issued := rc.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Issued "+issued.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func paymentSuffix(method string) string {
	if method == "" {
		return ""
	}
	return " (" + method + ")"
}
