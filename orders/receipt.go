package orders

import (
	"bytes"
	"fmt"

	"broilers/models"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// QRCode encodes the customer's enquiry link for the order as a PNG.
func QRCode(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("cannot encode qr code: %w", err)
	}
	return png, nil
}

// Receipt renders a one page delivery slip with the order details and a
// QR code pointing at enquiryLink.
func Receipt(business string, o models.Order, enquiryLink string) ([]byte, error) {
	qrPNG, err := QRCode(enquiryLink, 256)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, business+" - Delivery Slip")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	rows := [][2]string{
		{"Order", o.ID},
		{"Placed", o.CreatedAt.Format("02 Jan 2006 15:04 MST")},
		{"Status", string(o.Status)},
		{"Customer", o.CustomerName},
		{"WhatsApp", "+" + o.WhatsApp},
		{"Hens", fmt.Sprintf("%d", o.HensCount)},
		{"Delivery time", o.DeliveryTime},
		{"Address", o.Address},
		{"Instructions", o.SpecialInstructions},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, row[0]+":")
		pdf.SetFont("Arial", "", 12)
		pdf.MultiCell(100, 8, row[1], "", "L", false)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("cannot render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
