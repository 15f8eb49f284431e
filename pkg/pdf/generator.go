package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/signintech/gopdf"
)

const fontName = "dejavu"

var ErrFontNotLoaded = errors.New("receipt font not loaded")

// Receipt is the content of a registration receipt.
type Receipt struct {
	EventName      string
	EventDate      string
	RegistrationID string
	OrderID        string
	FullName       string
	Email          string
	Phone          string
	City           string
	Amount         int64
	Status         string
	IssuedAt       time.Time
}

type Generator struct {
	fontPath string
	hasFont  bool
}

// NewGenerator checks the TTF font once; a missing font makes every
// GenerateReceipt call fail with ErrFontNotLoaded.
func NewGenerator(fontPath string) *Generator {
	_, err := os.Stat(fontPath)
	return &Generator{
		fontPath: fontPath,
		hasFont:  err == nil,
	}
}

func (g *Generator) Available() bool {
	return g.hasFont
}

// GenerateReceipt renders a one-page A4 receipt.
func (g *Generator) GenerateReceipt(r Receipt) ([]byte, error) {
	if !g.hasFont {
		return nil, ErrFontNotLoaded
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		PageSize: *gopdf.PageSizeA4,
		Unit:     gopdf.Unit_PT,
	})

	if err := pdf.AddTTFFont(fontName, g.fontPath); err != nil {
		return nil, fmt.Errorf("add font failed: %w", err)
	}

	pdf.AddPage()

	if err := addHeader(pdf, r.EventName); err != nil {
		return nil, err
	}

	pdf.SetY(100)
	rows := []struct{ title, value string }{
		{"Participant", r.FullName},
		{"Email", r.Email},
		{"Phone", r.Phone},
		{"City", r.City},
		{"Registration ID", r.RegistrationID},
		{"Order ID", r.OrderID},
		{"Amount", fmt.Sprintf("INR %d", r.Amount)},
		{"Payment status", r.Status},
		{"Event date", r.EventDate},
	}
	for _, row := range rows {
		if err := addRow(pdf, row.title, row.value); err != nil {
			return nil, err
		}
	}

	if err := addFooter(pdf, r.IssuedAt); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to output PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func addHeader(pdf *gopdf.GoPdf, title string) error {
	pdf.SetFillColor(180, 83, 9)
	pdf.RectFromUpperLeftWithStyle(0, 0, 595, 70, "F")

	pdf.SetTextColor(255, 255, 255)
	if err := pdf.SetFont(fontName, "", 22); err != nil {
		return fmt.Errorf("set font failed: %w", err)
	}
	pdf.SetX(50)
	pdf.SetY(25)
	if err := pdf.Cell(nil, title+" - Registration Receipt"); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}
	pdf.SetTextColor(0, 0, 0)

	return nil
}

func addRow(pdf *gopdf.GoPdf, title, value string) error {
	y := pdf.GetY() + 24

	pdf.SetY(y)
	pdf.SetX(50)
	pdf.SetTextColor(120, 120, 120)
	if err := pdf.SetFont(fontName, "", 11); err != nil {
		return fmt.Errorf("set font failed: %w", err)
	}
	if err := pdf.Cell(nil, title); err != nil {
		return fmt.Errorf("write %s failed: %w", title, err)
	}

	pdf.SetY(y)
	pdf.SetX(200)
	pdf.SetTextColor(0, 0, 0)
	if err := pdf.SetFont(fontName, "", 13); err != nil {
		return fmt.Errorf("set font failed: %w", err)
	}
	if value == "" {
		value = "-"
	}
	if err := pdf.Cell(nil, value); err != nil {
		return fmt.Errorf("write %s failed: %w", title, err)
	}

	return nil
}

func addFooter(pdf *gopdf.GoPdf, issuedAt time.Time) error {
	pdf.SetY(780)
	pdf.SetX(50)
	pdf.SetTextColor(150, 150, 150)
	if err := pdf.SetFont(fontName, "", 9); err != nil {
		return fmt.Errorf("set font failed: %w", err)
	}
	if err := pdf.Cell(nil, "Issued "+issuedAt.Format("02 Jan 2006 15:04 MST")); err != nil {
		return fmt.Errorf("write footer failed: %w", err)
	}

	return nil
}
