// Package upi builds UPI payment deep links and their QR codes.
package upi

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	currencyINR = "INR"
	qrSize      = 300
)

type Link struct {
	PayeeID      string
	MerchantName string
	Amount       int64
	OrderID      string
}

// URI renders upi://pay?pa=...&pn=...&am=...&cu=INR&tn=... with the merchant
// name escaped as a query component and the other values as given.
func (l Link) URI() string {
	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(l.PayeeID)
	b.WriteString("&pn=")
	b.WriteString(escapeComponent(l.MerchantName))
	fmt.Fprintf(&b, "&am=%d", l.Amount)
	b.WriteString("&cu=")
	b.WriteString(currencyINR)
	b.WriteString("&tn=")
	b.WriteString(l.OrderID)
	return b.String()
}

// escapeComponent escapes reserved characters such as & and = and encodes
// spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// QRCodePNG encodes the link URI as a PNG QR code.
func (l Link) QRCodePNG() ([]byte, error) {
	if l.PayeeID == "" || l.OrderID == "" {
		return nil, errors.New("upi link requires payee id and order id")
	}
	png, err := qrcode.Encode(l.URI(), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("qr encode failed: %w", err)
	}
	return png, nil
}

// QRCodeDataURL is QRCodePNG as a data:image/png;base64 URL.
func (l Link) QRCodeDataURL() (string, error) {
	png, err := l.QRCodePNG()
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
