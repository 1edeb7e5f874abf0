package printing

import (
	"bytes"
	"html/template"

	"github.com/storefront/backend/internal/domain/cart"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Receipt {{.Code}}</title>
<style>
  body { font-family: monospace; font-size: 12px; margin: 0; }
  .receipt { width: 100%; }
  .center { text-align: center; }
  .row { display: flex; justify-content: space-between; }
  .total { font-weight: bold; border-top: 1px dashed #000; padding-top: 4px; margin-top: 4px; }
  hr { border: none; border-top: 1px dashed #000; }
</style>
</head>
<body>
<div class="receipt">
  <div class="center">
    <h2>STOREFRONT</h2>
    <p>Purchase receipt</p>
  </div>
  <hr>
  <div class="row"><span>Ticket</span><span>{{.Code}}</span></div>
  <div class="row"><span>Date</span><span>{{.PurchasedAt}}</span></div>
  <div class="row"><span>Customer</span><span>{{.Purchaser}}</span></div>
  <div class="row total"><span>TOTAL</span><span>{{.Amount}}</span></div>
  <hr>
  <div class="center"><p>Thank you for your purchase</p></div>
</div>
</body>
</html>
`))

type receiptData struct {
	Code        string
	PurchasedAt string
	Purchaser   string
	Amount      string
}

// BuildReceiptHTML renders the receipt document for a purchase ticket.
func BuildReceiptHTML(ticket *cart.Ticket) (string, error) {
	data := receiptData{
		Code:        ticket.Code,
		PurchasedAt: ticket.PurchasedAt.Format("2006-01-02 15:04:05"),
		Purchaser:   ticket.Purchaser,
		Amount:      "$" + ticket.Amount.StringFixed(2),
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
