package notification

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"github.com/fekuna/perfume-order-service/internal/order/dto"
)

var funcs = template.FuncMap{
	"join": strings.Join,
	"orNone": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "none"
		}
		return s
	},
}

var subjectTmpl = template.Must(template.New("subject").Parse(
	`[Perfume Order] {{.CategoryLabel}} - {{.OrderNumber}}`))

var bodyTmpl = template.Must(template.New("body").Funcs(funcs).Parse(`A new perfume order has been received.

=== Order ===
Order number: {{.OrderNumber}}
Order type: {{.CategoryLabel}}
Ordered at: {{.PlacedAt.Format "2006-01-02 15:04:05"}}

=== Customer ===
Name: {{.Order.Name}}
Phone: {{.Order.Phone}}
X ID: {{.Order.SocialHandle}}
Postal code: {{.Order.PostalCode}}
Address: {{.Order.Address}}
Detail address: {{.Order.DetailAddress}}

=== Items ===
{{if gt .Order.Small.Quantity 0}}10ml perfume: {{.Order.Small.Quantity}}
{{end}}{{if gt .Order.Large.Quantity 0}}50ml perfume: {{.Order.Large.Quantity}}
{{end}}
Total: {{.Quote.Total}} KRW
Payment: bank transfer

=== Delivery note ===
{{orNone .Order.Note}}
{{with .Favorite}}
=== Favorite ===
- Name: {{.Name}}
- Type: {{.Type}}
- Personality: {{.Personality}}
- Characteristics: {{.Characteristics}}
- Keywords: {{join .Keywords ", "}}
- Colors: {{join .Colors ", "}}
{{end}}
=== System ===
Received at: {{.ReceivedAt}}
`))

type bodyData struct {
	*dto.OrderNotification
	ReceivedAt string
}

// Render builds the plain-text subject and body for n.
func Render(n *dto.OrderNotification) (subject, body string, err error) {
	var sb, bb bytes.Buffer
	if err := subjectTmpl.Execute(&sb, n); err != nil {
		return "", "", err
	}
	data := bodyData{OrderNotification: n, ReceivedAt: n.PlacedAt.UTC().Format(time.RFC3339)}
	if err := bodyTmpl.Execute(&bb, data); err != nil {
		return "", "", err
	}
	return sb.String(), bb.String(), nil
}
