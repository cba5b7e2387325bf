package notification

import "text/template"

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "user_registered"}}Hello {{.FirstName}} {{.LastName}},

Thank you for registering. Confirm your email address to activate the
account:

{{.BaseURL}}/api/v1/auth/register/confirm

Email: {{.Email}}
Token: {{.Token}}

The token is valid for 24 hours.
{{end}}

{{define "password_reset"}}Hello,

A password reset was requested for this account. Use the token below to
set a new password:

{{.BaseURL}}/api/v1/auth/password/reset/confirm

Email: {{.Email}}
Token: {{.Token}}

If you did not request this, ignore this message.
{{end}}

{{define "order_placed"}}Hello,

Your order {{.OrderID}} with {{.ItemCount}} item(s) has been received
and is being processed.
{{end}}

{{define "order_status_changed"}}Hello,

Your order {{.OrderID}} moved from "{{.OldStatus}}" to "{{.NewStatus}}".
{{end}}

{{define "order_items_changed"}}Hello,

The supplier adjusted your order {{.OrderID}}:
{{range .Changes}}
- {{if .ProductName}}{{.ProductName}}{{else}}item {{.ItemID}}{{end}}: {{if .Removed}}removed (was {{.OldQuantity}}){{else}}{{.OldQuantity}} -> {{.NewQuantity}}{{end}}{{end}}

The order total has been recalculated.
{{end}}
`))
