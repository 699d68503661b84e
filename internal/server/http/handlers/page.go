package handlers

import (
	"html/template"
	"strings"

	"github.com/polkiloo/orderdesk/internal/dashboard"
	"github.com/polkiloo/orderdesk/internal/domain/model"
)

const pageTemplateName = "admin.html"

const confirmPrompt = "Are you sure you want to mark this order as delivered?"

type pageRow struct {
	ID            string
	Order         string
	Date          string
	Username      string
	Address       string
	ItemCount     int
	PaymentMethod string
	Status        string
}

type pageData struct {
	Loading       bool
	Error         string
	Pending       []pageRow
	Delivered     []pageRow
	ConfirmPrompt string
}

func newPageData(view dashboard.View) pageData {
	data := pageData{ConfirmPrompt: confirmPrompt}
	switch view.Phase {
	case dashboard.PhaseLoading:
		data.Loading = true
		return data
	case dashboard.PhaseError:
		data.Error = view.Err
		return data
	}
	parts := view.Partition()
	data.Pending = toPageRows(parts.Pending)
	data.Delivered = toPageRows(parts.Delivered)
	return data
}

func toPageRows(rows []model.EnrichedOrder) []pageRow {
	out := make([]pageRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, pageRow{
			ID:            row.ID,
			Order:         strings.Join(row.ItemNames(), ", "),
			Date:          row.Date,
			Username:      row.Username,
			Address:       row.UserAddress,
			ItemCount:     len(row.Items),
			PaymentMethod: row.PaymentMethod,
			Status:        string(row.Status),
		})
	}
	return out
}

// PageTemplate returns the admin dashboard page for gin's HTML renderer.
func PageTemplate() *template.Template {
	return template.Must(template.New(pageTemplateName).Parse(pageSource))
}

const pageSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Admin Dashboard</title>
</head>
<body>
{{- if .Loading}}
<div class="loading">Loading...</div>
{{- else if .Error}}
<div class="error">Error: {{.Error}}</div>
{{- else}}
<div class="admin-dashboard">
<h1>Admin Dashboard</h1>
<h2>Pending Orders</h2>
<table class="order-table">
{{template "head"}}
<tbody>
{{- range .Pending}}
<tr>{{template "cells" .}}<td><button data-order="{{.ID}}" onclick="markAsDelivered(this)">Mark as Delivered</button></td></tr>
{{- else}}
<tr><td colspan="9">No pending orders</td></tr>
{{- end}}
</tbody>
</table>
<h2>Delivered Orders</h2>
<table class="order-table">
{{template "head"}}
<tbody>
{{- range .Delivered}}
<tr>{{template "cells" .}}<td><button disabled>Delivered</button></td></tr>
{{- else}}
<tr><td colspan="9">No delivered orders</td></tr>
{{- end}}
</tbody>
</table>
</div>
<script>
function markAsDelivered(button) {
  if (!window.confirm({{.ConfirmPrompt}})) {
    return;
  }
  var id = button.getAttribute("data-order");
  fetch("/api/admin/orders/" + encodeURIComponent(id) + "/deliver", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({confirm: true})
  }).then(function (response) {
    if (response.ok) {
      window.location.reload();
      return;
    }
    return response.json().catch(function () { return {}; }).then(function (body) {
      window.alert("Could not mark order " + id + " as delivered: " + (body.error || response.status));
    });
  }).catch(function (err) {
    window.alert("Could not mark order " + id + " as delivered: " + err);
  });
}
</script>
{{- end}}
</body>
</html>
{{define "head"}}<thead><tr><th>Order ID</th><th>Order</th><th>Date</th><th>Username</th><th>Address</th><th>Items</th><th>Payment Method</th><th>Status</th><th>Action</th></tr></thead>{{end}}
{{define "cells"}}<td>{{.ID}}</td><td>{{.Order}}</td><td>{{.Date}}</td><td>{{.Username}}</td><td>{{.Address}}</td><td>{{.ItemCount}} items</td><td>{{.PaymentMethod}}</td><td>{{.Status}}</td>{{end}}
`
