package printing

// DefaultQuoteTemplate is the built-in devis layout. Amounts arrive
// pre-formatted in QuoteDocumentData; the template only lays them out.
const DefaultQuoteTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Devis {{.DraftNumber}}</title>
<style>
  body { font-family: "DejaVu Sans", Arial, sans-serif; font-size: 12px; color: #222; margin: 32px; }
  h1 { font-size: 20px; margin-bottom: 4px; }
  .meta { margin-bottom: 16px; }
  .meta div { margin: 2px 0; }
  table { width: 100%; border-collapse: collapse; margin-top: 12px; }
  th, td { border: 1px solid #999; padding: 4px 6px; }
  th { background: #eef3f7; text-align: left; }
  td.num { text-align: right; white-space: nowrap; }
  .totals { margin-top: 16px; width: 40%; margin-left: auto; }
  .totals td { border: none; padding: 2px 6px; }
  .totals .grand td { font-weight: bold; border-top: 1px solid #222; }
  .words { margin-top: 12px; font-style: italic; }
  .remark { margin-top: 20px; }
</style>
</head>
<body>
  <h1>Devis {{.DraftNumber}}</h1>
  <div class="meta">
    <div>Client : {{.CustomerName}}</div>
    {{if .CustomerRef}}<div>Référence client : {{.CustomerRef}}</div>{{end}}
    <div>Date : {{formatDate .Date}}</div>
    <div>Statut : {{statusText .Status}}</div>
  </div>

  <table>
    <thead>
      <tr>
        <th>N°</th>
        <th>Code</th>
        <th>Désignation</th>
        <th>Unité</th>
        <th>Qté</th>
        <th>P.U. HT</th>
        <th>TVA</th>
        <th>Montant HT</th>
        <th>Montant TTC</th>
      </tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td class="num">{{.Position}}</td>
        <td>{{.ArticleCode}}</td>
        <td>{{.Label}}</td>
        <td>{{.Unit}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.UnitPriceFormatted}}</td>
        <td class="num">{{.TaxRateFormatted}}</td>
        <td class="num">{{.UntaxedFormatted}}</td>
        <td class="num">{{.TaxedFormatted}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Total HT</td><td class="num">{{.TotalUntaxedFormatted}}</td></tr>
    <tr><td>Total TVA</td><td class="num">{{.TotalTaxFormatted}}</td></tr>
    <tr class="grand"><td>Total TTC</td><td class="num">{{.TotalTaxedFormatted}}</td></tr>
  </table>

  <p class="words">Arrêté le présent devis à la somme de : {{.TotalTaxedWords}}.</p>

  {{if .Remark}}<p class="remark">{{.Remark}}</p>{{end}}
</body>
</html>`
