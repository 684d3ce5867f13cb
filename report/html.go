// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("").Funcs(htmlFuncs).Parse(`
<table class='cspstat'>
<thead>
<tr><th>VAR<th>VAL<th>ORD{{range .Dimensions}}<th>{{.}}{{end}}
</thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Key.Variable}}<td>{{.Key.Value}}<td>{{.Key.Order}}{{range .Means}}<td class='mean'>{{cell .}}{{end}}
{{- end}}
</tbody>
</table>
`))

var htmlFuncs = template.FuncMap{
	"cell": formatCell,
}

// WriteHTML writes t as an HTML table.
func WriteHTML(w io.Writer, t *Table) error {
	return htmlTemplate.Execute(w, t)
}
