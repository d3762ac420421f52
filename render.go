// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vanityserve

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"
)

// ContentTypeHTML is the content type of all HTML documents we serve.
const ContentTypeHTML = "text/html; charset=utf-8"

// metaTmpl renders the minimal document the go tool asks for using
// "?go-get=1". Please note that the go tool doesn't care about anything
// except for the meta elements inside the head element, so we keep
// everything else to the bare minimum.
var metaTmpl = template.Must(template.New("meta").Parse(
	`<!DOCTYPE html><html lang="en"><head>` +
		`<meta name="go-import" content="{{.ImportPath}} {{.VCS}} {{.Repository}}">` +
		`{{with .Source}}<meta name="go-source" content="{{$.ImportPath}} {{.Home}} {{.Dir}} {{.File}}">{{end}}` +
		`</head><body></body></html>`))

const pageStyle = `
      body { font-family: system-ui, sans-serif; margin: 3rem auto; max-width: 40rem; padding: 0 1.5rem; color: #1f2933; }
      a { color: #0b69a3; text-decoration: none; }
      a:hover { text-decoration: underline; }`

var landingTmpl = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.ImportPath}}</title>
    <style>` + pageStyle + `
      h1 { font-size: 2rem; margin-bottom: 0.5rem; }
      p { margin-bottom: 1.5rem; }
      ul { list-style: none; padding: 0; }
      li { margin-bottom: 0.5rem; }
    </style>
  </head>
  <body>
    <h1>{{.ImportPath}}</h1>
    <p>Redirects Go tooling to {{.Repository}}.</p>
    <ul>
      <li><a href="{{.Repository}}">Repository</a></li>
      {{- with .Homepage}}
      <li><a href="{{.}}">Documentation</a></li>
      {{- end}}
    </ul>
  </body>
</html>
`))

var notFoundTmpl = template.Must(template.New("notfound").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Module Not Found</title>
    <style>` + pageStyle + `
    </style>
  </head>
  <body>
    <h1>Module Not Found</h1>
    <p>No module mapping was found for <code>{{.}}</code>.</p>
  </body>
</html>
`))

// serveHTML renders the specified template with the data into a buffer
// first and only then sends the rendered document with the specified status
// code. This way, a failing template never leaves behind a half-written
// response with a misleading status code.
func serveHTML(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, data); err != nil {
		NormalizedHttpError(w, err)
		return
	}
	header := w.Header()
	header.Set("Content-Type", ContentTypeHTML)
	header.Set("Content-Length", strconv.Itoa(buff.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buff.Bytes())
}
