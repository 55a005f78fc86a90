package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"log/slog"
	"strings"
	"text/template"

	"payloadgen/pkg/probepayload"
)

// RuntimeImport is the import path of the package generated code builds on.
const RuntimeImport = "payloadgen/pkg/probepayload"

// bytesPerLine is the width at which payload literals are wrapped.
const bytesPerLine = 12

var goSourceTemplate = template.Must(template.New("generated").Funcs(template.FuncMap{
	"ports":   portsLiteral,
	"payload": payloadLiteral,
}).Parse(`// Code generated by payloadgen from {{.Source}}; DO NOT EDIT.

package {{.Package}}

import (
	"sync"

	"{{.Runtime}}"
)

// entries holds {{len .Entries}} port sets in ascending order.
var entries = []probepayload.Entry{
{{- range .Entries}}
	{Ports: probepayload.Ports{ {{- ports .Ports -}} }, Payload: []byte{ {{- payload .Payload -}} }},
{{- end}}
}

var table = sync.OnceValue(func() *probepayload.Table {
	return probepayload.New(entries)
})

// Table returns the payload table, building it on first use. It is safe for
// concurrent use.
func Table() *probepayload.Table {
	return table()
}
`))

// GoSource renders entries as a Go source file exposing a compute-once
// Table accessor.
type GoSource struct {
	Package string
	// Source names the input in the generated header.
	Source string
	// Runtime overrides RuntimeImport.
	Runtime string
	Logger  *slog.Logger
}

func (g GoSource) Encode(entries []probepayload.Entry) ([]byte, error) {
	runtime := g.Runtime
	if runtime == "" {
		runtime = RuntimeImport
	}
	var buf bytes.Buffer
	err := goSourceTemplate.Execute(&buf, struct {
		Package string
		Source  string
		Runtime string
		Entries []probepayload.Entry
	}{g.Package, g.Source, runtime, entries})
	if err != nil {
		return nil, fmt.Errorf("failed to render generated source: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Keep the unformatted source; it is still the complete table.
		logger := g.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("Failed to format generated source", "error", err)
		return buf.Bytes(), nil
	}
	return formatted, nil
}

func portsLiteral(ports probepayload.Ports) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ", ")
}

func payloadLiteral(payload []byte) string {
	parts := make([]string, len(payload))
	for i, c := range payload {
		parts[i] = fmt.Sprintf("0x%02x", c)
	}
	if len(parts) <= bytesPerLine {
		return strings.Join(parts, ", ")
	}

	var b strings.Builder
	for start := 0; start < len(parts); start += bytesPerLine {
		end := min(start+bytesPerLine, len(parts))
		b.WriteString("\n\t\t")
		b.WriteString(strings.Join(parts[start:end], ", "))
		b.WriteString(",")
	}
	b.WriteString("\n\t")
	return b.String()
}
