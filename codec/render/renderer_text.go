package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/smartcontractkit/deal-console/codec/calldata"
)

//go:embed templates/text/*.tmpl
var textTemplateFS embed.FS

var _ Renderer = (*TextRenderer)(nil)

// TextRenderer renders plain text from templates. Nested arrays and structs are indented one
// level per depth.
type TextRenderer struct {
	indent          string
	transactionTmpl *template.Template
	callDataTmpl    *template.Template
	fieldTmpl       *template.Template
}

func NewTextRenderer() *TextRenderer {
	r := &TextRenderer{
		indent: "  ",
	}
	r.initTemplates()

	return r
}

func (r *TextRenderer) initTemplates() {
	funcMap := template.FuncMap{
		"renderField": r.renderField,
		"indent":      r.indentLines,
	}

	r.transactionTmpl = template.Must(template.New("transaction.tmpl").Funcs(funcMap).ParseFS(textTemplateFS, "templates/text/transaction.tmpl"))
	r.callDataTmpl = template.Must(template.New("calldata.tmpl").Funcs(funcMap).ParseFS(textTemplateFS, "templates/text/calldata.tmpl"))
	r.fieldTmpl = template.Must(template.New("field.tmpl").Funcs(funcMap).ParseFS(textTemplateFS, "templates/text/field.tmpl"))
}

// RenderTransaction renders the selector check and the decoded parameters of tx.
func (r *TextRenderer) RenderTransaction(tx calldata.DecodedTransaction) (string, error) {
	var buf bytes.Buffer
	if err := r.transactionTmpl.Execute(&buf, tx); err != nil {
		return "", fmt.Errorf("failed to render transaction: %w", err)
	}

	return buf.String(), nil
}

// RenderCallData renders an encoded call with its parameters and warnings.
func (r *TextRenderer) RenderCallData(c calldata.EncodedCallData) (string, error) {
	var buf bytes.Buffer
	if err := r.callDataTmpl.Execute(&buf, newCallDataView(c)); err != nil {
		return "", fmt.Errorf("failed to render call data: %w", err)
	}

	return buf.String(), nil
}

// RenderFields renders decoded fields, one per line.
func (r *TextRenderer) RenderFields(fields []calldata.DecodedField) (string, error) {
	var sb strings.Builder
	for _, f := range fields {
		line, err := r.renderField(f)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// renderField renders f and, indented below it, its elements or struct fields.
func (r *TextRenderer) renderField(f calldata.DecodedField) (string, error) {
	var buf bytes.Buffer
	if err := r.fieldTmpl.Execute(&buf, f); err != nil {
		return "", fmt.Errorf("failed to render field %s: %w", f.Name, err)
	}

	children := f.Elements
	if f.Fields != nil {
		children = f.Fields
	}
	for _, c := range children {
		line, err := r.renderField(c)
		if err != nil {
			return "", err
		}
		buf.WriteString("\n")
		buf.WriteString(r.indentLines(1, line))
	}

	return buf.String(), nil
}

func (r *TextRenderer) indentLines(depth int, s string) string {
	prefix := strings.Repeat(r.indent, depth)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}

	return strings.Join(lines, "\n")
}
