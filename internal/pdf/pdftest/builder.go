// Package pdftest builds small AcroForm PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf16"
)

// Field describes one node of an AcroForm field tree
type Field struct {
	Name string
	// FT is the PDF field type: Tx, Btn, Ch. Empty for pure grouping nodes.
	FT string
	// Value is the /V object in PDF syntax; empty means no /V entry.
	Value string
	Kids  []Field
}

// Text returns a text field holding value
func Text(name, value string) Field {
	return Field{Name: name, FT: "Tx", Value: String(value)}
}

// EmptyText returns a text field without a /V entry
func EmptyText(name string) Field {
	return Field{Name: name, FT: "Tx"}
}

// Checkbox returns a button field whose /V is /1 when on and /Off otherwise
func Checkbox(name string, on bool) Field {
	v := "/Off"
	if on {
		v = "/1"
	}
	return Field{Name: name, FT: "Btn", Value: v}
}

// Group returns a non-terminal field whose kids are named relative to it
func Group(name string, kids ...Field) Field {
	return Field{Name: name, Kids: kids}
}

// String encodes s as a PDF string object. ASCII text becomes a literal
// string, anything else a UTF-16BE hex string with byte order mark.
func String(s string) string {
	ascii := true
	for _, r := range s {
		if r > 0x7e || r < 0x20 {
			ascii = false
			break
		}
	}
	if ascii {
		r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
		return "(" + r.Replace(s) + ")"
	}
	var b strings.Builder
	b.WriteString("<FEFF")
	for _, u := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&b, "%04X", u)
	}
	b.WriteString(">")
	return b.String()
}

type builder struct {
	objects []string
}

func (b *builder) reserve() int {
	b.objects = append(b.objects, "")
	return len(b.objects)
}

func (b *builder) set(num int, body string) {
	b.objects[num-1] = body
}

func (b *builder) addField(f Field, parent int) int {
	num := b.reserve()
	var kidRefs []string
	for _, kid := range f.Kids {
		kidRefs = append(kidRefs, fmt.Sprintf("%d 0 R", b.addField(kid, num)))
	}

	var d strings.Builder
	d.WriteString("<< ")
	if f.Name != "" {
		fmt.Fprintf(&d, "/T %s ", String(f.Name))
	}
	if f.FT != "" {
		fmt.Fprintf(&d, "/FT /%s ", f.FT)
	}
	if f.Value != "" {
		fmt.Fprintf(&d, "/V %s ", f.Value)
	}
	if parent > 0 {
		fmt.Fprintf(&d, "/Parent %d 0 R ", parent)
	}
	if len(kidRefs) > 0 {
		fmt.Fprintf(&d, "/Kids [%s] ", strings.Join(kidRefs, " "))
	}
	d.WriteString(">>")
	b.set(num, d.String())
	return num
}

// Build renders a single-page PDF whose AcroForm holds fields
func Build(fields ...Field) []byte {
	b := &builder{}
	catalog := b.reserve()
	pages := b.reserve()
	page := b.reserve()
	acroForm := b.reserve()

	var refs []string
	for _, f := range fields {
		refs = append(refs, fmt.Sprintf("%d 0 R", b.addField(f, 0)))
	}

	b.set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R /AcroForm %d 0 R >>", pages, acroForm))
	b.set(pages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", page))
	b.set(page, fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 595 842] >>", pages))
	b.set(acroForm, fmt.Sprintf("<< /Fields [%s] >>", strings.Join(refs, " ")))

	var out bytes.Buffer
	out.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(b.objects))
	for i, body := range b.objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(b.objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(b.objects)+1, catalog, xref)
	return out.Bytes()
}

// WriteFile builds a form PDF and writes it to path
func WriteFile(path string, fields ...Field) error {
	return os.WriteFile(path, Build(fields...), 0o600)
}

// SwapXRef exchanges the cross-reference entries of objects a and b, so each
// entry points at the other object. Readers that check object numbers reject
// the result.
func SwapXRef(data []byte, a, b int) []byte {
	const entryLen = len("0000000000 65535 f \n")

	out := bytes.Clone(data)
	start := bytes.LastIndex(out, []byte("xref\n"))
	if start < 0 {
		return out
	}
	start += len("xref\n")
	start += bytes.IndexByte(out[start:], '\n') + 1

	ea := out[start+a*entryLen : start+(a+1)*entryLen]
	eb := out[start+b*entryLen : start+(b+1)*entryLen]
	tmp := bytes.Clone(ea)
	copy(ea, eb)
	copy(eb, tmp)
	return out
}
