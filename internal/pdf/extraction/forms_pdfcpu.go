package extraction

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// maxFieldDepth bounds recursion through the AcroForm field tree
const maxFieldDepth = 32

// Debugger receives diagnostic output from the extractor
type Debugger interface {
	Debugf(format string, args ...any)
}

// PDFCPUFormExtractor implements form extraction using the pdfcpu library
type PDFCPUFormExtractor struct {
	debug Debugger
}

// NewPDFCPUFormExtractor creates a new form extractor using pdfcpu.
// A nil debugger disables diagnostic output.
func NewPDFCPUFormExtractor(debug Debugger) *PDFCPUFormExtractor {
	return &PDFCPUFormExtractor{
		debug: debug,
	}
}

// inherited carries the inheritable field attributes down the field tree
type inherited struct {
	name     string
	ft       types.Object
	value    types.Object
	hasValue bool
	flags    int
}

// ExtractFieldsFromFile opens filePath and returns its form fields keyed by
// fully qualified name
func (fe *PDFCPUFormExtractor) ExtractFieldsFromFile(filePath string) (Fields, error) {
	forms, err := fe.ExtractFormsFromFile(filePath)
	if err != nil {
		return nil, err
	}
	return toFields(forms), nil
}

// ExtractFormsFromFile extracts all terminal form fields from a PDF file
func (fe *PDFCPUFormExtractor) ExtractFormsFromFile(filePath string) ([]FormField, error) {
	fe.debugf("Extracting forms from: %s using pdfcpu", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	return fe.ExtractFormsFromReader(file)
}

// ExtractFormsFromReader extracts forms from an io.ReadSeeker
func (fe *PDFCPUFormExtractor) ExtractFormsFromReader(reader io.ReadSeeker) ([]FormField, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(reader, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return fe.extractFormsFromContext(ctx)
}

// extractFormsFromContext walks the AcroForm /Fields tree of a pdfcpu context
func (fe *PDFCPUFormExtractor) extractFormsFromContext(ctx *model.Context) ([]FormField, error) {
	var forms []FormField

	rootDict, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	acroFormObj, found := rootDict.Find("AcroForm")
	if !found {
		fe.debugf("No AcroForm dictionary found in document")
		return forms, nil
	}

	acroFormDict, err := ctx.DereferenceDict(acroFormObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference AcroForm: %w", err)
	}
	if acroFormDict == nil {
		return forms, nil
	}

	fieldsObj, found := acroFormDict.Find("Fields")
	if !found {
		fe.debugf("No Fields array found in AcroForm")
		return forms, nil
	}

	fieldsArray, err := ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference Fields array: %w", err)
	}

	for i, fieldRef := range fieldsArray {
		collected, err := fe.processField(ctx, fieldRef, inherited{}, i, 0)
		if err != nil {
			fe.debugf("Error processing field %d: %v", i, err)
			continue
		}
		forms = append(forms, collected...)
	}

	return forms, nil
}

// processField resolves one node of the field tree and returns the terminal
// fields below it, named by joining the partial names with "."
func (fe *PDFCPUFormExtractor) processField(ctx *model.Context, fieldObj types.Object, parent inherited, index, depth int) ([]FormField, error) {
	if depth > maxFieldDepth {
		return nil, fmt.Errorf("field tree deeper than %d levels", maxFieldDepth)
	}

	fieldDict, err := ctx.DereferenceDict(fieldObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference field: %w", err)
	}
	if fieldDict == nil {
		return nil, nil
	}

	node := parent
	if nameObj, found := fieldDict.Find("T"); found {
		if partial, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil); err == nil && partial != "" {
			node.name = joinFieldName(parent.name, partial)
		}
	}
	if node.name == parent.name && depth == 0 {
		node.name = fmt.Sprintf("field_%d", index)
	}
	if ftObj, found := fieldDict.Find("FT"); found {
		node.ft = ftObj
	}
	if valueObj, found := fieldDict.Find("V"); found {
		node.value = valueObj
		node.hasValue = true
	}
	if flagsObj, found := fieldDict.Find("Ff"); found {
		if flags, err := ctx.DereferenceInteger(flagsObj); err == nil && flags != nil {
			node.flags = flags.Value()
		}
	}

	// Kids with a /T are child fields; kids without one are widget annotations.
	var children []FormField
	hasChildFields := false
	if kidsObj, found := fieldDict.Find("Kids"); found {
		kids, err := ctx.DereferenceArray(kidsObj)
		if err != nil {
			return nil, fmt.Errorf("failed to dereference Kids of %s: %w", node.name, err)
		}
		for i, kid := range kids {
			kidDict, err := ctx.DereferenceDict(kid)
			if err != nil || kidDict == nil {
				continue
			}
			if _, isField := kidDict.Find("T"); !isField {
				continue
			}
			hasChildFields = true
			collected, err := fe.processField(ctx, kid, node, i, depth+1)
			if err != nil {
				fe.debugf("Error processing kid %d of %s: %v", i, node.name, err)
				continue
			}
			children = append(children, collected...)
		}
	}
	if hasChildFields {
		return children, nil
	}

	field := FormField{
		Name:     node.name,
		Type:     fe.extractFieldType(ctx, node.ft, node.flags),
		ReadOnly: node.flags&1 != 0,
		Required: node.flags&2 != 0,
	}
	if node.hasValue {
		if value, ok := fe.extractFieldValue(ctx, node.value); ok {
			field.Value = value
			field.HasValue = true
		}
	}

	fe.debugf("Extracted field: %s (type: %s, value: %q)", field.Name, field.Type, field.Value)

	return []FormField{field}, nil
}

// extractFieldType determines the field type from the (possibly inherited) FT entry
func (fe *PDFCPUFormExtractor) extractFieldType(ctx *model.Context, ftObj types.Object, flags int) FormFieldType {
	if ftObj == nil {
		return FormFieldTypeUnknown
	}

	ftName, err := ctx.DereferenceName(ftObj, model.V10, nil)
	if err != nil {
		return FormFieldTypeUnknown
	}

	switch ftName {
	case "Btn":
		if flags&(1<<15) != 0 { // Bit 16: Radio
			return FormFieldTypeRadio
		} else if flags&(1<<16) != 0 { // Bit 17: Pushbutton
			return FormFieldTypeButton
		}
		return FormFieldTypeCheckbox
	case "Tx":
		return FormFieldTypeText
	case "Ch":
		return FormFieldTypeSelect
	case "Sig":
		return FormFieldTypeSignature
	default:
		return FormFieldTypeUnknown
	}
}

// extractFieldValue renders a /V entry as raw text. Names keep their slash.
func (fe *PDFCPUFormExtractor) extractFieldValue(ctx *model.Context, valueObj types.Object) (string, bool) {
	obj, err := ctx.Dereference(valueObj)
	if err != nil || obj == nil {
		return "", false
	}

	switch v := obj.(type) {
	case types.Name:
		return "/" + string(v), true
	case types.StringLiteral, types.HexLiteral:
		s, err := ctx.DereferenceStringOrHexLiteral(v, model.V10, nil)
		if err != nil {
			return "", false
		}
		return s, true
	case types.Integer:
		return strconv.Itoa(v.Value()), true
	case types.Float:
		return strconv.FormatFloat(v.Value(), 'f', -1, 64), true
	case types.Boolean:
		return strconv.FormatBool(v.Value()), true
	case types.Array:
		// Multi-select choice fields: keep the first selected entry.
		for _, item := range v {
			if s, ok := fe.extractFieldValue(ctx, item); ok {
				return s, true
			}
		}
	}
	return "", false
}

func (fe *PDFCPUFormExtractor) debugf(format string, args ...any) {
	if fe.debug != nil {
		fe.debug.Debugf(format, args...)
	}
}

func joinFieldName(parent, partial string) string {
	if parent == "" {
		return partial
	}
	return parent + "." + partial
}

// toFields indexes terminal fields by name; the first occurrence of a name wins
func toFields(forms []FormField) Fields {
	fields := make(Fields, len(forms))
	for _, f := range forms {
		if _, exists := fields[f.Name]; exists {
			continue
		}
		fields[f.Name] = f
	}
	return fields
}
