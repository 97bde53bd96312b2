package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/mikawi/g2scv/internal/models"
	"github.com/mikawi/g2scv/internal/parser/patterns"
)

// extractFallback decodes page content streams directly. It recovers text
// and metadata from files the primary reader cannot open; link lists stay
// empty and hyperlinks come from text scanning alone.
func (e *Extractor) extractFallback(ctx context.Context, path string, doc *models.ParsedDocument) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return fmt.Errorf("pdfcpu read: %w", err)
	}

	infoMetadata(pctx, doc.Metadata)

	doc.Pages = doc.Pages[:0]
	pageTexts := make([]string, 0, pctx.PageCount)
	for pageNr := 1; pageNr <= pctx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pageText := pageContentText(pctx, pageNr)
		doc.Pages = append(doc.Pages, models.Page{
			Number: pageNr,
			Text:   pageText,
			Links:  []models.Link{},
		})
		pageTexts = append(pageTexts, pageText)
	}

	doc.RawText = strings.TrimSpace(strings.Join(pageTexts, "\n\n"))
	doc.Hyperlinks = patterns.Merge(doc.Hyperlinks, patterns.URLs(doc.RawText))
	return nil
}

func pageContentText(pctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return streamText(data)
}

// infoMetadata copies string and name entries from the document Info
// dictionary, normalizing date fields like the primary path does.
func infoMetadata(pctx *model.Context, meta map[string]string) {
	if pctx.Info == nil {
		return
	}
	info, err := pctx.DereferenceDict(*pctx.Info)
	if err != nil {
		return
	}
	for key, obj := range info {
		o, err := pctx.Dereference(obj)
		if err != nil {
			continue
		}
		var s string
		switch v := o.(type) {
		case types.StringLiteral:
			s, err = types.StringLiteralToString(v)
			if err != nil {
				continue
			}
		case types.HexLiteral:
			s, err = types.HexLiteralToString(v)
			if err != nil {
				continue
			}
		case types.Name:
			s = v.Value()
		default:
			continue
		}
		if s == "" {
			continue
		}
		if key == "CreationDate" || key == "ModDate" {
			s = isoDate(s)
		}
		meta[key] = s
	}
}

// pdfStringRe matches PDF string literals in parentheses.
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// streamText decodes the text-showing operators of a content stream.
func streamText(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// (text) Tj and [(text) -100 (more)] TJ
		if bytes.HasSuffix(line, []byte("Tj")) || bytes.HasSuffix(line, []byte("TJ")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeStringLiteral(m[1]))
			}
		}

		// (text) ' moves to the next line before showing text.
		if bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				if text := decodeStringLiteral(m[1]); text != "" {
					sb.WriteByte('\n')
					sb.WriteString(text)
				}
			}
		}

		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}
		if bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return strings.TrimSpace(sb.String())
}

// decodeStringLiteral resolves backslash escapes, including octal codes.
func decodeStringLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}
