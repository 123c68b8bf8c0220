package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	hyperlinkRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	linkColor        = "0563C1"
	visitedColor     = "954F72"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>
</Relationships>`

// Render builds and encodes doc as a .docx package
func Render(doc types.ResumeDocument, format types.LayoutFormat) ([]byte, error) {
	return Build(doc, format).Encode(time.Time{})
}

// Encode writes the OOXML package. A zero created time omits the timestamps.
func (d *Document) Encode(created time.Time) ([]byte, error) {
	body, rels := d.documentXML()

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", body},
		{"word/_rels/document.xml.rels", rels},
		{"word/styles.xml", d.stylesXML()},
		{"docProps/core.xml", d.coreXML(created)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish docx package: %w", err)
	}
	return buf.Bytes(), nil
}

func escape(s string) string {
	var sb strings.Builder
	// EscapeText only fails when the writer does
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func twips(pt float64) int {
	return int(pt*twipsPerPoint + 0.5)
}

func halfPoints(pt float64) int {
	return int(pt*2 + 0.5)
}

func (d *Document) documentXML() (body string, rels string) {
	p := d.Policy
	var sb strings.Builder
	var links []string

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)

	contentWidth := twips(p.ContentWidth())
	for _, para := range d.Paragraphs {
		sb.WriteString("<w:p><w:pPr>")
		if para.BottomBorder {
			fmt.Fprintf(&sb, `<w:pBdr><w:bottom w:val="single" w:sz="%d" w:space="1" w:color="%s"/></w:pBdr>`,
				int(p.RuleWidth*8+0.5), p.RuleColor)
		}
		if para.RightTab {
			fmt.Fprintf(&sb, `<w:tabs><w:tab w:val="right" w:pos="%d"/></w:tabs>`, contentWidth)
		}
		fmt.Fprintf(&sb, `<w:spacing w:before="%d" w:after="%d" w:line="%d" w:lineRule="atLeast"/>`,
			twips(para.Before), twips(para.After), twips(p.Fonts.LineHeight))
		if para.Indent > 0 || para.Hanging > 0 {
			fmt.Fprintf(&sb, `<w:ind w:left="%d" w:hanging="%d"/>`, twips(para.Indent), twips(para.Hanging))
		}
		if para.Align != AlignLeft {
			fmt.Fprintf(&sb, `<w:jc w:val="%s"/>`, para.Align)
		}
		sb.WriteString("</w:pPr>")

		for _, r := range para.Runs {
			if r.Tab {
				sb.WriteString(`<w:r><w:tab/></w:r>`)
			}
			if r.Link != "" {
				links = append(links, r.Link)
				fmt.Fprintf(&sb, `<w:hyperlink r:id="rIdLink%d" w:history="1">`, len(links))
				writeRun(&sb, r, "Hyperlink")
				sb.WriteString(`</w:hyperlink>`)
				continue
			}
			writeRun(&sb, r, "")
		}
		sb.WriteString("</w:p>")
	}

	fmt.Fprintf(&sb, `<w:sectPr><w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="0" w:footer="0" w:gutter="0"/></w:sectPr>`,
		twips(p.PageWidth), twips(p.PageHeight),
		twips(p.MarginVertical), twips(p.MarginHorizontal), twips(p.MarginVertical), twips(p.MarginHorizontal))
	sb.WriteString("</w:body></w:document>")

	var rb strings.Builder
	rb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	rb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	rb.WriteString(`<Relationship Id="rIdStyles" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for i, l := range links {
		fmt.Fprintf(&rb, `<Relationship Id="rIdLink%d" Type="%s" Target="%s" TargetMode="External"/>`, i+1, hyperlinkRelType, escape(l))
	}
	rb.WriteString(`</Relationships>`)

	return sb.String(), rb.String()
}

func writeRun(sb *strings.Builder, r Run, style string) {
	if r.Text == "" {
		return
	}
	sb.WriteString("<w:r><w:rPr>")
	if style != "" {
		fmt.Fprintf(sb, `<w:rStyle w:val="%s"/>`, style)
	}
	if r.Bold {
		sb.WriteString("<w:b/>")
	}
	if r.Italic {
		sb.WriteString("<w:i/>")
	}
	if r.Size > 0 {
		fmt.Fprintf(sb, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, halfPoints(r.Size), halfPoints(r.Size))
	}
	sb.WriteString("</w:rPr>")
	fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t></w:r>`, escape(r.Text))
}

func (d *Document) stylesXML() string {
	font := escape(d.Policy.FontFamily)
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:cs="%[1]s" w:eastAsia="%[1]s"/><w:sz w:val="%[2]d"/><w:szCs w:val="%[2]d"/><w:lang w:val="en-US"/></w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>
<w:style w:type="character" w:default="1" w:styleId="DefaultParagraphFont"><w:name w:val="Default Paragraph Font"/><w:uiPriority w:val="1"/><w:semiHidden/></w:style>
<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"/><w:basedOn w:val="DefaultParagraphFont"/><w:uiPriority w:val="99"/><w:unhideWhenUsed/><w:rPr><w:color w:val="%[3]s"/><w:u w:val="single"/></w:rPr></w:style>
<w:style w:type="character" w:styleId="FollowedHyperlink"><w:name w:val="FollowedHyperlink"/><w:basedOn w:val="DefaultParagraphFont"/><w:uiPriority w:val="99"/><w:semiHidden/><w:unhideWhenUsed/><w:rPr><w:color w:val="%[4]s"/><w:u w:val="single"/></w:rPr></w:style>
</w:styles>`, font, halfPoints(d.Policy.Fonts.Body), linkColor, visitedColor)
}

func (d *Document) coreXML(created time.Time) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if d.Title != "" {
		fmt.Fprintf(&sb, "<dc:title>%s</dc:title>", escape(d.Title))
	}
	if d.Author != "" {
		fmt.Fprintf(&sb, "<dc:creator>%s</dc:creator>", escape(d.Author))
	}
	if !created.IsZero() {
		ts := created.UTC().Format(time.RFC3339)
		fmt.Fprintf(&sb, `<dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>`, ts)
		fmt.Fprintf(&sb, `<dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>`, ts)
	}
	sb.WriteString("</cp:coreProperties>")
	return sb.String()
}
