package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// docxText extracts paragraph text from a .docx file. A docx is a zip
// archive; the document body lives in word/document.xml as WordprocessingML.
// Only visible run text is kept: <w:t> content, with <w:br>/<w:tab> mapped
// to newline/tab and a newline after every paragraph.
func docxText(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return documentText(rc)
	}
	return "", fmt.Errorf("document.xml missing from archive")
}

func documentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inRunText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRunText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRunText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inRunText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
