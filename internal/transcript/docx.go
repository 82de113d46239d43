package transcript

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// docxSource reads the body-level paragraphs of a .docx file. Paragraphs
// nested in tables or text boxes are not returned on their own.
type docxSource struct {
	path string
}

func (s *docxSource) Paragraphs(ctx context.Context) ([]string, error) {
	zr, err := zip.OpenReader(s.path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", documentPart, err)
		}
		defer rc.Close()

		paragraphs, err := parseDocumentXML(rc)
		if err != nil {
			return nil, err
		}
		return paragraphs, ctx.Err()
	}

	return nil, fmt.Errorf("docx %s has no %s", s.path, documentPart)
}

// parseDocumentXML walks WordprocessingML and returns the text of each
// w:p that is a direct child of w:body.
func parseDocumentXML(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		stack      []string
		paragraphs []string
		buf        strings.Builder
		inPara     bool
		inText     bool
	)

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p := parent()
			stack = append(stack, t.Name.Local)
			switch t.Name.Local {
			case "p":
				if p == "body" {
					inPara = true
					buf.Reset()
				}
			case "t":
				inText = inPara && p == "r"
			case "tab":
				if inPara && p == "r" {
					buf.WriteByte('\t')
				}
			case "br", "cr":
				if inPara && p == "r" {
					buf.WriteByte('\n')
				}
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inPara && parent() == "body" {
					paragraphs = append(paragraphs, buf.String())
					inPara = false
				}
			}

		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}

	return paragraphs, nil
}
