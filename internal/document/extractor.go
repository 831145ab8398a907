package document

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Rrens/docchat/internal/domain"
)

const (
	documentPart = "word/document.xml"

	// maxDocumentXML caps the decompressed size of the main document part
	maxDocumentXML = 64 << 20
)

var wordNamespaces = map[string]bool{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main": true,
	"http://purl.oclc.org/ooxml/wordprocessingml/main":             true,
}

var supportedExtensions = map[string]bool{
	".doc":  true,
	".docx": true,
}

// CheckExtension rejects file names that are not Word documents
func CheckExtension(name string) error {
	if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
		return domain.ErrUnsupportedFormat
	}
	return nil
}

// Extractor turns Word documents into plain text
type Extractor struct{}

// NewExtractor creates a document extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the raw text of a Word document. Each paragraph is
// followed by a blank line; tabs and line breaks inside runs are kept and
// all formatting is dropped. The name is checked before data is read.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (string, error) {
	if err := CheckExtension(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
	}

	part, err := zr.Open(documentPart)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
	}
	defer part.Close()

	text, err := rawText(io.LimitReader(part, maxDocumentXML))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
	}
	return text, nil
}

// rawText walks the document body. Only text, tab and break elements
// inside runs produce output.
func rawText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		out    strings.Builder
		runs   int
		inText bool
		seen   bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !wordNamespaces[t.Name.Space] {
				continue
			}
			switch t.Name.Local {
			case "document":
				seen = true
			case "r":
				runs++
			case "t":
				inText = runs > 0
			case "tab":
				if runs > 0 {
					out.WriteByte('\t')
				}
			case "br", "cr":
				if runs > 0 {
					out.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if !wordNamespaces[t.Name.Space] {
				continue
			}
			switch t.Name.Local {
			case "r":
				runs--
			case "t":
				inText = false
			case "p":
				out.WriteString("\n\n")
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}

	if !seen {
		return "", errors.New("missing document element")
	}
	return out.String(), nil
}
