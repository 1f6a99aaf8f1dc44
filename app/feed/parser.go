package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Parser converts a decoded feed payload into a uniform list of raw
// field mappings. The Partner-ads network serves two known layouts,
// produkter>produkt and products>product, with vendor-specific child
// element names; both collapse into RawItem maps here.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run parses the XML payload and returns one RawItem per product
// element. Items lacking every name synonym are dropped. A single-item
// feed without a list wrapper yields a one-element result. Malformed
// XML returns an error; the caller treats that feed as empty.
func (p *Parser) Run(xmlText string) ([]RawItem, error) {
	dec := xml.NewDecoder(strings.NewReader(xmlText))
	dec.Strict = false
	// The payload is already decoded to UTF-8; ignore any prolog charset
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	items := make([]RawItem, 0)
	var root string
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse feed XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			name := el.Name.Local
			if depth == 0 {
				root = name
				depth++
				continue
			}
			if depth == 1 && isItemElement(root, name) {
				item, err := p.decodeItem(dec, name)
				if err != nil {
					return nil, fmt.Errorf("failed to parse feed item: %w", err)
				}
				if item.HasName() {
					items = append(items, item)
				}
				continue // decodeItem consumed the matching end element
			}
			depth++
		case xml.EndElement:
			if depth > 0 {
				depth--
			}
		}
	}

	return items, nil
}

func isItemElement(root, name string) bool {
	return (root == "produkter" && name == "produkt") ||
		(root == "products" && name == "product")
}

// decodeItem reads the children of one product element into a RawItem,
// keyed by the vendor's element names as-is.
func (p *Parser) decodeItem(dec *xml.Decoder, itemName string) (RawItem, error) {
	item := make(RawItem)

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			value, err := p.readText(dec)
			if err != nil {
				return nil, err
			}
			item[el.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if el.Name.Local == itemName {
				return item, nil
			}
		}
	}
}

// readText collects the character data of the current element,
// flattening any nested markup, until its end element.
func (p *Parser) readText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1

	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}

		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(tok.(xml.CharData))
		}
	}

	return sb.String(), nil
}
