package discovery

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"cpr/internal/domain"
)

// xmlTestCase mirrors one <TestCase> element of the XML listing
type xmlTestCase struct {
	Name   *string `xml:"Name"`
	Tags   string  `xml:"Tags"`
	Source struct {
		File string `xml:"File"`
		Line int    `xml:"Line"`
	} `xml:"SourceInfo"`
}

// xmlListing accepts a <MatchingTests> or <TestCases> root whose children
// are <TestCase> elements, and the nested <Catch2TestRun><MatchingTests> form.
type xmlListing struct {
	XMLName  xml.Name
	Cases    []xmlTestCase `xml:"TestCase"`
	Matching *struct {
		Cases []xmlTestCase `xml:"TestCase"`
	} `xml:"MatchingTests"`
}

// cases returns the listed cases, or an error when the document is not a
// test listing at all.
func (l *xmlListing) cases() ([]xmlTestCase, error) {
	switch l.XMLName.Local {
	case "MatchingTests", "TestCases":
		return l.Cases, nil
	case "Catch2TestRun":
		if l.Matching == nil {
			return nil, errors.New("test listing has no <MatchingTests> element")
		}
		return l.Matching.Cases, nil
	default:
		return nil, fmt.Errorf("unexpected test listing root <%s>", l.XMLName.Local)
	}
}

// Parser parses the structured test listing
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseListing returns the test cases of an XML listing in reported order
func (p *Parser) ParseListing(data []byte) ([]domain.TestCase, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty test listing")
	}

	var listing xmlListing
	if err := xml.Unmarshal(data, &listing); err != nil {
		return nil, fmt.Errorf("malformed test listing: %w", err)
	}

	raw, err := listing.cases()
	if err != nil {
		return nil, err
	}

	cases := make([]domain.TestCase, 0, len(raw))
	for i, c := range raw {
		if c.Name == nil || strings.TrimSpace(*c.Name) == "" {
			return nil, fmt.Errorf("test case %d in listing has no name", i+1)
		}
		cases = append(cases, domain.TestCase{
			Name: strings.TrimSpace(*c.Name),
			Tags: strings.TrimSpace(c.Tags),
			File: strings.TrimSpace(c.Source.File),
			Line: c.Source.Line,
		})
	}
	return cases, nil
}
