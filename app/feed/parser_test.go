package feed

import (
	"testing"
)

func TestParser_DanishLayout(t *testing.T) {
	xmlText := `<?xml version="1.0" encoding="iso-8859-1"?>
<produkter>
  <produkt>
    <produktid>12345</produktid>
    <produktnavn>Kabinekuffert 55cm</produktnavn>
    <beskrivelse>Letvægts hardcase</beskrivelse>
    <kategorinavn>Bagage</kategorinavn>
    <nypris>1.299,00</nypris>
    <billedurl>https://example.com/img.jpg</billedurl>
    <vareurl>https://example.com/p/12345</vareurl>
    <forhandler>Adventure Pro</forhandler>
    <lagerantal>5</lagerantal>
  </produkt>
  <produkt>
    <produktnavn>Nakkepude</produktnavn>
  </produkt>
</produkter>`

	parser := NewParser()
	items, err := parser.Run(xmlText)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Field("name") != "Kabinekuffert 55cm" {
		t.Errorf("Unexpected name: %q", items[0].Field("name"))
	}
	if items[0].Field("price") != "1.299,00" {
		t.Errorf("Unexpected price: %q", items[0].Field("price"))
	}
	if items[0].Field("merchant") != "Adventure Pro" {
		t.Errorf("Unexpected merchant: %q", items[0].Field("merchant"))
	}
	if items[1].Field("name") != "Nakkepude" {
		t.Errorf("Unexpected name: %q", items[1].Field("name"))
	}
}

func TestParser_EnglishLayout(t *testing.T) {
	xmlText := `<products>
  <product>
    <VareId>A-1</VareId>
    <name>Travel pillow</name>
    <LangBeskrivelse>Memory foam</LangBeskrivelse>
    <NyPris>249,50</NyPris>
    <LandingsUrl>https://example.com/a1</LandingsUrl>
    <LagerStatus>Udsolgt</LagerStatus>
  </product>
</products>`

	parser := NewParser()
	items, err := parser.Run(xmlText)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Field("id") != "A-1" {
		t.Errorf("Unexpected id: %q", items[0].Field("id"))
	}
	if items[0].Field("description") != "Memory foam" {
		t.Errorf("Unexpected description: %q", items[0].Field("description"))
	}
	if items[0].Field("stock") != "Udsolgt" {
		t.Errorf("Unexpected stock: %q", items[0].Field("stock"))
	}
}

func TestParser_DropsNamelessItems(t *testing.T) {
	xmlText := `<produkter>
  <produkt>
    <produktid>1</produktid>
    <nypris>100</nypris>
  </produkt>
  <produkt>
    <produktnavn>Sovemaske</produktnavn>
  </produkt>
</produkter>`

	parser := NewParser()
	items, err := parser.Run(xmlText)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected nameless item to be dropped, got %d items", len(items))
	}
	if items[0].Field("name") != "Sovemaske" {
		t.Errorf("Unexpected surviving item: %q", items[0].Field("name"))
	}
}

func TestParser_NestedMarkupFlattened(t *testing.T) {
	xmlText := `<produkter>
  <produkt>
    <produktnavn>Telt</produktnavn>
    <beskrivelse>Let <b>og</b> vandtæt</beskrivelse>
  </produkt>
</produkter>`

	parser := NewParser()
	items, err := parser.Run(xmlText)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Field("description") != "Let og vandtæt" {
		t.Errorf("Expected flattened description, got %q", items[0].Field("description"))
	}
}

func TestParser_EmptyFeed(t *testing.T) {
	parser := NewParser()

	items, err := parser.Run(`<produkter></produkter>`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(items))
	}
}

func TestParser_UnknownRootIgnored(t *testing.T) {
	parser := NewParser()

	items, err := parser.Run(`<rss><channel><item><title>Not a product</title></item></channel></rss>`)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected 0 items for non-product XML, got %d", len(items))
	}
}

func TestParser_MalformedXml(t *testing.T) {
	parser := NewParser()

	_, err := parser.Run(`<produkter><produkt><produktnavn>Broken`)
	if err == nil {
		t.Error("Expected error for truncated XML")
	}
}
