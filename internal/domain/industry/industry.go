// Package industry holds the ÖNACE industry classification catalog and the
// document-to-code associations used to scope retrieval per user sector.
package industry

import (
	"sort"
	"strings"
)

// Code is a single-letter ÖNACE section code, or General ("0").
type Code string

// General marks documents that apply to every industry.
const General Code = "0"

// Category is one entry of the closed ÖNACE catalog.
type Category struct {
	Code        Code
	NameGerman  string
	NameEnglish string
	Description string
}

// catalog is the closed set of valid codes. Immutable after package init.
var catalog = map[Code]Category{
	"0": {"0", "Allgemein", "General", "General - All industries and sectors"},
	"A": {"A", "LAND- UND FORSTWIRTSCHAFT, FISCHEREI (01 - 03)", "AGRICULTURE, FORESTRY, AND FISHING (01 - 03)",
		"Agriculture, Forestry and Fishing - Farming, crop production, livestock, forestry"},
	"B": {"B", "BERGBAU UND GEWINNUNG VON STEINEN UND ERDEN (05 - 09)", "MINING AND QUARRYING (05 - 09)",
		"Mining and Quarrying - Extraction of minerals, oil, gas"},
	"C": {"C", "HERSTELLUNG VON WAREN (10 - 33)", "MANUFACTURING (10 - 33)",
		"Manufacturing - Production of goods, factories, industrial facilities"},
	"D": {"D", "ENERGIEVERSORGUNG (35)", "ENERGY SUPPLY (35)",
		"Electricity, Gas, Steam and Air Conditioning Supply - Energy production"},
	"E": {"E", "WASSERVERSORGUNG; ABWASSER- UND ABFALLENTSORGUNG UND BESEITIGUNG VON UMWELTVERSCHMUTZUNGEN (36 - 39)",
		"WATER SUPPLY; SEWAGE AND WASTE DISPOSAL AND REMOVAL OF ENVIRONMENTAL POLLUTION (36 - 39)",
		"Water Supply; Sewerage, Waste Management and Remediation Activities - Water management, waste treatment"},
	"F": {"F", "BAU (41 - 43)", "CONSTRUCTION (41 - 43)",
		"Construction - Building, infrastructure, construction activities"},
	"G": {"G", "HANDEL (46 - 47)", "TRADE (46 - 47)",
		"Wholesale and Retail Trade; Repair of Motor Vehicles and Motorcycles - Trading, retail"},
	"H": {"H", "VERKEHR UND LAGEREI (49 - 53)", "TRANSPORT AND STORAGE (49 - 53)",
		"Transportation and Storage - Logistics, transport, shipping"},
	"I": {"I", "BEHERBERGUNG UND GASTRONOMIE (55 - 56)", "ACCOMMODATION AND CATERING (55 - 56)",
		"Accommodation and Food Service Activities - Hotels, restaurants, tourism"},
	"J": {"J", "VERLAGSWESEN, RUNDFUNK SOWIE ERSTELLUNG UND VERBREITUNG VON MEDIENINHALTEN (58 - 60)",
		"PUBLISHING, BROADCASTING AND PRODUCTION AND DISTRIBUTION OF MEDIA CONTENT (58 - 60)",
		"Information and Communication - IT, telecommunications, media"},
	"K": {"K", "ERBRINGUNG VON FINANZ- UND VERSICHERUNGSDIENSTLEISTUNGEN (64 - 66)",
		"FINANCIAL AND INSURANCE SERVICES (64 - 66)",
		"Financial and Insurance Activities - Banking, insurance, financial services"},
	"L": {"L", "GRUNDSTÜCKS- UND WOHNUNGSWESEN (68)", "REAL ESTATE ACTIVITIES (68)",
		"Real Estate Activities - Property, real estate"},
	"M": {"M", "ERBRINGUNG VON FREIBERUFLICHEN, WISSENSCHAFTLICHEN UND TECHNISCHEN DIENSTLEISTUNGEN (69 - 75)",
		"PROFESSIONAL, SCIENTIFIC AND TECHNICAL ACTIVITIES (69 - 75)",
		"Professional, Scientific and Technical Activities - Consulting, research, professional services"},
	"N": {"N", "ERBRINGUNG VON SONSTIGEN WIRTSCHAFTLICHEN DIENSTLEISTUNGEN (77 - 82)",
		"ADMINISTRATIVE AND SUPPORT SERVICE ACTIVITIES (77 - 82)",
		"Administrative and Support Service Activities - Administrative services"},
	"O": {"O", "ÖFFENTLICHE VERWALTUNG, VERTEIDIGUNG; SOZIALVERSICHERUNG (84)",
		"PUBLIC ADMINISTRATION, DEFENCE; COMPULSORY SOCIAL SECURITY (84)",
		"Public Administration and Defence; Compulsory Social Security - Government, public sector"},
	"P": {"P", "ERZIEHUNG UND UNTERRICHT (85)", "EDUCATION (85)",
		"Education - Schools, universities, training"},
	"Q": {"Q", "GESUNDHEITSWESEN UND SOZIALE DIENSTLEISTUNGEN (86 - 88)",
		"HUMAN HEALTH AND SOCIAL WORK ACTIVITIES (86 - 88)",
		"Human Health and Social Work Activities - Healthcare, social services"},
	"R": {"R", "KUNST, UNTERHALTUNG UND ERHOLUNG (90 - 93)", "ARTS, ENTERTAINMENT AND RECREATION (90 - 93)",
		"Arts, Entertainment and Recreation - Entertainment, culture, sports"},
	"S": {"S", "ERBRINGUNG VON SONSTIGEN DIENSTLEISTUNGEN (94 - 96)", "OTHER SERVICE ACTIVITIES (94 - 96)",
		"Other Service Activities - Other services"},
	"T": {"T", "PRIVATE HAUSHALTE MIT HAUSHALTSPERSONAL; ERBRINGUNG VON DIENSTLEISTUNGEN FÜR PRIVATE HAUSHALTE ALS ARBEITGEBER (97 - 98)",
		"ACTIVITIES OF HOUSEHOLDS AS EMPLOYERS; UNDIFFERENTIATED GOODS- AND SERVICES-PRODUCING ACTIVITIES OF HOUSEHOLDS FOR OWN USE (97 - 98)",
		"Activities of Households as Employers; Undifferentiated Goods- and Services-Producing Activities of Households for Own Use"},
	"U": {"U", "EXTERRITORIALE ORGANISATIONEN UND KÖRPERSCHAFTEN (99)",
		"ACTIVITIES OF EXTRATERRITORIAL ORGANISATIONS AND BODIES (99)",
		"Activities of Extraterritorial Organisations and Bodies - International organizations"},
}

// Valid reports whether code is part of the catalog.
func Valid(code Code) bool {
	_, ok := catalog[code]
	return ok
}

// Lookup returns the catalog entry for code.
func Lookup(code Code) (Category, bool) {
	c, ok := catalog[code]
	return c, ok
}

// All returns every catalog entry ordered by code, General first.
func All() []Category {
	out := make([]Category, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Describe returns a human-readable sector description for prompt context.
func Describe(code Code) string {
	if c, ok := catalog[code]; ok {
		return c.Description
	}
	return "Industry code " + string(code) + " - Unknown sector"
}

// CodeSet is an unordered set of industry codes.
type CodeSet map[Code]struct{}

// NewCodeSet builds a set from the given codes.
func NewCodeSet(codes ...Code) CodeSet {
	s := make(CodeSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports set membership.
func (s CodeSet) Has(code Code) bool {
	_, ok := s[code]
	return ok
}

// Sorted returns the codes in ascending order.
func (s CodeSet) Sorted() []Code {
	out := make([]Code, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as a comma-separated list.
func (s CodeSet) String() string {
	codes := s.Sorted()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

// ParseCodes parses a comma-separated code string into a CodeSet.
// Unknown tokens are dropped. Empty input, the literal "nan" (spreadsheet
// exports encode missing cells that way) and inputs with no valid token
// all default to the General set.
func ParseCodes(raw string) CodeSet {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "nan" {
		return NewCodeSet(General)
	}

	codes := make(CodeSet)
	for _, token := range strings.Split(raw, ",") {
		code := Code(strings.TrimSpace(token))
		if code != "" && Valid(code) {
			codes[code] = struct{}{}
		}
	}

	if len(codes) == 0 {
		return NewCodeSet(General)
	}
	return codes
}

// Relevant reports whether a document tagged with docCodes applies to a user
// in sector userCode. General documents apply to everyone; otherwise the
// user's code must be among the document's codes. Note the asymmetry: a
// document tagged only "A" is not relevant to a General user.
func Relevant(docCodes CodeSet, userCode Code) bool {
	if docCodes.Has(General) {
		return true
	}
	return docCodes.Has(userCode)
}
