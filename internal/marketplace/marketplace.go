// Package marketplace is a static lookup table mapping Amazon marketplace
// identifiers to display and routing metadata.
package marketplace

// Marketplace holds display metadata for one Amazon marketplace.
type Marketplace struct {
	ID             string
	Name           string
	Domain         string
	Currency       string
	Region         string
	SalesPartner   string
	DefaultZipCode string
}

// IsZero reports whether the marketplace was not found.
func (m Marketplace) IsZero() bool {
	return m.ID == ""
}

// ByID returns the marketplace with the given Amazon marketplace id.
func ByID(id string) Marketplace {
	m, ok := marketplaces[id]
	if !ok {
		return Marketplace{}
	}
	return m
}

// ByName returns the first marketplace with the given display name.
func ByName(name string) Marketplace {
	for _, id := range marketplaceIDs {
		if marketplaces[id].Name == name {
			return marketplaces[id]
		}
	}
	return Marketplace{}
}

// ByRegion returns the first marketplace with the given region code.
func ByRegion(region string) Marketplace {
	for _, id := range marketplaceIDs {
		if marketplaces[id].Region == region {
			return marketplaces[id]
		}
	}
	return Marketplace{}
}

// ByDomain returns the first marketplace with the given storefront domain.
func ByDomain(domain string) Marketplace {
	for _, id := range marketplaceIDs {
		if marketplaces[id].Domain == domain {
			return marketplaces[id]
		}
	}
	return Marketplace{}
}

// marketplaceIDs keeps lookups deterministic over the map.
var marketplaceIDs = []string{
	"A2EUQ1WTGCTBG2",
	"A1AM78C64UM0Y8",
	"ATVPDKIKX0DER",
	"A1F83G8C2ARO7P",
	"A1RKKUPIHCS9HS",
	"A1VC38T7YXB528",
	"APJ6JRA9NG5V4",
	"A21TJRUUN4KGV",
	"A1PA6795UKMFR9",
	"A13V1IB3VIYZZH",
	"AAHKV2X7AFYLW",
	"A2Q3Y263D00KWC",
	"A39IBJ37TRP1C6",
	"A17E79C6D8DWNP",
	"A1805IZSGTT6HS",
	"A19VAU5U5O7RUS",
	"A2NODRKZP88ZB9",
	"A2VIGQ35RCS4UG",
	"A33AVAJ2PDY3EV",
	"ARBP9OOSHTCHU",
}

var marketplaces = map[string]Marketplace{
	"A2EUQ1WTGCTBG2": {
		ID:             "A2EUQ1WTGCTBG2",
		Name:           "Canada",
		Domain:         "amazon.ca",
		Currency:       "CAD",
		Region:         "CA",
		SalesPartner:   "Amazon Canada",
		DefaultZipCode: "M4B 3N6",
	},
	"A1AM78C64UM0Y8": {
		ID:             "A1AM78C64UM0Y8",
		Name:           "Mexico",
		Domain:         "amazon.com.mx",
		Currency:       "MXN",
		Region:         "MX",
		SalesPartner:   "Amazon Mexico",
		DefaultZipCode: "06140",
	},
	"ATVPDKIKX0DER": {
		ID:             "ATVPDKIKX0DER",
		Name:           "United States",
		Domain:         "amazon.com",
		Currency:       "USD",
		Region:         "US",
		SalesPartner:   "Amazon US",
		DefaultZipCode: "90001",
	},
	"A1F83G8C2ARO7P": {
		ID:             "A1F83G8C2ARO7P",
		Name:           "United Kingdom",
		Domain:         "amazon.co.uk",
		Currency:       "GBP",
		Region:         "UK",
		SalesPartner:   "Amazon UK",
		DefaultZipCode: "WC1B 5BE",
	},
	"A1RKKUPIHCS9HS": {
		ID:           "A1RKKUPIHCS9HS",
		Name:         "Spain",
		Domain:       "amazon.es",
		Currency:     "EUR",
		Region:       "ES",
		SalesPartner: "Amazon Spain",
	},
	"A1VC38T7YXB528": {
		ID:           "A1VC38T7YXB528",
		Name:         "Japan",
		Domain:       "amazon.co.jp",
		Currency:     "JPY",
		Region:       "JP",
		SalesPartner: "Amazon Japan",
	},
	"APJ6JRA9NG5V4": {
		ID:           "APJ6JRA9NG5V4",
		Name:         "Italy",
		Domain:       "amazon.it",
		Currency:     "EUR",
		Region:       "IT",
		SalesPartner: "Amazon Italy",
	},
	"A21TJRUUN4KGV": {
		ID:           "A21TJRUUN4KGV",
		Name:         "India",
		Domain:       "amazon.in",
		Currency:     "INR",
		Region:       "IN",
		SalesPartner: "Amazon India",
	},
	"A1PA6795UKMFR9": {
		ID:           "A1PA6795UKMFR9",
		Name:         "Germany",
		Domain:       "amazon.de",
		Currency:     "EUR",
		Region:       "DE",
		SalesPartner: "Amazon Germany",
	},
	"A13V1IB3VIYZZH": {
		ID:           "A13V1IB3VIYZZH",
		Name:         "France",
		Domain:       "amazon.fr",
		Currency:     "EUR",
		Region:       "FR",
		SalesPartner: "Amazon France",
	},
	"AAHKV2X7AFYLW": {
		ID:           "AAHKV2X7AFYLW",
		Name:         "China",
		Domain:       "amazon.cn",
		Currency:     "CNY",
		Region:       "CN",
		SalesPartner: "Amazon China",
	},
	"A2Q3Y263D00KWC": {
		ID:           "A2Q3Y263D00KWC",
		Name:         "Brazil",
		Domain:       "amazon.com.br",
		Currency:     "BRL",
		Region:       "BR",
		SalesPartner: "Amazon Brazil",
	},
	"A39IBJ37TRP1C6": {
		ID:           "A39IBJ37TRP1C6",
		Name:         "Australia",
		Domain:       "amazon.com.au",
		Currency:     "AUD",
		Region:       "AU",
		SalesPartner: "Amazon Australia",
	},
	"A17E79C6D8DWNP": {
		ID:           "A17E79C6D8DWNP",
		Name:         "Saudi Arabia",
		Domain:       "amazon.sa",
		Currency:     "SAR",
		Region:       "SA",
		SalesPartner: "Amazon Saudi Arabia",
	},
	"A1805IZSGTT6HS": {
		ID:           "A1805IZSGTT6HS",
		Name:         "Netherlands",
		Domain:       "amazon.nl",
		Currency:     "ANG",
		Region:       "NL",
		SalesPartner: "Amazon Netherlands",
	},
	"A19VAU5U5O7RUS": {
		ID:           "A19VAU5U5O7RUS",
		Name:         "Singapore",
		Domain:       "amazon.sg",
		Currency:     "SGD",
		Region:       "SG",
		SalesPartner: "Amazon Singapore",
	},
	"A2NODRKZP88ZB9": {
		ID:           "A2NODRKZP88ZB9",
		Name:         "Sweden",
		Currency:     "SEK",
		Region:       "SE",
		SalesPartner: "Amazon Sweden",
	},
	"A2VIGQ35RCS4UG": {
		ID:           "A2VIGQ35RCS4UG",
		Name:         "United Arab Emirates",
		Domain:       "amazon.ae",
		Currency:     "AED",
		Region:       "AE",
		SalesPartner: "Amazon United Arab Emirates",
	},
	"A33AVAJ2PDY3EV": {
		ID:           "A33AVAJ2PDY3EV",
		Name:         "Turkey",
		Domain:       "amazon.com.tr",
		Currency:     "TRY",
		Region:       "TR",
		SalesPartner: "Amazon Turkey",
	},
	"ARBP9OOSHTCHU": {
		ID:           "ARBP9OOSHTCHU",
		Name:         "Egypt",
		Currency:     "EGP",
		Region:       "EG",
		SalesPartner: "Amazon Egypt",
	},
}
