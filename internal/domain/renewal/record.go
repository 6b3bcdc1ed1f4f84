package renewal

import "strings"

// CustomerTaxRecord is a vehicle entry in the customer registry.
// The registry is owned elsewhere; this package only reads it.
type CustomerTaxRecord struct {
	LicensePlate string
	CustomerName string
	Phone        string
	// LastTaxDate is stored as free text in one of several encodings
	LastTaxDate string
	// ExpiryDate is optional and overrides LastTaxDate when parseable
	ExpiryDate  string
	Tags        []string
	VehicleType string
	Brand       string
}

// HasTag reports whether the record carries tag (case-insensitive)
func (r CustomerTaxRecord) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// UniqueByPlate drops records without a plate and, among records whose plates
// normalise to the same key, keeps the first. Every component that resolves a
// plate to a record goes through here so they agree on which row counts.
func UniqueByPlate(records []CustomerTaxRecord) []CustomerTaxRecord {
	out := make([]CustomerTaxRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		key := NormalizePlate(r.LicensePlate)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// IndexByPlate maps normalised plates to records, resolving duplicates like UniqueByPlate
func IndexByPlate(records []CustomerTaxRecord) map[string]CustomerTaxRecord {
	unique := UniqueByPlate(records)
	idx := make(map[string]CustomerTaxRecord, len(unique))
	for _, r := range unique {
		idx[NormalizePlate(r.LicensePlate)] = r
	}
	return idx
}
