// Package rendering merges values into the master application template.
package rendering

import "regexp"

// Placeholder tokens recognised in the master template.
const (
	TokenFirstname     = "{{FIRSTNAME}}"
	TokenLastname      = "{{LASTNAME}}"
	TokenStreet        = "{{STREET}}"
	TokenZip           = "{{ZIP}}"
	TokenCity          = "{{CITY}}"
	TokenPhoneNumber   = "{{PHONE_NUMBER}}"
	TokenEmail         = "{{E_MAIL}}"
	TokenCompanyName   = "{{COMPANY_NAME}}"
	TokenCompanyStreet = "{{COMPANY_STREET}}"
	TokenCompanyZip    = "{{COMPANY_ZIP}}"
	TokenCompanyCity   = "{{COMPANY_CITY}}"
	TokenText          = "{{APPLICATION_TEXT}}"
	TokenSignature     = "{{SIGNATURE}}"
	TokenCurriculum    = "{{CURRICULUM}}"
	TokenCertificates  = "{{CERTIFICATES}}"
)

// Binding ties a placeholder token to the record key that fills it.
type Binding struct {
	Token string
	Key   string
}

// PersonalBindings map applicant profile keys, in substitution order.
var PersonalBindings = []Binding{
	{TokenFirstname, "firstname"},
	{TokenLastname, "lastname"},
	{TokenStreet, "street"},
	{TokenZip, "zip"},
	{TokenCity, "city"},
	{TokenPhoneNumber, "phone_number"},
	{TokenEmail, "e_mail"},
}

// AddressBindings map entity address keys, in substitution order.
var AddressBindings = []Binding{
	{TokenCompanyName, "company"},
	{TokenCompanyStreet, "street"},
	{TokenCompanyZip, "zip"},
	{TokenCompanyCity, "city"},
}

// KnownTokens lists every token the generator fills, in substitution order.
func KnownTokens() []string {
	tokens := make([]string, 0, len(PersonalBindings)+len(AddressBindings)+4)
	for _, b := range PersonalBindings {
		tokens = append(tokens, b.Token)
	}
	for _, b := range AddressBindings {
		tokens = append(tokens, b.Token)
	}
	return append(tokens, TokenText, TokenSignature, TokenCurriculum, TokenCertificates)
}

var placeholderPattern = regexp.MustCompile(`\{\{[A-Z0-9_]+\}\}`)

// Placeholders returns the distinct {{NAME}} tokens in text, in order of first appearance.
func Placeholders(text string) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, token := range placeholderPattern.FindAllString(text, -1) {
		if seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}

// Unknown returns the placeholders in text that no substitution step fills.
func Unknown(text string) []string {
	known := make(map[string]bool)
	for _, token := range KnownTokens() {
		known[token] = true
	}

	var unknown []string
	for _, token := range Placeholders(text) {
		if !known[token] {
			unknown = append(unknown, token)
		}
	}
	return unknown
}
