package aggregator

import (
	"strings"

	"github.com/tickerwire/tickerwire/pkg/domain"
)

// DefaultCountryAliases maps a country to the names, places and people it is referred by in headlines
var DefaultCountryAliases = map[string][]string{
	"United States":  {"USA", "U.S.", "US", "America", "American", "Washington", "Biden", "Trump", "Congress", "White House"},
	"United Kingdom": {"UK", "Britain", "British", "England", "London", "Parliament", "Starmer", "Sunak"},
	"Russia":         {"Russian", "Moscow", "Putin", "Kremlin"},
	"China":          {"Chinese", "Beijing", "Xi Jinping", "CCP"},
	"Germany":        {"German", "Berlin", "Scholz", "Bundesbank"},
	"France":         {"French", "Paris", "Macron", "Élysée"},
	"Japan":          {"Japanese", "Tokyo", "Kishida"},
	"India":          {"Indian", "Delhi", "Modi", "Mumbai"},
	"Brazil":         {"Brazilian", "Brasilia", "Lula", "São Paulo"},
	"Canada":         {"Canadian", "Ottawa", "Trudeau", "Toronto"},
	"Australia":      {"Australian", "Canberra", "Sydney", "Melbourne"},
	"Italy":          {"Italian", "Rome", "Meloni", "Milan"},
	"Spain":          {"Spanish", "Madrid", "Barcelona"},
	"Mexico":         {"Mexican", "Mexico City"},
	"South Korea":    {"Korean", "Seoul", "Korea"},
	"Saudi Arabia":   {"Saudi", "Riyadh", "MBS"},
	"Turkey":         {"Turkish", "Ankara", "Istanbul", "Erdogan"},
	"Israel":         {"Israeli", "Tel Aviv", "Jerusalem", "Netanyahu", "Gaza", "Hamas"},
	"Ukraine":        {"Ukrainian", "Kyiv", "Kiev", "Zelensky"},
	"Poland":         {"Polish", "Warsaw"},
	"Netherlands":    {"Dutch", "Amsterdam", "Holland"},
	"Switzerland":    {"Swiss", "Zurich", "Geneva"},
	"Sweden":         {"Swedish", "Stockholm"},
	"Norway":         {"Norwegian", "Oslo"},
	"Argentina":      {"Argentine", "Buenos Aires", "Milei"},
	"South Africa":   {"Johannesburg", "Cape Town", "Pretoria"},
	"Egypt":          {"Egyptian", "Cairo", "Sisi"},
	"Iran":           {"Iranian", "Tehran", "Khamenei"},
	"Iraq":           {"Iraqi", "Baghdad"},
	"Syria":          {"Syrian", "Damascus", "Assad"},
	"Pakistan":       {"Pakistani", "Islamabad", "Karachi"},
	"Indonesia":      {"Indonesian", "Jakarta"},
	"Thailand":       {"Thai", "Bangkok"},
	"Vietnam":        {"Vietnamese", "Hanoi", "Ho Chi Minh"},
	"Philippines":    {"Filipino", "Manila", "Marcos"},
	"Nigeria":        {"Nigerian", "Lagos", "Abuja"},
	"Kenya":          {"Kenyan", "Nairobi"},
	"Colombia":       {"Colombian", "Bogota"},
	"Chile":          {"Chilean", "Santiago"},
	"Peru":           {"Peruvian", "Lima"},
	"Venezuela":      {"Venezuelan", "Caracas", "Maduro"},
	"Greece":         {"Greek", "Athens"},
	"Portugal":       {"Portuguese", "Lisbon"},
	"Ireland":        {"Irish", "Dublin"},
	"Belgium":        {"Belgian", "Brussels"},
	"Austria":        {"Austrian", "Vienna"},
	"Czech Republic": {"Czech", "Prague"},
	"Hungary":        {"Hungarian", "Budapest", "Orban"},
	"Romania":        {"Romanian", "Bucharest"},
	"Georgia":        {"Georgian", "Tbilisi"},
}

// CountryMatcher returns a filter matching items mentioning country or one of its aliases in
// headline or summary, case-insensitive substring match. Country lookup in the alias table
// ignores case, unknown countries match by name only.
func CountryMatcher(country string, aliases map[string][]string) func(domain.Item) bool {
	terms := []string{strings.ToLower(strings.TrimSpace(country))}
	for name, list := range aliases {
		if !strings.EqualFold(name, strings.TrimSpace(country)) {
			continue
		}
		for _, a := range list {
			if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
				terms = append(terms, a)
			}
		}
	}

	return func(it domain.Item) bool {
		text := strings.ToLower(it.Headline + " " + it.Summary)
		for _, term := range terms {
			if term != "" && strings.Contains(text, term) {
				return true
			}
		}
		return false
	}
}

// MergeAliases returns defaults with overrides applied, an override replaces the whole alias list
func MergeAliases(defaults, overrides map[string][]string) map[string][]string {
	res := make(map[string][]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		res[k] = v
	}
	for k, v := range overrides {
		res[k] = v
	}
	return res
}
