package detection

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMalformedURL is returned when no hostname can be derived from a page URL
var ErrMalformedURL = errors.New("malformed page url")

// GenericProfileName names the fallback selector profile
const GenericProfileName = "generic"

// SelectorProfile scopes text extraction to the parts of a retailer's pages
// that usually hold a size chart
type SelectorProfile struct {
	Name      string
	Host      string // hostname substring, matched case-insensitively
	Selectors []string
}

var genericProfile = SelectorProfile{
	Name: GenericProfileName,
	Selectors: []string{
		`[class*="size"]`,
		`[class*="measurement"]`,
		`[class*="dimension"]`,
		`table`,
		`.product-details`,
		`.product-info`,
	},
}

// siteProfiles are matched in order; the first hostname hit wins
var siteProfiles = []SelectorProfile{
	{
		Name: "amazon",
		Host: "amazon",
		Selectors: []string{
			`.product-facts-detail`,
			`#productDetails_techSpec_section_1`,
			`#size-chart`,
			`.size-chart-container`,
			`xpath://div[@id="detailBullets_feature_div"]`,
		},
	},
	{
		Name:      "asos",
		Host:      "asos",
		Selectors: []string{`.size-guide`, `.product-size`, `[data-testid="size-guide"]`},
	},
	{
		Name:      "zara",
		Host:      "zara",
		Selectors: []string{`.size-guide`, `.product-detail-size-info`, `.size-table`},
	},
	{
		Name:      "hm",
		Host:      "hm.com",
		Selectors: []string{`.product-detail-measurement-guide`, `.size-guide`, `[data-testid="measurements"]`},
	},
	{
		Name:      "uniqlo",
		Host:      "uniqlo",
		Selectors: []string{`.size-chart`, `.product-size-chart`, `.fr-measurement`},
	},
	{
		Name:      "nike",
		Host:      "nike",
		Selectors: []string{`.size-chart`, `.product-dimensions`, `[data-testid="size-chart"]`},
	},
	{
		Name:      "adidas",
		Host:      "adidas",
		Selectors: []string{`.size-chart`, `.gl-size-chart`, `.sizing-chart`},
	},
}

// Route is the selector list chosen for a page
type Route struct {
	Profile   string
	Selectors []string
}

// RouteURL picks the selector profile for a page URL. Site selectors come
// first, followed by the generic ones. On a malformed URL the generic route
// is returned together with an ErrMalformedURL.
func RouteURL(rawURL string) (Route, error) {
	hostname, err := hostnameOf(rawURL)
	if err != nil {
		return genericRoute(), err
	}

	for _, profile := range siteProfiles {
		if strings.Contains(hostname, profile.Host) {
			selectors := make([]string, 0, len(profile.Selectors)+len(genericProfile.Selectors))
			selectors = append(selectors, profile.Selectors...)
			selectors = append(selectors, genericProfile.Selectors...)
			return Route{Profile: profile.Name, Selectors: selectors}, nil
		}
	}

	return genericRoute(), nil
}

func genericRoute() Route {
	selectors := make([]string, len(genericProfile.Selectors))
	copy(selectors, genericProfile.Selectors)
	return Route{Profile: GenericProfileName, Selectors: selectors}
}

func hostnameOf(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	hostname := u.Hostname()
	if u.Scheme == "" || hostname == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrMalformedURL, rawURL)
	}
	return strings.ToLower(hostname), nil
}

// ScopedText concatenates the text of every element matched by the selectors.
// Selectors the document cannot evaluate are skipped.
func ScopedText(doc Document, selectors []string) string {
	var b strings.Builder
	for _, selector := range selectors {
		text, err := doc.SelectText(selector)
		if err != nil {
			continue
		}
		b.WriteString(" ")
		b.WriteString(text)
	}
	return b.String()
}
