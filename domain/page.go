package domain

// Page holds the fixed presentation settings of the sign-up page.
type Page struct {
	Title      string
	Heading    string
	Subheading string
	LogoURL    string
	FaviconURL string
}
