package credential

import "regexp"

// serviceRule is the declarative configuration behind a strategy.
type serviceRule struct {
	ID          string
	Name        string
	Patterns    []*regexp.Regexp
	Placeholder string
	DocsURL     string

	// InjectPattern matches an existing key assignment to rewrite.
	InjectPattern *regexp.Regexp

	// InjectTemplate builds the replacement assignment for a key.
	InjectTemplate func(key string) string
}

// defaultRules returns the supported service rules in detection order.
func defaultRules() []serviceRule {
	return []serviceRule{
		{
			ID:   "mapbox",
			Name: "Mapbox",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)mapboxgl\.accessToken\s*=`),
				regexp.MustCompile(`(?i)mapboxgl\.accessToken\s*:\s*['"]`),
				regexp.MustCompile(`(?i)mapbox\.com`),
				regexp.MustCompile(`(?i)mapbox-gl`),
				regexp.MustCompile(`(?i)mapboxgl`),
				regexp.MustCompile(`(?i)YOUR_MAPBOX_TOKEN`),
				regexp.MustCompile(`(?i)MAPBOX.*TOKEN`),
				regexp.MustCompile(`(?i)mapbox.*api.*key`),
			},
			Placeholder: "YOUR_MAPBOX_TOKEN",
			// Trailing semicolon is consumed so rewriting an already
			// injected assignment yields byte-identical output.
			InjectPattern: regexp.MustCompile(`(?i)mapboxgl\.accessToken\s*=\s*['"][^'"]*['"];?`),
			InjectTemplate: func(key string) string {
				return "mapboxgl.accessToken = '" + key + "';"
			},
			DocsURL: "https://docs.mapbox.com/help/getting-started/access-tokens/",
		},
		{
			ID:   "googleMaps",
			Name: "Google Maps",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)google\.maps`),
				regexp.MustCompile(`(?i)new google\.maps\.Map`),
				regexp.MustCompile(`(?i)googlemaps`),
				regexp.MustCompile(`(?i)gmaps`),
				regexp.MustCompile(`(?i)GOOGLE.*MAPS.*API.*KEY`),
				regexp.MustCompile(`(?i)YOUR_GOOGLE_MAPS_API_KEY`),
				regexp.MustCompile(`(?i)maps\.googleapis\.com`),
			},
			Placeholder:   "YOUR_GOOGLE_MAPS_API_KEY",
			InjectPattern: regexp.MustCompile(`(?i)key\s*=\s*['"][^'"]*['"]`),
			InjectTemplate: func(key string) string {
				return "key=" + key
			},
			DocsURL: "https://developers.google.com/maps/documentation/javascript/get-api-key",
		},
		{
			ID:   "openai",
			Name: "OpenAI",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)new OpenAI\(`),
				regexp.MustCompile(`(?i)openai\.apiKey`),
				regexp.MustCompile(`(?i)OPENAI.*API.*KEY`),
				regexp.MustCompile(`(?i)YOUR_OPENAI_API_KEY`),
				regexp.MustCompile(`(?i)api\.openai\.com`),
			},
			Placeholder:   "YOUR_OPENAI_API_KEY",
			InjectPattern: regexp.MustCompile(`(?i)apiKey\s*:\s*['"][^'"]*['"]`),
			InjectTemplate: func(key string) string {
				return "apiKey: '" + key + "'"
			},
			DocsURL: "https://platform.openai.com/api-keys",
		},
		{
			ID:   "stripe",
			Name: "Stripe",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)new Stripe\(`),
				regexp.MustCompile(`(?i)stripe\.publishableKey`),
				regexp.MustCompile(`(?i)STRIPE.*API.*KEY`),
				regexp.MustCompile(`(?i)YOUR_STRIPE_API_KEY`),
				regexp.MustCompile(`(?i)stripe\.com`),
			},
			Placeholder:   "YOUR_STRIPE_API_KEY",
			InjectPattern: regexp.MustCompile(`(?i)publishableKey\s*:\s*['"][^'"]*['"]`),
			InjectTemplate: func(key string) string {
				return "publishableKey: '" + key + "'"
			},
			DocsURL: "https://stripe.com/docs/keys",
		},
		{
			ID:   "firebase",
			Name: "Firebase",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)firebase\.initializeApp`),
				regexp.MustCompile(`(?i)firebaseConfig`),
				regexp.MustCompile(`(?i)FIREBASE.*API.*KEY`),
				regexp.MustCompile(`(?i)YOUR_FIREBASE_API_KEY`),
				regexp.MustCompile(`(?i)firebase\.googleapis\.com`),
			},
			Placeholder:   "YOUR_FIREBASE_API_KEY",
			InjectPattern: regexp.MustCompile(`(?i)apiKey\s*:\s*['"][^'"]*['"]`),
			InjectTemplate: func(key string) string {
				return "apiKey: '" + key + "'"
			},
			DocsURL: "https://firebase.google.com/docs/web/setup",
		},
		{
			ID:   "algolia",
			Name: "Algolia",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)algoliasearch\(`),
				regexp.MustCompile(`(?i)ALGOLIA.*API.*KEY`),
				regexp.MustCompile(`(?i)YOUR_ALGOLIA_API_KEY`),
				regexp.MustCompile(`(?i)algolia\.net`),
			},
			Placeholder:   "YOUR_ALGOLIA_API_KEY",
			InjectPattern: regexp.MustCompile(`(?i)apiKey\s*:\s*['"][^'"]*['"]`),
			InjectTemplate: func(key string) string {
				return "apiKey: '" + key + "'"
			},
			DocsURL: "https://www.algolia.com/doc/guides/security/api-keys/",
		},
		{
			ID:   "sendgrid",
			Name: "SendGrid",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)sendgrid`),
				regexp.MustCompile(`(?i)SENDGRID.*API.*KEY`),
				regexp.MustCompile(`(?i)YOUR_SENDGRID_API_KEY`),
				regexp.MustCompile(`(?i)sendgrid\.com`),
			},
			Placeholder:   "YOUR_SENDGRID_API_KEY",
			InjectPattern: regexp.MustCompile(`(?i)apiKey\s*:\s*['"][^'"]*['"]`),
			InjectTemplate: func(key string) string {
				return "apiKey: '" + key + "'"
			},
			DocsURL: "https://docs.sendgrid.com/api-reference/how-to-use-the-sendgrid-v3-api/authentication",
		},
		{
			ID:   "twilio",
			Name: "Twilio",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)twilio`),
				regexp.MustCompile(`(?i)TWILIO.*API.*KEY`),
				regexp.MustCompile(`(?i)YOUR_TWILIO_API_KEY`),
				regexp.MustCompile(`(?i)twilio\.com`),
			},
			Placeholder:   "YOUR_TWILIO_API_KEY",
			InjectPattern: regexp.MustCompile(`(?i)apiKey\s*:\s*['"][^'"]*['"]`),
			InjectTemplate: func(key string) string {
				return "apiKey: '" + key + "'"
			},
			DocsURL: "https://www.twilio.com/docs/usage/api",
		},
		{
			ID:   "gemini",
			Name: "Google Gemini",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)@google/genai`),
				regexp.MustCompile(`(?i)GoogleGenerativeAI`),
				regexp.MustCompile(`(?i)new GoogleGenerativeAI\(`),
				regexp.MustCompile(`(?i)gemini`),
				regexp.MustCompile(`(?i)GEMINI.*API.*KEY`),
				regexp.MustCompile(`(?i)YOUR_GEMINI_API_KEY`),
				regexp.MustCompile(`(?i)google\.ai`),
				regexp.MustCompile(`(?i)generativelanguage\.googleapis\.com`),
				regexp.MustCompile(`(?i)gemini.*chat`),
				regexp.MustCompile(`(?i)gemini.*model`),
				regexp.MustCompile(`(?i)chat.*gemini`),
				regexp.MustCompile(`(?i)ai.*chat`),
			},
			Placeholder:   "YOUR_GEMINI_API_KEY",
			InjectPattern: regexp.MustCompile(`(?i)new GoogleGenerativeAI\(['"][^'"]*['"]\)`),
			InjectTemplate: func(key string) string {
				return "new GoogleGenerativeAI('" + key + "')"
			},
			DocsURL: "https://ai.google.dev/gemini-api/docs/api-key",
		},
	}
}
