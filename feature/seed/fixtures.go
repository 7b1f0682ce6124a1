package seed

import _ "embed"

// Canonical blocks written over the document when block replacement is enabled.
var (
	//go:embed fixtures/contents.sql
	fixtureContents string

	//go:embed fixtures/content_analytics.sql
	fixtureAnalytics string
)
