package site

// Example returns the configuration written by `docsite init`: a small
// documentation portal with two sidebar groups, a GitHub link and the
// starlight and mdx integrations.
func Example() *Config {
	return &Config{
		Title:         "Example Documentation",
		Site:          "https://example.github.io",
		Base:          "/example-docs",
		TrailingSlash: TrailingSlashIgnore,
		Social: map[string]string{
			"github": "https://github.com/example/example-docs",
		},
		Sidebar: []Group{
			{
				Label: "Getting Started",
				Items: []Item{
					{Label: "Introduction", Link: "/"},
					{Label: "Setup", Link: "/setup/"},
				},
			},
			{
				Label: "Components",
				Items: []Item{
					{Label: "Agents Catalog", Link: "/agents_catalog/"},
					{Label: "Deployment", Link: "/deployment/"},
					{Label: "Evaluations", Link: "/evaluations/"},
				},
			},
		},
		Integrations: []Integration{
			{Name: "starlight"},
			{Name: "mdx"},
		},
	}
}
