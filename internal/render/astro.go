package render

import (
	"strings"
	"sync"

	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/exec"

	derrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/integration"
	_ "git.home.luguber.info/inful/docsite/internal/integration/mdx"
	_ "git.home.luguber.info/inful/docsite/internal/integration/starlight"
	"git.home.luguber.info/inful/docsite/internal/render/jslit"
	"git.home.luguber.info/inful/docsite/internal/site"
)

const astroModule = `// Generated by docsite from the site configuration. Edit that instead.
import { defineConfig } from 'astro/config';
{%- for imp in imports %}
import {{ imp.name }} from {{ imp.module }};
{%- endfor %}

export default defineConfig({
{%- for opt in options %}
  {{ opt.key }}: {{ opt.value }},
{%- endfor %}
  integrations: [
{%- for call in calls %}
    {{ call }},
{%- endfor %}
  ],
});
`

var astroTemplate = sync.OnceValues(func() (*exec.Template, error) {
	return gonja.FromString(astroModule)
})

// Astro emits astro.config.mjs. Site settings are top-level defineConfig
// options; integrations are called in declaration order.
type Astro struct{}

func (Astro) Name() string     { return AstroTarget }
func (Astro) FileName() string { return "astro.config.mjs" }

func (Astro) Render(cfg *site.Config) ([]byte, error) {
	tpl, err := astroTemplate()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to parse astro template").Build()
	}

	var options []map[string]string
	addOption := func(key, value string) {
		options = append(options, map[string]string{"key": key, "value": jslit.Quote(value)})
	}
	if cfg.Site != "" {
		addOption("site", cfg.Site)
	}
	if cfg.Base != "" && cfg.Base != "/" {
		addOption("base", cfg.Base)
	}
	if cfg.TrailingSlash != "" {
		addOption("trailingSlash", string(cfg.TrailingSlash))
	}

	imports := make([]map[string]string, 0, len(cfg.Integrations))
	calls := make([]string, 0, len(cfg.Integrations))
	imported := map[string]bool{}
	for _, in := range cfg.Integrations {
		p := integration.Resolve(in.Name)
		if p.ImportName() == integration.ConfigBinding {
			return nil, derrors.RenderError("integration import name clashes with "+integration.ConfigBinding).
				WithContext("integration", in.Name).
				Build()
		}
		if !imported[p.Module()] {
			imported[p.Module()] = true
			imports = append(imports, map[string]string{"name": p.ImportName(), "module": jslit.Quote(p.Module())})
		}
		call, err := p.Call(cfg, in.Options)
		if err != nil {
			return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to render integration").
				WithContext("integration", in.Name).
				Build()
		}
		calls = append(calls, call)
	}

	out, err := tpl.ExecuteToString(exec.NewContext(map[string]any{
		"imports": imports,
		"options": options,
		"calls":   calls,
	}))
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to render astro config").Build()
	}
	return []byte(strings.TrimRight(out, "\n") + "\n"), nil
}
