package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-meta/internal/errors"
	"github.com/vango-dev/vango-meta/pkg/meta"
	"github.com/vango-dev/vango-meta/pkg/routepath"
)

type renderOptions struct {
	// request
	controller string
	action     string
	path       string

	// page layer
	title       string
	language    string
	description string
	keywords    []string
	lang        string
	canonical   string
	robots      string
	custom      []string
	httpEquiv   []string
	headers     []string

	// output
	only    string
	skip    []string
	implode string
	full    bool
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the head tags of a page",
		Long: `Render the head tags of a page to stdout.

Flags set page-level values on top of the project config. Values of
"auto" derive the title, language or canonical URL; "off" suppresses
the tag.

Examples:
  vango-meta render --controller Articles --action view
  vango-meta render --title "Shop" --language de --description "Laden"
  vango-meta render --keywords foo,bar --lang en --robots index,nofollow
  vango-meta render --meta og:title=Shop --custom viewport=width=device-width
  vango-meta render --only canonical --canonical /shop --full`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			factory, err := cfg.Factory()
			if err != nil {
				return err
			}
			reg := factory(meta.Request{
				Controller: opts.controller,
				Action:     opts.action,
				Path:       opts.path,
			})
			if err := opts.apply(reg); err != nil {
				return err
			}

			outOpts := []meta.OutOption{
				meta.WithSkip(opts.skip...),
				meta.WithFullCanonical(opts.full),
			}
			if cmd.Flags().Changed("implode") {
				outOpts = append(outOpts, meta.WithImplode(unescape(opts.implode)))
			}
			out, err := reg.OutContext(cmd.Context(), opts.only, outOpts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.controller, "controller", "", "Controller name used for the default title")
	f.StringVar(&opts.action, "action", "", "Action name used for the default title")
	f.StringVar(&opts.path, "path", "/", "Request path used for auto canonical links")

	f.StringVarP(&opts.title, "title", "t", "", `Page title ("auto" or "off")`)
	f.StringVarP(&opts.language, "language", "l", "", `Page language ("auto" or "off")`)
	f.StringVarP(&opts.description, "description", "d", "", "Description")
	f.StringSliceVarP(&opts.keywords, "keywords", "k", nil, "Keywords (comma-separated)")
	f.StringVar(&opts.lang, "lang", "", "Language of --description and --keywords (default: page language)")
	f.StringVar(&opts.canonical, "canonical", "", `Canonical path or URL ("auto" or "off")`)
	f.StringVar(&opts.robots, "robots", "", `Robots flags merged onto the defaults, e.g. "index,nofollow" ("off" to suppress)`)
	f.StringArrayVar(&opts.custom, "custom", nil, "Custom meta tag name=content (repeatable)")
	f.StringArrayVar(&opts.httpEquiv, "http-equiv", nil, "http-equiv meta tag type=content (repeatable)")
	f.StringArrayVar(&opts.headers, "meta", nil, "Generic meta header name=content, e.g. og:title=Shop (repeatable)")

	f.StringVar(&opts.only, "only", "", "Render a single header")
	f.StringSliceVar(&opts.skip, "skip", nil, "Headers to leave out")
	f.StringVar(&opts.implode, "implode", "", `Separator between tags (default "" or "\n" in debug mode)`)
	f.BoolVar(&opts.full, "full", false, "Render canonical links with the base URL")

	return cmd
}

// apply sets the flag values on reg. The page language is set first so
// per-language values resolve against it.
func (o *renderOptions) apply(reg *meta.Registry) error {
	if o.language != "" {
		reg.SetLanguage(parseText(o.language))
	}
	if o.title != "" {
		reg.SetTitle(parseText(o.title))
	}
	if o.canonical != "" {
		switch o.canonical {
		case "auto":
			reg.SetCanonical(meta.Auto[routepath.Target]())
		case "off":
			reg.SetCanonical(meta.Off[routepath.Target]())
		default:
			reg.SetCanonical(meta.Of(routepath.Path(o.canonical)))
		}
	}
	if o.robots != "" {
		if o.robots == "off" {
			reg.SetRobots(meta.Off[meta.Robots]())
		} else {
			reg.MergeRobots(parseRobots(o.robots)...)
		}
	}
	if o.description != "" {
		if err := reg.SetDescription(o.description, o.lang); err != nil {
			return err
		}
	}
	if len(o.keywords) > 0 {
		if err := reg.SetKeywords(o.keywords, o.lang); err != nil {
			return err
		}
	}

	pairs := []struct {
		flag   string
		values []string
		set    func(string, meta.Value[string]) error
	}{
		{"custom", o.custom, reg.SetCustom},
		{"http-equiv", o.httpEquiv, reg.SetHTTPEquiv},
		{"meta", o.headers, reg.SetHeader},
	}
	for _, p := range pairs {
		for _, kv := range p.values {
			name, content, ok := strings.Cut(kv, "=")
			if !ok {
				return errors.New("M002").
					WithDetailf("--%s %q", p.flag, kv).
					WithSuggestion("Use name=content")
			}
			if err := p.set(name, parseText(content)); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseText(s string) meta.Value[string] {
	switch s {
	case "auto":
		return meta.Auto[string]()
	case "off":
		return meta.Off[string]()
	default:
		return meta.Of(s)
	}
}

// parseRobots turns "index,nofollow" into flags; a "no" prefix denies.
func parseRobots(s string) []meta.RobotsFlag {
	var flags []meta.RobotsFlag
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if name, ok := strings.CutPrefix(part, "no"); ok && name != "" {
			flags = append(flags, meta.Deny(name))
			continue
		}
		flags = append(flags, meta.Allow(part))
	}
	return flags
}

// unescape interprets \n and \t in separator flags.
func unescape(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(s)
}
