package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"punktual/internal/capture"
	"punktual/internal/codegen"
	"punktual/internal/ics"
	appLog "punktual/internal/log"
	"punktual/internal/model"
	"punktual/internal/recurrence"
	"punktual/internal/shortlink"
	"punktual/internal/web"
)

func eventFlag() cli.Flag {
	return &cli.StringFlag{Name: "event", Aliases: []string{"e"}, Required: true, Usage: "YAML file describing the event"}
}

func styleFlag() cli.Flag {
	return &cli.StringFlag{Name: "style", Aliases: []string{"s"}, Usage: "YAML file describing the button style"}
}

func outFlag() cli.Flag {
	return &cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write output to this file instead of stdout"}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Usage: "HTTP listen address (overrides config if set)"},
			&cli.BoolFlag{Name: "debug", Usage: "Run gin in debug mode"},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			if l := c.String("listen"); l != "" {
				cfg.Listen = l
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return web.StartServer(ctx, cfg, c.Bool("debug"))
		},
	}
}

func linksCommand() *cli.Command {
	return &cli.Command{
		Name:  "links",
		Usage: "Print the add-to-calendar URL for every platform.",
		Flags: []cli.Flag{eventFlag(), outFlag()},
		Action: func(c *cli.Context) error {
			ev, err := readEvent(c.String("event"))
			if err != nil {
				return err
			}
			gen := codegen.New(configFrom(c).BaseURL, nil)
			return writeJSON(c, gen.BuildLinks(ev))
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Render embeddable button code.",
		Flags: []cli.Flag{
			eventFlag(), styleFlag(), outFlag(),
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: model.FormatHTML, Usage: "html, react, css, js or direct"},
			&cli.BoolFlag{Name: "minified", Usage: "Minify the output"},
			&cli.BoolFlag{Name: "include-css", Value: true, Usage: "Inline the stylesheet (html dropdown only)"},
			&cli.BoolFlag{Name: "include-js", Value: true, Usage: "Inline the toggle script (html dropdown only)"},
			&cli.StringFlag{Name: "share-id", Usage: "Route buttons through tracked redirect URLs"},
			&cli.BoolFlag{Name: "direct", Usage: "Render the plain link list"},
			&cli.BoolFlag{Name: "shorten", Usage: "Replace links via the short-link service"},
			&cli.StringFlag{Name: "user-id", Usage: "User id sent to the short-link service"},
			&cli.StringFlag{Name: "token", EnvVars: []string{"PUNKTUAL_ACCESS_TOKEN"}, Usage: "Bearer token for the short-link service"},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			ev, err := readEvent(c.String("event"))
			if err != nil {
				return err
			}
			style, err := readStyle(c.String("style"))
			if err != nil {
				return err
			}

			opts := model.CodeOptions{
				Format:     c.String("format"),
				Minified:   c.Bool("minified"),
				IncludeCSS: c.Bool("include-css"),
				IncludeJS:  c.Bool("include-js"),
				ShareID:    c.String("share-id"),
			}
			if c.Bool("direct") {
				opts.Format = model.FormatDirect
			}

			gen := codegen.New(cfg.BaseURL, nil)
			lm := gen.BuildLinks(ev)

			if c.Bool("shorten") && !lm.Empty() {
				client := shortlink.NewClient(cfg.ShortLink.Endpoint, cfg.ShortLinkTimeout())
				short, err := client.CreateShortLinks(c.Context, lm, ev.Title, c.String("user-id"), c.String("token"))
				if err != nil {
					appLog.Warn("short link creation failed; using raw links", "err", err)
				} else {
					lm = short
				}
			}

			return writeText(c, gen.Render(lm, style, opts))
		},
	}
}

func occurrencesCommand() *cli.Command {
	return &cli.Command{
		Name:  "occurrences",
		Usage: "List the next occurrences of a recurring event.",
		Flags: []cli.Flag{
			eventFlag(), outFlag(),
			&cli.IntFlag{Name: "limit", Value: recurrence.DefaultLimit, Usage: "Number of occurrences"},
		},
		Action: func(c *cli.Context) error {
			ev, err := readEvent(c.String("event"))
			if err != nil {
				return err
			}
			if !ev.Complete() {
				return fmt.Errorf("event %s: title and start date are required", c.String("event"))
			}
			var out []string
			for _, t := range recurrence.Upcoming(ev, c.Int("limit")) {
				out = append(out, t.Format(time.RFC3339))
			}
			return writeJSON(c, out)
		},
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Screenshot the rendered button with headless Chromium.",
		Flags: []cli.Flag{
			eventFlag(), styleFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "preview.png", Usage: "PNG output path"},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			ev, err := readEvent(c.String("event"))
			if err != nil {
				return err
			}
			style, err := readStyle(c.String("style"))
			if err != nil {
				return err
			}

			markup := codegen.New(cfg.BaseURL, nil).Generate(ev, style, model.CodeOptions{
				Format:     model.FormatHTML,
				IncludeCSS: true,
				IncludeJS:  true,
			})
			png, err := capture.PreviewPNG(c.Context, markup, capture.Options{
				Width:   cfg.Capture.Width,
				Height:  cfg.Capture.Height,
				Timeout: cfg.CaptureTimeout(),
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.String("out"), png, 0o644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
			appLog.Info("preview written", "path", c.String("out"), "bytes", len(png))
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Convert the first event of an ICS file or URL into an event YAML file.",
		Flags: []cli.Flag{
			outFlag(),
			&cli.StringFlag{Name: "file", Usage: "Local .ics file"},
			&cli.StringFlag{Name: "url", Usage: "Remote .ics URL"},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			var body []byte
			switch {
			case c.String("file") != "":
				b, err := os.ReadFile(c.String("file"))
				if err != nil {
					return fmt.Errorf("read ics: %w", err)
				}
				body = b
			case c.String("url") != "":
				ctx, cancel := context.WithTimeout(c.Context, cfg.ImportTimeout())
				defer cancel()
				fetcher := ics.NewFetcher(cfg.ImportTimeout(), cfg.Import.MaxBytes)
				fetcher.AllowPrivate = cfg.Import.AllowPrivate
				b, err := fetcher.Fetch(ctx, c.String("url"))
				if err != nil {
					return err
				}
				body = b
			default:
				return fmt.Errorf("one of --file or --url is required")
			}

			ev, err := ics.ParseEvent(body)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(ev)
			if err != nil {
				return err
			}
			return writeText(c, string(out))
		},
	}
}

func readEvent(path string) (model.EventDescription, error) {
	var ev model.EventDescription
	err := readYAML(path, &ev)
	return ev, err
}

// readStyle reads a button style over the defaults. Every platform is
// selected when the file names none.
func readStyle(path string) (model.ButtonStyle, error) {
	style := model.ButtonStyle{
		ButtonLayout: model.LayoutDropdown,
		ButtonSize:   model.SizeMedium,
		ButtonStyle:  model.StyleStandard,
		ShowIcons:    true,
	}
	if path != "" {
		if err := readYAML(path, &style); err != nil {
			return style, err
		}
	}
	if style.SelectedPlatforms == nil {
		style.SelectedPlatforms = make(map[model.PlatformID]bool, len(model.PlatformIDs))
		for _, id := range model.PlatformIDs {
			style.SelectedPlatforms[id] = true
		}
	}
	return style, nil
}

// readYAML decodes a YAML file into v.
func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func output(c *cli.Context) (io.Writer, func() error, error) {
	path := c.String("out")
	if path == "" {
		return c.App.Writer, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func writeText(c *cli.Context, s string) error {
	w, closeFn, err := output(c)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		_ = closeFn()
		return err
	}
	if len(s) > 0 && s[len(s)-1] != '\n' {
		_, _ = io.WriteString(w, "\n")
	}
	return closeFn()
}

func writeJSON(c *cli.Context, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeText(c, string(b))
}
