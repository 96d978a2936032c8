// Regenerates README.md from README.md.tmpl and the live command set,
// so the docs in the repo never drift from the bot.
package main

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/commands"
	"github.com/davren/server-scribe/internal/config"
	"github.com/davren/server-scribe/internal/logging"
	"github.com/davren/server-scribe/internal/manual"
	v "github.com/davren/server-scribe/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		panic(err)
	}
	log := logging.New("warn", "")

	reg := command.NewRegistry(cfg.OwnerIDs...)
	if err := commands.RegisterAll(reg, cfg, log); err != nil {
		panic(err)
	}
	man, err := reg.BuildManual(manual.WithTitle(v.AppName + " commands"))
	if err != nil {
		panic(err)
	}

	var buf bytes.Buffer
	for _, category := range man.Categories() {
		fmt.Fprintf(&buf, "### %s\n\n", category)
		for _, d := range man.CategoryEntries(category) {
			if d.IsHidden() {
				continue
			}
			fmt.Fprintf(&buf, "* **`%s%s`**\n  %s\n", cfg.Prefix, d.CallPath(), d.Summary())
			for _, sub := range d.Subcommands() {
				if sub.IsHidden() {
					continue
				}
				fmt.Fprintf(&buf, "  * `%s%s` - %s\n", cfg.Prefix, sub.CallPath(), sub.Summary())
			}
			buf.WriteString("\n")
		}
	}

	tmplData, err := os.ReadFile("README.md.tmpl")
	if err != nil {
		panic(err)
	}
	tmpl, err := template.New("readme").Parse(string(tmplData))
	if err != nil {
		panic(err)
	}

	data := map[string]any{
		"AppName":         v.AppName,
		"CommandSections": buf.String(),
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		panic(err)
	}
	if err := os.WriteFile("README.md", out.Bytes(), 0644); err != nil {
		panic(err)
	}
}
