package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/davren/server-scribe/internal/command"
	"github.com/davren/server-scribe/internal/manual"
)

// tagStore keeps tags per guild for the lifetime of the process.
type tagStore struct {
	mu   sync.RWMutex
	tags map[string]map[string]string // guild, then tag name
}

func (s *tagStore) set(guild, name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tags[guild] == nil {
		s.tags[guild] = make(map[string]string)
	}
	s.tags[guild][name] = content
}

func (s *tagStore) get(guild, name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.tags[guild][name]
	return content, ok
}

func (s *tagStore) delete(guild, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tags[guild][name]; !ok {
		return false
	}
	delete(s.tags[guild], name)
	return true
}

func (s *tagStore) names(guild string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.tags[guild]))
	for name := range s.tags[guild] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TagCommand is a command group: `tag <name>` recalls a tag, and the
// add/remove/list subcommands manage them.
type TagCommand struct {
	store *tagStore
	subs  []command.Command
}

func NewTagCommand() *TagCommand {
	store := &tagStore{tags: make(map[string]map[string]string)}
	return &TagCommand{
		store: store,
		subs: []command.Command{
			&tagAddCommand{store: store},
			&tagRemoveCommand{store: store},
			&tagListCommand{store: store},
		},
	}
}

func (c *TagCommand) Name() string                   { return "tag" }
func (c *TagCommand) Description() string            { return "Recall and manage snippets of text" }
func (c *TagCommand) Aliases() []string              { return []string{"t"} }
func (c *TagCommand) Category() string               { return CategoryFun }
func (c *TagCommand) Subcommands() []command.Command { return c.subs }

func (c *TagCommand) Params() []manual.Parameter {
	return []manual.Parameter{
		manual.Required("name", manual.T(manual.TypeString)),
	}
}

func (c *TagCommand) Document(d *manual.Documentation) {
	d.Argument("name", "The tag to recall.").
		Restrict(manual.Check{ID: manual.CheckGuildOnly}).
		ExampleUsage("tag rules", "Posts the tag named `rules`.")
}

func (c *TagCommand) Run(ctx *command.Context) error {
	name, ok := ctx.Args.Get("name")
	if !ok {
		return ctx.Reply("Which tag? Try `tag list`.")
	}
	content, ok := c.store.get(ctx.GuildID(), name)
	if !ok {
		return ctx.Reply(fmt.Sprintf("No tag named `%s` here.", name))
	}
	return ctx.Reply(content)
}

type tagAddCommand struct {
	store *tagStore
}

func (c *tagAddCommand) Name() string        { return "add" }
func (c *tagAddCommand) Description() string { return "Create or overwrite a tag" }
func (c *tagAddCommand) Aliases() []string   { return []string{"set"} }
func (c *tagAddCommand) Category() string    { return CategoryFun }

func (c *tagAddCommand) Params() []manual.Parameter {
	content := manual.CatchAll("content")
	content.Help = "The text the tag expands to."
	content.Optional = false
	return []manual.Parameter{
		manual.Required("name", manual.T(manual.TypeString)),
		content,
	}
}

func (c *tagAddCommand) Document(d *manual.Documentation) {
	d.Argument("name", "The tag's name.").
		Restrict(manual.Check{ID: manual.CheckHasPerms, Perms: discordgo.PermissionManageMessages}).
		ExampleUsage("tag add rules Be nice to each other.", "Creates a tag named `rules`.")
}

func (c *tagAddCommand) Run(ctx *command.Context) error {
	name, _ := ctx.Args.Get("name")
	content, _ := ctx.Args.Get("content")
	c.store.set(ctx.GuildID(), name, content)
	return ctx.Reply(fmt.Sprintf("Tag `%s` saved.", name))
}

type tagRemoveCommand struct {
	store *tagStore
}

func (c *tagRemoveCommand) Name() string        { return "remove" }
func (c *tagRemoveCommand) Description() string { return "Delete a tag" }
func (c *tagRemoveCommand) Aliases() []string   { return []string{"rm"} }
func (c *tagRemoveCommand) Category() string    { return CategoryFun }

func (c *tagRemoveCommand) Params() []manual.Parameter {
	return []manual.Parameter{
		manual.Required("name", manual.T(manual.TypeString)),
	}
}

func (c *tagRemoveCommand) Document(d *manual.Documentation) {
	d.Argument("name", "The tag to delete.").
		Restrict(manual.Check{ID: manual.CheckHasPerms, Perms: discordgo.PermissionManageMessages})
}

func (c *tagRemoveCommand) Run(ctx *command.Context) error {
	name, _ := ctx.Args.Get("name")
	if !c.store.delete(ctx.GuildID(), name) {
		return ctx.Reply(fmt.Sprintf("No tag named `%s` here.", name))
	}
	return ctx.Reply(fmt.Sprintf("Tag `%s` deleted.", name))
}

type tagListCommand struct {
	store *tagStore
}

func (c *tagListCommand) Name() string        { return "list" }
func (c *tagListCommand) Description() string { return "List this server's tags" }
func (c *tagListCommand) Aliases() []string   { return []string{"ls"} }
func (c *tagListCommand) Category() string    { return CategoryFun }

func (c *tagListCommand) Run(ctx *command.Context) error {
	names := c.store.names(ctx.GuildID())
	if len(names) == 0 {
		return ctx.Reply("No tags yet. Create one with `tag add`.")
	}
	return ctx.Reply("Tags: `" + strings.Join(names, "`, `") + "`")
}
