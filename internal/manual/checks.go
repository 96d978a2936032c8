package manual

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Bucket scopes a cooldown or concurrency limit.
type Bucket int

const (
	BucketGlobal Bucket = iota
	BucketUser
	BucketGuild
	BucketChannel
	BucketMember
)

// Scope renders the bucket as restriction phrasing.
func (b Bucket) Scope() string {
	switch b {
	case BucketUser:
		return "for each user"
	case BucketGuild:
		return "for each server"
	case BucketChannel:
		return "for each channel"
	case BucketMember:
		return "for each member per server"
	}
	return "globally"
}

// CooldownSpec is the rate-limit metadata attached to a command: at
// most Rate invocations every Per, tracked per Bucket.
type CooldownSpec struct {
	Rate   int
	Per    time.Duration
	Bucket Bucket
}

func (c CooldownSpec) restriction() string {
	return fmt.Sprintf("Rate limited: %d times every %s %s", c.Rate, c.Per, c.Bucket.Scope())
}

// ConcurrencySpec caps simultaneous invocations per bucket.
type ConcurrencySpec struct {
	Max    int
	Bucket Bucket
}

func (c ConcurrencySpec) restriction() string {
	noun := "instances"
	if c.Max == 1 {
		noun = "instance"
	}
	return fmt.Sprintf("At most %d %s of this command can run at once %s", c.Max, noun, c.Bucket.Scope())
}

// Check identifies a known access-control check attached to a command.
// The registry translates it into restriction text; the dispatch layer
// enforces it.
type Check struct {
	ID    string
	Perms int64
}

// Known check identifiers.
const (
	CheckHasPerms    = "has_permissions"
	CheckBotPerms    = "bot_has_permissions"
	CheckDeniesPerms = "denies_permissions"
	CheckOwnerOnly   = "owner_only"
	CheckGuildOnly   = "guild_only"
	CheckDMOnly      = "dm_only"
)

// CheckRegistry maps check identifiers to restriction-text producers.
type CheckRegistry map[string]func(Check) string

// DefaultCheckRegistry returns a fresh copy of the built-in registry.
func DefaultCheckRegistry() CheckRegistry {
	r := make(CheckRegistry, len(defaultChecks))
	for k, v := range defaultChecks {
		r[k] = v
	}
	return r
}

var defaultChecks = CheckRegistry{
	CheckHasPerms: func(c Check) string {
		return "Requires permissions: " + PermissionList(c.Perms)
	},
	CheckBotPerms: func(c Check) string {
		return "Requires the bot to have permissions: " + PermissionList(c.Perms)
	},
	CheckDeniesPerms: func(c Check) string {
		return "Denies permissions: " + PermissionList(c.Perms)
	},
	CheckOwnerOnly: func(Check) string { return "Bot owner only" },
	CheckGuildOnly: func(Check) string { return "Servers only" },
	CheckDMOnly:    func(Check) string { return "Direct messages only" },
}

// PermissionNames maps the permission bits the bot cares about to
// display names. Bits outside the map render as hex.
var PermissionNames = map[int64]string{
	discordgo.PermissionKickMembers:        "Kick Members",
	discordgo.PermissionBanMembers:         "Ban Members",
	discordgo.PermissionAdministrator:      "Administrator",
	discordgo.PermissionManageChannels:     "Manage Channels",
	discordgo.PermissionManageGuild:        "Manage Server",
	discordgo.PermissionViewAuditLogs:      "View Audit Logs",
	discordgo.PermissionViewChannel:        "View Channel",
	discordgo.PermissionSendMessages:       "Send Messages",
	discordgo.PermissionManageMessages:     "Manage Messages",
	discordgo.PermissionEmbedLinks:         "Embed Links",
	discordgo.PermissionAttachFiles:        "Attach Files",
	discordgo.PermissionReadMessageHistory: "Read Message History",
	discordgo.PermissionMentionEveryone:    "Mention Everyone",
	discordgo.PermissionManageThreads:      "Manage Threads",
	discordgo.PermissionChangeNickname:     "Change Nickname",
	discordgo.PermissionManageNicknames:    "Manage Nicknames",
	discordgo.PermissionManageRoles:        "Manage Roles",
	discordgo.PermissionManageWebhooks:     "Manage Webhooks",
	discordgo.PermissionManageEvents:       "Manage Events",
	discordgo.PermissionModerateMembers:    "Moderate Members",
}

// PermissionList renders the set bits of a permission mask as a
// comma-separated list of display names, lowest bit first.
func PermissionList(perms int64) string {
	var bits []int64
	for bit := range PermissionNames {
		if perms&bit != 0 {
			bits = append(bits, bit)
		}
	}
	sort.Slice(bits, func(i, j int) bool { return bits[i] < bits[j] })
	names := make([]string, 0, len(bits)+1)
	for _, bit := range bits {
		names = append(names, PermissionNames[bit])
		perms &^= bit
	}
	if perms != 0 {
		names = append(names, fmt.Sprintf("0x%x", perms))
	}
	return strings.Join(names, ", ")
}
