package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Sort files into folders by rules"
	MsgVersionShort       = "Print version information"
	MsgInitShort          = "Write the example configuration"
	MsgDryRunShort        = "Show what organize would do"
	MsgOrganizeShort      = "Move files into the destination tree"
	MsgUndoShort          = "Revert an organize run from its manifest"
	MsgRulesShort         = "Inspect configured rules"
	MsgRulesValidateShort = "Check that the configuration compiles"
	MsgRulesExplainShort  = "Show which rule claims a file"
	MsgRulesDocsShort     = "Print the rule reference"
	MsgCompletionShort    = "Generate shell completion scripts"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagConfig      = "Config file (default $SFO_CONFIG or the user config dir)"
	MsgFlagSrc         = "Source directory to scan"
	MsgFlagDest        = "Destination root"
	MsgFlagJSON        = "Print JSON (shorthand for --format json)"
	MsgFlagPretty      = "Indent JSON output"
	MsgFlagWorkers     = "Parallel hashing workers (overrides max_workers_hashing)"
	MsgFlagManifest    = "Manifest file"
	MsgFlagOnCollision = "What to do when a destination exists: skip, overwrite or rename"
	MsgFlagTrash       = "Stage every move through this directory"
	MsgFlagCopy        = "Copy files instead of moving them"
	MsgFlagLogFile     = "Append a JSON line per action to this file"
	MsgFlagInitPath    = "Where to write the config (default: the user config path)"
	MsgFlagForce       = "Overwrite an existing config file"
	MsgFlagExplainFile = "File to explain"
	MsgFlagExplainDest = "Destination root, to show the full target path"

	// Status messages
	MsgConfigWritten     = "Default config written to: %s"
	MsgUsingDefaultRules = "No config file at %s, using the built-in example rules"
	MsgVanished          = "File vanished before planning: %s"

	// Errors
	MsgErrNoCommand    = "no command specified"
	MsgErrMissingFlag  = "--%s is required"
	MsgErrUnknownShell = "unsupported shell %q"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/dryrun-long.txt
	msgDryRunLongRaw string
	MsgDryRunLong    = strings.TrimSpace(msgDryRunLongRaw)

	//go:embed msgs/dryrun-example.txt
	msgDryRunExampleRaw string
	MsgDryRunExample    = strings.TrimRight(msgDryRunExampleRaw, "\n")

	//go:embed msgs/organize-long.txt
	msgOrganizeLongRaw string
	MsgOrganizeLong    = strings.TrimSpace(msgOrganizeLongRaw)

	//go:embed msgs/organize-example.txt
	msgOrganizeExampleRaw string
	MsgOrganizeExample    = strings.TrimRight(msgOrganizeExampleRaw, "\n")

	//go:embed msgs/undo-long.txt
	msgUndoLongRaw string
	MsgUndoLong    = strings.TrimSpace(msgUndoLongRaw)

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/explain-example.txt
	msgExplainExampleRaw string
	MsgExplainExample    = strings.TrimRight(msgExplainExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
