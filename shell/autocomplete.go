package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/othello/config"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"selfplay": {
		Options: []string{"-p1", "-p2", "-threads", "-plies", "-log"},
	},
	"set": {
		Args: []string{"evaluator", "max-depth", "tt", "history",
			config.ConfigTimeScaleShort, config.ConfigTimeScaleLong, config.ConfigTimeScaleThreshold,
			config.ConfigTimeFloor, config.ConfigMinRemaining, config.ConfigDepthFraction,
			config.ConfigMinDepthTime},
	},
	"help": {
		Args: []string{"position", "best", "selfplay"},
	},
}

var commandNames = []string{
	"help", "new", "load", "show", "gen", "play", "undo", "best", "solve",
	"eval", "set", "autoplay", "selfplay", "exit",
}

var boolValues = []string{"true", "false"}

var evaluatorNames = []string{eval.CountingName, eval.PhasedName}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// an unterminated quote; fall back to plain splitting
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case strings.HasPrefix(lastCompleteField, "-"):
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "p1", "p2":
				completions = evaluatorNames
			}
		case cmdName == "set" && lastCompleteField != "set":
			switch lastCompleteField {
			case "evaluator":
				completions = evaluatorNames
			case "tt", "history":
				completions = boolValues
			}
		case cmdName == "play" && lastCompleteField == "play" && c.sc != nil:
			// suggest the legal moves
			for _, m := range c.sc.pos.LegalMoves() {
				completions = append(completions, m.String())
			}
			if len(completions) == 0 {
				completions = []string{move.Pass().String()}
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
