package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/movegen"
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
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"random": {
		Options: []string{"-foundations"},
	},
	"solve": {
		Options: []string{"-maxnodes"},
	},
	"autoplay": {
		Options: []string{"-seed", "-foundations", "-threads"},
	},
	"set": {
		Args: []string{config.ConfigMaxNodes, config.ConfigLogEvery,
			config.ConfigVerifyInvariants, config.ConfigResultsDB},
	},
	"help": {
		Args: helpTopics,
	},
}

var commandNames = []string{
	"help", "deal", "load", "random", "show", "moves", "play", "undo",
	"solve", "step", "set", "autoplay", "script", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
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
		case cmdName == "play" && c.sc.current() != nil:
			for _, m := range movegen.Generate(c.sc.current()) {
				completions = append(completions, m.String())
			}
		case cmdName == "set" && lastCompleteField == config.ConfigVerifyInvariants:
			completions = boolValues
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
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
