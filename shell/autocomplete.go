package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/oust/config"
	"github.com/domino14/oust/move"
)

var commandNames = []string{
	"new", "show", "play", "undo", "moves", "go", "solve", "stop", "eval",
	"set", "autoplay", "analyze", "save", "load", "help", "exit",
}

var helpTopics = []string{"rules", "go", "set", "autoplay"}

var searchModes = []string{"fixed", "iterative"}

// ShellCompleter implements readline.AutoCompleter.
type ShellCompleter struct {
	sc *ShellController
}

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
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		argPos := len(fields) - 1
		if endsWithSpace {
			argPos = len(fields)
		}
		last := ""
		if endsWithSpace {
			last = fields[len(fields)-1]
		} else if len(fields) > 1 {
			last = fields[len(fields)-2]
		}
		switch {
		case last == "-mode" || (fields[0] == "set" && argPos == 2 && fields[1] == config.ConfigSearchMode):
			completions = searchModes
		case fields[0] == "help" && argPos == 1:
			completions = helpTopics
		case fields[0] == "set" && argPos == 1 && c.sc != nil:
			completions = c.sc.config.AllKeys()
		case (fields[0] == "play" || fields[0] == "p") && c.sc != nil && c.sc.game != nil:
			completions = lo.Map(c.sc.game.LegalMoves(), func(m move.Move, _ int) string {
				return m.String()
			})
		case (fields[0] == "solve" || fields[0] == "autoplay") && argPos == 1:
			completions = []string{"stop"}
		}
	}

	var out [][]rune
	for _, s := range completions {
		if strings.HasPrefix(s, prefix) {
			out = append(out, []rune(s[len(prefix):]+" "))
		}
	}
	return out, len(prefix)
}
