package shell

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/config"
)

func completions(c *ShellCompleter, line string) []string {
	matches, _ := c.Do([]rune(line), len(line))
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}

func TestCompleteCommands(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter(newController(config.DefaultConfig()))
	is.Equal(completions(c, "s"), []string{"how", "olve", "tep", "et", "cript"})
	is.Equal(completions(c, "autoplay 10 -t"), []string{"hreads"})
	is.Equal(completions(c, "set verify-invariants "), []string{"true", "false"})
	is.Equal(completions(c, "help sc"), []string{"ript"})
}

func TestCompletePlay(t *testing.T) {
	is := is.New(t)
	sc := newController(config.DefaultConfig())
	c := NewShellCompleter(sc)
	is.Equal(len(completions(c, "play ")), 0)

	_, err := sc.Execute("random 2 -foundations 12")
	is.NoErr(err)
	// four kings, one per column: each goes up, or to a free cell.
	is.Equal(completions(c, "play col_to_found("), []string{"0)", "1)", "2)", "3)"})
}
