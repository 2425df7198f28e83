package zcli

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// WriteBashCompletion emits a bash completion script for prog rooted at c.
// Every command path gets two arrays, its sub-command words and its option
// spellings, and a single function walks COMP_WORDS through them.
func (c *Command) WriteBashCompletion(w io.Writer, prog string) error {
	id := shellIdent(prog)
	var b strings.Builder

	fmt.Fprintf(&b, "# bash completion for %s\n\n", prog)
	c.writeCompletionArrays(&b, "_zcli_"+id, "")

	fn := "_zcli_complete_" + id
	fmt.Fprintf(&b, `
%[1]s() {
    local cur w c i arr path=""
    cur="${COMP_WORDS[COMP_CWORD]}"
    for (( i = 1; i < COMP_CWORD; i++ )); do
        w="${COMP_WORDS[i]}"
        [[ "$w" == -* ]] && continue
        arr="%[2]s_cmds${path}[@]"
        for c in "${!arr}"; do
            if [[ "$c" == "$w" ]]; then
                path="${path}_${w//[^a-zA-Z0-9_]/_}"
                break
            fi
        done
    done
    if [[ "$cur" == -* ]]; then
        arr="%[2]s_opts${path}[@]"
    else
        arr="%[2]s_cmds${path}[@]"
    fi
    COMPREPLY=( $(compgen -W "${!arr}" -- "$cur") )
}
complete -F %[1]s %[3]s
`, fn, "_zcli_"+id, prog)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteZshCompletion emits the bash script behind zsh's bashcompinit shim.
func (c *Command) WriteZshCompletion(w io.Writer, prog string) error {
	if _, err := io.WriteString(w, "autoload -U +X bashcompinit && bashcompinit\n"); err != nil {
		return err
	}
	return c.WriteBashCompletion(w, prog)
}

func (c *Command) writeCompletionArrays(b *strings.Builder, base, path string) {
	var words []string
	subs := c.Commands()
	for _, sub := range subs {
		words = append(words, sub.name)
		words = append(words, sub.aliases...)
	}
	var opts []string
	for _, d := range c.keywords {
		if d.Hidden {
			continue
		}
		opts = append(opts, d.Aliases...)
		if long := "--" + d.Name; !slices.Contains(d.Aliases, long) {
			opts = append(opts, long)
		}
	}

	fmt.Fprintf(b, "%s_cmds%s=(%s)\n", base, path, shellWords(words))
	fmt.Fprintf(b, "%s_opts%s=(%s)\n", base, path, shellWords(opts))

	for _, sub := range subs {
		for _, spelling := range append([]string{sub.name}, sub.aliases...) {
			sub.writeCompletionArrays(b, base, path+"_"+shellIdent(spelling))
		}
	}
}

func shellWords(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + strings.ReplaceAll(w, "'", `'\''`) + "'"
	}
	return strings.Join(quoted, " ")
}

// shellIdent maps s onto [A-Za-z0-9_], matching the substitution the
// generated function applies to typed words.
func shellIdent(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, s)
}
