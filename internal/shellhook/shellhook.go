// Package shellhook emits the per-shell glue that makes the shell call acesh
// for completion candidates on the current command line.
package shellhook

import (
	"os"
	"path/filepath"
	"strings"
)

// SingleQuote quotes s for safe embedding in POSIX shells.
func SingleQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// DetectShell returns the basename of $SHELL, falling back to bash.
func DetectShell() string {
	if p := os.Getenv("SHELL"); p != "" {
		if name := filepath.Base(p); name != "" && name != "." {
			return name
		}
	}
	return "bash"
}

const bashTemplate = `# acesh bash hook
EXEC_CMD={{EXEC}}
_acesh_completion() {
  local cur i
  cur="${COMP_WORDS[COMP_CWORD]}"
  local args=()
  for ((i=1;i<${#COMP_WORDS[@]};i++)); do
    args+=("${COMP_WORDS[i]}")
  done
  local IFS=$'\n'
  local out
  out=$(eval "$EXEC_CMD \"${args[@]}\"") || return
  COMPREPLY=($(compgen -W "$out" -- "$cur"))
}
for cmd in $(compgen -c); do
  complete -F _acesh_completion -o default "$cmd" 2>/dev/null || true
done
`

const zshTemplate = `# acesh zsh hook
EXEC_CMD={{EXEC}}
_acesh_completion() {
  local -a reply
  reply=("${(@f)$(eval "$EXEC_CMD ${words[1,-1]}")}")
  if [[ -n ${reply} ]]; then
    compadd -- "${reply[@]}"
  fi
}
for cmd in ${(k)commands}; do
  compdef _acesh_completion $cmd 2>/dev/null || true
done
`

const fishTemplate = `# acesh fish hook
set -l ACESH_EXEC {{EXEC}}
function __acesh_completion
  set -l cmdline (commandline -cp)
  set -l tokens (string split ' ' -- $cmdline)
  set -e tokens[1]
  for item in (eval "$ACESH_EXEC $tokens")
    printf "%s\n" "$item"
  end
end
for p in (string split : $PATH)
  for cmd in (ls $p 2>/dev/null)
    complete -c $cmd -f -a '(__acesh_completion)'
  end
end
`

const nushellTemplate = `# acesh nushell hook
# Nushell custom completion support varies by version. Call this helper from
# your nushell config to get completions for the current command line:
#   def acesh-complete [] { {{EXEC_RAW}} ($nu.env.CMDLINE | split ' ' | skip 1) }
# Consult nushell docs for registering completion functions in your version.
`

// Script returns the hook for shell, with execCmd embedded as the command the
// shell runs to obtain candidates. Unknown shells get the bash hook.
func Script(shell, execCmd string) string {
	switch strings.ToLower(shell) {
	case "zsh":
		return strings.ReplaceAll(zshTemplate, "{{EXEC}}", SingleQuote(execCmd))
	case "fish":
		return strings.ReplaceAll(fishTemplate, "{{EXEC}}", SingleQuote(execCmd))
	case "nushell", "nu":
		// nushell example embeds the raw command, not a POSIX-quoted one
		return strings.ReplaceAll(nushellTemplate, "{{EXEC_RAW}}", execCmd)
	default:
		return strings.ReplaceAll(bashTemplate, "{{EXEC}}", SingleQuote(execCmd))
	}
}
