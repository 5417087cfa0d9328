package infrastructure

import "strings"

// shellSpecial lists the characters that force quoting when a command line
// is rendered for display
const shellSpecial = " \t'\"$`\\!*?[](){}|;<>&~#%\n\r"

// ShellEscape escapes a string for safe display in a shell command line.
// This is for logging only; exec never sees the escaped form. Single-quote
// escaping is used, with embedded single quotes handled specially.
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecial) {
		return s
	}

	var b strings.Builder
	b.WriteString("'")
	for _, c := range s {
		if c == '\'' {
			// end quote, escaped quote, start quote
			b.WriteString(`'"'"'`)
		} else {
			b.WriteRune(c)
		}
	}
	b.WriteString("'")
	return b.String()
}

// ShellEscapeCommand renders a binary and its arguments as one shell-safe
// command line for logging
func ShellEscapeCommand(binary string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, ShellEscape(binary))
	for _, arg := range args {
		parts = append(parts, ShellEscape(arg))
	}
	return strings.Join(parts, " ")
}
