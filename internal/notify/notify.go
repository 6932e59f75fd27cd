package notify

import (
	"strings"

	"plotgrid.dev/internal/captions"
	"plotgrid.dev/internal/protocol"
)

// Sink delivers finished chat text to an online player. Delivery
// failures are the sink's problem; orchestration never sees them.
type Sink interface {
	Deliver(playerID, text string)
}

// LogSink receives text that has no player to go to.
type LogSink interface {
	Log(text string)
}

// Notifier formats and routes outgoing plot messages. An empty player id
// routes to the log sink.
type Notifier struct {
	captions *captions.Catalog
	sink     Sink
	logs     LogSink
}

func New(cat *captions.Catalog, sink Sink, logs LogSink) *Notifier {
	return &Notifier{captions: cat, sink: sink, logs: logs}
}

// Notify sends raw text. Empty messages are dropped. With no player the
// text goes to the log sink, prefixed when usePrefix is set.
func (n *Notifier) Notify(playerID, msg string, usePrefix bool) {
	if msg == "" {
		return
	}
	prefix := ""
	if usePrefix {
		prefix = n.captions.Template(captions.Prefix)
	}
	if playerID == "" {
		n.logs.Log(prefix + msg)
		return
	}
	n.sink.Deliver(playerID, Wrap(TranslateColors(prefix+msg)))
}

// Caption sends a caption by key with positional arguments. Templates
// shorter than two characters are suppressed entirely.
func (n *Notifier) Caption(playerID, key string, args ...string) {
	tmpl := n.captions.Template(key)
	if len(tmpl) < 2 {
		return
	}
	msg := captions.Fill(tmpl, args...)
	if playerID == "" {
		n.logs.Log(msg)
		return
	}
	n.Notify(playerID, msg, n.captions.UsesPrefix(key))
}

// TranslateColors rewrites &-form color codes to the client's section
// form. The token only counts when followed by a valid code character.
func TranslateColors(msg string) string {
	if !strings.ContainsRune(msg, protocol.ColorToken) {
		return msg
	}
	b := []rune(msg)
	for i := 0; i+1 < len(b); i++ {
		if b[i] == protocol.ColorToken && isColorCode(b[i+1]) {
			b[i] = protocol.ColorChar
		}
	}
	return string(b)
}

func isColorCode(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		return true
	case r >= 'k' && r <= 'o', r >= 'K' && r <= 'O':
		return true
	case r == 'r' || r == 'R':
		return true
	}
	return false
}

// Wrap word-wraps messages wider than the chat page width. Continuation
// lines are indented one space; a trailing line terminator is stripped.
func Wrap(msg string) string {
	if len(msg) > protocol.WrapWidth {
		lines := wordWrap(msg, protocol.WrapWidth)
		var b strings.Builder
		for i, line := range lines {
			b.WriteString(line)
			if i != len(lines)-1 {
				b.WriteString("\n ")
			}
		}
		msg = b.String()
	}
	msg = strings.TrimSuffix(msg, "\n")
	return msg
}

func wordWrap(msg string, width int) []string {
	words := strings.Fields(msg)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	lines = append(lines, cur)
	return lines
}
