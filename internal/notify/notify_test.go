package notify

import (
	"strings"
	"testing"

	"plotgrid.dev/internal/captions"
	"plotgrid.dev/internal/protocol"
)

type recordingSink struct {
	player string
	texts  []string
}

func (r *recordingSink) Deliver(playerID, text string) {
	r.player = playerID
	r.texts = append(r.texts, text)
}

type recordingLog struct {
	lines []string
}

func (r *recordingLog) Log(text string) {
	r.lines = append(r.lines, text)
}

func newTestNotifier() (*Notifier, *recordingSink, *recordingLog) {
	sink := &recordingSink{}
	logs := &recordingLog{}
	return New(captions.New(), sink, logs), sink, logs
}

func TestNotify_EmptyMessageDropped(t *testing.T) {
	n, sink, logs := newTestNotifier()
	n.Notify("p1", "", true)
	n.Notify("", "", true)
	if len(sink.texts) != 0 || len(logs.lines) != 0 {
		t.Fatalf("empty message must not be delivered or logged")
	}
}

func TestNotify_NoPlayerRoutesToLog(t *testing.T) {
	n, sink, logs := newTestNotifier()
	n.Notify("", "server side note", true)
	if len(sink.texts) != 0 {
		t.Fatalf("no player: nothing should reach the chat sink")
	}
	if len(logs.lines) != 1 || !strings.HasSuffix(logs.lines[0], "server side note") {
		t.Fatalf("expected logged line, got %v", logs.lines)
	}
	if !strings.Contains(logs.lines[0], "[") {
		t.Fatalf("prefixed log line expected, got %q", logs.lines[0])
	}
}

func TestNotify_PlayerGetsTranslatedColors(t *testing.T) {
	n, sink, _ := newTestNotifier()
	n.Notify("p1", "&ahello", false)
	if sink.player != "p1" || len(sink.texts) != 1 {
		t.Fatalf("expected one delivery to p1, got %+v", sink)
	}
	want := string(protocol.ColorChar) + "ahello"
	if sink.texts[0] != want {
		t.Fatalf("got %q want %q", sink.texts[0], want)
	}
}

func TestTranslateColors_OnlyValidCodes(t *testing.T) {
	got := TranslateColors("&ahi &z 5&6")
	if !strings.HasPrefix(got, string(protocol.ColorChar)+"a") {
		t.Fatalf("&a should translate: %q", got)
	}
	if !strings.Contains(got, "&z") {
		t.Fatalf("&z is not a color code and must stay: %q", got)
	}
	if !strings.HasSuffix(got, string(protocol.ColorChar)+"6") {
		t.Fatalf("&6 should translate: %q", got)
	}
}

func TestWrap_LongMessagesWordWrapped(t *testing.T) {
	msg := strings.Repeat("word ", 30)
	wrapped := Wrap(strings.TrimSpace(msg))
	lines := strings.Split(wrapped, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %q", wrapped)
	}
	for i, line := range lines {
		if i > 0 && !strings.HasPrefix(line, " ") {
			t.Fatalf("continuation lines are indented: %q", line)
		}
		if len(line) > protocol.WrapWidth+1 {
			t.Fatalf("line %d exceeds width: %q", i, line)
		}
	}
	if strings.HasSuffix(wrapped, "\n") {
		t.Fatalf("trailing terminator must be stripped")
	}
}

func TestWrap_ShortMessageUntouched(t *testing.T) {
	if got := Wrap("short"); got != "short" {
		t.Fatalf("got %q", got)
	}
}

func TestCaption_SubstitutionAndRouting(t *testing.T) {
	n, sink, logs := newTestNotifier()
	n.Caption("p1", captions.RemovedBalance, "20")
	if len(sink.texts) != 1 || !strings.Contains(sink.texts[0], "20") {
		t.Fatalf("expected caption with amount delivered, got %v", sink.texts)
	}
	n.Caption("", captions.WaitForTimer)
	if len(logs.lines) != 1 {
		t.Fatalf("caption with no player goes to the log, got %v", logs.lines)
	}
}

func TestCaption_ShortTemplateSuppressed(t *testing.T) {
	n, sink, logs := newTestNotifier()
	n.Caption("p1", "no_such_caption")
	if len(sink.texts) != 0 || len(logs.lines) != 0 {
		t.Fatalf("unknown/short captions are suppressed")
	}
}
