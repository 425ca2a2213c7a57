package parser

import "github.com/mical-lang/mical/syntax"

// eventKind tags one slot in the event log. Grounded on
// original_source's Event/EventRaw (crates/parser/src/event.rs); the
// Cow<str>-interned error side table is dropped here since a Go string
// header is already a cheap reference, not an owned copy.
type eventKind uint8

const (
	eventTombstone eventKind = iota
	eventStartNode
	eventFinishNode
	eventToken
	eventError
)

type event struct {
	kind eventKind
	sk   syntax.Kind // StartNode, Token
	len  uint32      // Token
	msg  string      // Error
}

// eventLog is an append-only log of parser events supporting
// reserve-then-fill: start() reserves a tombstone slot immediately, and
// the node's real kind is only known once Marker.Complete runs, after
// the node's entire body has been parsed.
type eventLog struct {
	events []event
}

func (l *eventLog) pushTombstone() int {
	pos := len(l.events)
	l.events = append(l.events, event{kind: eventTombstone})
	return pos
}

func (l *eventLog) replaceTombstone(pos int, sk syntax.Kind) {
	if l.events[pos].kind != eventTombstone {
		panic("parser: expected a tombstone event")
	}
	l.events[pos] = event{kind: eventStartNode, sk: sk}
}

func (l *eventLog) pushFinishNode() {
	l.events = append(l.events, event{kind: eventFinishNode})
}

func (l *eventLog) pushToken(sk syntax.Kind, length uint32) {
	l.events = append(l.events, event{kind: eventToken, sk: sk, len: length})
}

func (l *eventLog) pushError(msg string) {
	l.events = append(l.events, event{kind: eventError, msg: msg})
}
