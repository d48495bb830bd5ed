package piecegraph

import (
	"github.com/voidshard/piecegraph/internal/align"
	"github.com/voidshard/piecegraph/internal/selector"
)

// capNext closes off one open socket with a terminal piece.
//
// Caps skip every placement check: they're the last thing placed on a socket
// & are always accepted, so a finished graph has no open sockets when the
// library has any terminal at all.
func (b *Builder) capNext() StepOutcome {
	if len(b.terminals) == 0 {
		b.log.Info("no terminal prototypes, leaving sockets open", "open", len(b.caps))
		b.finish()
		return StepOutcome{Phase: Capping, Event: EventFinished, Piece: -1}
	}

	for len(b.caps) > 0 {
		ref := b.caps[0]
		b.caps = b.caps[1:]

		anchor := b.socket(ref)
		if anchor.Used {
			continue
		}

		proto, _ := selector.Select(b.terminals, weightOf, b.rng)
		local := proto.Sockets[0]

		t := align.Align(anchor.Position, anchor.Direction, local.Position, local.Direction)
		piece := b.instantiate(proto, t, b.pieces[ref.Piece].Depth+1)
		piece.Cap = true

		b.commit(piece)
		b.link(ref, SocketRef{Piece: piece.Handle, Socket: 0})
		b.stats.Capped++

		b.log.V(1).Info("capped", "piece", ref.Piece, "socket", ref.Socket, "prototype", proto.ID)

		if len(b.caps) == 0 {
			b.finish()
		}
		return StepOutcome{Phase: Capping, Event: EventCapped, Piece: piece.Handle}
	}

	b.finish()
	return StepOutcome{Phase: Capping, Event: EventFinished, Piece: -1}
}
