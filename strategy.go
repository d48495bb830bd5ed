package piecegraph

import (
	"github.com/voidshard/piecegraph/internal/align"
	"github.com/voidshard/piecegraph/internal/selector"

	"github.com/unixpickle/essentials"
)

// growBranching takes the socket at the front of the work queue & tries
// one candidate on it.
func (b *Builder) growBranching() StepOutcome {
	if len(b.queue) == 0 {
		if !b.cfg.ForceCompletion || b.refilled {
			return b.exhausted()
		}
		b.refill()
		if len(b.queue) == 0 {
			return b.exhausted()
		}
	}

	entry := b.queue[0]
	if b.socket(entry.ref).Used {
		b.queue = b.queue[1:]
		return StepOutcome{Phase: Growing, Event: EventSkipped, Piece: entry.ref.Piece}
	}

	forcing := b.forcing()
	if b.cfg.MaxDepth > 0 && entry.depth+1 > b.cfg.MaxDepth && !forcing {
		b.queue = b.queue[1:]
		b.stats.DepthSkipped++
		return StepOutcome{Phase: Growing, Event: EventSkipped, Piece: entry.ref.Piece}
	}

	out, placed := b.attempt(entry, b.branchingChoices(entry.depth), forcing)
	if placed == nil {
		entry.attempts++
		if entry.attempts >= b.cfg.MaxAttempts {
			// socket goes back to the pool, end capping can still have it
			b.queue = b.queue[1:]
		}
		return out
	}

	b.queue = b.queue[1:]
	for i, s := range placed.Sockets {
		if s.Used {
			continue
		}
		b.queue = append(b.queue, &openSocket{
			ref:   SocketRef{Piece: placed.Handle, Socket: i},
			depth: placed.Depth,
		})
	}
	return out
}

// refill gives every still open socket one more go with checks relaxed.
// Only ever happens once per run so we always terminate.
func (b *Builder) refill() {
	b.refilled = true
	b.streak = b.cfg.ForceAfterRejections
	for _, p := range b.pieces {
		for _, i := range p.OpenSockets() {
			b.queue = append(b.queue, &openSocket{ref: SocketRef{Piece: p.Handle, Socket: i}, depth: p.Depth})
		}
	}
	b.log.Info("refilled work queue to force completion", "open", len(b.queue))
}

// branchingChoices decides which prototypes a socket at the given depth may take.
func (b *Builder) branchingChoices(depth int) []*Prototype {
	// can a piece placed here itself have children?
	depthAllows := b.cfg.MaxDepth <= 0 || depth+2 <= b.cfg.MaxDepth
	if depthAllows && b.rng.Float64() < b.cfg.BranchProbability {
		return b.branches
	}

	nearTarget := b.stats.Placed+1 >= b.cfg.TargetPieces
	nearDepth := b.cfg.MaxDepth > 0 && depth+1 >= b.cfg.MaxDepth
	if (nearTarget || nearDepth) && len(b.terminals) > 0 {
		return b.terminals
	}

	return b.all
}

// growLinear tries one candidate on the chain's cursor socket.
func (b *Builder) growLinear() StepOutcome {
	if b.cursor == nil {
		return b.exhausted()
	}

	entry := b.cursor
	out, placed := b.attempt(entry, b.linearChoices(), b.forcing())
	if placed == nil {
		entry.attempts++
		if entry.attempts >= b.cfg.MaxAttempts {
			// this way is blocked, try another socket on the same piece
			b.nextCursor()
		}
		return out
	}

	b.moveCursorTo(placed)
	return out
}

// linearChoices keeps the chain going with non terminals, ending it with a
// terminal on the last piece.
func (b *Builder) linearChoices() []*Prototype {
	if b.stats.Placed+1 >= b.cfg.TargetPieces && len(b.terminals) > 0 {
		return b.terminals
	}
	return b.branches
}

// moveCursorTo continues the chain from a random open socket of p
func (b *Builder) moveCursorTo(p *PlacedPiece) {
	b.cursorPiece = p.Handle
	b.cursorPool = p.OpenSockets()
	b.nextCursor()
}

// nextCursor picks a random socket out of the pool, or nil if there are none left
func (b *Builder) nextCursor() {
	if len(b.cursorPool) == 0 {
		b.cursor = nil
		return
	}

	i := b.rng.Intn(len(b.cursorPool))
	socket := b.cursorPool[i]
	essentials.UnorderedDelete(&b.cursorPool, i)

	b.cursor = &openSocket{
		ref:   SocketRef{Piece: b.cursorPiece, Socket: socket},
		depth: b.pieces[b.cursorPiece].Depth,
	}
}

// attempt tries a single candidate on an open socket, committing it if it passes.
// Returns the placed piece, or nil if the candidate was rejected.
//
// Nothing is touched until every check passes, so a rejection leaves no trace
// other than stats.
func (b *Builder) attempt(entry *openSocket, choices []*Prototype, forcing bool) (StepOutcome, *PlacedPiece) {
	anchor := b.socket(entry.ref)

	proto, ok := selector.Select(choices, weightOf, b.rng)
	if !ok {
		return b.rejected(entry, RejectNoEligible, ""), nil
	}

	idx := b.rng.Intn(len(proto.Sockets))
	local := proto.Sockets[idx]

	t := align.Align(anchor.Position, anchor.Direction, local.Position, local.Direction)
	cand := b.instantiate(proto, t, entry.depth+1)
	joint := align.Measure(anchor.Position, anchor.Direction, cand.Sockets[idx].Position, cand.Sockets[idx].Direction)

	overlap := b.validator.Overlaps(cand.Position, entry.ref.Piece)
	if overlap && !forcing {
		return b.rejected(entry, RejectOverlap, proto.ID), nil
	}

	loop := b.validator.WouldLoop(entry.ref.Piece, cand.Position)
	if loop && !forcing {
		return b.rejected(entry, RejectLoop, proto.ID), nil
	}

	poor := !b.cfg.Thresholds.Accepts(joint)
	if poor && (!forcing || !b.cfg.RelaxedThresholds.Accepts(joint)) {
		return b.rejected(entry, RejectQuality, proto.ID), nil
	}

	b.commit(cand)
	b.link(entry.ref, SocketRef{Piece: cand.Handle, Socket: idx})
	b.stats.Placed++
	b.streak = 0

	out := StepOutcome{Phase: Growing, Event: EventPlaced, Piece: cand.Handle}
	if overlap || loop || poor {
		cand.Forced = true
		out.Forced = true
		b.stats.Forced++
		if overlap {
			b.stats.ForcedOverlaps++
		}
		if loop {
			b.stats.ForcedLoops++
		}
		if poor {
			b.stats.ForcedQuality++
		}
		b.log.Info("accepted forced placement",
			"forced", true,
			"piece", cand.Handle,
			"prototype", proto.ID,
			"overlap", overlap,
			"loop", loop,
			"distance", joint.Distance,
			"angle", joint.Angle,
		)
	}

	return out, cand
}

// rejected records a rejection
func (b *Builder) rejected(entry *openSocket, r RejectReason, protoID string) StepOutcome {
	b.stats.reject(r)
	b.streak++
	b.log.V(1).Info("rejected candidate",
		"reason", r,
		"prototype", protoID,
		"anchor", entry.ref.Piece,
		"socket", entry.ref.Socket,
		"attempt", entry.attempts+1,
	)
	return StepOutcome{Phase: Growing, Event: EventRejected, Reason: r, Piece: entry.ref.Piece}
}
