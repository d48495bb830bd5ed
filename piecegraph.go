package piecegraph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/voidshard/piecegraph/internal/encoding"
	"github.com/voidshard/piecegraph/internal/graph"

	"github.com/cespare/xxhash/v2"
)

// Piecegraph is a finished layout: placed pieces joined socket to socket.
// Pieces[i].Handle is always i.
type Piecegraph struct {
	Pieces []*PlacedPiece
	Stats  *Stats `json:",omitempty"`
	Seed   int64
}

// New builds a Piecegraph from the given config & prototype library in one go.
func New(cfg *Config, lib []*Prototype, opts ...Option) (*Piecegraph, error) {
	b, err := NewBuilder(cfg, lib, opts...)
	if err != nil {
		return nil, err
	}
	err = b.Run(context.Background())
	return b.Graph(), err
}

// JSON returns the piecegraph as json.
func (p *Piecegraph) JSON() ([]byte, error) {
	return json.Marshal(p)
}

// SaveJSON writes a json file to the given path.
func (p *Piecegraph) SaveJSON(fpath string) error {
	data, err := p.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, data, 0644)
}

// Piece returns the piece with the given handle
func (p *Piecegraph) Piece(handle int) (*PlacedPiece, error) {
	if handle < 0 || handle >= len(p.Pieces) {
		return nil, fmt.Errorf("no piece with handle %d", handle)
	}
	return p.Pieces[handle], nil
}

// Links returns every link once, as pairs of socket refs with the lower
// handle first, in piece order.
func (p *Piecegraph) Links() [][2]SocketRef {
	out := [][2]SocketRef{}
	for _, piece := range p.Pieces {
		for i, s := range piece.Sockets {
			if s.LinkedTo == nil || s.LinkedTo.Piece < piece.Handle {
				continue
			}
			out = append(out, [2]SocketRef{{Piece: piece.Handle, Socket: i}, *s.LinkedTo})
		}
	}
	return out
}

// Components returns the handles of each connected group of pieces along
// with how many links each has. A finished run is always a single tree
// unless loops were forced.
func (p *Piecegraph) Components() ([][]int, []int) {
	g := graph.New()
	for range p.Pieces {
		g.Add()
	}
	for _, l := range p.Links() {
		_ = g.Link(l[0].Piece, l[1].Piece)
	}

	comps := g.Components()
	edges := make([]int, len(comps))
	for i, c := range comps {
		edges[i] = g.ComponentEdges(c)
	}
	return comps, edges
}

// Fingerprint hashes everything that defines the layout (prototypes, poses,
// links) so two runs can be compared cheaply. Stats are not included.
func (p *Piecegraph) Fingerprint() uint64 {
	h := xxhash.New()
	for _, piece := range p.Pieces {
		h.Write(encoding.ToBytes64(uint64(piece.Handle)))
		h.WriteString(piece.PrototypeID)
		h.Write(encoding.Float64ToBytes(piece.Position.X))
		h.Write(encoding.Float64ToBytes(piece.Position.Y))
		h.Write(encoding.Float64ToBytes(piece.Position.Z))
		h.Write(encoding.Float64ToBytes(piece.Yaw))

		for _, s := range piece.Sockets {
			if s.LinkedTo == nil {
				h.Write(encoding.ToBytes64(0))
				continue
			}
			h.Write(encoding.ToBytes64(uint64(s.LinkedTo.Piece) + 1))
			h.Write(encoding.ToBytes64(uint64(s.LinkedTo.Socket)))
		}
	}
	return h.Sum64()
}
