// Package idgen issues identifiers: snowflake ids for drafts and ulid tokens for
// templates and export jobs. Both are derived from the current time.
package idgen

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/smallbiznis/fatura/internal/clock"
	"go.uber.org/fx"
)

// Generator hands out opaque string tokens.
type Generator interface {
	DraftID() string
	Token() string
}

type generator struct {
	node    *snowflake.Node
	clock   clock.Clock
	mu      sync.Mutex
	entropy io.Reader
}

// NewSnowflakeNode builds the node used for draft ids.
func NewSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

// New returns a Generator backed by node and clk.
func New(node *snowflake.Node, clk clock.Clock) Generator {
	return &generator{
		node:    node,
		clock:   clk,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (g *generator) DraftID() string {
	return g.node.Generate().String()
}

func (g *generator) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(g.clock.Now()), g.entropy).String()
}

var Module = fx.Module("idgen",
	fx.Provide(NewSnowflakeNode),
	fx.Provide(New),
)
