// Package bot serves solve requests over NATS. Requests and responses are
// JSON so any client can talk to it.
package bot

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/freecell/automatic"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
	"github.com/domino14/freecell/game"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/solver"
)

// OutcomeError is reported when the request itself could not be served.
const OutcomeError = "error"

var errNoPosition = errors.New("request must give exactly one of deal, layout or seed")

// SolveRequest names one position: a 52-card deal in the text format, a
// layout, or a seed for a random deal.
type SolveRequest struct {
	ID          string       `json:"id,omitempty"`
	Deal        string       `json:"deal,omitempty"`
	Layout      *deal.Layout `json:"layout,omitempty"`
	Seed        *uint64      `json:"seed,omitempty"`
	Foundations int          `json:"foundations,omitempty"`
	MaxNodes    int          `json:"max_nodes,omitempty"`
}

type SolveResponse struct {
	ID            string      `json:"id,omitempty"`
	Outcome       string      `json:"outcome"`
	Moves         []move.Move `json:"moves,omitempty"`
	NodesExplored int         `json:"nodes_explored"`
	StatesSeen    int         `json:"states_seen"`
	ElapsedMS     int64       `json:"elapsed_ms"`
	Error         string      `json:"error,omitempty"`
}

// LambdaEvent is a SolveRequest plus the NATS subject the answer should be
// sent to.
type LambdaEvent struct {
	SolveRequest
	ReplyChannel string `json:"reply_channel,omitempty"`
}

type Bot struct {
	config *config.Config
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{config: cfg}
}

func errorResponse(id, message string, err error) *SolveResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &SolveResponse{ID: id, Outcome: OutcomeError, Error: msg}
}

func (req *SolveRequest) position() (*game.State, error) {
	given := 0
	for _, ok := range []bool{req.Deal != "", req.Layout != nil, req.Seed != nil} {
		if ok {
			given++
		}
	}
	if given != 1 {
		return nil, errNoPosition
	}
	switch {
	case req.Deal != "":
		return deal.ParseState(req.Deal)
	case req.Layout != nil:
		return req.Layout.State()
	case req.Foundations > 0:
		return deal.PartiallySolved(req.Foundations, *req.Seed)
	default:
		return deal.RandomState(*req.Seed), nil
	}
}

// Handle solves the requested position. Failures of any kind come back as
// a response, never as an error.
func (b *Bot) Handle(req *SolveRequest) *SolveResponse {
	s, err := req.position()
	if err != nil {
		return errorResponse(req.ID, "could not read position", err)
	}
	slv := solver.NewSolver(b.config)
	if req.MaxNodes > 0 {
		slv.SetMaxNodes(req.MaxNodes)
	}
	sol, err := slv.Solve(s)
	resp := &SolveResponse{ID: req.ID}
	switch {
	case err == nil:
		resp.Outcome = automatic.OutcomeSolved
		resp.Moves = sol.Moves
	case errors.Is(err, solver.ErrNoSolution):
		resp.Outcome = automatic.OutcomeNoSolution
	case errors.Is(err, solver.ErrBudgetExceeded):
		resp.Outcome = automatic.OutcomeBudgetExceeded
	default:
		return errorResponse(req.ID, "could not solve", err)
	}
	resp.NodesExplored = sol.NodesExplored
	resp.StatesSeen = sol.StatesSeen
	resp.ElapsedMS = sol.Elapsed.Milliseconds()
	log.Info().Str("id", req.ID).Str("outcome", resp.Outcome).Int("moves", len(resp.Moves)).
		Int("explored", resp.NodesExplored).Dur("elapsed", sol.Elapsed).Msg("solve-request")
	return resp
}

// handle decodes a raw request and encodes the response.
func (b *Bot) handle(data []byte) []byte {
	var resp *SolveResponse
	req := &SolveRequest{}
	if err := json.Unmarshal(data, req); err != nil {
		resp = errorResponse("", "could not parse request", err)
	} else {
		resp = b.Handle(req)
	}
	out, err := json.Marshal(resp)
	if err != nil {
		// Should never happen; the response only holds plain fields.
		return []byte(fmt.Sprintf(`{"outcome":%q,"error":%q}`, OutcomeError, err.Error()))
	}
	return out
}

// Elapsed is the solve time of a response.
func (r *SolveResponse) Elapsed() time.Duration {
	return time.Duration(r.ElapsedMS) * time.Millisecond
}
