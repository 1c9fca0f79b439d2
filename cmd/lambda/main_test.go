package main

import (
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/freecell/bot"
	"github.com/domino14/freecell/card"
	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deal"
)

func TestHandleRequest(t *testing.T) {
	is := is.New(t)
	evt := bot.LambdaEvent{
		SolveRequest: bot.SolveRequest{
			ID: "foo",
			Layout: &deal.Layout{
				Foundations: []int{13, 12, 13, 13},
				Columns:     [][]card.Card{nil, {card.MustFromString("KD")}},
			},
		},
	}
	cfg = config.DefaultConfig()
	ret, err := HandleRequest(context.Background(), evt)
	is.NoErr(err)
	is.True(strings.HasPrefix(ret, "solved in 1 moves"))
}

func TestHandleBadRequest(t *testing.T) {
	is := is.New(t)
	evt := bot.LambdaEvent{
		SolveRequest: bot.SolveRequest{ID: "bar", Deal: "AC 2C 3C"},
		ReplyChannel: "nowhere",
	}
	cfg = config.DefaultConfig()
	_, err := HandleRequest(context.Background(), evt)
	is.True(err != nil)
}
