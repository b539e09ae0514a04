package tui

import (
	"time"

	"github.com/runoshun/issue-feed/internal/domain"
)

// Msg is the sealed interface for all dashboard messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgFeedLoaded is sent when a GetData call returns.
type MsgFeedLoaded struct {
	At       time.Time
	Envelope domain.Envelope
}

func (MsgFeedLoaded) sealed() {}

// MsgTick is sent periodically for auto-refresh.
type MsgTick struct{}

func (MsgTick) sealed() {}
