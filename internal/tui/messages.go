package tui

import (
	"github.com/google/uuid"
)

// toastExpiredMsg removes one notification once its TTL elapses.
type toastExpiredMsg struct {
	id uuid.UUID
}

type openDoneMsg struct {
	err error
}
