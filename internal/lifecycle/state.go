package lifecycle

import (
	"net/http"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/apperror"
)

var ErrIllegalTransition = apperror.New(http.StatusConflict, "operation not allowed in the current listing state")

// State is the single listing/contract stage of a vehicle (persisted as a string).
type State string

const (
	StateUnlisted       State = "unlisted"        // not offered for sale or rent
	StateForSale        State = "forSale"         // active sale listing
	StateForRent        State = "forRent"         // open rent periods exist
	StateUnderContract  State = "underContract"   // contract started, no payment proof yet
	StatePaymentPending State = "paymentPending"  // proof uploaded, awaiting check
	StateRejected       State = "rejected"        // last payment check rejected, retry allowed
	StatePaid           State = "paid"            // rent contract settled
	StateSold           State = "sold"            // sale contract settled
)

// allowed defines the listing state machine as a directed graph.
// forRent -> forRent covers re-opening more periods while no contract is active.
var allowed = map[State][]State{
	StateUnlisted:       {StateForSale, StateForRent},
	StateForSale:        {StateUnderContract, StateUnlisted},
	StateForRent:        {StateForRent, StateUnderContract, StateUnlisted},
	StateUnderContract:  {StatePaymentPending, StatePaid, StateSold},
	StatePaymentPending: {StatePaid, StateSold, StateRejected, StateUnderContract},
	StateRejected:       {StatePaymentPending, StateUnderContract},
	// terminal states
	StatePaid: {},
	StateSold: {},
}

// Valid reports whether s is a known state.
func Valid(s State) bool {
	_, ok := allowed[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed transition.
func CanTransition(from, to State) bool {
	next, ok := allowed[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns the new state,
// or ErrIllegalTransition when the move is not allowed.
func Transition(from, to State) (State, error) {
	if !CanTransition(from, to) {
		return from, ErrIllegalTransition
	}
	return to, nil
}
