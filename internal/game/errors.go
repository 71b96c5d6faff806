package game

import "errors"

var (
	ErrCardNotFound      = errors.New("card not found")
	ErrDeckExhausted     = errors.New("deck exhausted")
	ErrInvalidDeal       = errors.New("invalid number of cards to deal")
	ErrIllegalAction     = errors.New("illegal action")
	ErrGameOver          = errors.New("game is already over")
	ErrCardsNotConserved = errors.New("card conservation violated")
)
