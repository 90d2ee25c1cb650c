package holiday

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrUnknownJurisdiction is returned for a jurisdiction without a ruleset or feed division
	ErrUnknownJurisdiction = goerr.New("unknown holiday jurisdiction")

	// ErrInvalidFeed is returned when the holiday feed body cannot be decoded
	ErrInvalidFeed = goerr.New("invalid holiday feed")
)
