package leave

// Export internal functions for testing
var (
	ParseUsers    = parseUsers
	ParseAbsences = parseAbsences
	MatchUser     = matchUser
	NameMatches   = nameMatches
)
