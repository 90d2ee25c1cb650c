package leave

import (
	"strings"

	"github.com/secmon-lab/nudger/pkg/domain/model"
)

// minLastNamePrefix is the number of leading characters two spellings of a
// last name must share to be considered the same name
const minLastNamePrefix = 6

// matchUser finds the directory entry for identity: exact email first, then
// fuzzy name. It returns nil and MatchNone when nothing matches.
func matchUser(identity model.Identity, users []model.LeaveUser) (*model.LeaveUser, model.MatchMethod) {
	if email := normalizeEmail(identity.Email); email != "" {
		for i := range users {
			if normalizeEmail(users[i].Email) == email {
				return &users[i], model.MatchEmail
			}
		}
	}

	if identity.Name != "" {
		for i := range users {
			if nameMatches(identity.Name, users[i]) {
				return &users[i], model.MatchName
			}
		}
	}

	return nil, model.MatchNone
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// nameMatches applies the fuzzy name policy. A directory entry matches when
// every token of displayName is a substring of its concatenated first and
// last name, or when the first token equals its first name and the remaining
// tokens share a prefix of at least minLastNamePrefix characters with its last
// name. The heuristic tolerates transliteration differences and can produce
// false positives.
func nameMatches(displayName string, u model.LeaveUser) bool {
	tokens := strings.Fields(strings.ToLower(displayName))
	if len(tokens) == 0 {
		return false
	}

	firstName := strings.ToLower(strings.TrimSpace(u.FirstName))
	lastName := strings.ToLower(strings.TrimSpace(u.LastName))
	full := firstName + lastName

	allContained := full != ""
	for _, tok := range tokens {
		if !strings.Contains(full, tok) {
			allContained = false
			break
		}
	}
	if allContained {
		return true
	}

	if len(tokens) < 2 || firstName == "" || tokens[0] != firstName {
		return false
	}
	return commonPrefixLen(strings.Join(tokens[1:], ""), lastName) >= minLastNamePrefix
}

func commonPrefixLen(a, b string) int {
	ar, br := []rune(a), []rune(b)
	n := 0
	for n < len(ar) && n < len(br) && ar[n] == br[n] {
		n++
	}
	return n
}
