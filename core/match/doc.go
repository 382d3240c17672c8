// Package match defines the match outcome record and the ordered set used to
// accumulate match history.
//
// # Records
//
// A Record is an immutable value describing the conclusion of one match: when it
// ended, which playlist (Category) it was played in, how many rank points were
// gained or lost and the rank before the match. Records may also carry the skill
// estimate (mean and sigma) reported by the game client; absent values are kept
// as the -1 sentinel.
//
// Records can only be created through a Policy, which decides which categories
// are tracked:
//
//	policy := match.Policy{IncludeUnranked: false}
//	r, err := policy.NewRecord(t, match.Ranked1v1, -10, 735, match.NoSkill)
//
// # Sets
//
// A Set holds records unique by full structural equality and iterates them in
// timestamp order. Records that end in the same second with different content
// are all retained, ordered by their content.
package match
