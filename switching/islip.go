package switching

import "math/bits"

// unmatched marks a port with no partner in the matching arrays.
const unmatched = -1

// matcher runs the iSLIP request/grant/accept iteration over the VOQ request
// matrix. It owns the rotating grant and accept pointers and reuses its
// scratch arrays across ticks.
type matcher struct {
	numPorts  int
	numRounds int

	grantPtr  []int
	acceptPtr []int

	// Per-tick scratch, zero-reset at the start of every match call.
	grants   []int
	matchIn  []int
	matchOut []int
}

// DefaultRounds is the standard iSLIP round count for an N-port switch,
// ceil(log2(N)) with a minimum of one round.
func DefaultRounds(numPorts int) int {
	if numPorts <= 2 {
		return 1
	}

	return bits.Len(uint(numPorts - 1))
}

func newMatcher(numPorts, numRounds int) *matcher {
	if numPorts <= 0 {
		panic("matcher needs at least one port")
	}
	if numRounds < 1 {
		panic("matcher needs at least one round")
	}

	return &matcher{
		numPorts:  numPorts,
		numRounds: numRounds,
		grantPtr:  make([]int, numPorts),
		acceptPtr: make([]int, numPorts),
		grants:    make([]int, numPorts),
		matchIn:   make([]int, numPorts),
		matchOut:  make([]int, numPorts),
	}
}

// match computes a partial matching for the given request predicate. The
// returned slice maps each input port to its matched output, or unmatched.
// It is scratch storage, valid until the next call.
//
// Each round runs the three iSLIP phases:
//
//   - request: every unmatched input with a non-empty VOQ requests, purely
//     through the predicate;
//   - grant: each unmatched output scans inputs from its grant pointer in
//     modular order and tentatively grants the first requester;
//   - accept: each input holding grants scans outputs from its accept pointer
//     in modular order and accepts the first grant aimed at it.
//
// The pointers advance to one past the matched partner only for accepts made
// in the first round of the slot. Later rounds fill the matching without
// moving the pointers, which keeps the output pointers desynchronised and is
// what gives iSLIP full throughput under admissible traffic.
func (m *matcher) match(request func(in, out int) bool) []int {
	n := m.numPorts

	for i := 0; i < n; i++ {
		m.matchIn[i] = unmatched
		m.matchOut[i] = unmatched
	}

	matched := 0

	for round := 0; round < m.numRounds && matched < n; round++ {
		// Grant phase.
		for out := 0; out < n; out++ {
			m.grants[out] = unmatched
			if m.matchOut[out] != unmatched {
				continue
			}

			for step := 0; step < n; step++ {
				in := (m.grantPtr[out] + step) % n
				if m.matchIn[in] == unmatched && request(in, out) {
					m.grants[out] = in
					break
				}
			}
		}

		// Accept phase.
		newMatches := 0
		for in := 0; in < n; in++ {
			if m.matchIn[in] == unmatched {
				for step := 0; step < n; step++ {
					out := (m.acceptPtr[in] + step) % n
					if m.grants[out] != in {
						continue
					}

					m.matchIn[in] = out
					m.matchOut[out] = in
					newMatches++

					if round == 0 {
						m.grantPtr[out] = (in + 1) % n
						m.acceptPtr[in] = (out + 1) % n
					}

					break
				}
			}
		}

		if newMatches == 0 {
			break
		}
		matched += newMatches
	}

	return m.matchIn
}
