package benchmark

import "sort"

// ComparePeers ranks score among peers. The score is appended after the peers
// and the combined list sorted descending; rank is the first position holding
// an equal value. Returns nil when there are no peers.
func ComparePeers(score float64, peers []float64) *PeerComparison {
	if len(peers) == 0 {
		return nil
	}

	all := make([]float64, 0, len(peers)+1)
	all = append(all, peers...)
	all = append(all, score)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i] > all[j]
	})

	rank := 1
	for i, v := range all {
		if v == score {
			rank = i + 1
			break
		}
	}

	n := float64(len(all))
	var sum float64
	for _, v := range all {
		sum += v
	}
	avg := sum / n

	return &PeerComparison{
		Rank:        rank,
		TotalPeers:  len(all),
		Percentile:  roundTo((n-float64(rank))/n*100, 1),
		PeerAverage: roundTo(avg, 1),
		PeerMedian:  roundTo(all[len(all)/2], 1),
		VsAverage:   roundTo(score-avg, 1),
	}
}
