package model

// Rank returns the position of m on the capability ladder (haiku=0, sonnet=1, opus=2).
// Unknown names rank -1.
func (m ModelName) Rank() int {
	for i, candidate := range Models {
		if candidate == m {
			return i
		}
	}
	return -1
}

// Cheaper returns the next cheaper tier. Haiku and unknown names are returned unchanged.
func (m ModelName) Cheaper() ModelName {
	idx := m.Rank()
	if idx <= 0 {
		return m
	}
	return Models[idx-1]
}
