package tracker

// Stats holds task counts by status for dashboards.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
}

func (c *Stats) add(status Status) {
	c.Total++
	switch status {
	case StatusCompleted:
		c.Completed++
	case StatusPending:
		c.Pending++
	case StatusInProgress:
		c.InProgress++
	}
}

// Stats counts the user's tasks across the live list and every history
// session they own. Each task is counted exactly once: completed tasks move
// from the live list into history when the day ends. Querying the legacy
// sentinel widens the live scan to every task while history stays filtered
// to sessions without a proper owner, which is how pre-account data is
// counted.
func (s *Store) Stats(userID string) (Stats, error) {
	st, err := s.load()
	if err != nil {
		return Stats{}, err
	}

	var counts Stats
	for _, task := range st.Tasks {
		if userID != LegacyUserID && task.UserID != userID {
			continue
		}
		counts.add(task.Status)
	}
	for _, session := range st.History {
		if session.Owner() != userID {
			continue
		}
		for _, task := range session.Tasks {
			counts.add(task.Status)
		}
	}

	return counts, nil
}

// GlobalStats counts every live task and every history task once, with no
// user filter.
func (s *Store) GlobalStats() (Stats, error) {
	st, err := s.load()
	if err != nil {
		return Stats{}, err
	}

	var counts Stats
	for _, task := range st.Tasks {
		counts.add(task.Status)
	}
	for _, session := range st.History {
		for _, task := range session.Tasks {
			counts.add(task.Status)
		}
	}

	return counts, nil
}
