// Package profile holds the user profile shown by the profile screen.
package profile

// User identifies the account holder.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinDate string `json:"join_date"`
}

// Stat is one progress tile.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Achievement is a milestone the user may have earned.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Profile is everything the profile screen renders.
type Profile struct {
	User         User          `json:"user"`
	Stats        []Stat        `json:"stats"`
	Achievements []Achievement `json:"achievements"`
}

// Default returns the built-in demo profile.
func Default() Profile {
	return Profile{
		User: User{
			Name:     "Ahmed Hassan",
			Email:    "ahmed.hassan@example.com",
			JoinDate: "January 2024",
		},
		Stats: []Stat{
			{"Prayers Completed", "847"},
			{"Current Streak", "23 days"},
			{"Quran Pages", "156"},
			{"Achievements", "12"},
		},
		Achievements: []Achievement{
			{"First Prayer", "Completed your first prayer", true},
			{"7 Day Streak", "Prayed for 7 consecutive days", true},
			{"30 Day Streak", "Prayed for 30 consecutive days", false},
			{"Quran Reader", "Read 100 pages of Quran", true},
			{"Early Bird", "Never missed Fajr for a week", true},
			{"Dedicated", "Used app for 6 months", false},
		},
	}
}

// Earned returns the achievements the user has earned, in order.
func (p Profile) Earned() []Achievement {
	var out []Achievement
	for _, a := range p.Achievements {
		if a.Earned {
			out = append(out, a)
		}
	}
	return out
}

// Progress returns earned and total achievement counts.
func (p Profile) Progress() (earned, total int) {
	return len(p.Earned()), len(p.Achievements)
}
