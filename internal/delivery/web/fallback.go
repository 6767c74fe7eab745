package web

import "devevents/internal/domain"

// fallbackEvents is shown on the landing page when the API is unreachable,
// so the page degrades to a static listing instead of failing outright.
var fallbackEvents = []*domain.Event{
	{
		Title:    "GopherCon Europe",
		Slug:     "gophercon-europe",
		Overview: "Talks and workshops from the European Go community.",
		Venue:    "Berlin Congress Center",
		Location: "Berlin, Germany",
		Date:     "2026-06-15",
		Time:     "09:00",
		Mode:     domain.ModeOffline,
		Tags:     []string{"go", "conference"},
	},
	{
		Title:    "Cloud Native Meetup",
		Slug:     "cloud-native-meetup",
		Overview: "Monthly meetup on Kubernetes, observability, and platform engineering.",
		Venue:    "Online",
		Location: "Remote",
		Date:     "2026-04-02",
		Time:     "18:00",
		Mode:     domain.ModeOnline,
		Tags:     []string{"cloud", "meetup"},
	},
	{
		Title:    "Open Source Hackathon",
		Slug:     "open-source-hackathon",
		Overview: "A weekend of contributing to open source projects with mentors on site.",
		Venue:    "City Tech Hub",
		Location: "Amsterdam, Netherlands",
		Date:     "2026-05-09",
		Time:     "10:00",
		Mode:     domain.ModeHybrid,
		Tags:     []string{"open-source", "hackathon"},
	},
}
