package normalize

import (
	"testing"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple", title: "GopherCon 2026", want: "gophercon-2026"},
		{name: "special characters stripped", title: "Rust & Go: A Showdown!", want: "rust-go-a-showdown"},
		{name: "runs collapsed", title: "  Cloud   Native__Days -- Berlin ", want: "cloud-native-days-berlin"},
		{name: "leading and trailing hyphens", title: "--Kubernetes Meetup--", want: "kubernetes-meetup"},
		{name: "already a slug", title: "devops-days", want: "devops-days"},
		{name: "unicode punctuation", title: "AI/ML @ Scale", want: "aiml-scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title))
		})
	}
}

// Running a derived slug back through Slug must be a no-op, so slugs are
// stable under re-derivation.
func TestSlug_Idempotent(t *testing.T) {
	titles := []string{
		"GopherCon 2026",
		"Rust & Go: A Showdown!",
		"  Cloud   Native__Days -- Berlin ",
		"API World (Online)",
	}
	for _, title := range titles {
		slug := Slug(title)
		assert.Equal(t, slug, Slug(slug), "title %q", title)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "iso date", in: "2026-03-14", want: "2026-03-14"},
		{name: "iso datetime", in: "2026-03-14T18:00:00Z", want: "2026-03-14"},
		{name: "slash separated", in: "2026/03/14", want: "2026-03-14"},
		{name: "long month name", in: "March 14, 2026", want: "2026-03-14"},
		{name: "short month name", in: "Mar 14, 2026", want: "2026-03-14"},
		{name: "surrounding whitespace", in: "  2026-03-14  ", want: "2026-03-14"},
		{name: "garbage", in: "not a date", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "month out of range", in: "2026-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Date-only inputs must not shift by a day regardless of the host zone.
func TestDate_NoZoneDrift(t *testing.T) {
	for _, in := range []string{"2026-01-01", "2026-12-31", "January 1, 2026"} {
		got, err := Date(in)
		require.NoError(t, err)
		switch in {
		case "2026-12-31":
			assert.Equal(t, "2026-12-31", got)
		default:
			assert.Equal(t, "2026-01-01", got)
		}
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "strict 24h passthrough", in: "14:30", want: "14:30"},
		{name: "pm conversion", in: "2:30 PM", want: "14:30"},
		{name: "am keeps hour", in: "2:30 AM", want: "02:30"},
		{name: "noon", in: "12:00 PM", want: "12:00"},
		{name: "midnight", in: "12:00 AM", want: "00:00"},
		{name: "single digit 24h", in: "9:05", want: "09:05"},
		{name: "seconds dropped", in: "18:45:30", want: "18:45"},
		{name: "lowercase suffix", in: "7:15 pm", want: "19:15"},
		{name: "no space before suffix", in: "7:15PM", want: "19:15"},
		{name: "hour 13 with suffix", in: "13:00 PM", wantErr: true},
		{name: "hour 0 with suffix", in: "0:30 AM", wantErr: true},
		{name: "hour out of 24h range", in: "25:00", wantErr: true},
		{name: "minutes out of range", in: "10:75", wantErr: true},
		{name: "not a time", in: "half past nine", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Time(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	t.Run("create normalizes everything", func(t *testing.T) {
		e := &domain.Event{Title: "Go Meetup Berlin", Date: "March 14, 2026", Time: "6:30 PM"}
		require.NoError(t, Apply(e, AllChanges))
		assert.Equal(t, "go-meetup-berlin", e.Slug)
		assert.Equal(t, "2026-03-14", e.Date)
		assert.Equal(t, "18:30", e.Time)
	})

	t.Run("untouched fields are left alone", func(t *testing.T) {
		e := &domain.Event{Title: "New Title", Slug: "old-slug", Date: "not a date", Time: "also not a time"}
		require.NoError(t, Apply(e, Changes{}))
		assert.Equal(t, "old-slug", e.Slug)
		assert.Equal(t, "not a date", e.Date)
		assert.Equal(t, "also not a time", e.Time)
	})

	t.Run("missing slug is derived even when title unchanged", func(t *testing.T) {
		e := &domain.Event{Title: "Some Event", Date: "2026-01-01", Time: "10:00"}
		require.NoError(t, Apply(e, Changes{}))
		assert.Equal(t, "some-event", e.Slug)
	})

	t.Run("bad date surfaces a validation error", func(t *testing.T) {
		e := &domain.Event{Title: "X", Date: "bogus", Time: "10:00"}
		err := Apply(e, AllChanges)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}
