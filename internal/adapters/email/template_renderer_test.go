package email

import (
	"testing"

	"devevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_BookingConfirmation(t *testing.T) {
	renderer := NewTemplateRenderer()

	data := &domain.BookingConfirmationEmailData{
		Email:      "gopher@example.com",
		EventTitle: "GopherCon 2026",
		EventDate:  "2026-03-14",
		EventTime:  "18:30",
		EventVenue: "Moscone Center",
		EventSlug:  "gophercon-2026",
		BaseURL:    "https://devevents.example",
	}

	subject, htmlBody, textBody, err := renderer.Render("booking_confirmation", data)
	require.NoError(t, err)

	assert.Equal(t, "Your spot at GopherCon 2026 is booked", subject)
	assert.Contains(t, htmlBody, "https://devevents.example/events/gophercon-2026")
	assert.Contains(t, htmlBody, "<strong>GopherCon 2026</strong>")
	assert.Contains(t, textBody, "When: 2026-03-14 at 18:30")
	assert.Contains(t, textBody, "Where: Moscone Center")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()

	_, _, _, err := renderer.Render("password_reset", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password_reset")
}
