package alert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusalert/campusalert/pkg/alert"
)

func TestNewRecipient(t *testing.T) {
	t.Parallel()

	t.Run("valid recipient with defaults", func(t *testing.T) {
		t.Parallel()

		r, err := alert.NewRecipient("student1", "Jean Dupont", "jean@univ.fr")
		require.NoError(t, err)
		assert.Equal(t, "student1", r.ID)
		assert.Equal(t, alert.DefaultLanguage, r.Language)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Parallel()

		r, err := alert.NewRecipient(" student1 ", " Jean Dupont ", " jean@univ.fr ")
		require.NoError(t, err)
		assert.Equal(t, "student1", r.ID)
		assert.Equal(t, "jean@univ.fr", r.Email)
	})
}

func TestRecipientValidate(t *testing.T) {
	t.Parallel()

	base := alert.Recipient{
		ID:       "student1",
		Name:     "Jean Dupont",
		Email:    "jean@univ.fr",
		Language: "fr",
	}

	tests := []struct {
		name    string
		mutate  func(*alert.Recipient)
		wantErr error
	}{
		{name: "valid", mutate: func(r *alert.Recipient) {}},
		{
			name:    "id too short",
			mutate:  func(r *alert.Recipient) { r.ID = "ab" },
			wantErr: alert.ErrInvalidRecipientID,
		},
		{
			name:    "id with invalid characters",
			mutate:  func(r *alert.Recipient) { r.ID = "student 1!" },
			wantErr: alert.ErrInvalidRecipientID,
		},
		{
			name:    "missing name",
			mutate:  func(r *alert.Recipient) { r.Name = "" },
			wantErr: alert.ErrMissingRecipientName,
		},
		{
			name:    "malformed email",
			mutate:  func(r *alert.Recipient) { r.Email = "not-an-email" },
			wantErr: alert.ErrInvalidEmail,
		},
		{
			name:   "valid international phone",
			mutate: func(r *alert.Recipient) { r.Phone = "+33123456789" },
		},
		{
			name:   "phone with spaces is normalized",
			mutate: func(r *alert.Recipient) { r.Phone = "+33 12 34 56 789" },
		},
		{
			name:    "phone too short",
			mutate:  func(r *alert.Recipient) { r.Phone = "+331" },
			wantErr: alert.ErrInvalidPhone,
		},
		{
			name:   "valid preferred language",
			mutate: func(r *alert.Recipient) { r.PreferredLanguage = "en" },
		},
		{
			name:    "unsupported preferred language",
			mutate:  func(r *alert.Recipient) { r.PreferredLanguage = "jp" },
			wantErr: alert.ErrInvalidLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := base
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecipientNormalizedPhone(t *testing.T) {
	t.Parallel()

	r := alert.Recipient{Phone: " +33 6 98 76 54 32 "}
	assert.Equal(t, "+33698765432", r.NormalizedPhone())
}
