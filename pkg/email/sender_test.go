package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusalert/campusalert/pkg/email"
)

func TestSendParamsValidate(t *testing.T) {
	t.Parallel()

	valid := email.SendParams{
		SendTo:   "jean@univ.fr",
		Subject:  "alerte_meteo",
		BodyHTML: "<p>Tempête prévue ce soir</p>",
	}

	t.Run("valid params", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("invalid recipient", func(t *testing.T) {
		t.Parallel()

		p := valid
		p.SendTo = "not-an-address"
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()

		p := valid
		p.Subject = " "
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing body", func(t *testing.T) {
		t.Parallel()

		p := valid
		p.BodyHTML = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("writes html and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), email.SendParams{
			SendTo:   "jean@univ.fr",
			Subject:  "alerte_meteo",
			BodyHTML: "<p>Tempête prévue ce soir</p>",
			Tag:      "weather",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var jsonFile string
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".json" {
				jsonFile = filepath.Join(dir, e.Name())
			}
		}
		require.NotEmpty(t, jsonFile)

		raw, err := os.ReadFile(jsonFile)
		require.NoError(t, err)

		var meta map[string]string
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "jean@univ.fr", meta["send_to"])
		assert.Equal(t, "weather", meta["tag"])
	})

	t.Run("rejects invalid params", func(t *testing.T) {
		t.Parallel()

		sender := email.NewDevSender(t.TempDir())
		err := sender.SendEmail(context.Background(), email.SendParams{SendTo: "nope"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})
}

func TestNewPostmarkSender(t *testing.T) {
	t.Parallel()

	t.Run("missing tokens", func(t *testing.T) {
		t.Parallel()

		_, err := email.NewPostmarkSender(email.Config{SenderEmail: "alerts@univ.fr"})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})

	t.Run("invalid sender address", func(t *testing.T) {
		t.Parallel()

		_, err := email.NewPostmarkSender(email.Config{
			PostmarkServerToken:  "server-token",
			PostmarkAccountToken: "account-token",
			SenderEmail:          "nope",
		})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := email.NewPostmarkSender(email.Config{
			PostmarkServerToken:  "server-token",
			PostmarkAccountToken: "account-token",
			SenderEmail:          "alerts@univ.fr",
		})
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})
}

func TestNewSMTPSender(t *testing.T) {
	t.Parallel()

	t.Run("missing host", func(t *testing.T) {
		t.Parallel()

		_, err := email.NewSMTPSender(email.Config{SenderEmail: "alerts@univ.fr"})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := email.NewSMTPSender(email.Config{
			SMTPHost:    "smtp.univ.fr",
			SMTPPort:    587,
			SenderEmail: "alerts@univ.fr",
		})
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})
}
