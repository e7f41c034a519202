// Package email provides the outbound email transports used by the email
// delivery channel: a Postmark-backed sender for production, an SMTP sender
// for self-hosted deployments, and a development sender that writes messages
// to disk instead of sending them.
package email
