// Package channel defines delivery channels for rendered alert messages.
//
// A Channel knows how to carry one message to one recipient over a single
// transport: email, SMS, or the in-app inbox. The Registry maps channel
// names to implementations and falls back to email when a recipient prefers
// a channel the deployment does not provide, so a misconfigured preference
// never silences an alert.
package channel
