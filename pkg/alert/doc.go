// Package alert defines the core domain model shared by the dispatch engine:
// alert types and priorities, recipients with their contact details, and the
// transient per-recipient message produced during delivery.
//
// Values in this package are plain data. Validation happens at construction
// time so the queue and notifiers can assume well-formed input.
package alert
