// Package notifier implements per-type alert dispatch.
//
// A single Dispatcher drives the common flow for every alert type: validate,
// run the type's precondition, annotate, then for each recipient resolve
// preferences, translate, render, and deliver through the resilience layer.
// Type-specific behavior lives behind the Hooks interface with one concrete
// implementation per alert type (Weather, Security, Health, Infra).
//
// One recipient's delivery failure never aborts the rest of the batch; only
// a failed precondition (such as an unconfirmed critical security alert)
// fails the whole dispatch.
package notifier
