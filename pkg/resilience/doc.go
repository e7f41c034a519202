// Package resilience provides composable retry and circuit-breaker policies
// for fallible operations, plus a keyed registry that applies both around a
// delivery call.
//
// The circuit breaker gates whether an attempt happens at all; the retry
// policy governs how many raw attempts occur within one gated call. Each
// notifier owns one breaker identified by its name, so repeated failures of
// one notification type never block the others.
//
// Policies can be swapped at runtime through the Registry; every dispatch
// reads a consistent snapshot, so a reconfiguration is never observed
// half-applied.
package resilience
