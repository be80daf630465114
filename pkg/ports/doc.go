/*
Package ports defines the driven ports (interfaces) for the onboarding engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various auth backends, cache stores, and
timer sources.

# Key Interfaces

  - Identity: The external auth/profile provider (current user, metadata).
  - FlagStore: The completion-flag cache (memory, redis, sqlite adapters).
  - Remote: The authoritative source for onboarding completion status.
  - Scheduler: Deferred callback scheduling for the typing delay.
*/
package ports
