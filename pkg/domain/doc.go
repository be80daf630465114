/*
Package domain contains the core domain models for the onboarding engine.

It defines the fundamental entities of the conversational session: questions,
responses, the answer record, the chat timeline, and the observable session
state. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Question: One entry in the immutable onboarding script.
  - Response: The answer payload for one question (tagged by ResponseKind).
  - Answers: The per-session record of responses, keyed by question ID.
  - Message: One chat timeline entry, including typing placeholders.
  - Snapshot: The observable state handed to a presentation layer.
  - CompletionFlag: The cached "already onboarded" marker.
*/
package domain
