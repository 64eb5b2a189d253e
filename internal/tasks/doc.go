// Package tasks runs scripted operations against a catalog with real-time progress reporting.
//
// # Core Operations
//
// The [ScriptEngine] interface defines two operations:
//
//  1. [ScriptEngine.Seed] : Register books and members
//     - Adds every seed record in order
//     - Emits one progress update per record
//
//  2. [ScriptEngine.Run] : Execute a script of [Step] values
//     - Applies checkout, return, add, remove, search and stats steps in order
//     - Records the [models.Result] of each mutation without failing on tolerated outcomes
//     - Returns the final stats and transaction log
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [CatalogEngine] implements [ScriptEngine] on top of a [catalog.Catalog].
// Scripts usually come from the [[script]] tables of the configuration file (see [StepsFromConfig]).
package tasks
