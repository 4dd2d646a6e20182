// Package archive generates and persists one ranking per game date.
//
// The Generator walks a date range, resolves each date's secret word through
// the schedule, skips dates the store already holds and ranks the rest
// against shared embedding resources. Stores are interchangeable:
//   - SQLiteStore: archived_game table with a unique game_date
//   - BadgerStore: key-value records under the "archive/" prefix
//   - DirStore: one <YYYY-MM-DD>.json ranking file per date
//
// Import migrates a directory of JSON rankings into any store.
package archive
