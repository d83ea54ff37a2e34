// Package journal persists run history in a SQLite database under the log
// directory. Every run records its per-file outcomes, so past organizing
// decisions can be reviewed after the fact.
package journal
