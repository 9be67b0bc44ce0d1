// Package history records applied theme selections in a JSONL journal.
package history
