// Package auditlog persists a SQLite-backed trail of completed
// handshakes, implementing handshake.AuditRecorder so a node can answer
// "who connected, with what flags, when" after the fact.
package auditlog
